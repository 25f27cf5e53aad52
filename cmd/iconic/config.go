package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jphsd/iconic"
	"github.com/jphsd/iconic/render"
)

// Config holds the command configuration.
type Config struct {
	In              string
	Out             string
	DataURI         bool
	BaseColor       string
	IconColor       string
	Size            float64
	ShadowLength    float64
	ShadowIntensity float64
	ShadowFading    float64
	Center          bool
	Dx, Dy          float64
	PNGSize         int
	Densities       bool
	Supersample     int
	Renderer        string
	Timeout         time.Duration
	Verbose         bool
}

// envConfig supplies the flag defaults.
type envConfig struct {
	Out             string        `env:"ICONIC_OUT" envDefault:"icons.zip"`
	BaseColor       string        `env:"ICONIC_BASE_COLOR" envDefault:"#512DA8"`
	IconColor       string        `env:"ICONIC_ICON_COLOR" envDefault:"#ffffff"`
	Size            *float64      `env:"ICONIC_SIZE"`
	ShadowLength    float64       `env:"ICONIC_SHADOW_LENGTH" envDefault:"16"`
	ShadowIntensity float64       `env:"ICONIC_SHADOW_INTENSITY" envDefault:"30"`
	ShadowFading    float64       `env:"ICONIC_SHADOW_FADING" envDefault:"50"`
	PNGSize         int           `env:"ICONIC_PNG_SIZE" envDefault:"192"`
	Densities       bool          `env:"ICONIC_DENSITIES"`
	Supersample     int           `env:"ICONIC_SUPERSAMPLE" envDefault:"4"`
	Renderer        string        `env:"ICONIC_RENDERER" envDefault:"g2d"`
	Timeout         time.Duration `env:"ICONIC_TIMEOUT" envDefault:"30s"`
	Verbose         bool          `env:"ICONIC_VERBOSE"`
}

// ParseConfig reads the environment, then parses args into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Config{
		In:              pipeName,
		Out:             envCfg.Out,
		BaseColor:       envCfg.BaseColor,
		IconColor:       envCfg.IconColor,
		Size:            iconic.SizeSlider.Default,
		ShadowLength:    envCfg.ShadowLength,
		ShadowIntensity: envCfg.ShadowIntensity,
		ShadowFading:    envCfg.ShadowFading,
		Center:          true,
		PNGSize:         envCfg.PNGSize,
		Densities:       envCfg.Densities,
		Supersample:     envCfg.Supersample,
		Renderer:        envCfg.Renderer,
		Timeout:         envCfg.Timeout,
		Verbose:         envCfg.Verbose,
	}
	if envCfg.Size != nil {
		cfg.Size = *envCfg.Size
	}

	fs.StringVar(&cfg.In, "in", cfg.In, "source SVG: file name, URL, or - for stdin")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "destination zip archive, or - for stdout (ICONIC_OUT)")
	fs.BoolVar(&cfg.DataURI, "datauri", false, "print the archive as a data URI instead of writing it")
	fs.StringVar(&cfg.BaseColor, "base-color", cfg.BaseColor, "base color (ICONIC_BASE_COLOR)")
	fs.StringVar(&cfg.IconColor, "icon-color", cfg.IconColor, "icon color (ICONIC_ICON_COLOR)")
	fs.Float64Var(&cfg.Size, "size", cfg.Size, fmt.Sprintf("icon size slider, %g to %g (ICONIC_SIZE)", iconic.SizeSlider.Min, iconic.SizeSlider.Max))
	fs.Float64Var(&cfg.ShadowLength, "shadow-length", cfg.ShadowLength, "shadow length in 48dp canvas units (ICONIC_SHADOW_LENGTH)")
	fs.Float64Var(&cfg.ShadowIntensity, "shadow-intensity", cfg.ShadowIntensity, "shadow opacity in percent (ICONIC_SHADOW_INTENSITY)")
	fs.Float64Var(&cfg.ShadowFading, "shadow-fading", cfg.ShadowFading, "opacity lost along the shadow in percent (ICONIC_SHADOW_FADING)")
	fs.BoolVar(&cfg.Center, "center", cfg.Center, "keep the icon centered on the base; -dx and -dy need -center=false")
	fs.Float64Var(&cfg.Dx, "dx", 0, "horizontal icon offset in canvas units")
	fs.Float64Var(&cfg.Dy, "dy", 0, "vertical icon offset in canvas units")
	fs.IntVar(&cfg.PNGSize, "png-size", cfg.PNGSize, "side of icon.png in pixels (ICONIC_PNG_SIZE)")
	fs.BoolVar(&cfg.Densities, "densities", cfg.Densities, "add a PNG per Android density (ICONIC_DENSITIES)")
	fs.IntVar(&cfg.Supersample, "supersample", cfg.Supersample, "supersampling factor (ICONIC_SUPERSAMPLE)")
	fs.StringVar(&cfg.Renderer, "renderer", cfg.Renderer, "rasterizer: "+strings.Join(render.Names(), ", ")+" (ICONIC_RENDERER)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "download timeout (ICONIC_TIMEOUT)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging (ICONIC_VERBOSE)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if cfg.PNGSize <= 0 {
		return Config{}, fmt.Errorf("-png-size must be positive, got %d", cfg.PNGSize)
	}
	if cfg.Supersample <= 0 {
		return Config{}, fmt.Errorf("-supersample must be positive, got %d", cfg.Supersample)
	}
	if cfg.Center && (cfg.Dx != 0 || cfg.Dy != 0) {
		return Config{}, fmt.Errorf("-dx and -dy move the icon off center, use them with -center=false")
	}
	return cfg, nil
}
