package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jphsd/iconic"
	"github.com/jphsd/iconic/render"
	"github.com/jphsd/iconic/svg"
	"github.com/jphsd/iconic/utils"
	"golang.org/x/term"
)

const helpBanner = `
iconic: launcher icons from SVG glyphs
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version = "dev"

func main() {
	fs := flag.NewFlagSet("iconic", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		fs.PrintDefaults()
	}
	cfg, err := ParseConfig(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, utils.Failure(err.Error()))
		os.Exit(2)
	}

	if err := run(context.Background(), cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
		msg := err.Error()
		if errors.Is(err, iconic.ErrNoPath) {
			msg = iconic.ErrNoPath.Error()
		}
		fmt.Fprintln(os.Stderr, utils.Failure(msg))
		os.Exit(1)
	}
}

// run builds the icon described by cfg and writes the archive.
func run(ctx context.Context, cfg Config, stdin io.Reader, stdout, stderr io.Writer) error {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	iconic.SetLogger(logger)

	r, err := render.New(cfg.Renderer)
	if err != nil {
		return err
	}
	baseColor, err := parseColor(cfg.BaseColor)
	if err != nil {
		return fmt.Errorf("-base-color: %w", err)
	}
	iconColor, err := parseColor(cfg.IconColor)
	if err != nil {
		return fmt.Errorf("-icon-color: %w", err)
	}

	start := time.Now()
	data, err := readSource(ctx, cfg, stdin)
	if err != nil {
		return err
	}

	ed := iconic.NewEditor(
		iconic.WithRenderer(r),
		iconic.WithBaseColor(baseColor),
		iconic.WithIconColor(iconColor),
		iconic.WithSupersample(cfg.Supersample),
	)
	if err := ed.ImportBytes(data); err != nil {
		return err
	}
	for _, set := range []func() error{
		func() error { return ed.SetSize(cfg.Size) },
		func() error { return ed.SetShadowLength(cfg.ShadowLength) },
		func() error { return ed.SetShadowIntensity(cfg.ShadowIntensity) },
		func() error { return ed.SetShadowFading(cfg.ShadowFading) },
	} {
		if err := set(); err != nil {
			return err
		}
	}
	if !cfg.Center {
		if err := ed.Move(cfg.Dx, cfg.Dy); err != nil {
			return err
		}
	}

	opts := iconic.ExportOptions{PNGSize: cfg.PNGSize, Densities: cfg.Densities}
	if err := writeArchive(ed, cfg, opts, stdout); err != nil {
		return err
	}

	if !cfg.DataURI && cfg.Out != pipeName {
		fi, err := os.Stat(cfg.Out)
		if err != nil {
			return err
		}
		fmt.Fprintln(stderr, utils.Wrote(cfg.Out, fi.Size(), time.Since(start)))
	}
	return nil
}

func parseColor(s string) (color.Color, error) {
	c, err := svg.ParseColor(s)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("color %q is transparent", s)
	}
	return c, nil
}

// readSource loads the SVG document from a URL, a file, or stdin.
func readSource(ctx context.Context, cfg Config, stdin io.Reader) ([]byte, error) {
	switch {
	case utils.IsValidUrl(cfg.In):
		ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
		return utils.DownloadSVG(ctx, cfg.In)
	case cfg.In == pipeName:
		if isTerminal(stdin) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return io.ReadAll(stdin)
	default:
		return os.ReadFile(cfg.In)
	}
}

// writeArchive writes the zip archive, or its data URI, to the configured destination.
func writeArchive(ed *iconic.Editor, cfg Config, opts iconic.ExportOptions, stdout io.Writer) error {
	if cfg.DataURI {
		uri, err := ed.DataURI(opts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, uri)
		return err
	}

	if cfg.Out == pipeName {
		if isTerminal(stdout) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		return ed.Export(stdout, opts)
	}

	f, err := os.Create(cfg.Out)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	if err := ed.Export(f, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
