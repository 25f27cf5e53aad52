package iconic

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"

	"github.com/jphsd/iconic/render"
	"github.com/jphsd/iconic/svg"
)

// ErrNoIcon is returned by editor operations that need an imported icon.
var ErrNoIcon = errors.New("iconic: no icon imported")

// DefaultSupersample is the default supersampling factor used when rendering.
const DefaultSupersample = 4

// Option configures an Editor.
type Option func(*Editor)

// WithRenderer selects the rasterizer. The default is render.Default().
func WithRenderer(r render.Renderer) Option {
	return func(e *Editor) {
		if r != nil {
			e.renderer = r
		}
	}
}

// WithLogger sets the editor's logger, which otherwise is the package Logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithBaseColor sets the base color applied on each import.
func WithBaseColor(c color.Color) Option {
	return func(e *Editor) {
		if c != nil {
			e.baseColor = c
		}
	}
}

// WithIconColor sets the icon color applied on each import.
func WithIconColor(c color.Color) Option {
	return func(e *Editor) {
		if c != nil {
			e.iconColor = c
		}
	}
}

// WithSupersample sets the supersampling factor of rendered images. 1 disables it.
func WithSupersample(n int) Option {
	return func(e *Editor) {
		e.supersample = max(1, n)
	}
}

// Editor is an icon editing session holding at most one base and icon.
// It is not safe for concurrent use.
type Editor struct {
	renderer    render.Renderer
	log         *slog.Logger
	baseColor   color.Color
	iconColor   color.Color
	supersample int

	title string
	base  *Base
	icon  *Icon
}

// NewEditor creates an empty session.
func NewEditor(opts ...Option) *Editor {
	e := &Editor{
		renderer:    render.Default(),
		log:         Logger(),
		baseColor:   DefaultBaseColor,
		iconColor:   DefaultIconColor,
		supersample: DefaultSupersample,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Import reads an SVG document and makes its path the icon, replacing any previous one.
// The base is reset to its defaults, and the icon is fitted to 60% of the base diameter,
// centered, with the default shadow. A document without a usable path yields ErrNoPath and
// leaves the editor empty.
func (e *Editor) Import(r io.Reader) error {
	e.title, e.base, e.icon = "", nil, nil

	g, err := svg.Importer{Logger: e.log}.Import(r)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	path, err := SelectPath(g)
	if err != nil {
		return err
	}
	e.log.Debug("selected icon path", "title", g.Title, "contours", len(path.Contours()), "bounds", path.Bounds())
	e.title = g.Title

	e.base = NewBase(e.baseColor)
	e.icon = NewIcon(path, e.base.Center, e.iconColor)
	e.icon.SetSize(e.base.Diameter() * iconRatio)
	return nil
}

// ImportBytes imports an SVG document held in memory.
func (e *Editor) ImportBytes(data []byte) error {
	return e.Import(bytes.NewReader(data))
}

// Base returns the current base, or nil before an import.
func (e *Editor) Base() *Base {
	return e.base
}

// Icon returns the current icon, or nil before an import.
func (e *Editor) Icon() *Icon {
	return e.icon
}

// Renderer returns the rasterizer in use.
func (e *Editor) Renderer() render.Renderer {
	return e.renderer
}

func (e *Editor) check() error {
	if e.icon == nil {
		return ErrNoIcon
	}
	return nil
}

// SetBaseColor recolors the base.
func (e *Editor) SetBaseColor(c color.Color) error {
	if err := e.check(); err != nil {
		return err
	}
	if c == nil {
		return errors.New("iconic: nil base color")
	}
	e.base.Color = c
	return nil
}

// SetIconColor recolors the icon.
func (e *Editor) SetIconColor(c color.Color) error {
	if err := e.check(); err != nil {
		return err
	}
	if c == nil {
		return errors.New("iconic: nil icon color")
	}
	e.icon.Color = c
	return nil
}

// SetSize sets the icon scale from a size slider position, see SizeToScale.
func (e *Editor) SetSize(v float64) error {
	if err := e.check(); err != nil {
		return err
	}
	e.icon.SetScale(SizeToScale(SizeSlider.Clamp(v)))
	return nil
}

// SetShadowLength sets the shadow length in canvas units.
func (e *Editor) SetShadowLength(v float64) error {
	if err := e.check(); err != nil {
		return err
	}
	e.icon.Shadow.Length = ShadowLengthSlider.Clamp(v)
	return nil
}

// SetShadowIntensity sets the shadow opacity, in percent.
func (e *Editor) SetShadowIntensity(v float64) error {
	if err := e.check(); err != nil {
		return err
	}
	e.icon.Shadow.Intensity = ShadowIntensitySlider.Clamp(v) / 100
	return nil
}

// SetShadowFading sets the share of opacity the shadow loses over its length, in percent.
func (e *Editor) SetShadowFading(v float64) error {
	if err := e.check(); err != nil {
		return err
	}
	e.icon.Shadow.Fading = ShadowFadingSlider.Clamp(v) / 100
	return nil
}

// SetCentered recenters the icon on the base when on is true. Turning it off leaves the icon
// where it is.
func (e *Editor) SetCentered(on bool) error {
	if err := e.check(); err != nil {
		return err
	}
	if on {
		e.icon.Center()
	}
	return nil
}

// Move drags the icon by (dx, dy) canvas units.
func (e *Editor) Move(dx, dy float64) error {
	if err := e.check(); err != nil {
		return err
	}
	e.icon.Move(dx, dy)
	return nil
}
