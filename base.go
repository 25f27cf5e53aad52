package iconic

import (
	"image/color"

	g2d "github.com/jphsd/graphics2d"
	"github.com/jphsd/iconic/geom"
)

// CanvasSize is the side of the square canvas, in units of the 48dp Android launcher icon grid.
const CanvasSize = 48

// Relative sizes of the base and the fitted icon.
const (
	baseRatio = 0.9
	iconRatio = 0.6
)

var (
	// DefaultBaseColor is deep purple 700.
	DefaultBaseColor color.Color = color.NRGBA{R: 0x51, G: 0x2d, B: 0xa8, A: 0xff}
	// DefaultIconColor is white.
	DefaultIconColor color.Color = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// CanvasCenter returns the center of the canvas.
func CanvasCenter() geom.Point {
	return geom.Pt(CanvasSize/2, CanvasSize/2)
}

// Base is the colored disc behind the icon.
type Base struct {
	Center geom.Point
	Radius float64
	Color  color.Color
}

// NewBase returns the default base: centered on the canvas and filling 90% of it.
func NewBase(c color.Color) *Base {
	if c == nil {
		c = DefaultBaseColor
	}
	return &Base{Center: CanvasCenter(), Radius: CanvasSize / 2 * baseRatio, Color: c}
}

// Diameter returns twice the radius.
func (b *Base) Diameter() float64 {
	return 2 * b.Radius
}

// Contour returns the outline of the base.
func (b *Base) Contour() *g2d.Path {
	return g2d.Circle(b.Center.XY(), b.Radius)
}
