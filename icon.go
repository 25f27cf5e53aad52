package iconic

import (
	"image/color"
	"math"

	g2d "github.com/jphsd/graphics2d"
	"github.com/jphsd/iconic/geom"
	"github.com/jphsd/iconic/svg"
)

// Icon is the glyph placed over the base. Its geometry is the selected path, fitted to a size,
// scaled about its center and positioned on the canvas.
type Icon struct {
	Color  color.Color
	Shadow Shadow

	path     svg.PathItem
	src      geom.Rect // bounds of path
	anchor   geom.Point
	center   geom.Point
	size     float64
	scale    float64
	centered bool
}

// NewIcon wraps path as an icon centered on anchor. The path's stroke is removed.
func NewIcon(path svg.PathItem, anchor geom.Point, c color.Color) *Icon {
	if c == nil {
		c = DefaultIconColor
	}
	switch p := path.(type) {
	case *svg.Path:
		p.StrokeWidth = 0
	case *svg.CompoundPath:
		for _, s := range p.Children {
			s.StrokeWidth = 0
		}
	}
	src := path.Bounds()
	icon := &Icon{
		Color:  c,
		Shadow: DefaultShadow(),
		path:   path,
		src:    src,
		anchor: anchor,
		size:   math.Max(src.W(), src.H()),
		scale:  1,
	}
	icon.Center()
	return icon
}

// Path returns the source path.
func (ic *Icon) Path() svg.PathItem {
	return ic.path
}

// FillRule returns the rule used to fill the icon's contours.
func (ic *Icon) FillRule() geom.FillRule {
	if cp, ok := ic.path.(*svg.CompoundPath); ok {
		return cp.FillRule
	}
	return geom.NonZero
}

// SetSize fits the icon so that the larger side of its bounds is s, before scaling.
func (ic *Icon) SetSize(s float64) {
	ic.size = math.Max(0, s)
}

// Size returns the fitted size.
func (ic *Icon) Size() float64 {
	return ic.size
}

// SetScale scales the fitted icon about its center.
func (ic *Icon) SetScale(k float64) {
	ic.scale = math.Max(0, k)
}

// Scale returns the scale factor.
func (ic *Icon) Scale() float64 {
	return ic.scale
}

// Center moves the icon center onto its anchor, the base center.
func (ic *Icon) Center() {
	ic.center = ic.anchor
	ic.centered = true
}

// Centered reports whether the icon sits on its anchor. Moving the icon clears it.
func (ic *Icon) Centered() bool {
	return ic.centered
}

// Move translates the icon by (dx, dy) canvas units.
func (ic *Icon) Move(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	ic.center = ic.center.Add(geom.Pt(dx, dy))
	ic.centered = false
}

// Transform returns the matrix taking the source path onto the canvas.
func (ic *Icon) Transform() *g2d.Aff3 {
	fit := 1.0
	if m := math.Max(ic.src.W(), ic.src.H()); m > geom.Epsilon {
		fit = ic.size / m
	}
	k := fit * ic.scale
	c := ic.src.Center()
	return g2d.Translate(ic.center.X, ic.center.Y).Scale(k, k).Translate(-c.X, -c.Y)
}

// Contours returns the icon outline in canvas coordinates.
func (ic *Icon) Contours() []*g2d.Path {
	return geom.TransformAll(ic.path.Contours(), ic.Transform())
}

// Bounds returns the bounds of the icon on the canvas.
func (ic *Icon) Bounds() geom.Rect {
	return geom.Bounds(ic.Contours())
}
