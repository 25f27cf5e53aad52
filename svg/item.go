package svg

import (
	"image/color"
	"math"

	g2d "github.com/jphsd/graphics2d"
	"github.com/jphsd/iconic/geom"
)

// Item is a node of an imported scene tree.
type Item interface {
	// Bounds returns the bounding rectangle of the item's geometry.
	Bounds() geom.Rect
	// Transform applies m to the item's coordinates in place.
	Transform(m *g2d.Aff3)
	// Clone returns a deep copy of the item.
	Clone() Item
}

// PathItem is an Item with drawable geometry: a *Path or a *CompoundPath.
type PathItem interface {
	Item
	Contours() []*g2d.Path
	FillColor() color.Color
	SetFillColor(c color.Color)
}

// Group holds child items.
type Group struct {
	ID string
	// Title is the document title, set on the root group only.
	Title    string
	Children []Item
}

func (g *Group) Bounds() geom.Rect {
	var r geom.Rect
	for _, c := range g.Children {
		r = r.Union(c.Bounds())
	}
	return r
}

func (g *Group) Transform(m *g2d.Aff3) {
	for _, c := range g.Children {
		c.Transform(m)
	}
}

func (g *Group) Clone() Item {
	res := &Group{ID: g.ID, Title: g.Title, Children: make([]Item, len(g.Children))}
	for i, c := range g.Children {
		res.Children[i] = c.Clone()
	}
	return res
}

// Path is a single contour. A nil Fill means the path is not filled.
type Path struct {
	ID          string
	Contour     *g2d.Path
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
}

func (p *Path) Bounds() geom.Rect {
	return geom.PathBounds(p.Contour)
}

func (p *Path) Transform(m *g2d.Aff3) {
	p.Contour = p.Contour.Transform(m)
	p.StrokeWidth *= math.Sqrt(math.Abs(m.Determinant()))
}

func (p *Path) Clone() Item {
	cp := *p
	cp.Contour = p.Contour.Copy()
	return &cp
}

func (p *Path) Contours() []*g2d.Path {
	return []*g2d.Path{p.Contour}
}

func (p *Path) FillColor() color.Color {
	return p.Fill
}

func (p *Path) SetFillColor(c color.Color) {
	p.Fill = c
}

// Area returns the signed area of the path's contour.
func (p *Path) Area() float64 {
	return geom.Area(p.Contour)
}

// CompoundPath is a set of contours filled as one shape, which is how holes are expressed.
type CompoundPath struct {
	ID       string
	Children []*Path
	Fill     color.Color
	FillRule geom.FillRule
}

func (cp *CompoundPath) Bounds() geom.Rect {
	var r geom.Rect
	for _, c := range cp.Children {
		r = r.Union(c.Bounds())
	}
	return r
}

func (cp *CompoundPath) Transform(m *g2d.Aff3) {
	for _, c := range cp.Children {
		c.Transform(m)
	}
}

func (cp *CompoundPath) Clone() Item {
	res := &CompoundPath{ID: cp.ID, Fill: cp.Fill, FillRule: cp.FillRule, Children: make([]*Path, len(cp.Children))}
	for i, c := range cp.Children {
		res.Children[i] = c.Clone().(*Path)
	}
	return res
}

func (cp *CompoundPath) Contours() []*g2d.Path {
	res := make([]*g2d.Path, len(cp.Children))
	for i, c := range cp.Children {
		res[i] = c.Contour
	}
	return res
}

func (cp *CompoundPath) FillColor() color.Color {
	return cp.Fill
}

func (cp *CompoundPath) SetFillColor(c color.Color) {
	cp.Fill = c
}

// Walk visits item and its descendants in document order.
// Returning false from fn skips the children of the visited item.
func Walk(item Item, fn func(Item) bool) {
	if !fn(item) {
		return
	}
	switch it := item.(type) {
	case *Group:
		for _, c := range it.Children {
			Walk(c, fn)
		}
	case *CompoundPath:
		for _, c := range it.Children {
			Walk(c, fn)
		}
	}
}
