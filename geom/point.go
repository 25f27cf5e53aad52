// Package geom holds the glue between the SVG scene and graphics2d paths: points, rectangles,
// signed areas and orientation, and the few shapes graphics2d has no constructor for.
//
// Coordinates are y-down, as in SVG.
package geom

import "math"

// Epsilon is the tolerance used for float comparisons.
const Epsilon = 1e-9

// Point is a 2D location.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{x, y}
}

// PointOf converts a graphics2d point.
func PointOf(pt []float64) Point {
	return Point{pt[0], pt[1]}
}

// XY returns p in the form graphics2d uses.
func (p Point) XY() []float64 {
	return []float64{p.X, p.Y}
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Equals reports whether p and q coincide within Epsilon.
func (p Point) Equals(q Point) bool {
	return Equal(p.X, q.X) && Equal(p.Y, q.Y)
}

// Equal reports whether a and b differ by less than Epsilon.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Rect is an axis aligned rectangle. The zero Rect is empty.
type Rect struct {
	Min, Max Point
}

// RectOf converts a graphics2d bounding box.
func RectOf(bb [][]float64) Rect {
	if len(bb) < 2 {
		return Rect{}
	}
	return Rect{PointOf(bb[0]), PointOf(bb[1])}
}

func (r Rect) W() float64 {
	return r.Max.X - r.Min.X
}

func (r Rect) H() float64 {
	return r.Max.Y - r.Min.Y
}

func (r Rect) Center() Point {
	return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Empty reports whether r encloses no area and no point.
func (r Rect) Empty() bool {
	return r == Rect{}
}

// Union returns the smallest rectangle containing r and s.
// An empty rectangle is the identity.
func (r Rect) Union(s Rect) Rect {
	if r.Empty() {
		return s
	}
	if s.Empty() {
		return r
	}
	return Rect{
		Min: Point{math.Min(r.Min.X, s.Min.X), math.Min(r.Min.Y, s.Min.Y)},
		Max: Point{math.Max(r.Max.X, s.Max.X), math.Max(r.Max.Y, s.Max.Y)},
	}
}
