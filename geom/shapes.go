package geom

import (
	"math"

	g2d "github.com/jphsd/graphics2d"
)

// RoundedRect returns the closed clockwise rectangle with top-left corner (x, y) and
// elliptical corners of radii rx, ry. The radii are clamped to half the rectangle's sides.
func RoundedRect(x, y, w, h, rx, ry float64) *g2d.Path {
	rx = math.Min(math.Abs(rx), w/2)
	ry = math.Min(math.Abs(ry), h/2)
	if Equal(rx, 0) || Equal(ry, 0) {
		return g2d.Polygon([]float64{x, y}, []float64{x + w, y}, []float64{x + w, y + h}, []float64{x, y + h})
	}

	// Corner centers, clockwise from the top right
	corners := [][]float64{{x + w - rx, y + ry}, {x + w - rx, y + h - ry}, {x + rx, y + h - ry}, {x + rx, y + ry}}
	res := g2d.NewPath([]float64{x + rx, y})
	for i, c := range corners {
		xfm := g2d.Translate(c[0], c[1]).Scale(rx, ry)
		for j, part := range g2d.MakeArcParts(0, 0, 1, float64(i-1)*g2d.HalfPi, g2d.HalfPi) {
			pts := xfm.Apply(part...)
			if j == 0 {
				res.AddStep(pts[0])
			}
			res.AddStep(pts[1:]...)
		}
	}
	res.Close()
	return res
}
