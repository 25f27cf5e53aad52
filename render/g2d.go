package render

import (
	"image"
	"image/color"

	g2d "github.com/jphsd/graphics2d"
	"github.com/jphsd/iconic/geom"
)

// Flatness is the tolerance, in device pixels, that curves are flattened to before filling.
// graphics2d's own render tolerance is too coarse for icon sized masks.
var Flatness = 0.05

// G2D rasterizes with graphics2d. Its filler implements the nonzero rule only, so even-odd
// fills are built from one mask per path.
type G2D struct{}

func (G2D) Name() string {
	return "g2d"
}

func (r G2D) Mask(w, h int, ps []*g2d.Path, xfm *g2d.Aff3, rule geom.FillRule) (*image.Alpha, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	drawn := drawable(ps, xfm)
	if rule == geom.EvenOdd && len(drawn) > 1 {
		return evenOdd(w, h, drawn, func(p *g2d.Path) (*image.Alpha, error) {
			return r.Mask(w, h, []*g2d.Path{p}, nil, geom.NonZero)
		})
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if len(drawn) > 0 {
		shape := g2d.NewShape()
		for _, p := range drawn {
			shape.AddPaths(p.Flatten(Flatness))
		}
		g2d.FillShape(img, shape, g2d.NewPen(color.White, 1))
	}
	return alphaOf(img), nil
}
