package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	g2d "github.com/jphsd/graphics2d"
	"github.com/jphsd/iconic/geom"
)

// GG rasterizes with gogpu/gg's software renderer.
type GG struct{}

func (GG) Name() string {
	return "gg"
}

func (GG) Mask(w, h int, ps []*g2d.Path, xfm *g2d.Aff3, rule geom.FillRule) (*image.Alpha, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	dc := gg.NewContext(w, h)
	defer dc.Close()

	switch rule {
	case geom.EvenOdd:
		dc.SetFillRule(gg.FillRuleEvenOdd)
	default:
		dc.SetFillRule(gg.FillRuleNonZero)
	}
	dc.SetColor(color.White)

	drawn := drawable(ps, xfm)
	for _, p := range drawn {
		steps := p.Steps()
		cur := steps[0][0]
		dc.MoveTo(cur[0], cur[1])
		for _, s := range steps[1:] {
			switch len(s) {
			case 1:
				dc.LineTo(s[0][0], s[0][1])
			case 2:
				dc.QuadraticTo(s[0][0], s[0][1], s[1][0], s[1][1])
			case 3:
				dc.CubicTo(s[0][0], s[0][1], s[1][0], s[1][1], s[2][0], s[2][1])
			default:
				// Higher order steps only come from graphics2d's own constructors.
				for _, fp := range g2d.FlattenPart(geom.Flatness, append([][]float64{cur}, s...)) {
					dc.LineTo(fp[1][0], fp[1][1])
				}
			}
			cur = s[len(s)-1]
		}
		dc.ClosePath()
	}
	if len(drawn) > 0 {
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("render: gg fill: %w", err)
		}
	}
	return alphaOf(dc.Image()), nil
}
