package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	g2d "github.com/jphsd/graphics2d"
	"github.com/jphsd/iconic/geom"
	"github.com/jphsd/iconic/svg"
	"github.com/jphsd/iconic/xml"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// OKSVG rasterizes by handing a one-path SVG document to oksvg and rasterx. The rasterx
// scanner only implements the nonzero rule, so even-odd fills are built from one mask per path.
type OKSVG struct{}

func (OKSVG) Name() string {
	return "oksvg"
}

func (r OKSVG) Mask(w, h int, ps []*g2d.Path, xfm *g2d.Aff3, rule geom.FillRule) (*image.Alpha, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	drawn := drawable(ps, xfm)
	if len(drawn) == 0 {
		return alphaOf(img), nil
	}
	if rule == geom.EvenOdd && len(drawn) > 1 {
		return evenOdd(w, h, drawn, func(p *g2d.Path) (*image.Alpha, error) {
			return r.Mask(w, h, []*g2d.Path{p}, nil, geom.NonZero)
		})
	}

	path := xml.NewNode("path").
		SetAttr("d", svg.PathData(drawn)).
		SetAttr("fill", svg.FormatColor(color.White)).
		SetAttr("fill-rule", rule.String())
	doc := &svg.Document{Width: float64(w), Height: float64(h), Body: []*xml.Element{path}}
	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(&buf, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("render: oksvg: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return alphaOf(img), nil
}
