package iconic

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	"github.com/disintegration/imaging"
	g2d "github.com/jphsd/graphics2d"
	"github.com/jphsd/iconic/geom"
)

// Render composites the base, shadow and icon into a px by px image.
func (e *Editor) Render(px int) (*image.NRGBA, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	if px <= 0 {
		return nil, fmt.Errorf("iconic: bad image size %d", px)
	}

	start := time.Now()
	n := px * e.supersample
	img, err := e.compose(n)
	if err != nil {
		return nil, err
	}
	var res *image.NRGBA
	if n != px {
		res = imaging.Resize(img, px, px, imaging.Lanczos)
	} else {
		res = imaging.Clone(img)
	}
	e.log.Debug("rendered icon", "renderer", e.renderer.Name(), "size", px,
		"supersample", e.supersample, "elapsed", time.Since(start))
	return res, nil
}

// compose draws the layers at n by n pixels: base color, black shadow clipped to the base, then
// the icon color.
func (e *Editor) compose(n int) (*image.RGBA, error) {
	k := float64(n) / CanvasSize
	xfm := g2d.Scale(k, k)

	baseMask, err := e.renderer.Mask(n, n, []*g2d.Path{e.base.Contour()}, xfm, geom.NonZero)
	if err != nil {
		return nil, fmt.Errorf("render base: %w", err)
	}
	iconMask, err := e.renderer.Mask(n, n, e.icon.Contours(), xfm, e.icon.FillRule())
	if err != nil {
		return nil, fmt.Errorf("render icon: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, n, n))
	fill(img, e.base.Color, baseMask)
	if sh := e.icon.Shadow; sh.Visible() {
		shadow := sh.Cast(iconMask, int(math.Round(sh.Length*k)))
		clip(shadow, baseMask)
		fill(img, color.Black, shadow)
	}
	fill(img, e.icon.Color, iconMask)
	return img, nil
}

func fill(dst draw.Image, c color.Color, mask *image.Alpha) {
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}
