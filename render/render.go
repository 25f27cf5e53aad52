// Package render turns paths into anti-aliased coverage masks.
//
// Three rasterizers are available: graphics2d (the default), gogpu/gg's software renderer
// and oksvg/rasterx. They agree to within anti-aliasing differences along edges.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sort"

	g2d "github.com/jphsd/graphics2d"
	"github.com/jphsd/iconic/geom"
)

// ErrUnknownRenderer is returned by New for names it does not know.
var ErrUnknownRenderer = errors.New("render: unknown renderer")

// Renderer rasterizes filled paths.
type Renderer interface {
	// Name returns the name the renderer is registered under.
	Name() string
	// Mask fills the paths, transformed by xfm, into a w by h coverage mask. Open paths are
	// filled as if closed. A nil xfm is the identity.
	Mask(w, h int, ps []*g2d.Path, xfm *g2d.Aff3, rule geom.FillRule) (*image.Alpha, error)
}

var registry = map[string]func() Renderer{
	"g2d":   func() Renderer { return G2D{} },
	"gg":    func() Renderer { return GG{} },
	"oksvg": func() Renderer { return OKSVG{} },
}

// Default returns the default renderer.
func Default() Renderer {
	return G2D{}
}

// New returns the renderer registered under name.
func New(name string) (Renderer, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRenderer, name)
	}
	return f(), nil
}

// Names returns the registered renderer names in order.
func Names() []string {
	res := make([]string, 0, len(registry))
	for k := range registry {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

func checkSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("render: bad mask size %dx%d", w, h)
	}
	return nil
}

// drawable returns the non-empty paths transformed into device space.
func drawable(ps []*g2d.Path, xfm *g2d.Aff3) []*g2d.Path {
	if xfm == nil {
		xfm = g2d.NewAff3()
	}
	res := make([]*g2d.Path, 0, len(ps))
	for _, p := range ps {
		if geom.Empty(p) {
			continue
		}
		res = append(res, p.Transform(xfm))
	}
	return res
}

// alphaOf copies the alpha channel of img into a mask.
func alphaOf(img image.Image) *image.Alpha {
	b := img.Bounds()
	res := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(res, res.Bounds(), img, b.Min, draw.Src)
	return res
}

// xorInto combines src into dst with the even-odd rule: overlapping coverage cancels.
func xorInto(dst, src *image.Alpha) {
	for i, s := range src.Pix {
		d := int(dst.Pix[i])
		v := d + int(s) - 2*d*int(s)/0xff
		dst.Pix[i] = uint8(max(0, min(0xff, v)))
	}
}

// evenOdd renders each path on its own and combines the results, for rasterizers that only
// implement the nonzero rule.
func evenOdd(w, h int, ps []*g2d.Path, fill func(p *g2d.Path) (*image.Alpha, error)) (*image.Alpha, error) {
	res := image.NewAlpha(image.Rect(0, 0, w, h))
	for _, p := range ps {
		m, err := fill(p)
		if err != nil {
			return nil, err
		}
		xorInto(res, m)
	}
	return res, nil
}
