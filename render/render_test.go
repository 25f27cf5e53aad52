package render

import (
	"image"
	"testing"

	g2d "github.com/jphsd/graphics2d"
	"github.com/jphsd/iconic/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allRenderers(t *testing.T) []Renderer {
	t.Helper()
	var res []Renderer
	for _, n := range Names() {
		r, err := New(n)
		require.NoError(t, err)
		assert.Equal(t, n, r.Name())
		res = append(res, r)
	}
	return res
}

func TestNew(t *testing.T) {
	assert.Equal(t, []string{"g2d", "gg", "oksvg"}, Names())
	assert.Equal(t, "g2d", Default().Name())

	_, err := New("cairo")
	assert.ErrorIs(t, err, ErrUnknownRenderer)
}

func TestMaskSquare(t *testing.T) {
	sq := []*g2d.Path{geom.RoundedRect(2, 2, 6, 6, 0, 0)}
	for _, r := range allRenderers(t) {
		t.Run(r.Name(), func(t *testing.T) {
			// 10 unit square drawn at 4x
			m, err := r.Mask(40, 40, sq, g2d.Scale(4, 4), geom.NonZero)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 40, 40), m.Bounds())
			assert.Greater(t, m.AlphaAt(20, 20).A, uint8(250))
			assert.Greater(t, m.AlphaAt(9, 30).A, uint8(250))
			assert.Less(t, m.AlphaAt(4, 4).A, uint8(5))
			assert.Less(t, m.AlphaAt(35, 20).A, uint8(5))
		})
	}
}

func TestMaskFillRules(t *testing.T) {
	// Both squares wind the same way, so only even-odd leaves a hole.
	cs := []*g2d.Path{geom.RoundedRect(0, 0, 40, 40, 0, 0), geom.RoundedRect(10, 10, 20, 20, 0, 0)}
	for _, r := range allRenderers(t) {
		t.Run(r.Name(), func(t *testing.T) {
			nz, err := r.Mask(40, 40, cs, nil, geom.NonZero)
			require.NoError(t, err)
			assert.Greater(t, nz.AlphaAt(20, 20).A, uint8(250))

			eo, err := r.Mask(40, 40, cs, nil, geom.EvenOdd)
			require.NoError(t, err)
			assert.Less(t, eo.AlphaAt(20, 20).A, uint8(5))
			assert.Greater(t, eo.AlphaAt(5, 5).A, uint8(250))
		})
	}
}

func TestMaskCircleCoverage(t *testing.T) {
	c := []*g2d.Path{g2d.Circle([]float64{24, 24}, 21.6)}
	for _, r := range allRenderers(t) {
		t.Run(r.Name(), func(t *testing.T) {
			m, err := r.Mask(48, 48, c, nil, geom.NonZero)
			require.NoError(t, err)
			sum := 0.0
			for _, a := range m.Pix {
				sum += float64(a) / 0xff
			}
			assert.InDelta(t, 3.14159*21.6*21.6, sum, 15)
		})
	}
}

func TestMaskEmptyAndErrors(t *testing.T) {
	for _, r := range allRenderers(t) {
		t.Run(r.Name(), func(t *testing.T) {
			m, err := r.Mask(8, 8, nil, nil, geom.NonZero)
			require.NoError(t, err)
			for _, a := range m.Pix {
				assert.Zero(t, a)
			}

			_, err = r.Mask(0, 8, nil, nil, geom.NonZero)
			assert.Error(t, err)
		})
	}
}

func TestXorInto(t *testing.T) {
	dst := image.NewAlpha(image.Rect(0, 0, 3, 1))
	src := image.NewAlpha(image.Rect(0, 0, 3, 1))
	copy(dst.Pix, []uint8{0, 0xff, 0xff})
	copy(src.Pix, []uint8{0xff, 0xff, 0})
	xorInto(dst, src)
	assert.Equal(t, []uint8{0xff, 0, 0xff}, dst.Pix)
}

func TestMaskOpenPath(t *testing.T) {
	// An unclosed triangle fills as if closed.
	tri := []*g2d.Path{g2d.PolyLine([]float64{0, 0}, []float64{40, 0}, []float64{0, 40})}
	for _, r := range allRenderers(t) {
		t.Run(r.Name(), func(t *testing.T) {
			m, err := r.Mask(40, 40, tri, nil, geom.NonZero)
			require.NoError(t, err)
			assert.Greater(t, m.AlphaAt(8, 8).A, uint8(250))
			assert.Less(t, m.AlphaAt(32, 32).A, uint8(5))
		})
	}
}
