package iconic

import (
	"image"
	"image/color"
	"testing"

	"github.com/jphsd/iconic/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nrgba(img *image.NRGBA, x, y int) color.NRGBA {
	return img.NRGBAAt(x, y)
}

func assertColorNear(t *testing.T, want color.NRGBA, got color.NRGBA, tol int) {
	t.Helper()
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	assert.True(t, d(want.R, got.R) <= tol && d(want.G, got.G) <= tol && d(want.B, got.B) <= tol && d(want.A, got.A) <= tol,
		"want %v, got %v", want, got)
}

func TestRenderLayers(t *testing.T) {
	for _, name := range render.Names() {
		t.Run(name, func(t *testing.T) {
			r, err := render.New(name)
			require.NoError(t, err)
			e := newTestEditor(t, WithRenderer(r))

			img, err := e.Render(48)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 48, 48), img.Bounds())

			base := DefaultBaseColor.(color.NRGBA)
			// Outside the base
			assert.Equal(t, uint8(0), nrgba(img, 1, 1).A)
			// Base, above the icon
			assertColorNear(t, base, nrgba(img, 24, 6), 2)
			// Icon body; the icon spans 11.04 to 36.96 with a hole from 18.82 to 29.18.
			assertColorNear(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, nrgba(img, 14, 14), 2)

			// Shadow below and right of the icon darkens the base.
			sh := nrgba(img, 38, 38)
			assert.Equal(t, uint8(0xff), sh.A)
			assert.Less(t, int(sh.R), int(base.R)-15)
			assert.Less(t, int(sh.B), int(base.B)-30)

			// The hole shows the base, shaded by the icon's own shadow.
			hole := nrgba(img, 24, 24)
			assert.Less(t, int(hole.R), int(base.R))
			assert.Less(t, int(hole.B), int(base.B)-20)
		})
	}
}

func TestRenderShadowOff(t *testing.T) {
	e := newTestEditor(t)
	require.NoError(t, e.SetShadowIntensity(0))
	img, err := e.Render(48)
	require.NoError(t, err)
	assertColorNear(t, DefaultBaseColor.(color.NRGBA), nrgba(img, 38, 38), 2)
}

func TestRenderShadowClippedToBase(t *testing.T) {
	e := newTestEditor(t)
	require.NoError(t, e.SetShadowLength(48))
	require.NoError(t, e.SetShadowIntensity(100))
	img, err := e.Render(48)
	require.NoError(t, err)
	// Far corner lies in the shadow's path but outside the base.
	assert.Equal(t, uint8(0), nrgba(img, 46, 46).A)
}

func TestRenderSupersampled(t *testing.T) {
	e := newTestEditor(t, WithSupersample(3))
	img, err := e.Render(32)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())
	assertColorNear(t, DefaultBaseColor.(color.NRGBA), nrgba(img, 16, 4), 3)

	_, err = e.Render(0)
	assert.Error(t, err)
}

func TestShadowCast(t *testing.T) {
	mask := image.NewAlpha(image.Rect(0, 0, 10, 10))
	mask.Pix[2*mask.Stride+2] = 0xff

	s := Shadow{Length: 4, Intensity: 1, Fading: 0.5}
	out := s.Cast(mask, 4)
	assert.Zero(t, out.AlphaAt(2, 2).A)
	assert.Equal(t, uint8(223), out.AlphaAt(3, 3).A) // 255 * (1 - 0.5/4)
	assert.Equal(t, uint8(128), out.AlphaAt(6, 6).A) // 255 * 0.5
	assert.Zero(t, out.AlphaAt(7, 7).A)
	assert.Zero(t, out.AlphaAt(4, 3).A)

	assert.Zero(t, Shadow{Length: 4}.Cast(mask, 4).AlphaAt(3, 3).A)
	assert.Zero(t, s.Cast(mask, 0).AlphaAt(3, 3).A)

	assert.InDelta(t, 1, s.Opacity(0), 1e-12)
	assert.InDelta(t, 0.5, s.Opacity(4), 1e-12)
	assert.Zero(t, s.Opacity(5))
}

func TestShadowCastKeepsStrongest(t *testing.T) {
	mask := image.NewAlpha(image.Rect(0, 0, 6, 6))
	// (0,0) is 3 steps from (3,3), (2,2) only 1 step but faint.
	mask.Pix[0] = 0xff
	mask.Pix[2*mask.Stride+2] = 0x40
	out := Shadow{Length: 5, Intensity: 1, Fading: 1}.Cast(mask, 5)
	// max(255*0.4, 64*0.8)
	assert.Equal(t, uint8(102), out.AlphaAt(3, 3).A)
}

func TestClip(t *testing.T) {
	a := image.NewAlpha(image.Rect(0, 0, 3, 1))
	m := image.NewAlpha(image.Rect(0, 0, 3, 1))
	copy(a.Pix, []uint8{0xff, 0x80, 0xff})
	copy(m.Pix, []uint8{0xff, 0xff, 0})
	clip(a, m)
	assert.Equal(t, []uint8{0xff, 0x80, 0}, a.Pix)
}
