package iconic

import (
	"image"
	"math"
)

// Shadow is a long shadow cast by the icon toward the bottom right at 45 degrees.
type Shadow struct {
	// Length is how far the shadow reaches, in canvas units.
	Length float64
	// Intensity is the opacity of the shadow next to the icon, in [0, 1].
	Intensity float64
	// Fading is the share of Intensity lost at the far end of the shadow, in [0, 1].
	Fading float64
}

// DefaultShadow returns the shadow matching the slider defaults.
func DefaultShadow() Shadow {
	return Shadow{
		Length:    ShadowLengthSlider.Default,
		Intensity: ShadowIntensitySlider.Default / 100,
		Fading:    ShadowFadingSlider.Default / 100,
	}
}

// Visible reports whether the shadow draws anything.
func (s Shadow) Visible() bool {
	return s.Length > 0 && s.Intensity > 0
}

// Opacity returns the shadow opacity at distance d along its length.
func (s Shadow) Opacity(d float64) float64 {
	if s.Length <= 0 || d > s.Length {
		return 0
	}
	return s.Intensity * (1 - s.Fading*math.Max(0, d)/s.Length)
}

// Cast renders the shadow of mask, n pixels long. Each pixel takes the strongest contribution
// of the mask pixels up to n steps up and to the left of it.
func (s Shadow) Cast(mask *image.Alpha, n int) *image.Alpha {
	b := mask.Bounds()
	res := image.NewAlpha(b)
	if n <= 0 || !s.Visible() {
		return res
	}

	// weights[k] is the shadow opacity k steps from the icon, scaled to 0..255.
	weights := make([]float64, n+1)
	for k := 1; k <= n; k++ {
		weights[k] = 0xff * s.Opacity(math.Min(s.Length, s.Length*float64(k)/float64(n)))
	}

	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			best := 0.0
			for k := 1; k <= n && k <= x && k <= y; k++ {
				// Weights decrease with k, so nothing further out can win.
				if weights[k] <= best {
					break
				}
				a := mask.Pix[(y-k)*mask.Stride+x-k]
				if a == 0 {
					continue
				}
				if v := weights[k] * float64(a) / 0xff; v > best {
					best = v
				}
			}
			res.Pix[y*res.Stride+x] = uint8(math.Round(best))
		}
	}
	return res
}

// clip multiplies a by the coverage of m, in place.
func clip(a, m *image.Alpha) {
	for i := range a.Pix {
		a.Pix[i] = uint8((uint32(a.Pix[i])*uint32(m.Pix[i]) + 0x7f) / 0xff)
	}
}
