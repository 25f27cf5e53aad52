package iconic

import "math"

// Slider describes the range of an adjustable setting.
type Slider struct {
	Min, Max, Default float64
}

// Clamp limits v to the slider's range. NaN clamps to the default.
func (s Slider) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return s.Default
	}
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Size slider curve: scale = sizeK * e^(sizeR * v).
const (
	sizeK = 0.0954548
	sizeR = 0.465169
)

// SizeToScale maps a size slider position to the icon scale factor. The curve passes through
// roughly 0.1 at 0 and 10 at 10, with a scale of 1 near the middle.
func SizeToScale(v float64) float64 {
	return sizeK * math.Exp(sizeR*v)
}

// ScaleToSize is the inverse of SizeToScale.
func ScaleToSize(scale float64) float64 {
	return math.Log(scale/sizeK) / sizeR
}

var (
	// SizeSlider positions map through SizeToScale. The default leaves the fitted icon unscaled.
	SizeSlider = Slider{Min: 0, Max: 10, Default: ScaleToSize(1)}
	// ShadowLengthSlider is in canvas units.
	ShadowLengthSlider = Slider{Min: 0, Max: CanvasSize, Default: 16}
	// ShadowIntensitySlider is a percentage of full opacity.
	ShadowIntensitySlider = Slider{Min: 0, Max: 100, Default: 30}
	// ShadowFadingSlider is the percentage of opacity lost over the shadow's length.
	ShadowFadingSlider = Slider{Min: 0, Max: 100, Default: 50}
)
