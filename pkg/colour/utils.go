package colour

import "math"

// gamutEpsilon is the linear-light tolerance of InGamut. It absorbs the 1e-8
// level error of the published OKLab coefficients (white maps to L 0.99999999)
// and stays far below one 8-bit step, which is 3e-4 at its smallest.
const gamutEpsilon = 1e-6

// HueDistance calculates the angular distance between two hues on the colour wheel.
// Returns a value between 0 and 180 degrees (shortest path around the wheel).
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(normaliseHue(h1) - normaliseHue(h2))
	if diff > 180 {
		diff = 360 - diff // Handle wraparound
	}
	return diff
}

// InGamut reports whether the OKLCH triple maps inside the sRGB cube.
func InGamut(l, c, h float64) bool {
	r, g, b := okLCHToLinear(l, c, h)
	return r >= -gamutEpsilon && g >= -gamutEpsilon && b >= -gamutEpsilon &&
		r <= 1+gamutEpsilon && g <= 1+gamutEpsilon && b <= 1+gamutEpsilon
}

// normaliseHue wraps a hue into [0, 360).
func normaliseHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

func clamp01(v float64) float64 {
	return max(0, min(v, 1))
}

// finite replaces NaN and infinities with zero so transforms stay total.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
