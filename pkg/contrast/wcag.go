// Package contrast computes WCAG 2.x contrast ratios and APCA lightness contrast
// between two colours.
package contrast

import (
	"math"

	"github.com/jmylchreest/tokentint/pkg/colour"
)

// WCAG 2.x minimum contrast ratios.
// https://www.w3.org/TR/WCAG21/#contrast-minimum
const (
	AANormal  = 4.5 // AA, normal text
	AALarge   = 3.0 // AA, large text (18pt, or 14pt bold)
	AAANormal = 7.0 // AAA, normal text
	AAALarge  = 4.5 // AAA, large text
)

// MaxRatio is the contrast between pure black and pure white.
const MaxRatio = 21.0

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c colour.Colour) float64 {
	r, g, b := channels(c)
	return luminance(r, g, b)
}

func luminance(r, g, b float64) float64 {
	return 0.2126*gammaCorrect(r) + 0.7152*gammaCorrect(g) + 0.0722*gammaCorrect(b)
}

// gammaCorrect linearises an sRGB component in [0, 1].
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// WCAGRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// The ratio is symmetric unless fg is translucent, in which case fg is first
// composited over bg.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func WCAGRatio(fg, bg colour.Colour) float64 {
	fr, fg2, fb := composite(fg, bg)
	br, bg2, bb := channels(bg)

	l1 := luminance(fr, fg2, fb)
	l2 := luminance(br, bg2, bb)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// PassesWCAGAA reports whether fg on bg meets WCAG AA.
func PassesWCAGAA(fg, bg colour.Colour, largeText bool) bool {
	if largeText {
		return WCAGRatio(fg, bg) >= AALarge
	}
	return WCAGRatio(fg, bg) >= AANormal
}

// PassesWCAGAAA reports whether fg on bg meets WCAG AAA.
func PassesWCAGAAA(fg, bg colour.Colour, largeText bool) bool {
	if largeText {
		return WCAGRatio(fg, bg) >= AAALarge
	}
	return WCAGRatio(fg, bg) >= AAANormal
}

// channels returns the 8-bit quantised sRGB channels scaled to [0, 1].
func channels(c colour.Colour) (r, g, b float64) {
	r8, g8, b8 := c.RGB255()
	return float64(r8) / 255.0, float64(g8) / 255.0, float64(b8) / 255.0
}

// composite blends a translucent foreground over the background in gamma-encoded sRGB,
// as browsers do. The background's own alpha is ignored.
func composite(fg, bg colour.Colour) (r, g, b float64) {
	fr, fg2, fb := channels(fg)
	a := fg.Alpha()
	if a >= 1 {
		return fr, fg2, fb
	}
	br, bg2, bb := channels(bg)
	return a*fr + (1-a)*br, a*fg2 + (1-a)*bg2, a*fb + (1-a)*bb
}
