package colour

import "math"

// maxSearchChroma bounds the chroma search. No sRGB colour exceeds ~0.33 in OKLCH.
const maxSearchChroma = 0.4

// Gamut reports the largest chroma representable at a given lightness and hue.
type Gamut interface {
	MaxChroma(l, h float64) float64
}

// SRGB is the exact sRGB gamut, resolved by bisection on every call.
var SRGB Gamut = exactGamut{}

type exactGamut struct{}

// MaxChroma binary searches the chroma axis for the sRGB boundary while keeping
// lightness and hue fixed.
func (exactGamut) MaxChroma(l, h float64) float64 {
	l = clamp01(l)
	if !InGamut(l, 0, h) {
		return 0
	}
	lo, hi := 0.0, maxSearchChroma
	for range 24 {
		mid := (lo + hi) / 2
		if InGamut(l, mid, h) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// Transformer applies perceptual transforms bounded by a Gamut.
//
// All operations are total: lightness, chroma and alpha are clamped to their
// valid ranges without error. Hue is never modified. The only channel that may
// change as a side effect is chroma, which is reduced when a lightness change
// would otherwise leave the gamut.
type Transformer struct {
	gamut Gamut
}

// NewTransformer creates a Transformer over the given gamut. A nil gamut means SRGB.
func NewTransformer(g Gamut) Transformer {
	if g == nil {
		g = SRGB
	}
	return Transformer{gamut: g}
}

var defaultTransformer = NewTransformer(SRGB)

// Lighten raises lightness by dl, saturating at 1.
func (t Transformer) Lighten(c Colour, dl float64) Colour {
	return t.shiftLightness(c, finite(dl))
}

// Darken lowers lightness by dl, saturating at 0.
func (t Transformer) Darken(c Colour, dl float64) Colour {
	return t.shiftLightness(c, -finite(dl))
}

func (t Transformer) shiftLightness(c Colour, dl float64) Colour {
	l := clamp01(c.l + dl)
	chroma := c.c
	if chroma > 0 {
		chroma = min(chroma, t.gamut.MaxChroma(l, c.h))
	}
	return Colour{l: l, c: chroma, h: c.h, a: c.a}
}

// Saturate raises chroma by dc, up to the gamut boundary at the colour's lightness and hue.
func (t Transformer) Saturate(c Colour, dc float64) Colour {
	bound := t.gamut.MaxChroma(c.l, c.h)
	chroma := min(max(0, c.c+finite(dc)), max(bound, c.c))
	return Colour{l: c.l, c: chroma, h: c.h, a: c.a}
}

// Desaturate lowers chroma by dc, stopping at zero.
func (t Transformer) Desaturate(c Colour, dc float64) Colour {
	chroma := max(0, c.c-finite(dc))
	return Colour{l: c.l, c: chroma, h: c.h, a: c.a}
}

// WithAlpha replaces alpha, clamped into [0, 1]. Other channels are untouched.
func (t Transformer) WithAlpha(c Colour, a float64) Colour {
	return WithAlpha(c, a)
}

// Lighten raises lightness by dl within the sRGB gamut.
func Lighten(c Colour, dl float64) Colour { return defaultTransformer.Lighten(c, dl) }

// Darken lowers lightness by dl within the sRGB gamut.
func Darken(c Colour, dl float64) Colour { return defaultTransformer.Darken(c, dl) }

// Saturate raises chroma by dc within the sRGB gamut.
func Saturate(c Colour, dc float64) Colour { return defaultTransformer.Saturate(c, dc) }

// Desaturate lowers chroma by dc.
func Desaturate(c Colour, dc float64) Colour { return defaultTransformer.Desaturate(c, dc) }

// WithAlpha returns c with alpha set to a, clamped into [0, 1]. NaN becomes 0.
func WithAlpha(c Colour, a float64) Colour {
	if math.IsNaN(a) {
		a = 0
	}
	c.a = clamp01(a)
	return c
}
