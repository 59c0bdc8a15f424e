// Package colour provides an immutable OKLCH colour value and hue-preserving
// perceptual transforms over it.
package colour

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColour is returned when a colour cannot be constructed from its input.
var ErrInvalidColour = errors.New("invalid colour")

// achromaticChroma is the chroma below which a colour is treated as a neutral grey.
// OKLCH hue is numerically unstable there, so it is pinned to zero.
const achromaticChroma = 1e-4

// Colour is a colour in the OKLCH perceptual space.
//
// Lightness is in [0, 1], chroma is >= 0, hue is in degrees [0, 360) and alpha is in [0, 1].
// A Colour is immutable: every transform returns a new value. The zero value is
// transparent black.
type Colour struct {
	l, c, h, a float64
}

// FromHex parses a colour in "#RRGGBB" form. The hash is required and the digits
// are case-insensitive. Any other format is rejected.
func FromHex(s string) (Colour, error) {
	if len(s) != 7 || s[0] != '#' {
		return Colour{}, fmt.Errorf("%w: %q is not in #RRGGBB form", ErrInvalidColour, s)
	}
	for _, r := range s[1:] {
		if !isHexDigit(r) {
			return Colour{}, fmt.Errorf("%w: %q contains a non-hex digit", ErrInvalidColour, s)
		}
	}

	rgb, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Colour{}, fmt.Errorf("%w: %v", ErrInvalidColour, err)
	}
	return fromColorful(rgb, 1), nil
}

// MustHex is like FromHex but panics on malformed input.
// Intended for package-level constants and tests.
func MustHex(s string) Colour {
	c, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromComponents builds a colour from raw OKLCH channels.
// Non-finite channels are rejected. Lightness and alpha are clamped to [0, 1],
// negative chroma becomes zero and hue is wrapped into [0, 360).
func FromComponents(l, c, h, a float64) (Colour, error) {
	for _, v := range []float64{l, c, h, a} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Colour{}, fmt.Errorf("%w: non-finite channel in oklch(%v %v %v / %v)", ErrInvalidColour, l, c, h, a)
		}
	}
	return newColour(l, c, h, a), nil
}

// newColour normalises already-finite channels.
func newColour(l, c, h, a float64) Colour {
	c = math.Max(0, c)
	if c < achromaticChroma {
		c, h = 0, 0
	}
	return Colour{
		l: clamp01(l),
		c: c,
		h: normaliseHue(h),
		a: clamp01(a),
	}
}

func fromColorful(rgb colorful.Color, alpha float64) Colour {
	l, c, h := toOKLCH(rgb)
	return newColour(l, c, h, alpha)
}

// Lightness returns the OKLCH lightness in [0, 1].
func (c Colour) Lightness() float64 { return c.l }

// Chroma returns the OKLCH chroma.
func (c Colour) Chroma() float64 { return c.c }

// Hue returns the OKLCH hue in degrees.
func (c Colour) Hue() float64 { return c.h }

// Alpha returns the opacity in [0, 1].
func (c Colour) Alpha() float64 { return c.a }

// Valid reports whether every channel is finite.
func (c Colour) Valid() bool {
	for _, v := range []float64{c.l, c.c, c.h, c.a} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Achromatic reports whether the colour carries no usable hue.
func (c Colour) Achromatic() bool {
	return c.c == 0
}

// sRGB returns the colour in gamma-encoded sRGB, clipped to the unit cube.
func (c Colour) sRGB() colorful.Color {
	return colorful.LinearRgb(okLCHToLinear(c.l, c.c, c.h)).Clamped()
}

// RGB255 returns the 8-bit sRGB channels, ignoring alpha.
func (c Colour) RGB255() (r, g, b uint8) {
	return c.sRGB().RGB255()
}

// Hex returns the colour as a lowercase "#rrggbb" string, ignoring alpha.
func (c Colour) Hex() string {
	return c.sRGB().Hex()
}

// CSS returns a CSS-ready colour string: "#rrggbb" when opaque, "#rrggbbaa" otherwise.
func (c Colour) CSS() string {
	if c.a >= 1 {
		return c.Hex()
	}
	return fmt.Sprintf("%s%02x", c.Hex(), uint8(math.Round(c.a*255)))
}

// String returns the colour in CSS oklch() notation.
func (c Colour) String() string {
	if c.a >= 1 {
		return fmt.Sprintf("oklch(%.4f %.4f %.2f)", c.l, c.c, c.h)
	}
	return fmt.Sprintf("oklch(%.4f %.4f %.2f / %.3f)", c.l, c.c, c.h, c.a)
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
