package decision

import "github.com/jmylchreest/tokentint/pkg/colour"

// Candidate produces a foreground colour to evaluate against a background.
type Candidate struct {
	Name   string
	Colour func(bg colour.Colour, g colour.Gamut) colour.Colour
}

// Fixed returns a candidate that ignores the background.
func Fixed(name string, c colour.Colour) Candidate {
	return Candidate{
		Name:   name,
		Colour: func(colour.Colour, colour.Gamut) colour.Colour { return c },
	}
}

// Tinted returns a brand-aware candidate carrying the background's hue at the
// given lightness, with chroma capped at maxChroma and at the gamut boundary.
// Achromatic backgrounds give a neutral grey.
func Tinted(name string, lightness, maxChroma float64) Candidate {
	return Candidate{
		Name: name,
		Colour: func(bg colour.Colour, g colour.Gamut) colour.Colour {
			chroma := 0.0
			if !bg.Achromatic() {
				chroma = min(maxChroma, g.MaxChroma(lightness, bg.Hue()))
			}
			// Inputs are finite and in range.
			c, _ := colour.FromComponents(lightness, chroma, bg.Hue(), 1)
			return c
		},
	}
}

func neutral(l float64) colour.Colour {
	c, _ := colour.FromComponents(l, 0, 0, 1)
	return c
}

// DefaultCandidates is the canonical candidate set: the sRGB extremes, a
// near-black and near-white pair, and two candidates tinted with the
// background's hue.
func DefaultCandidates() []Candidate {
	return []Candidate{
		Fixed("black", colour.MustHex("#000000")),
		Fixed("white", colour.MustHex("#ffffff")),
		Fixed("near-black", neutral(0.13)),
		Fixed("near-white", neutral(0.985)),
		Tinted("tinted-dark", 0.25, 0.05),
		Tinted("tinted-light", 0.96, 0.03),
	}
}
