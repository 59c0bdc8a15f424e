package contrast

import (
	"math"

	"github.com/jmylchreest/tokentint/pkg/colour"
)

// APCA-W3 0.0.98G-4g constants (SA98G).
// https://github.com/Myndex/apca-w3
const (
	apcaMainTRC = 2.4

	apcaRCo = 0.2126729
	apcaGCo = 0.7151522
	apcaBCo = 0.0721750

	apcaNormBG  = 0.56
	apcaNormTXT = 0.57
	apcaRevTXT  = 0.62
	apcaRevBG   = 0.65

	apcaBlkThrs = 0.022
	apcaBlkClmp = 1.414

	apcaScaleBoW    = 1.14
	apcaScaleWoB    = 1.14
	apcaLoBoWOffset = 0.027
	apcaLoWoBOffset = 0.027

	apcaDeltaYMin = 0.0005
	apcaLoClip    = 0.1
)

// Commonly cited APCA thresholds (absolute Lc).
const (
	LcBodyText    = 75.0 // preferred minimum for body text
	LcContentText = 60.0 // minimum for content text that is not body copy
	LcLargeText   = 45.0 // large or bold headlines
)

// APCA returns the APCA lightness contrast (Lc) of text colour fg on background bg.
//
// The sign encodes polarity: positive for dark text on a light background,
// negative for light text on a dark background. Magnitude runs to about 106 for
// black on white and about 108 for white on black. Compare thresholds against
// math.Abs of the result.
func APCA(fg, bg colour.Colour) float64 {
	fr, fg2, fb := composite(fg, bg)
	br, bg2, bb := channels(bg)

	txtY := softClampBlack(apcaY(fr, fg2, fb))
	bgY := softClampBlack(apcaY(br, bg2, bb))

	if math.Abs(bgY-txtY) < apcaDeltaYMin {
		return 0
	}

	var out float64
	if bgY > txtY {
		// Dark text on a light background.
		sapc := (math.Pow(bgY, apcaNormBG) - math.Pow(txtY, apcaNormTXT)) * apcaScaleBoW
		if sapc < apcaLoClip {
			return 0
		}
		out = sapc - apcaLoBoWOffset
	} else {
		// Light text on a dark background.
		sapc := (math.Pow(bgY, apcaRevBG) - math.Pow(txtY, apcaRevTXT)) * apcaScaleWoB
		if sapc > -apcaLoClip {
			return 0
		}
		out = sapc + apcaLoWoBOffset
	}

	return out * 100
}

// apcaY estimates screen luminance with the simple 2.4 exponent APCA specifies.
func apcaY(r, g, b float64) float64 {
	return apcaRCo*math.Pow(r, apcaMainTRC) +
		apcaGCo*math.Pow(g, apcaMainTRC) +
		apcaBCo*math.Pow(b, apcaMainTRC)
}

func softClampBlack(y float64) float64 {
	if y < apcaBlkThrs {
		return y + math.Pow(apcaBlkThrs-y, apcaBlkClmp)
	}
	return y
}
