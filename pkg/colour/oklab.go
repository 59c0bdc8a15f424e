package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// mat3 is a row-major 3x3 matrix.
type mat3 [3][3]float64

// OKLab forward matrices (Björn Ottosson, 2021 revision).
// https://bottosson.github.io/posts/oklab/
var (
	linearToLMS = mat3{
		{0.4122214708, 0.5363325363, 0.0514459929},
		{0.2119034982, 0.6806995451, 0.1073969566},
		{0.0883024619, 0.2817188376, 0.6299787005},
	}
	lmsToOKLab = mat3{
		{0.2104542553, 0.7936177850, -0.0040720468},
		{1.9779984951, -2.4285922050, 0.4505937099},
		{0.0259040371, 0.7827717662, -0.8086757660},
	}

	// The reverse direction uses the exact inverses so that any 8-bit sRGB
	// colour survives a round trip.
	lmsToLinear = linearToLMS.inverse()
	okLabToLMS  = lmsToOKLab.inverse()
)

func (m mat3) apply(x, y, z float64) (float64, float64, float64) {
	return m[0][0]*x + m[0][1]*y + m[0][2]*z,
		m[1][0]*x + m[1][1]*y + m[1][2]*z,
		m[2][0]*x + m[2][1]*y + m[2][2]*z
}

func (m mat3) inverse() mat3 {
	c00 := m[1][1]*m[2][2] - m[1][2]*m[2][1]
	c01 := m[1][2]*m[2][0] - m[1][0]*m[2][2]
	c02 := m[1][0]*m[2][1] - m[1][1]*m[2][0]
	det := m[0][0]*c00 + m[0][1]*c01 + m[0][2]*c02

	return mat3{
		{c00 / det, (m[0][2]*m[2][1] - m[0][1]*m[2][2]) / det, (m[0][1]*m[1][2] - m[0][2]*m[1][1]) / det},
		{c01 / det, (m[0][0]*m[2][2] - m[0][2]*m[2][0]) / det, (m[0][2]*m[1][0] - m[0][0]*m[1][2]) / det},
		{c02 / det, (m[0][1]*m[2][0] - m[0][0]*m[2][1]) / det, (m[0][0]*m[1][1] - m[0][1]*m[1][0]) / det},
	}
}

// toOKLCH converts gamma-encoded sRGB to OKLCH. Hue is in degrees and may be negative.
func toOKLCH(rgb colorful.Color) (l, c, h float64) {
	lx, mx, sx := linearToLMS.apply(rgb.LinearRgb())
	l, a, b := lmsToOKLab.apply(math.Cbrt(lx), math.Cbrt(mx), math.Cbrt(sx))
	return l, math.Hypot(a, b), math.Atan2(b, a) * 180 / math.Pi
}

// okLCHToLinear converts OKLCH to linear sRGB. The result is not clipped, so
// out-of-gamut colours have channels outside [0, 1].
func okLCHToLinear(l, c, h float64) (r, g, b float64) {
	sin, cos := math.Sincos(h * math.Pi / 180)
	lx, mx, sx := okLabToLMS.apply(l, c*cos, c*sin)
	return lmsToLinear.apply(lx*lx*lx, mx*mx*mx, sx*sx*sx)
}
