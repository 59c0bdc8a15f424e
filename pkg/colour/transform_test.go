package colour

import (
	"math"
	"testing"
)

var chromaticSamples = []string{"#3b82f6", "#10b981", "#ef4444", "#f59e0b", "#8b5cf6", "#6188d8"}

func TestLightnessTransformsPreserveHue(t *testing.T) {
	deltas := []float64{0.02, 0.05, 0.1, 0.2}

	for _, hex := range chromaticSamples {
		base := MustHex(hex)
		for _, dl := range deltas {
			lighter := Lighten(base, dl)
			darker := Darken(base, dl)

			if d := HueDistance(lighter.Hue(), base.Hue()); d > 1 {
				t.Errorf("Lighten(%s, %v) hue drift = %.3f", hex, dl, d)
			}
			if d := HueDistance(darker.Hue(), base.Hue()); d > 1 {
				t.Errorf("Darken(%s, %v) hue drift = %.3f", hex, dl, d)
			}
			if lighter.Lightness() <= base.Lightness() {
				t.Errorf("Lighten(%s, %v) lightness %v not above %v", hex, dl, lighter.Lightness(), base.Lightness())
			}
			if darker.Lightness() >= base.Lightness() {
				t.Errorf("Darken(%s, %v) lightness %v not below %v", hex, dl, darker.Lightness(), base.Lightness())
			}
			if !InGamut(lighter.Lightness(), lighter.Chroma(), lighter.Hue()) {
				t.Errorf("Lighten(%s, %v) left the gamut: %v", hex, dl, lighter)
			}
			if !InGamut(darker.Lightness(), darker.Chroma(), darker.Hue()) {
				t.Errorf("Darken(%s, %v) left the gamut: %v", hex, dl, darker)
			}
		}
	}
}

func TestLightnessClamping(t *testing.T) {
	nearWhite := MustHex("#fafafa")
	nearBlack := MustHex("#050505")
	blue := MustHex("#3b82f6")

	if got := Lighten(nearWhite, 0.5).Lightness(); got > 1.0 || got != 1.0 {
		t.Errorf("Lighten(nearWhite, 0.5).Lightness() = %v, want 1.0", got)
	}
	if got := Darken(nearBlack, 0.5).Lightness(); got < 0.0 || got != 0.0 {
		t.Errorf("Darken(nearBlack, 0.5).Lightness() = %v, want 0.0", got)
	}

	// At the top of the lightness axis no chroma survives, but the hue is kept.
	top := Lighten(blue, 1)
	if top.Lightness() != 1 {
		t.Errorf("Lighten(blue, 1).Lightness() = %v, want 1", top.Lightness())
	}
	if top.Chroma() > 0.001 {
		t.Errorf("Lighten(blue, 1).Chroma() = %v, want ~0", top.Chroma())
	}
	if top.Hue() != blue.Hue() {
		t.Errorf("Lighten(blue, 1).Hue() = %v, want %v", top.Hue(), blue.Hue())
	}
}

func TestChromaTransforms(t *testing.T) {
	for _, hex := range chromaticSamples {
		base := MustHex(hex)

		if got := Desaturate(base, 1.0).Chroma(); got < 0 || got != 0 {
			t.Errorf("Desaturate(%s, 1.0).Chroma() = %v, want 0", hex, got)
		}

		half := Desaturate(base, base.Chroma()*0.5)
		if math.Abs(half.Chroma()-base.Chroma()*0.5) > 1e-12 {
			t.Errorf("Desaturate(%s) by half = %v, want %v", hex, half.Chroma(), base.Chroma()*0.5)
		}
		if half.Lightness() != base.Lightness() || half.Hue() != base.Hue() {
			t.Errorf("Desaturate(%s) changed lightness or hue: %v -> %v", hex, base, half)
		}

		full := Saturate(base, 1.0)
		if full.Chroma() < base.Chroma() {
			t.Errorf("Saturate(%s, 1.0) reduced chroma: %v -> %v", hex, base.Chroma(), full.Chroma())
		}
		if !InGamut(full.Lightness(), full.Chroma(), full.Hue()) {
			t.Errorf("Saturate(%s, 1.0) left the gamut: %v", hex, full)
		}
		if full.Lightness() != base.Lightness() || full.Hue() != base.Hue() {
			t.Errorf("Saturate(%s) changed lightness or hue: %v -> %v", hex, base, full)
		}
	}
}

func TestWithAlpha(t *testing.T) {
	base := MustHex("#10b981")

	tests := []struct {
		name  string
		alpha float64
		want  float64
	}{
		{name: "below range", alpha: -0.5, want: 0},
		{name: "above range", alpha: 1.5, want: 1},
		{name: "in range", alpha: 0.25, want: 0.25},
		{name: "nan", alpha: math.NaN(), want: 0},
		{name: "positive infinity", alpha: math.Inf(1), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithAlpha(base, tt.alpha)
			if got.Alpha() != tt.want {
				t.Errorf("WithAlpha(%v).Alpha() = %v, want %v", tt.alpha, got.Alpha(), tt.want)
			}
			if got.Lightness() != base.Lightness() || got.Chroma() != base.Chroma() || got.Hue() != base.Hue() {
				t.Errorf("WithAlpha(%v) changed colour channels: %v -> %v", tt.alpha, base, got)
			}
		})
	}
}

func TestTransformsAreTotal(t *testing.T) {
	extremes := []Colour{
		{},
		MustHex("#000000"),
		MustHex("#ffffff"),
		WithAlpha(MustHex("#ff00ff"), 0),
	}
	deltas := []float64{math.NaN(), math.Inf(1), math.Inf(-1), -5, 0, 5}

	for _, c := range extremes {
		for _, d := range deltas {
			for _, got := range []Colour{Lighten(c, d), Darken(c, d), Saturate(c, d), Desaturate(c, d), WithAlpha(c, d)} {
				if !got.Valid() {
					t.Fatalf("transform of %v by %v produced %v", c, d, got)
				}
				if got.Lightness() < 0 || got.Lightness() > 1 || got.Chroma() < 0 || got.Alpha() < 0 || got.Alpha() > 1 {
					t.Errorf("transform of %v by %v out of range: %v", c, d, got)
				}
			}
		}
	}
}

func TestExactGamutBounds(t *testing.T) {
	if got := SRGB.MaxChroma(1, 264); got > 0.001 {
		t.Errorf("MaxChroma(1, 264) = %v, want ~0", got)
	}
	if got := SRGB.MaxChroma(0, 264); got > 0.001 {
		t.Errorf("MaxChroma(0, 264) = %v, want ~0", got)
	}

	blue := MustHex("#0000ff")
	got := SRGB.MaxChroma(blue.Lightness(), blue.Hue())
	if math.Abs(got-blue.Chroma()) > 0.005 {
		t.Errorf("MaxChroma at pure blue = %v, want ~%v", got, blue.Chroma())
	}
}

type capGamut float64

func (g capGamut) MaxChroma(_, _ float64) float64 { return float64(g) }

func TestTransformerUsesGamut(t *testing.T) {
	tr := NewTransformer(capGamut(0.05))
	base := MustHex("#3b82f6")

	if got := tr.Saturate(Desaturate(base, 1), 1).Chroma(); got != 0.05 {
		t.Errorf("Saturate with capped gamut = %v, want 0.05", got)
	}
	if got := tr.Lighten(base, 0.01).Chroma(); got != 0.05 {
		t.Errorf("Lighten with capped gamut chroma = %v, want 0.05", got)
	}
}
