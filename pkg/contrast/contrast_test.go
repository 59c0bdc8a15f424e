package contrast

import (
	"math"
	"testing"

	"github.com/jmylchreest/tokentint/pkg/colour"
)

var (
	black = colour.MustHex("#000000")
	white = colour.MustHex("#ffffff")
)

func TestWCAGRatio(t *testing.T) {
	tests := []struct {
		name    string
		fg, bg  string
		wantMin float64
		wantMax float64
	}{
		{name: "black on white", fg: "#000000", bg: "#FFFFFF", wantMin: 20.5, wantMax: 21.0},
		{name: "white on black", fg: "#FFFFFF", bg: "#000000", wantMin: 20.5, wantMax: 21.0},
		{name: "known AA pair", fg: "#6188d8", bg: "#07070e", wantMin: 4.5, wantMax: 21},
		{name: "grey on white fails AA", fg: "#999999", bg: "#ffffff", wantMin: 1, wantMax: 4.5},
		{name: "red on white", fg: "#ff0000", bg: "#ffffff", wantMin: 3.9, wantMax: 4.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WCAGRatio(colour.MustHex(tt.fg), colour.MustHex(tt.bg))
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("WCAGRatio(%s, %s) = %.3f, want in [%v, %v]", tt.fg, tt.bg, got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestWCAGRatioIdentity(t *testing.T) {
	for _, hex := range []string{"#000000", "#ffffff", "#808080", "#3b82f6", "#10b981"} {
		c := colour.MustHex(hex)
		if got := WCAGRatio(c, c); math.Abs(got-1) > 1e-12 {
			t.Errorf("WCAGRatio(%s, %s) = %v, want 1", hex, hex, got)
		}
	}
}

func TestWCAGRatioSymmetricAndBounded(t *testing.T) {
	hexes := []string{"#000000", "#ffffff", "#ff0000", "#00ff00", "#0000ff", "#808080", "#3b82f6"}
	for _, a := range hexes {
		for _, b := range hexes {
			ca, cb := colour.MustHex(a), colour.MustHex(b)
			r1 := WCAGRatio(ca, cb)
			r2 := WCAGRatio(cb, ca)
			if math.Abs(r1-r2) > 1e-12 {
				t.Errorf("WCAGRatio not symmetric for %s/%s: %v vs %v", a, b, r1, r2)
			}
			if r1 < 1 || r1 > MaxRatio {
				t.Errorf("WCAGRatio(%s, %s) = %v out of [1, 21]", a, b, r1)
			}
		}
	}
}

func TestWCAGRatioTranslucentForeground(t *testing.T) {
	// A fully transparent foreground disappears into the background.
	ghost := colour.WithAlpha(black, 0)
	if got := WCAGRatio(ghost, white); math.Abs(got-1) > 1e-12 {
		t.Errorf("transparent black on white = %v, want 1", got)
	}

	half := WCAGRatio(colour.WithAlpha(black, 0.5), white)
	if half <= 1 || half >= WCAGRatio(black, white) {
		t.Errorf("half-transparent black on white = %v, want between 1 and 21", half)
	}
}

func TestPassesWCAG(t *testing.T) {
	mid := colour.MustHex("#767676") // ~4.54:1 on white

	tests := []struct {
		name      string
		fg        colour.Colour
		largeText bool
		wantAA    bool
		wantAAA   bool
	}{
		{name: "black normal", fg: black, wantAA: true, wantAAA: true},
		{name: "mid grey normal", fg: mid, wantAA: true, wantAAA: false},
		{name: "mid grey large", fg: mid, largeText: true, wantAA: true, wantAAA: true},
		{name: "white normal", fg: white, wantAA: false, wantAAA: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PassesWCAGAA(tt.fg, white, tt.largeText); got != tt.wantAA {
				t.Errorf("PassesWCAGAA() = %v, want %v", got, tt.wantAA)
			}
			if got := PassesWCAGAAA(tt.fg, white, tt.largeText); got != tt.wantAAA {
				t.Errorf("PassesWCAGAAA() = %v, want %v", got, tt.wantAAA)
			}
		})
	}
}

func TestAPCA(t *testing.T) {
	tests := []struct {
		name   string
		fg, bg colour.Colour
		want   float64
	}{
		{name: "black on white", fg: black, bg: white, want: 106.04},
		{name: "white on black", fg: white, bg: black, want: -107.89},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := APCA(tt.fg, tt.bg)
			// APCA revisions move these by a few percent.
			if math.Abs(got-tt.want) > math.Abs(tt.want)*0.05 {
				t.Errorf("APCA() = %.2f, want %.2f (±5%%)", got, tt.want)
			}
		})
	}
}

func TestAPCAPolarityAndZero(t *testing.T) {
	grey := colour.MustHex("#808080")
	if got := APCA(grey, grey); got != 0 {
		t.Errorf("APCA(grey, grey) = %v, want 0", got)
	}

	blue := colour.MustHex("#3b82f6")
	if got := APCA(black, blue); got <= 0 {
		t.Errorf("APCA(black on blue) = %v, want positive", got)
	}
	if got := APCA(white, blue); got >= 0 {
		t.Errorf("APCA(white on blue) = %v, want negative", got)
	}

	// Near-identical colours fall under the low clip.
	if got := APCA(colour.MustHex("#777777"), colour.MustHex("#787878")); got != 0 {
		t.Errorf("APCA of near-identical greys = %v, want 0", got)
	}
}

func TestAPCAMagnitudeForBodyText(t *testing.T) {
	if got := math.Abs(APCA(black, white)); got < LcContentText {
		t.Errorf("|APCA(black, white)| = %v, want > %v", got, LcContentText)
	}
	if got := math.Abs(APCA(white, black)); got < LcBodyText {
		t.Errorf("|APCA(white, black)| = %v, want > %v", got, LcBodyText)
	}
}
