package derive

import (
	"errors"
	"math"
	"testing"

	"github.com/jmylchreest/tokentint/pkg/colour"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		input   string
		want    State
		wantErr bool
	}{
		{input: "idle", want: StateIdle},
		{input: "HOVER", want: StateHover},
		{input: " active ", want: StateActive},
		{input: "Focus", want: StateFocus},
		{input: "disabled", want: StateDisabled},
		{input: "selected", want: StateSelected},
		{input: "pressed", wantErr: true},
		{input: "base", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseState(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownState) {
					t.Errorf("ParseState(%q) error = %v, want ErrUnknownState", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseState(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseState(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStatesRejectsWholeRequest(t *testing.T) {
	_, err := ParseStates([]string{"idle", "hover", "wobble"})
	if !errors.Is(err, ErrUnknownState) {
		t.Errorf("ParseStates() error = %v, want ErrUnknownState", err)
	}
}

func TestStateSetCanonicalOrder(t *testing.T) {
	a, err := ParseStates([]string{"disabled", "idle", "hover"})
	if err != nil {
		t.Fatalf("ParseStates() unexpected error: %v", err)
	}
	b := NewStateSet(StateHover, StateDisabled, StateIdle, StateHover)

	if a != b {
		t.Errorf("sets differ: %s vs %s", a, b)
	}
	if got := a.String(); got != "idle,hover,disabled" {
		t.Errorf("String() = %q, want %q", got, "idle,hover,disabled")
	}
	if a.Len() != 3 {
		t.Errorf("Len() = %d, want 3", a.Len())
	}
	if a.Has(StateFocus) {
		t.Error("Has(focus) = true")
	}
	if NewStateSet(StateBase).Len() != 0 {
		t.Error("StateBase was added to a set")
	}
}

func TestStateString(t *testing.T) {
	if got := StateBase.String(); got != "base" {
		t.Errorf("StateBase.String() = %q", got)
	}
	if got := State(42).String(); got != "state(42)" {
		t.Errorf("State(42).String() = %q", got)
	}
	text, err := StateFocus.MarshalText()
	if err != nil || string(text) != "focus" {
		t.Errorf("MarshalText() = %q, %v", text, err)
	}
}

func TestTransformTableValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(TransformTable)
		valid  bool
	}{
		{name: "default", mutate: func(TransformTable) {}, valid: true},
		{name: "missing state", mutate: func(tt TransformTable) { delete(tt, StateIdle) }},
		{name: "negative amount", mutate: func(tt TransformTable) { tt[StateHover] = TransformSpec{Kind: KindLighten, Amount: -0.1} }},
		{name: "NaN amount", mutate: func(tt TransformTable) { tt[StateHover] = TransformSpec{Kind: KindLighten, Amount: math.NaN()} }},
		{name: "desaturate above one", mutate: func(tt TransformTable) { tt[StateDisabled] = TransformSpec{Kind: KindDesaturate, Amount: 1.5} }},
		{name: "unknown kind", mutate: func(tt TransformTable) { tt[StateFocus] = TransformSpec{Kind: "invert"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := DefaultTransforms()
			tt.mutate(table)
			err := table.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("Validate() returned nil error")
			}
		})
	}
}

func TestApplyTransformClampFraction(t *testing.T) {
	tr := colour.NewTransformer(colour.SRGB)

	tests := []struct {
		name    string
		base    string
		spec    TransformSpec
		wantMin float64
		wantMax float64
	}{
		{name: "identity", base: "#3b82f6", spec: TransformSpec{Kind: KindIdentity}, wantMax: 0},
		{name: "lighten grey", base: "#808080", spec: TransformSpec{Kind: KindLighten, Amount: 0.06}, wantMax: 0.001},
		{name: "lighten white", base: "#ffffff", spec: TransformSpec{Kind: KindLighten, Amount: 0.06}, wantMin: 0.99, wantMax: 1},
		{name: "darken black", base: "#000000", spec: TransformSpec{Kind: KindDarken, Amount: 0.08}, wantMin: 0.99, wantMax: 1},
		{name: "desaturate", base: "#3b82f6", spec: TransformSpec{Kind: KindDesaturate, Amount: 0.5}, wantMax: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := applyTransform(tr, colour.MustHex(tt.base), tt.spec)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("clamp fraction = %.4f, want [%v, %v]", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}
