package derive

import (
	"fmt"
	"math"

	"github.com/jmylchreest/tokentint/pkg/colour"
)

// TransformKind names the perceptual operation applied for a state.
type TransformKind string

const (
	KindIdentity   TransformKind = "identity"
	KindLighten    TransformKind = "lighten"
	KindDarken     TransformKind = "darken"
	KindSaturate   TransformKind = "saturate"
	KindDesaturate TransformKind = "desaturate" // Amount is a proportion of the base chroma
	KindOutline    TransformKind = "outline"    // identity plus a focus outline decision
)

// TransformSpec describes how one state is derived from the base colour.
type TransformSpec struct {
	Kind   TransformKind `json:"kind" yaml:"kind"`
	Amount float64       `json:"amount,omitempty" yaml:"amount,omitempty"`
}

// TransformTable maps every state to its transform. It is the single place
// where state semantics are defined.
type TransformTable map[State]TransformSpec

// Default transform amounts.
const (
	DefaultHoverDelta     = 0.06
	DefaultActiveDelta    = 0.08
	DefaultDisabledFactor = 0.5
	DefaultSelectedDelta  = 0.04
)

// DefaultTransforms returns the built-in state table.
func DefaultTransforms() TransformTable {
	return TransformTable{
		StateIdle:     {Kind: KindIdentity},
		StateHover:    {Kind: KindLighten, Amount: DefaultHoverDelta},
		StateActive:   {Kind: KindDarken, Amount: DefaultActiveDelta},
		StateFocus:    {Kind: KindOutline},
		StateDisabled: {Kind: KindDesaturate, Amount: DefaultDisabledFactor},
		StateSelected: {Kind: KindSaturate, Amount: DefaultSelectedDelta},
	}
}

// Clone returns a copy that can be modified without affecting the original.
func (tt TransformTable) Clone() TransformTable {
	out := make(TransformTable, len(tt))
	for k, v := range tt {
		out[k] = v
	}
	return out
}

// Validate checks that every state is mapped and that amounts are usable.
func (tt TransformTable) Validate() error {
	for _, s := range AllStates() {
		spec, ok := tt[s]
		if !ok {
			return fmt.Errorf("no transform for state %s", s)
		}
		if math.IsNaN(spec.Amount) || math.IsInf(spec.Amount, 0) || spec.Amount < 0 {
			return fmt.Errorf("transform for state %s has invalid amount %v", s, spec.Amount)
		}
		switch spec.Kind {
		case KindIdentity, KindOutline, KindLighten, KindDarken, KindSaturate:
		case KindDesaturate:
			if spec.Amount > 1 {
				return fmt.Errorf("desaturate proportion for state %s must be in [0, 1], got %v", s, spec.Amount)
			}
		default:
			return fmt.Errorf("transform for state %s has unknown kind %q", s, spec.Kind)
		}
	}
	return nil
}

// applyTransform runs spec against base and reports the fraction of the
// requested change lost to clamping, in [0, 1].
func applyTransform(tr colour.Transformer, base colour.Colour, spec TransformSpec) (colour.Colour, float64) {
	switch spec.Kind {
	case KindLighten, KindDarken:
		var out colour.Colour
		if spec.Kind == KindLighten {
			out = tr.Lighten(base, spec.Amount)
		} else {
			out = tr.Darken(base, spec.Amount)
		}
		loss := 0.0
		if spec.Amount > 0 {
			applied := math.Abs(out.Lightness() - base.Lightness())
			loss = (spec.Amount - applied) / spec.Amount
		}
		if base.Chroma() > 0 {
			loss = max(loss, (base.Chroma()-out.Chroma())/base.Chroma())
		}
		return out, clampUnit(loss)

	case KindSaturate:
		out := tr.Saturate(base, spec.Amount)
		if spec.Amount == 0 {
			return out, 0
		}
		applied := out.Chroma() - base.Chroma()
		return out, clampUnit((spec.Amount - applied) / spec.Amount)

	case KindDesaturate:
		return tr.Desaturate(base, base.Chroma()*spec.Amount), 0

	default:
		return base, 0
	}
}

func describeTransform(spec TransformSpec) string {
	switch spec.Kind {
	case KindLighten:
		return fmt.Sprintf("lightened by %.3f OKLCH lightness", spec.Amount)
	case KindDarken:
		return fmt.Sprintf("darkened by %.3f OKLCH lightness", spec.Amount)
	case KindSaturate:
		return fmt.Sprintf("saturated by %.3f OKLCH chroma", spec.Amount)
	case KindDesaturate:
		return fmt.Sprintf("chroma reduced by %.0f%%", spec.Amount*100)
	case KindOutline:
		return "kept unchanged with a focus outline"
	default:
		return "kept unchanged"
	}
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(0, min(v, 1))
}
