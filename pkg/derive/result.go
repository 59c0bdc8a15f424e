package derive

import (
	"errors"

	"github.com/jmylchreest/tokentint/pkg/colour"
	"github.com/jmylchreest/tokentint/pkg/decision"
)

// ErrStateFailed wraps the error recorded for a single state.
var ErrStateFailed = errors.New("state derivation failed")

// StateToken is the outcome for one state.
// Either Token is set or Err is; a failed state is reported, never dropped.
type StateToken struct {
	State State                   `json:"state" yaml:"state"`
	Token *decision.EnrichedToken `json:"token,omitempty" yaml:"token,omitempty"`

	// Outline is the focus ring colour, set for outline transforms.
	Outline *decision.EnrichedToken `json:"outline,omitempty" yaml:"outline,omitempty"`

	// Text is the foreground decision, set when accessibility was checked.
	Text *decision.EnrichedToken `json:"text,omitempty" yaml:"text,omitempty"`

	// IsDerivedDecision is false for the base token and for degraded results.
	IsDerivedDecision bool `json:"isDerivedDecision" yaml:"isDerivedDecision"`

	// Clamped is set when part of the requested change was lost to range or gamut limits.
	Clamped bool `json:"clamped" yaml:"clamped"`

	Err error `json:"-" yaml:"-"`
}

// OK reports whether the state was derived.
func (st StateToken) OK() bool {
	return st.Err == nil && st.Token != nil
}

// Result is the ordered output of a derivation: the base token first when
// requested, then one entry per state in canonical order.
type Result struct {
	Base   colour.Colour `json:"-" yaml:"-"`
	Tokens []StateToken  `json:"tokens" yaml:"tokens"`
}

// Len returns the number of entries, failed ones included.
func (r *Result) Len() int {
	return len(r.Tokens)
}

// Get returns the entry for s.
func (r *Result) Get(s State) (StateToken, bool) {
	for _, st := range r.Tokens {
		if st.State == s {
			return st, true
		}
	}
	return StateToken{}, false
}

// Errors joins the per-state errors, or returns nil when every state succeeded.
func (r *Result) Errors() error {
	var errs []error
	for _, st := range r.Tokens {
		if st.Err != nil {
			errs = append(errs, st.Err)
		}
	}
	return errors.Join(errs...)
}

// All returns an iterator over the entries.
func (r *Result) All() func(func(int, StateToken) bool) {
	return func(yield func(int, StateToken) bool) {
		for i, st := range r.Tokens {
			if !yield(i, st) {
				return
			}
		}
	}
}
