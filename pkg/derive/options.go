package derive

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/tokentint/pkg/contrast"
	"github.com/jmylchreest/tokentint/pkg/decision"
)

// ErrInvalidOptions is returned when a derivation request is malformed.
var ErrInvalidOptions = errors.New("invalid derivation options")

// Options configures a single derivation.
type Options struct {
	// States to derive. Order does not matter.
	States StateSet

	// MinWCAGRatio is the minimum contrast for focus outlines and text checks.
	MinWCAGRatio float64

	// IncludeBase adds a token for the undecorated base colour.
	IncludeBase bool

	// CheckAccessibility attaches a text colour decision to every state.
	CheckAccessibility bool

	// Prefix is prepended to token names: "<prefix>-<state>".
	Prefix string
}

// DefaultStates are the states derived when a request does not name any.
func DefaultStates() StateSet {
	return NewStateSet(StateIdle, StateHover, StateActive, StateFocus, StateDisabled)
}

// DefaultOptions returns the default derivation options.
func DefaultOptions() Options {
	return Options{
		States:       DefaultStates(),
		MinWCAGRatio: contrast.AANormal, // WCAG AA standard
		Prefix:       "color",
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.States.Len() == 0 && !o.IncludeBase {
		return fmt.Errorf("%w: no states requested", ErrInvalidOptions)
	}
	if err := decision.ValidateMinRatio(o.MinWCAGRatio); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return nil
}

func (o Options) tokenName(suffix string) string {
	if o.Prefix == "" {
		return suffix
	}
	return o.Prefix + "-" + suffix
}
