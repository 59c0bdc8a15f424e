// Package derive produces interaction-state colour tokens from a single base colour.
package derive

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownState is returned when a request names a state that is not supported.
var ErrUnknownState = errors.New("unknown state")

// State is an interaction state of a UI element.
type State uint8

const (
	StateIdle State = iota
	StateHover
	StateActive
	StateFocus
	StateDisabled
	StateSelected

	numStates

	// StateBase marks the token for the undecorated base colour. It cannot be
	// requested; it is emitted when Options.IncludeBase is set.
	StateBase State = 0xff
)

var stateNames = [numStates]string{
	StateIdle:     "idle",
	StateHover:    "hover",
	StateActive:   "active",
	StateFocus:    "focus",
	StateDisabled: "disabled",
	StateSelected: "selected",
}

// AllStates returns every requestable state in canonical order.
func AllStates() []State {
	states := make([]State, 0, numStates)
	for s := range numStates {
		states = append(states, s)
	}
	return states
}

// String returns the state's name.
func (s State) String() string {
	if s == StateBase {
		return "base"
	}
	if s < numStates {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseState parses a state name. Matching ignores case and surrounding space.
func ParseState(name string) (State, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, known := range stateNames {
		if n == known {
			return State(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownState, name, strings.Join(stateNames[:], ", "))
}

// StateSet is an unordered set of states. Iteration is always in canonical order,
// so two sets with the same members are indistinguishable.
type StateSet uint32

// NewStateSet builds a set from the given states. Unknown values are ignored.
func NewStateSet(states ...State) StateSet {
	var set StateSet
	for _, s := range states {
		set = set.With(s)
	}
	return set
}

// ParseStates builds a set from state names. Any unknown name fails the whole request.
func ParseStates(names []string) (StateSet, error) {
	var set StateSet
	for _, name := range names {
		s, err := ParseState(name)
		if err != nil {
			return 0, err
		}
		set = set.With(s)
	}
	return set, nil
}

// With returns the set with s added.
func (set StateSet) With(s State) StateSet {
	if s >= numStates {
		return set
	}
	return set | 1<<s
}

// Has reports whether s is in the set.
func (set StateSet) Has(s State) bool {
	return s < numStates && set&(1<<s) != 0
}

// Len returns the number of states in the set.
func (set StateSet) Len() int {
	n := 0
	for s := range numStates {
		if set.Has(s) {
			n++
		}
	}
	return n
}

// States returns the members in canonical order.
func (set StateSet) States() []State {
	states := make([]State, 0, set.Len())
	for s := range numStates {
		if set.Has(s) {
			states = append(states, s)
		}
	}
	return states
}

// String returns the comma-separated member names in canonical order.
func (set StateSet) String() string {
	names := make([]string, 0, set.Len())
	for _, s := range set.States() {
		names = append(names, s.String())
	}
	return strings.Join(names, ",")
}
