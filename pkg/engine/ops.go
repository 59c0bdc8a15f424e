package engine

import (
	"github.com/jmylchreest/tokentint/internal/cache"
	"github.com/jmylchreest/tokentint/pkg/colour"
	"github.com/jmylchreest/tokentint/pkg/contrast"
	"github.com/jmylchreest/tokentint/pkg/decision"
	"github.com/jmylchreest/tokentint/pkg/derive"
)

// Lighten raises lightness by dl within the engine's gamut.
func (e *Engine) Lighten(c colour.Colour, dl float64) (colour.Colour, error) {
	if err := e.AssertReady(); err != nil {
		return colour.Colour{}, err
	}
	return e.transformer.Lighten(c, dl), nil
}

// Darken lowers lightness by dl within the engine's gamut.
func (e *Engine) Darken(c colour.Colour, dl float64) (colour.Colour, error) {
	if err := e.AssertReady(); err != nil {
		return colour.Colour{}, err
	}
	return e.transformer.Darken(c, dl), nil
}

// Saturate raises chroma by dc within the engine's gamut.
func (e *Engine) Saturate(c colour.Colour, dc float64) (colour.Colour, error) {
	if err := e.AssertReady(); err != nil {
		return colour.Colour{}, err
	}
	return e.transformer.Saturate(c, dc), nil
}

// Desaturate lowers chroma by dc.
func (e *Engine) Desaturate(c colour.Colour, dc float64) (colour.Colour, error) {
	if err := e.AssertReady(); err != nil {
		return colour.Colour{}, err
	}
	return e.transformer.Desaturate(c, dc), nil
}

// WithAlpha returns c with alpha set to a, clamped to [0, 1].
func (e *Engine) WithAlpha(c colour.Colour, a float64) (colour.Colour, error) {
	if err := e.AssertReady(); err != nil {
		return colour.Colour{}, err
	}
	return e.transformer.WithAlpha(c, a), nil
}

// WCAGRatio returns the WCAG 2.x contrast ratio of fg on bg.
func (e *Engine) WCAGRatio(fg, bg colour.Colour) (float64, error) {
	if err := e.AssertReady(); err != nil {
		return 0, err
	}
	return contrast.WCAGRatio(fg, bg), nil
}

// APCA returns the APCA lightness contrast of fg on bg.
func (e *Engine) APCA(fg, bg colour.Colour) (float64, error) {
	if err := e.AssertReady(); err != nil {
		return 0, err
	}
	return contrast.APCA(fg, bg), nil
}

// Evaluate returns the full accessibility record for fg on bg.
func (e *Engine) Evaluate(fg, bg colour.Colour) (decision.Accessibility, error) {
	if err := e.AssertReady(); err != nil {
		return decision.Accessibility{}, err
	}
	return e.decisions.Evaluate(fg, bg), nil
}

// DecideText chooses a text colour for bg at the engine's minimum ratio.
func (e *Engine) DecideText(bg colour.Colour) (*decision.Decision, error) {
	if err := e.AssertReady(); err != nil {
		return nil, err
	}
	return e.decisions.Decide(bg)
}

// DecideTextAt chooses a text colour for bg at minRatio.
func (e *Engine) DecideTextAt(bg colour.Colour, minRatio float64) (*decision.Decision, error) {
	if err := e.AssertReady(); err != nil {
		return nil, err
	}
	return e.decisions.DecideAt(bg, minRatio)
}

// Derive produces state tokens for base. Results are cached by input, so a
// repeated request returns the same *Result; callers must not modify it.
func (e *Engine) Derive(base colour.Colour, opts derive.Options) (*derive.Result, error) {
	if err := e.AssertReady(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	res, _, err := e.cache.GetOrCompute(cache.Key(base, opts), func() (*derive.Result, error) {
		return e.pipeline.Derive(base, opts)
	})
	return res, err
}

// DeriveHex parses hex and state names and derives the requested states.
// An unknown state name rejects the whole request.
func (e *Engine) DeriveHex(hex string, states []string, opts derive.Options) (*derive.Result, error) {
	base, err := colour.FromHex(hex)
	if err != nil {
		return nil, err
	}
	if len(states) > 0 {
		set, err := derive.ParseStates(states)
		if err != nil {
			return nil, err
		}
		opts.States = set
	}
	return e.Derive(base, opts)
}

// CacheSize returns the number of cached derivations.
func (e *Engine) CacheSize() (int, error) {
	if err := e.AssertReady(); err != nil {
		return 0, err
	}
	return e.cache.Size(), nil
}

// ClearCache drops every cached derivation.
func (e *Engine) ClearCache() error {
	if err := e.AssertReady(); err != nil {
		return err
	}
	e.cache.Clear()
	return nil
}

// CacheStats returns cache counters.
func (e *Engine) CacheStats() (CacheStats, error) {
	if err := e.AssertReady(); err != nil {
		return CacheStats{}, err
	}
	return e.cache.Stats(), nil
}
