package derive

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tokentint/pkg/colour"
	"github.com/jmylchreest/tokentint/pkg/decision"
)

// Scoring weights for state tokens.
const (
	clampQualityPenalty    = 0.5
	failedCheckPenalty     = 0.4
	baseConfidence         = 0.95
	clampConfidencePenalty = 0.35
)

// Pipeline derives state tokens from a base colour.
type Pipeline struct {
	transforms  TransformTable
	transformer colour.Transformer
	decisions   *decision.Service
	logger      hclog.Logger
	newID       func() string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTransforms replaces the state table. The table must map every state.
func WithTransforms(tt TransformTable) Option {
	return func(p *Pipeline) {
		p.transforms = tt.Clone()
	}
}

// WithGamut bounds chroma with g instead of the exact sRGB gamut.
func WithGamut(g colour.Gamut) Option {
	return func(p *Pipeline) {
		p.transformer = colour.NewTransformer(g)
	}
}

// WithDecisionService sets the service used for outline and text decisions.
func WithDecisionService(svc *decision.Service) Option {
	return func(p *Pipeline) {
		if svc != nil {
			p.decisions = svc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Pipeline. It fails only if the transform table is incomplete.
func New(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		transforms:  DefaultTransforms(),
		transformer: colour.NewTransformer(colour.SRGB),
		logger:      hclog.NewNullLogger(),
		newID:       decision.NewDecisionID,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.decisions == nil {
		p.decisions = decision.NewService(decision.WithLogger(p.logger))
	}
	if err := p.transforms.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transform table: %w", err)
	}
	return p, nil
}

// Transforms returns a copy of the state table.
func (p *Pipeline) Transforms() TransformTable {
	return p.transforms.Clone()
}

// Derive produces one entry per requested state, plus the base when requested.
//
// The returned error covers request validation only. A state that cannot be
// derived is still present in the result with its Err set; the other states
// are unaffected.
func (p *Pipeline) Derive(base colour.Colour, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	states := opts.States.States()
	result := &Result{
		Base:   base,
		Tokens: make([]StateToken, 0, len(states)+1),
	}

	if opts.IncludeBase {
		result.Tokens = append(result.Tokens, p.baseToken(base, opts))
	}
	for _, s := range states {
		result.Tokens = append(result.Tokens, p.deriveState(base, s, opts))
	}

	if err := result.Errors(); err != nil {
		p.logger.Warn("derivation completed with failed states",
			"base", base.Hex(), "states", opts.States.String(), "error", err)
	} else {
		p.logger.Debug("derived states", "base", base.Hex(), "states", opts.States.String())
	}
	return result, nil
}

func (p *Pipeline) baseToken(base colour.Colour, opts Options) StateToken {
	st := StateToken{State: StateBase}
	if !base.Valid() {
		st.Err = fmt.Errorf("%w: base: colour has non-finite channels", ErrStateFailed)
		return st
	}
	st.Token = decision.NewEnrichedToken(opts.tokenName("base"), decision.CategoryBackground, base, decision.Metadata{
		QualityScore:     1,
		Confidence:       1,
		Reason:           fmt.Sprintf("base colour %s as supplied", base.Hex()),
		SourceDecisionID: p.newID(),
	})
	return st
}

// deriveState computes a single state. It reads only base and never observes
// other states.
func (p *Pipeline) deriveState(base colour.Colour, s State, opts Options) StateToken {
	st := StateToken{State: s}
	if !base.Valid() {
		st.Err = fmt.Errorf("%w: %s: base colour has non-finite channels", ErrStateFailed, s)
		return st
	}
	spec, ok := p.transforms[s]
	if !ok {
		st.Err = fmt.Errorf("%w: %s: no transform registered", ErrStateFailed, s)
		return st
	}

	out, clampFrac := applyTransform(p.transformer, base, spec)
	st.Clamped = clampFrac > 0.001

	quality := 1 - clampQualityPenalty*clampFrac
	confidence := baseConfidence - clampConfidencePenalty*clampFrac
	degraded := false
	var access *decision.Accessibility
	var notes []string

	if spec.Kind == KindOutline {
		// Focus ring against the idle background.
		d, err := p.decisions.DecideAt(base, opts.MinWCAGRatio)
		if err != nil {
			st.Err = fmt.Errorf("%w: %s: outline: %w", ErrStateFailed, s, err)
			return st
		}
		st.Outline = decision.NewEnrichedToken(opts.tokenName(s.String()+"-outline"), decision.CategoryOutline, d.Foreground, d.Metadata)
		confidence = min(confidence, d.Metadata.Confidence)
		if d.Degraded {
			degraded = true
			quality -= failedCheckPenalty
			notes = append(notes, "outline "+d.Metadata.Reason)
		} else {
			notes = append(notes, fmt.Sprintf("outline %s at %.2f:1", d.Foreground.Hex(), d.Metadata.Accessibility.WCAGRatio))
		}
	}

	if opts.CheckAccessibility {
		d, err := p.decisions.DecideAt(out, opts.MinWCAGRatio)
		if err != nil {
			st.Err = fmt.Errorf("%w: %s: text: %w", ErrStateFailed, s, err)
			return st
		}
		st.Text = decision.NewEnrichedToken(opts.tokenName(s.String()+"-text"), decision.CategoryForeground, d.Foreground, d.Metadata)
		access = d.Metadata.Accessibility
		confidence = min(confidence, d.Metadata.Confidence)
		if d.Degraded {
			degraded = true
			quality -= failedCheckPenalty
			notes = append(notes, "text "+d.Metadata.Reason)
		} else {
			notes = append(notes, fmt.Sprintf("text %s at %.2f:1", d.Foreground.Hex(), d.Metadata.Accessibility.WCAGRatio))
		}
	}

	reason := fmt.Sprintf("%s: %s %s, hue held at %.1f°", s, base.Hex(), describeTransform(spec), out.Hue())
	if st.Clamped {
		reason += fmt.Sprintf("; %.0f%% of the change lost at the range or gamut limit", clampFrac*100)
	}
	if len(notes) > 0 {
		reason += "; " + strings.Join(notes, "; ")
	}

	st.Token = decision.NewEnrichedToken(opts.tokenName(s.String()), decision.CategoryBackground, out, decision.Metadata{
		QualityScore:     clampUnit(quality),
		Confidence:       max(0.01, clampUnit(confidence)),
		Reason:           reason,
		SourceDecisionID: p.newID(),
		Accessibility:    access,
	})
	st.IsDerivedDecision = !degraded
	return st
}
