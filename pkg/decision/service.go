package decision

import (
	"errors"
	"fmt"
	"math"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tokentint/pkg/colour"
	"github.com/jmylchreest/tokentint/pkg/contrast"
)

// ErrNoValidCandidate is returned when no foreground can be evaluated at all,
// either because the background is degenerate or the candidate set is empty.
var ErrNoValidCandidate = errors.New("no valid candidate")

// ErrInvalidThreshold is returned for a minimum contrast ratio outside [1, 21].
var ErrInvalidThreshold = errors.New("invalid contrast threshold")

// ratioTieEpsilon is the WCAG ratio difference below which two candidates tie.
const ratioTieEpsilon = 0.01

// Decision is the outcome of choosing a foreground for a background.
type Decision struct {
	Foreground colour.Colour `json:"-" yaml:"-"`
	Background colour.Colour `json:"-" yaml:"-"`
	Candidate  string        `json:"candidate" yaml:"candidate"`
	Metadata   Metadata      `json:"metadata" yaml:"metadata"`

	// Degraded is set when no candidate reached the minimum ratio and the best
	// available one was returned instead.
	Degraded bool `json:"degraded" yaml:"degraded"`
}

// Service selects accessible text colours.
type Service struct {
	minRatio   float64
	candidates []Candidate
	gamut      colour.Gamut
	logger     hclog.Logger
	newID      func() string
}

// Option configures a Service.
type Option func(*Service)

// WithMinWCAGRatio sets the default minimum ratio used by Decide.
func WithMinWCAGRatio(ratio float64) Option {
	return func(s *Service) {
		s.minRatio = ratio
	}
}

// WithCandidates replaces the candidate set.
func WithCandidates(candidates ...Candidate) Option {
	return func(s *Service) {
		s.candidates = candidates
	}
}

// WithGamut sets the gamut used to bound tinted candidates.
func WithGamut(g colour.Gamut) Option {
	return func(s *Service) {
		if g != nil {
			s.gamut = g
		}
	}
}

// WithLogger sets the logger. Degraded decisions are logged at warn level.
func WithLogger(logger hclog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator overrides how decision ids are generated.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewService creates a Service with the default candidates and a 4.5:1 minimum.
func NewService(opts ...Option) *Service {
	s := &Service{
		minRatio:   contrast.AANormal,
		candidates: DefaultCandidates(),
		gamut:      colour.SRGB,
		logger:     hclog.NewNullLogger(),
		newID:      NewDecisionID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MinWCAGRatio returns the default minimum ratio.
func (s *Service) MinWCAGRatio() float64 {
	return s.minRatio
}

// Evaluate measures fg against bg.
func (s *Service) Evaluate(fg, bg colour.Colour) Accessibility {
	ratio := contrast.WCAGRatio(fg, bg)
	return Accessibility{
		WCAGRatio:    ratio,
		APCAContrast: contrast.APCA(fg, bg),
		PassesAA:     ratio >= contrast.AANormal,
		PassesAAA:    ratio >= contrast.AAANormal,
	}
}

// ValidateMinRatio checks that ratio is a reachable WCAG contrast ratio.
func ValidateMinRatio(ratio float64) error {
	if math.IsNaN(ratio) || ratio < 1 || ratio > contrast.MaxRatio {
		return fmt.Errorf("%w: minimum contrast ratio %v outside [1, 21]", ErrInvalidThreshold, ratio)
	}
	return nil
}

// Decide selects a foreground for bg using the service's minimum ratio.
func (s *Service) Decide(bg colour.Colour) (*Decision, error) {
	return s.DecideAt(bg, s.minRatio)
}

type evaluation struct {
	name    string
	fg      colour.Colour
	access  Accessibility
	lighter bool
}

// better reports whether a should be preferred over b: higher WCAG ratio wins,
// near-equal ratios fall back to the larger APCA magnitude.
func better(a, b evaluation) bool {
	if math.Abs(a.access.WCAGRatio-b.access.WCAGRatio) <= ratioTieEpsilon {
		return math.Abs(a.access.APCAContrast) > math.Abs(b.access.APCAContrast)
	}
	return a.access.WCAGRatio > b.access.WCAGRatio
}

// DecideAt selects a foreground for bg that reaches minRatio.
//
// Design Theory (WCAG Accessibility Standards):
// - Foreground is used for TEXT on the background.
// - The candidate with the HIGHEST contrast that meets minRatio wins.
// - If nothing meets minRatio the best candidate is still returned, but the
//   decision is marked degraded with confidence below 0.5 and a reason that
//   states the constraint was not met.
func (s *Service) DecideAt(bg colour.Colour, minRatio float64) (*Decision, error) {
	if !bg.Valid() {
		return nil, fmt.Errorf("%w: background %v has non-finite channels", ErrNoValidCandidate, bg)
	}
	if err := ValidateMinRatio(minRatio); err != nil {
		return nil, err
	}

	bgLum := contrast.Luminance(bg)
	evaluated := make([]evaluation, 0, len(s.candidates))
	for _, cand := range s.candidates {
		if cand.Colour == nil {
			continue
		}
		fg := cand.Colour(bg, s.gamut)
		if !fg.Valid() {
			continue
		}
		evaluated = append(evaluated, evaluation{
			name:    cand.Name,
			fg:      fg,
			access:  s.Evaluate(fg, bg),
			lighter: contrast.Luminance(fg) > bgLum,
		})
	}
	if len(evaluated) == 0 {
		return nil, fmt.Errorf("%w: no candidates to evaluate against %s", ErrNoValidCandidate, bg.Hex())
	}

	// Find the best candidate that meets the minimum.
	best := -1
	for i, e := range evaluated {
		if e.access.WCAGRatio < minRatio {
			continue
		}
		if best < 0 || better(e, evaluated[best]) {
			best = i
		}
	}

	degraded := best < 0
	if degraded {
		// Fallback: best available, explicitly marked.
		best = 0
		for i, e := range evaluated {
			if better(e, evaluated[best]) {
				best = i
			}
		}
	}
	winner := evaluated[best]

	opposite := 1.0
	for _, e := range evaluated {
		if e.lighter != winner.lighter && e.access.WCAGRatio > opposite {
			opposite = e.access.WCAGRatio
		}
	}

	ratio := winner.access.WCAGRatio
	access := winner.access
	meta := Metadata{
		QualityScore:     qualityScore(ratio, minRatio),
		Confidence:       confidence(ratio, opposite, minRatio, degraded),
		Reason:           reason(winner, bg, minRatio, degraded),
		SourceDecisionID: s.newID(),
		Accessibility:    &access,
	}

	if degraded {
		s.logger.Warn("text colour constraint unmet",
			"background", bg.Hex(),
			"candidate", winner.name,
			"ratio", fmt.Sprintf("%.2f", ratio),
			"min_ratio", minRatio,
			"confidence", fmt.Sprintf("%.2f", meta.Confidence),
			"reason", meta.Reason,
			"decision_id", meta.SourceDecisionID)
	} else {
		s.logger.Trace("text colour decided",
			"background", bg.Hex(),
			"candidate", winner.name,
			"ratio", fmt.Sprintf("%.2f", ratio),
			"decision_id", meta.SourceDecisionID)
	}

	return &Decision{
		Foreground: winner.fg,
		Background: bg,
		Candidate:  winner.name,
		Metadata:   meta,
		Degraded:   degraded,
	}, nil
}

// qualityScore maps the achieved ratio onto [0, 1]. Passing ratios land in
// [0.5, 1], reaching 1 at the AAA band; failing ratios stay below 0.5.
func qualityScore(ratio, minRatio float64) float64 {
	if ratio < minRatio {
		if minRatio <= 1 {
			return 0
		}
		return 0.5 * clamp01((ratio-1)/(minRatio-1))
	}
	if minRatio >= contrast.AAANormal {
		return 1
	}
	return 0.5 + 0.5*clamp01((ratio-minRatio)/(contrast.AAANormal-minRatio))
}

// confidence reflects how clearly the winner beat the best candidate of the
// opposite polarity. Degraded decisions never reach 0.5.
func confidence(ratio, opposite, minRatio float64, degraded bool) float64 {
	if degraded {
		return min(0.45, 0.4*ratio/minRatio)
	}
	return 0.5 + 0.5*clamp01((ratio-opposite)/ratio)
}

func reason(e evaluation, bg colour.Colour, minRatio float64, degraded bool) string {
	ratio := e.access.WCAGRatio
	if degraded {
		return fmt.Sprintf("constraint unmet: no candidate reached the %.2f:1 minimum against %s; best available %s (%s) reaches only %.2f:1",
			minRatio, bg.Hex(), e.name, e.fg.Hex(), ratio)
	}

	level := "below WCAG AA for normal text"
	switch {
	case e.access.PassesAAA:
		level = "passing WCAG AAA for normal text"
	case e.access.PassesAA:
		level = "passing WCAG AA for normal text"
	}
	return fmt.Sprintf("%s (%s) reaches %.2f:1 against %s, %s (APCA Lc %.1f)",
		e.name, e.fg.Hex(), ratio, bg.Hex(), level, e.access.APCAContrast)
}

func clamp01(v float64) float64 {
	return max(0, min(v, 1))
}
