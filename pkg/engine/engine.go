// Package engine ties the colour, contrast, decision and derivation packages
// to an initialised gamut backend and a shared derivation cache.
//
// An Engine must be initialised before use:
//
//	eng := engine.Default()
//	if err := eng.Init(ctx); err != nil {
//		return err
//	}
//	res, err := eng.Derive(colour.MustHex("#3b82f6"), derive.DefaultOptions())
//
// Every operation fails with ErrNotReady until Init has succeeded.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tokentint/internal/cache"
	"github.com/jmylchreest/tokentint/internal/gamut"
	"github.com/jmylchreest/tokentint/pkg/colour"
	"github.com/jmylchreest/tokentint/pkg/contrast"
	"github.com/jmylchreest/tokentint/pkg/decision"
	"github.com/jmylchreest/tokentint/pkg/derive"
)

var (
	// ErrInit wraps every initialisation failure.
	ErrInit = errors.New("engine initialisation failed")

	// ErrFatal marks a backend failure that retrying cannot fix. A backend
	// returns an error wrapping ErrFatal to make Init fail permanently.
	ErrFatal = errors.New("fatal backend error")

	// ErrNotReady is returned by operations called before Init has succeeded.
	ErrNotReady = errors.New("engine not ready")
)

// State is the lifecycle state of an Engine.
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Backend supplies the gamut that bounds every colour operation.
type Backend interface {
	Load(ctx context.Context) (colour.Gamut, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context) (colour.Gamut, error)

// Load calls f.
func (f BackendFunc) Load(ctx context.Context) (colour.Gamut, error) {
	return f(ctx)
}

// ExactBackend bounds colours with the exact sRGB gamut and needs no loading.
var ExactBackend Backend = BackendFunc(func(context.Context) (colour.Gamut, error) {
	return colour.SRGB, nil
})

// CacheStats is a snapshot of derivation cache activity.
type CacheStats = cache.Stats

// Engine is an initialisable handle over the colour services.
type Engine struct {
	backend    Backend
	logger     hclog.Logger
	transforms derive.TransformTable
	minRatio   float64
	candidates []decision.Candidate

	mu       sync.Mutex
	state    State
	err      error
	inflight chan struct{}

	// Set once on the transition to ready and read-only afterwards.
	transformer colour.Transformer
	decisions   *decision.Service
	pipeline    *derive.Pipeline
	cache       *cache.Cache[*derive.Result]
}

// Option configures an Engine.
type Option func(*Engine)

// WithBackend sets the gamut backend.
func WithBackend(b Backend) Option {
	return func(e *Engine) {
		if b != nil {
			e.backend = b
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTransforms replaces the state transform table.
func WithTransforms(tt derive.TransformTable) Option {
	return func(e *Engine) {
		e.transforms = tt.Clone()
	}
}

// WithMinWCAGRatio sets the threshold used by DecideText.
func WithMinWCAGRatio(ratio float64) Option {
	return func(e *Engine) {
		e.minRatio = ratio
	}
}

// WithCandidates replaces the text colour candidates.
func WithCandidates(candidates ...decision.Candidate) Option {
	return func(e *Engine) {
		e.candidates = candidates
	}
}

// New creates an uninitialised Engine. The default backend is the precomputed
// gamut table.
func New(opts ...Option) *Engine {
	e := &Engine{
		backend:    gamut.NewBackend(gamut.DefaultOptions()),
		logger:     hclog.NewNullLogger(),
		transforms: derive.DefaultTransforms(),
		minRatio:   contrast.AANormal,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the process-wide Engine. It still needs Init.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}

// Init loads the backend. It is safe to call repeatedly and concurrently:
// after a success it returns nil immediately, and callers arriving while a
// load is in flight wait for that load. A failed load is retried by the next
// call unless the failure wraps ErrFatal.
//
// If ctx ends while waiting, Init returns the context error and the engine is
// left as it was.
func (e *Engine) Init(ctx context.Context) error {
	e.mu.Lock()
	for e.state == StateInitializing {
		ch := e.inflight
		e.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrInit, ctx.Err())
		}
		e.mu.Lock()
		if e.state == StateReady {
			e.mu.Unlock()
			return nil
		}
		if e.state == StateFailed {
			err := e.err
			e.mu.Unlock()
			return err
		}
	}

	switch e.state {
	case StateReady:
		e.mu.Unlock()
		return nil
	case StateFailed:
		if errors.Is(e.err, ErrFatal) {
			err := e.err
			e.mu.Unlock()
			return err
		}
		e.logger.Info("retrying engine initialisation", "previous_error", e.err)
	}

	e.state = StateInitializing
	done := make(chan struct{})
	e.inflight = done
	e.mu.Unlock()

	e.logger.Debug("initialising engine")
	err := e.safeLoad(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	defer close(done)

	if err != nil {
		e.state = StateFailed
		e.err = fmt.Errorf("%w: %w", ErrInit, err)
		e.logger.Error("engine initialisation failed", "error", err, "fatal", errors.Is(err, ErrFatal))
		return e.err
	}
	e.state = StateReady
	e.err = nil
	e.logger.Info("engine ready")
	return nil
}

// safeLoad runs load and reports a panic in the backend as an error, so the
// in-flight channel is always closed and waiters are released.
func (e *Engine) safeLoad(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backend panicked: %v", r)
		}
	}()
	return e.load(ctx)
}

// load builds the services. It does not touch lifecycle fields.
func (e *Engine) load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g, err := e.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load gamut backend: %w", err)
	}
	if g == nil {
		return fmt.Errorf("%w: backend returned no gamut", ErrFatal)
	}

	svcOpts := []decision.Option{
		decision.WithGamut(g),
		decision.WithLogger(e.logger.Named("decision")),
		decision.WithMinWCAGRatio(e.minRatio),
	}
	if e.candidates != nil {
		svcOpts = append(svcOpts, decision.WithCandidates(e.candidates...))
	}
	svc := decision.NewService(svcOpts...)

	pipeline, err := derive.New(
		derive.WithTransforms(e.transforms),
		derive.WithGamut(g),
		derive.WithDecisionService(svc),
		derive.WithLogger(e.logger.Named("derive")),
	)
	if err != nil {
		// Configuration errors do not go away on retry.
		return fmt.Errorf("%w: %w", ErrFatal, err)
	}

	e.transformer = colour.NewTransformer(g)
	e.decisions = svc
	e.pipeline = pipeline
	e.cache = cache.New[*derive.Result](e.logger.Named("cache"))
	return nil
}

// IsReady reports whether Init has succeeded.
func (e *Engine) IsReady() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == StateReady
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Err returns the last initialisation error, or nil.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// AssertReady returns nil when the engine is ready and an error wrapping
// ErrNotReady otherwise. After a failed Init the error also wraps the cause.
func (e *Engine) AssertReady() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case StateReady:
		return nil
	case StateFailed:
		return fmt.Errorf("%w: %w", ErrNotReady, e.err)
	default:
		return fmt.Errorf("%w: state is %s", ErrNotReady, e.state)
	}
}
