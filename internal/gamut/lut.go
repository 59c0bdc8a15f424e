// Package gamut precomputes the sRGB chroma boundary as a lookup table.
package gamut

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/hashicorp/go-hclog"
	"github.com/kovidgoyal/go-parallel"

	"github.com/jmylchreest/tokentint/pkg/colour"
)

// ErrInvalidResolution is returned when a table would have too few cells.
var ErrInvalidResolution = errors.New("invalid lookup table resolution")

const (
	// DefaultLightnessSteps samples lightness every 0.01.
	DefaultLightnessSteps = 101
	// DefaultHueSteps samples hue every 2 degrees.
	DefaultHueSteps = 180

	// bracketWidth is the initial half-width of the search around the interpolated chroma.
	bracketWidth = 0.005
	// refineSteps halves the bracket down to roughly 1e-6.
	refineSteps = 13
	// chromaCeiling is above any sRGB chroma.
	chromaCeiling = 0.5
)

// Options controls table resolution.
type Options struct {
	LightnessSteps int
	HueSteps       int
	Logger         hclog.Logger
}

// DefaultOptions returns the default resolution.
func DefaultOptions() Options {
	return Options{
		LightnessSteps: DefaultLightnessSteps,
		HueSteps:       DefaultHueSteps,
	}
}

// LUT is a sampled sRGB gamut boundary. It satisfies colour.Gamut.
// Lookups interpolate between samples to seed a short bisection, so results
// track the exact boundary and are never out of gamut.
type LUT struct {
	lSteps int
	hSteps int
	// chroma[i*hSteps+j] is the maximum chroma at lightness i/(lSteps-1)
	// and hue j*360/hSteps.
	chroma []float64
}

// Build samples the gamut boundary. Rows are computed in parallel and the build
// stops early if ctx is cancelled.
func Build(ctx context.Context, opts Options) (*LUT, error) {
	if opts.LightnessSteps < 2 || opts.HueSteps < 1 {
		return nil, fmt.Errorf("%w: %d lightness x %d hue steps", ErrInvalidResolution, opts.LightnessSteps, opts.HueSteps)
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	t := &LUT{
		lSteps: opts.LightnessSteps,
		hSteps: opts.HueSteps,
		chroma: make([]float64, opts.LightnessSteps*opts.HueSteps),
	}

	f := func(start, limit int) {
		for i := start; i < limit; i++ {
			if ctx.Err() != nil {
				return
			}
			l := float64(i) / float64(t.lSteps-1)
			row := t.chroma[i*t.hSteps : (i+1)*t.hSteps]
			for j := range row {
				row[j] = colour.SRGB.MaxChroma(l, t.hueAt(j))
			}
		}
	}
	if err := parallel.Run_in_parallel_over_range(0, f, 0, t.lSteps); err != nil {
		return nil, fmt.Errorf("failed to build gamut table: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("gamut table build cancelled: %w", err)
	}

	logger.Debug("built gamut table", "lightness_steps", t.lSteps, "hue_steps", t.hSteps, "cells", len(t.chroma))
	return t, nil
}

func (t *LUT) hueAt(j int) float64 {
	return float64(j) * 360 / float64(t.hSteps)
}

func (t *LUT) at(i, j int) float64 {
	return t.chroma[i*t.hSteps+(j%t.hSteps)]
}

// MaxChroma returns the interpolated chroma bound at (l, h).
func (t *LUT) MaxChroma(l, h float64) float64 {
	if math.IsNaN(l) || math.IsNaN(h) {
		return 0
	}
	l = max(0, min(l, 1))
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}

	// Bilinear interpolation; hue wraps.
	li := l * float64(t.lSteps-1)
	i0 := min(int(li), t.lSteps-2)
	fl := li - float64(i0)

	hj := h * float64(t.hSteps) / 360
	j0 := int(hj) % t.hSteps
	fh := hj - math.Floor(hj)

	c0 := t.at(i0, j0)*(1-fh) + t.at(i0, j0+1)*fh
	c1 := t.at(i0+1, j0)*(1-fh) + t.at(i0+1, j0+1)*fh
	c := c0*(1-fl) + c1*fl

	return refine(l, h, c)
}

// refine bisects the boundary in a bracket around the estimate c, widening
// the bracket until it straddles the boundary.
func refine(l, h, c float64) float64 {
	c = max(c, 0)

	w := bracketWidth
	lo := max(c-w, 0)
	for !colour.InGamut(l, lo, h) {
		if lo == 0 {
			return 0
		}
		w *= 2
		lo = max(c-w, 0)
	}

	w = bracketWidth
	hi := c + w
	for colour.InGamut(l, hi, h) {
		if hi >= chromaCeiling {
			return hi
		}
		w *= 2
		hi = min(c+w, chromaCeiling)
	}

	for range refineSteps {
		mid := (lo + hi) / 2
		if colour.InGamut(l, mid, h) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// Cells returns the number of samples.
func (t *LUT) Cells() int {
	return len(t.chroma)
}

// Backend loads a LUT as the engine's gamut.
type Backend struct {
	opts Options
}

// NewBackend returns a backend that builds a table with opts on Load.
func NewBackend(opts Options) *Backend {
	return &Backend{opts: opts}
}

// Load builds the table.
func (b *Backend) Load(ctx context.Context) (colour.Gamut, error) {
	return Build(ctx, b.opts)
}
