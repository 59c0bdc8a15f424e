// Package cache memoises derivation results keyed by their inputs.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/singleflight"

	"github.com/jmylchreest/tokentint/pkg/colour"
	"github.com/jmylchreest/tokentint/pkg/derive"
)

// Key returns a deterministic key for a derivation request.
// Channels are written at fixed precision so that colours parsed from the same
// hex value always share a key. Every option that affects the output is part
// of the key.
func Key(base colour.Colour, opts derive.Options) string {
	canonical := fmt.Sprintf("l=%.6f;c=%.6f;h=%.6f;a=%.6f|states=%s|min=%.6f|base=%t|a11y=%t|prefix=%s",
		base.Lightness(), base.Chroma(), base.Hue(), base.Alpha(),
		opts.States.String(), opts.MinWCAGRatio, opts.IncludeBase, opts.CheckAccessibility, opts.Prefix)

	hash := sha256.Sum256([]byte(canonical))
	return fmt.Sprintf("%x", hash[:16])
}

// Stats is a snapshot of cache activity.
type Stats struct {
	Hits   uint64 `json:"hits" yaml:"hits"`
	Misses uint64 `json:"misses" yaml:"misses"`
	Size   int    `json:"size" yaml:"size"`
}

// HitRate returns hits as a fraction of lookups, or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is a concurrency-safe memo table. Concurrent misses for the same key
// share one computation. Failed computations are not stored.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
	group   singleflight.Group
	hits    atomic.Uint64
	misses  atomic.Uint64
	logger  hclog.Logger
}

// New creates an empty cache. A nil logger discards output.
func New[V any](logger hclog.Logger) *Cache[V] {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Cache[V]{
		entries: make(map[string]V),
		logger:  logger,
	}
}

// Get returns the cached value for key.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	return v, ok
}

// flight is the outcome of one singleflight call.
type flight[V any] struct {
	v   V
	hit bool
}

// GetOrCompute returns the cached value for key, calling compute on a miss.
// hit reports whether the value was already stored when this call looked it
// up. Callers that wait on another caller's computation count as misses.
func (c *Cache[V]) GetOrCompute(key string, compute func() (V, error)) (v V, hit bool, err error) {
	if v, ok := c.Get(key); ok {
		c.hits.Add(1)
		c.logger.Trace("cache hit", "key", key)
		return v, true, nil
	}

	ran := false
	res, err, _ := c.group.Do(key, func() (any, error) {
		ran = true
		// Another caller may have filled the entry between Get and Do.
		if v, ok := c.Get(key); ok {
			return flight[V]{v: v, hit: true}, nil
		}
		v, err := compute()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = v
		c.mu.Unlock()
		return flight[V]{v: v}, nil
	})
	if err != nil {
		c.misses.Add(1)
		var zero V
		return zero, false, err
	}

	f := res.(flight[V])
	hit = ran && f.hit
	if hit {
		c.hits.Add(1)
		c.logger.Trace("cache hit", "key", key)
	} else {
		c.misses.Add(1)
		c.logger.Trace("cache miss", "key", key, "computed", ran)
	}
	return f.v, hit, nil
}

// Size returns the number of stored entries.
func (c *Cache[V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes every entry and resets the counters.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
	c.hits.Store(0)
	c.misses.Store(0)
	c.logger.Debug("cache cleared")
}

// Stats returns the current counters.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.Size(),
	}
}
