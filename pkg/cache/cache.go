// Package cache holds a time-boxed snapshot of the full episode set.
//
// Any component that mutates the store must call Invalidate immediately
// after a successful write. There is no concurrent-refresh protection:
// two callers racing past an expired snapshot both hit the store and the
// last Set wins, which is acceptable because store reads are idempotent.
package cache

import (
	"sync"
	"time"

	"podcast-archive/pkg/domain"
)

// DefaultTTL is the freshness window for a cached snapshot.
const DefaultTTL = 5 * time.Minute

// EpisodeCache caches the full episode collection with a freshness window.
type EpisodeCache struct {
	mu       sync.Mutex
	episodes []domain.Episode
	fetched  time.Time
	ttl      time.Duration
	now      func() time.Time
}

// New creates a cache with the default freshness window.
func New() *EpisodeCache {
	return NewWithTTL(DefaultTTL)
}

// NewWithTTL creates a cache with a custom freshness window.
func NewWithTTL(ttl time.Duration) *EpisodeCache {
	return &EpisodeCache{
		ttl: ttl,
		now: time.Now,
	}
}

// SetClock replaces the cache's clock. Tests use this to control snapshot age.
func (c *EpisodeCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get returns the cached snapshot and true while the snapshot age is under
// the freshness window, else nil and false.
func (c *EpisodeCache) Get() ([]domain.Episode, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.episodes == nil || c.fetched.IsZero() {
		return nil, false
	}
	if c.now().Sub(c.fetched) >= c.ttl {
		return nil, false
	}
	return c.episodes, true
}

// Set replaces the snapshot and restarts its freshness window.
func (c *EpisodeCache) Set(episodes []domain.Episode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.episodes = episodes
	c.fetched = c.now()
}

// Invalidate unconditionally drops the snapshot and its timestamp.
func (c *EpisodeCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.episodes = nil
	c.fetched = time.Time{}
}
