// Package memory provides a map-backed RateCache with TTL expiry, used by
// the test suites and as a fallback when no redis address is configured.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fxdesk/exchange_system/internal/apperrors"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// RateCache implements repositories.RateCache in process memory. Expired
// entries are dropped lazily on read; there is no eviction beyond TTL.
type RateCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewRateCache creates an empty in-memory cache.
func NewRateCache() *RateCache {
	return &RateCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached value for key, or apperrors.ErrNotFound on a miss.
func (c *RateCache) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: cache key %s", apperrors.ErrNotFound, key)
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", fmt.Errorf("%w: cache key %s expired", apperrors.ErrNotFound, key)
	}
	return e.value, nil
}

// Put stores value under key for the given TTL.
func (c *RateCache) Put(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Wipe drops every entry. Correctness must not depend on cache contents, so
// a full wipe is always safe.
func (c *RateCache) Wipe() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}
