package repositories

import (
	"context"
	"time"
)

// RateCache is the time-boxed memoization layer in front of the rate store
// and provider fetches. It is a strict optimization: a full wipe at any time
// must never change a resolution outcome, only its latency. Values are
// serialized strings; key construction lives in utils/cachekeys so that
// distinct logical queries never collide.
type RateCache interface {
	// Get returns the cached value for key. A miss (or any read error,
	// which callers treat as a miss) returns apperrors.ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Put stores value under key for the given TTL.
	Put(ctx context.Context, key, value string, ttl time.Duration) error
}
