// Package redis provides the redis-backed RateCache. The cache is a strict
// optimization layer; every error on the read path is surfaced as a miss.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fxdesk/exchange_system/internal/apperrors"
	goredis "github.com/go-redis/redis/v8"
)

// RateCache implements repositories.RateCache on top of a redis client.
type RateCache struct {
	client *goredis.Client
}

// NewRateCache creates a cache over the given connection parameters and
// verifies connectivity once.
func NewRateCache(ctx context.Context, addr, password string, db int) (*RateCache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return &RateCache{client: client}, nil
}

// Get returns the cached value for key, or apperrors.ErrNotFound on a miss
// or any transport failure.
func (c *RateCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", fmt.Errorf("%w: cache key %s", apperrors.ErrNotFound, key)
		}
		return "", fmt.Errorf("%w: cache read for %s: %v", apperrors.ErrNotFound, key, err)
	}
	return value, nil
}

// Put stores value under key for the given TTL.
func (c *RateCache) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache write for %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (c *RateCache) Close() error {
	return c.client.Close()
}
