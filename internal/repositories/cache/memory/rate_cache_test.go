package memory

import (
	"context"
	"testing"
	"time"

	"github.com/fxdesk/exchange_system/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateCachePutGet(t *testing.T) {
	ctx := context.Background()
	cache := NewRateCache()

	require.NoError(t, cache.Put(ctx, "current_rate:USD:GBP:2026-08-29", "0.805825", time.Hour))

	value, err := cache.Get(ctx, "current_rate:USD:GBP:2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, "0.805825", value)
}

func TestRateCacheMissIsNotFound(t *testing.T) {
	cache := NewRateCache()

	_, err := cache.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRateCacheExpiresEntries(t *testing.T) {
	ctx := context.Background()
	cache := NewRateCache()
	current := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	require.NoError(t, cache.Put(ctx, "k", "v", time.Minute))

	_, err := cache.Get(ctx, "k")
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// The expired entry is dropped, not resurrected by a clock rollback.
	current = current.Add(-2 * time.Minute)
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRateCacheOverwriteRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	cache := NewRateCache()
	current := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	require.NoError(t, cache.Put(ctx, "k", "old", time.Minute))
	current = current.Add(30 * time.Second)
	require.NoError(t, cache.Put(ctx, "k", "new", time.Minute))

	current = current.Add(45 * time.Second)
	value, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", value)
}

func TestRateCacheWipe(t *testing.T) {
	ctx := context.Background()
	cache := NewRateCache()

	require.NoError(t, cache.Put(ctx, "a", "1", time.Hour))
	require.NoError(t, cache.Put(ctx, "b", "2", time.Hour))
	cache.Wipe()

	_, err := cache.Get(ctx, "a")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = cache.Get(ctx, "b")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
