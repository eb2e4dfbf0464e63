package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCacheRepo struct{ err error }

func (f failingCacheRepo) Get(context.Context, string, interface{}) error { return f.err }
func (f failingCacheRepo) Set(context.Context, string, interface{}, time.Duration) error {
	return f.err
}
func (f failingCacheRepo) DeleteByPattern(context.Context, string) (int, error) { return 0, f.err }

func TestCacheServicePrefixesKeys(t *testing.T) {
	repo := newFakeCacheRepo()
	cache := NewCacheService(repo, nil, 0, nil, true)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "stats:dashboard", map[string]int{"totalMembers": 2}, 0))
	assert.Contains(t, repo.store, "sevarthi:stats:dashboard")

	var got map[string]int
	hit, err := cache.Get(ctx, "stats:dashboard", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 2, got["totalMembers"])

	require.NoError(t, cache.Invalidate(ctx, "stats:*"))
	assert.Empty(t, repo.store)
}

func TestCacheServiceRecordsLookups(t *testing.T) {
	metrics := NewMetricsService()
	cache := NewCacheService(newFakeCacheRepo(), metrics, time.Minute, nil, true)
	ctx := context.Background()

	var dest map[string]int
	hit, err := cache.Get(ctx, "stats:performance", &dest)
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, cache.Set(ctx, "stats:performance", map[string]int{"a": 1}, 0))
	hit, err = cache.Get(ctx, "stats:performance", &dest)
	require.NoError(t, err)
	assert.True(t, hit)

	assert.Equal(t, 2, testutil.CollectAndCount(metrics.cacheLookups))
}

func TestCacheServiceSurfacesBackendErrors(t *testing.T) {
	boom := errors.New("connection refused")
	cache := NewCacheService(failingCacheRepo{err: boom}, nil, time.Minute, nil, true)

	var dest map[string]int
	hit, err := cache.Get(context.Background(), "stats:dashboard", &dest)
	assert.False(t, hit)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, cache.Invalidate(context.Background(), "stats:*"), boom)
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newFakeCacheRepo()
	cache := NewCacheService(repo, nil, time.Minute, nil, false)

	assert.False(t, cache.Enabled())
	require.NoError(t, cache.Set(context.Background(), "stats:dashboard", 1, 0))
	assert.Empty(t, repo.store)

	var nilCache *CacheService
	assert.False(t, nilCache.Enabled())
}
