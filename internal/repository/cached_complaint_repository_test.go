package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// fakeRedis implements the subset of redis.Cmdable the cache uses.
type fakeRedis struct {
	redis.Cmdable
	data    map[string]string
	failAll bool
	gets    int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.gets++
	if f.failAll {
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	if f.failAll {
		return redis.NewStatusResult("", errors.New("connection refused"))
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.failAll {
		return redis.NewIntResult(0, errors.New("connection refused"))
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestCachedComplaintRepository_ReadThroughAndEvict(t *testing.T) {
	ctx := context.Background()
	store := NewGormComplaintRepository(setupDB(t))
	cache := newFakeRedis()
	repo := NewCachedComplaintRepository(store, cache, time.Minute, nil)

	c := newComplaint("cached", domain.PriorityMedium, domain.StatusPending, time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, repo.Create(ctx, c))

	first, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Contains(t, cache.data, complaintCachePrefix+c.ID)

	// a write that bypasses the cache is invisible until eviction
	stale := *first
	stale.Title = "changed underneath"
	require.NoError(t, store.Update(ctx, &stale))

	second, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "cached", second.Title)

	second.Status = domain.StatusInProgress
	require.NoError(t, repo.Update(ctx, second))
	assert.NotContains(t, cache.data, complaintCachePrefix+c.ID)

	third, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, third.Status)

	require.NoError(t, repo.Delete(ctx, c.ID))
	assert.NotContains(t, cache.data, complaintCachePrefix+c.ID)
	_, err = repo.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachedComplaintRepository_FallsThroughOnRedisErrors(t *testing.T) {
	ctx := context.Background()
	store := NewGormComplaintRepository(setupDB(t))
	cache := newFakeRedis()
	cache.failAll = true
	repo := NewCachedComplaintRepository(store, cache, time.Minute, nil)

	c := newComplaint("resilient", domain.PriorityLow, domain.StatusPending, time.Now().UTC())
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "resilient", got.Title)
	assert.Equal(t, 1, cache.gets)

	require.NoError(t, repo.Delete(ctx, c.ID))
}

func TestNewCachedComplaintRepository_NilClient(t *testing.T) {
	store := NewGormComplaintRepository(setupDB(t))
	assert.Equal(t, store, NewCachedComplaintRepository(store, nil, time.Minute, nil))
}
