package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"availability-service/internal/models"
	"availability-service/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCache is a mock implementation of Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) DeleteByPattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func TestInMemoryCache_SetGetExpire(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(zap.NewNop())

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), -time.Second))

	val, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), val)

	_, err = c.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrCacheMiss)

	ok, err := c.Exists(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Delete(ctx, "a"))
	_, err = c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestInMemoryCache_DeleteByPattern(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(zap.NewNop())

	for _, key := range []string{ItemKey("1"), ItemKey("2"), "other"} {
		require.NoError(t, c.Set(ctx, key, []byte("x"), time.Minute))
	}

	require.NoError(t, c.DeleteByPattern(ctx, ItemKeyPattern))

	_, err := c.Get(ctx, ItemKey("1"))
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, ItemKey("2"))
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, "other")
	assert.NoError(t, err)

	require.NoError(t, c.DeleteByPattern(ctx, "other"))
	_, err = c.Get(ctx, "other")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func newSeededItem(t *testing.T) (*repository.InMemoryRepository, *models.Item) {
	t.Helper()
	repo := repository.NewInMemoryRepository()
	item := &models.Item{Name: "Fog machine", UnitPrice: decimal.RequireFromString("35.50"), Tracking: models.TrackingSerialized}
	require.NoError(t, repo.CreateItem(context.Background(), item))
	return repo, item
}

func TestCachedReadRepository_MissThenHit(t *testing.T) {
	ctx := context.Background()
	repo, item := newSeededItem(t)
	c := NewInMemoryCache(zap.NewNop())
	cached := NewCachedReadRepository(repo, c, time.Minute, zap.NewNop())

	first, err := cached.FindItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fog machine", first.Name)

	exists, err := c.Exists(ctx, ItemKey(item.ID.String()))
	require.NoError(t, err)
	assert.True(t, exists)

	second, err := cached.FindItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, second.ID)
	assert.True(t, item.UnitPrice.Equal(second.UnitPrice))
	assert.Equal(t, models.TrackingSerialized, second.Tracking)
}

func TestCachedReadRepository_NotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewInMemoryRepository()
	mockCache := new(MockCache)
	id := uuid.New()
	mockCache.On("Get", mock.Anything, ItemKey(id.String())).Return(nil, ErrCacheMiss)

	cached := NewCachedReadRepository(repo, mockCache, time.Minute, zap.NewNop())
	_, err := cached.FindItem(ctx, id)

	assert.ErrorIs(t, err, repository.ErrItemNotFound)
	mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedReadRepository_CacheErrorsFallThrough(t *testing.T) {
	ctx := context.Background()
	repo, item := newSeededItem(t)
	mockCache := new(MockCache)
	key := ItemKey(item.ID.String())
	mockCache.On("Get", mock.Anything, key).Return(nil, errors.New("redis down"))
	mockCache.On("Set", mock.Anything, key, mock.Anything, time.Minute).Return(errors.New("redis down"))

	cached := NewCachedReadRepository(repo, mockCache, time.Minute, zap.NewNop())
	found, err := cached.FindItem(ctx, item.ID)

	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)
	mockCache.AssertExpectations(t)
}

func TestCachedReadRepository_DelegatesOtherLookups(t *testing.T) {
	ctx := context.Background()
	repo, item := newSeededItem(t)
	require.NoError(t, repo.AddUnit(ctx, &models.Unit{ItemID: item.ID, SerialNumber: "FOG-1"}))

	cached := NewCachedReadRepository(repo, new(MockCache), time.Minute, zap.NewNop())
	units, err := cached.ListUnits(ctx, item.ID)

	require.NoError(t, err)
	assert.Len(t, units, 1)
}
