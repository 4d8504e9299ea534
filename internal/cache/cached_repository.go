package cache

import (
	"context"
	"time"

	"availability-service/internal/models"
	"availability-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CachedReadRepository serves item lookups from the cache and delegates
// everything else. Cache errors fall through to the wrapped repository.
type CachedReadRepository struct {
	repository.ReadRepository
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedReadRepository(repo repository.ReadRepository, c Cache, ttl time.Duration, logger *zap.Logger) *CachedReadRepository {
	return &CachedReadRepository{
		ReadRepository: repo,
		cache:          c,
		ttl:            ttl,
		logger:         logger,
	}
}

func (r *CachedReadRepository) FindItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	key := ItemKey(id.String())

	var cached models.Item
	if err := GetJSON(ctx, r.cache, key, &cached); err == nil {
		r.logger.Debug("Item served from cache", zap.String("item_id", id.String()))
		return &cached, nil
	} else if err != ErrCacheMiss {
		r.logger.Warn("Item cache read failed", zap.String("item_id", id.String()), zap.Error(err))
	}

	item, err := r.ReadRepository.FindItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := SetJSON(ctx, r.cache, key, item, r.ttl); err != nil {
		r.logger.Warn("Item cache write failed", zap.String("item_id", id.String()), zap.Error(err))
	}
	return item, nil
}
