package db

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/cache"
	"github.com/bannerforge/bannerforge-backend/internal/models"
)

const sharedContentCachePrefix = "bannerforge:shared:"

// cachedSharedContentRepository reads shared records through a cache. Records are
// immutable once created, so entries are never invalidated and only expire.
type cachedSharedContentRepository struct {
	next   SharedContentRepository
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedSharedContentRepository wraps next with a read-through cache.
func NewCachedSharedContentRepository(next SharedContentRepository, c cache.Cache, ttl time.Duration, logger *zap.Logger) SharedContentRepository {
	return &cachedSharedContentRepository{next: next, cache: c, ttl: ttl, logger: logger}
}

func sharedContentCacheKey(kind models.SharedContentKind, id string) string {
	return sharedContentCachePrefix + string(kind) + ":" + id
}

func (r *cachedSharedContentRepository) CreateGeneral(ctx context.Context, content *models.SharedGeneralContent) (string, error) {
	return r.next.CreateGeneral(ctx, content)
}

func (r *cachedSharedContentRepository) CreateAmazon(ctx context.Context, content *models.SharedAmazonContent) (string, error) {
	return r.next.CreateAmazon(ctx, content)
}

func (r *cachedSharedContentRepository) GetGeneral(ctx context.Context, id string) (*models.SharedGeneralContent, error) {
	key := sharedContentCacheKey(models.SharedContentGeneral, id)
	var cached models.SharedGeneralContent
	if r.lookup(ctx, key, &cached) {
		cached.ID = id
		return &cached, nil
	}
	content, err := r.next.GetGeneral(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, content)
	return content, nil
}

func (r *cachedSharedContentRepository) GetAmazon(ctx context.Context, id string) (*models.SharedAmazonContent, error) {
	key := sharedContentCacheKey(models.SharedContentAmazon, id)
	var cached models.SharedAmazonContent
	if r.lookup(ctx, key, &cached) {
		cached.ID = id
		return &cached, nil
	}
	content, err := r.next.GetAmazon(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, content)
	return content, nil
}

// lookup treats cache failures as misses.
func (r *cachedSharedContentRepository) lookup(ctx context.Context, key string, dst any) bool {
	hit, err := r.cache.GetJSON(ctx, key, dst)
	if err != nil {
		r.logger.Warn("Shared content cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (r *cachedSharedContentRepository) store(ctx context.Context, key string, val any) {
	if err := r.cache.SetJSON(ctx, key, val, r.ttl); err != nil {
		r.logger.Warn("Shared content cache write failed", zap.String("key", key), zap.Error(err))
	}
}
