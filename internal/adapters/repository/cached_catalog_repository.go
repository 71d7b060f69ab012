package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-tracker/internal/core/domain"
)

var (
	_ domain.CategoryRepository = (*CachedCategoryRepository)(nil)
	_ domain.TrackerRepository  = (*CachedTrackerRepository)(nil)
)

const catalogCacheTTL = 30 * time.Minute

// catalogCache stores the category listing under one key. Any catalog
// mutation drops it.
type catalogCache struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

func newCatalogCache(client *redis.Client, prefix string, logger *zap.Logger) *catalogCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prefix == "" {
		prefix = "tracker"
	}
	return &catalogCache{client: client, key: prefix + ":catalog", logger: logger}
}

func (c *catalogCache) invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		c.logger.Warn("cache invalidate failed", zap.String("key", c.key), zap.Error(err))
	}
}

type CachedCategoryRepository struct {
	next  domain.CategoryRepository
	cache *catalogCache
}

type CachedTrackerRepository struct {
	next  domain.TrackerRepository
	cache *catalogCache
}

// NewCachedCatalog wraps both catalog repositories around a shared cache key.
func NewCachedCatalog(categories domain.CategoryRepository, trackers domain.TrackerRepository, client *redis.Client, prefix string, logger *zap.Logger) (*CachedCategoryRepository, *CachedTrackerRepository) {
	cache := newCatalogCache(client, prefix, logger)
	return &CachedCategoryRepository{next: categories, cache: cache},
		&CachedTrackerRepository{next: trackers, cache: cache}
}

func (r *CachedCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	c := r.cache

	val, err := c.client.Get(ctx, c.key).Result()
	if err == nil {
		var categories []*domain.Category
		if err := json.Unmarshal([]byte(val), &categories); err == nil {
			return categories, nil
		}

		c.logger.Warn("corrupted catalog cache, cleaning up key", zap.String("key", c.key))
		c.client.Del(ctx, c.key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("cache read failed", zap.Error(err))
	}

	categories, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(categories); err == nil {
		if setErr := c.client.Set(ctx, c.key, data, catalogCacheTTL).Err(); setErr != nil {
			c.logger.Warn("cache write failed", zap.Error(setErr))
		}
	}

	return categories, nil
}

func (r *CachedCategoryRepository) Create(ctx context.Context, title string) (*domain.Category, error) {
	category, err := r.next.Create(ctx, title)
	if err != nil {
		return nil, err
	}
	r.cache.invalidate(ctx)
	return category, nil
}

func (r *CachedTrackerRepository) Create(ctx context.Context, t *domain.Tracker, categoryTitle string) error {
	if err := r.next.Create(ctx, t, categoryTitle); err != nil {
		return err
	}
	r.cache.invalidate(ctx)
	return nil
}

func (r *CachedTrackerRepository) GetByID(ctx context.Context, id string) (*domain.Tracker, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedTrackerRepository) Update(ctx context.Context, t *domain.Tracker, categoryTitle string) error {
	if err := r.next.Update(ctx, t, categoryTitle); err != nil {
		return err
	}
	r.cache.invalidate(ctx)
	return nil
}

func (r *CachedTrackerRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.invalidate(ctx)
	return nil
}
