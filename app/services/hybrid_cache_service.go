package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/contact-parser/app/models"
)

// HybridCacheService layers Redis (L1, fast) over MongoDB (L2, persistent).
type HybridCacheService struct {
	redisCache *RedisCacheService
	mongoCache *MongoCacheService
	logger     *zap.Logger
}

// NewHybridCacheService wires the two backends together.
func NewHybridCacheService(redisCache *RedisCacheService, mongoCache *MongoCacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{
		redisCache: redisCache,
		mongoCache: mongoCache,
		logger:     logger,
	}
}

// Get tries Redis first, falls back to MongoDB, and promotes L2 hits back
// into Redis in the background.
func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.ParseResult, bool, error) {
	result, found, err := hcs.redisCache.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("redis cache error, falling back to mongo", zap.Error(err))
	} else if found {
		return result, true, nil
	}

	result, found, err = hcs.mongoCache.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := hcs.redisCache.Set(bgCtx, key, result); err != nil {
			hcs.logger.Warn("mongo->redis promotion failed", zap.Error(err), zap.String("key", key))
		}
	}()

	return result, true, nil
}

// Set writes to both layers; a Redis failure does not fail the call as
// long as MongoDB accepted the entry.
func (hcs *HybridCacheService) Set(ctx context.Context, key string, result *models.ParseResult) error {
	if err := hcs.redisCache.Set(ctx, key, result); err != nil {
		hcs.logger.Warn("redis set failed", zap.Error(err))
	}
	return hcs.mongoCache.Set(ctx, key, result)
}

// Delete removes the entry from both layers.
func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	if err := hcs.redisCache.Delete(ctx, key); err != nil {
		hcs.logger.Warn("redis delete failed", zap.Error(err))
	}
	return hcs.mongoCache.Delete(ctx, key)
}

// Clear empties both layers.
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	if err := hcs.redisCache.Clear(ctx); err != nil {
		hcs.logger.Warn("redis clear failed", zap.Error(err))
	}
	return hcs.mongoCache.Clear(ctx)
}

// Exists reports whether key is cached in either layer.
func (hcs *HybridCacheService) Exists(ctx context.Context, key string) (bool, error) {
	if found, err := hcs.redisCache.Exists(ctx, key); err == nil && found {
		return true, nil
	}
	return hcs.mongoCache.Exists(ctx, key)
}

// GetStats merges counters from both layers.
func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	redisStats, err := hcs.redisCache.GetStats(ctx)
	if err != nil {
		hcs.logger.Warn("redis stats failed", zap.Error(err))
		redisStats = &CacheStats{}
	}
	mongoStats, err := hcs.mongoCache.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	stats := &CacheStats{
		TotalHits:  redisStats.TotalHits + mongoStats.TotalHits,
		TotalMiss:  mongoStats.TotalMiss,
		TotalItems: mongoStats.TotalItems,
	}
	if total := stats.TotalHits + stats.TotalMiss; total > 0 {
		stats.HitRate = float64(stats.TotalHits) / float64(total)
	}
	return stats, nil
}

// Close shuts down both backends.
func (hcs *HybridCacheService) Close() error {
	if err := hcs.redisCache.Close(); err != nil {
		return err
	}
	return hcs.mongoCache.Close()
}
