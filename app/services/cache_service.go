package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/contact-parser/app/models"
)

// CacheService is the in-memory TTL cache used when neither Redis nor
// MongoDB is configured.
type CacheService struct {
	cache      map[string]*models.ParseResult
	timestamps map[string]time.Time
	mu         sync.RWMutex
	ttl        time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCacheService creates an in-memory cache with the given TTL.
func NewCacheService(ttl time.Duration) *CacheService {
	return &CacheService{
		cache:      make(map[string]*models.ParseResult),
		timestamps: make(map[string]time.Time),
		ttl:        ttl,
	}
}

// Get returns the cached result for key, dropping it when expired.
func (cs *CacheService) Get(ctx context.Context, key string) (*models.ParseResult, bool, error) {
	cs.mu.RLock()
	result, exists := cs.cache[key]
	expired := exists && cs.isExpired(key)
	cs.mu.RUnlock()

	if !exists || expired {
		if expired {
			go cs.deleteExpired(key)
		}
		cs.misses.Add(1)
		return nil, false, nil
	}
	cs.hits.Add(1)
	return result, true, nil
}

// Set stores a result under key.
func (cs *CacheService) Set(ctx context.Context, key string, result *models.ParseResult) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.timestamps[key] = time.Now()
	cs.cache[key] = result
	return nil
}

// Delete removes a single entry.
func (cs *CacheService) Delete(ctx context.Context, key string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.cache, key)
	delete(cs.timestamps, key)
	return nil
}

// Clear removes all entries.
func (cs *CacheService) Clear(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.cache = make(map[string]*models.ParseResult)
	cs.timestamps = make(map[string]time.Time)
	return nil
}

// Exists reports whether key is cached and fresh.
func (cs *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	_, exists := cs.cache[key]
	return exists && !cs.isExpired(key), nil
}

// GetStats returns hit/miss counters.
func (cs *CacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	cs.mu.RLock()
	items := int64(len(cs.cache))
	cs.mu.RUnlock()

	hits, misses := cs.hits.Load(), cs.misses.Load()
	stats := &CacheStats{
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: items,
	}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}
	return stats, nil
}

// Close is a no-op for the in-memory cache.
func (cs *CacheService) Close() error { return nil }

// isExpired assumes the caller holds at least a read lock.
func (cs *CacheService) isExpired(key string) bool {
	ts, exists := cs.timestamps[key]
	if !exists {
		return true
	}
	return cs.ttl > 0 && time.Since(ts) > cs.ttl
}

func (cs *CacheService) deleteExpired(key string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if ts, exists := cs.timestamps[key]; exists && cs.ttl > 0 && time.Since(ts) > cs.ttl {
		delete(cs.cache, key)
		delete(cs.timestamps, key)
	}
}
