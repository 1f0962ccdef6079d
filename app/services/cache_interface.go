package services

import (
	"context"

	"github.com/contact-parser/app/models"
)

// CacheStats summarizes cache effectiveness.
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService is the contract every cache backend (in-memory, Redis,
// MongoDB, hybrid) satisfies. Keys are raw input fingerprints.
type ICacheService interface {
	// Get returns the cached result for key, if present.
	Get(ctx context.Context, key string) (*models.ParseResult, bool, error)

	// Set stores a result under key.
	Set(ctx context.Context, key string, result *models.ParseResult) error

	// Delete removes a single entry.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Exists reports whether key is cached.
	Exists(ctx context.Context, key string) (bool, error)

	// GetStats returns hit/miss counters.
	GetStats(ctx context.Context) (*CacheStats, error)

	// Close releases backend connections, if any.
	Close() error
}
