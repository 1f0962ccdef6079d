package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/contact-parser/app/models"
)

// MongoCacheService is the persistent (L2) cache backend: an in-process
// LRU in front of a MongoDB collection.
type MongoCacheService struct {
	db         *mongo.Database
	collection *mongo.Collection
	l1Cache    *lru.Cache[string, *models.ParseResult]
	logger     *zap.Logger

	totalHits atomic.Int64
	totalMiss atomic.Int64
	l1Hits    atomic.Int64
	mongoHits atomic.Int64
}

// NewMongoCacheService creates the cache and its collection indexes.
func NewMongoCacheService(db *mongo.Database, l1Size int, logger *zap.Logger) (*MongoCacheService, error) {
	l1Cache, err := lru.New[string, *models.ParseResult](l1Size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}

	collection := db.Collection("parse_cache")

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "raw_fingerprint", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{bson.E{Key: "created_at", Value: 1}}},
		{Keys: bson.D{bson.E{Key: "last_accessed", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("could not create parse_cache indexes", zap.Error(err))
	}

	return &MongoCacheService{
		db:         db,
		collection: collection,
		l1Cache:    l1Cache,
		logger:     logger,
	}, nil
}

// Get checks the in-process LRU first, then MongoDB, promoting hits back
// into the LRU.
func (mcs *MongoCacheService) Get(ctx context.Context, key string) (*models.ParseResult, bool, error) {
	if result, found := mcs.l1Cache.Get(key); found {
		mcs.l1Hits.Add(1)
		mcs.totalHits.Add(1)
		return result, true, nil
	}

	var entry models.ParseCache
	err := mcs.collection.FindOne(ctx, bson.M{"raw_fingerprint": key}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		mcs.totalMiss.Add(1)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mongo cache lookup: %w", err)
	}

	mcs.mongoHits.Add(1)
	mcs.totalHits.Add(1)
	result := entry.Result
	mcs.l1Cache.Add(key, &result)

	// Access bookkeeping happens off the request path.
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := mcs.collection.UpdateOne(bgCtx,
			bson.M{"raw_fingerprint": key},
			bson.M{
				"$set": bson.M{"last_accessed": time.Now()},
				"$inc": bson.M{"hit_count": 1},
			})
		if err != nil {
			mcs.logger.Debug("cache access update failed", zap.Error(err))
		}
	}()

	return &result, true, nil
}

// Set upserts a result into MongoDB and the LRU.
func (mcs *MongoCacheService) Set(ctx context.Context, key string, result *models.ParseResult) error {
	now := time.Now()
	entry := models.ParseCache{
		RawFingerprint: key,
		Result:         *result,
		CreatedAt:      now,
		LastAccessed:   now,
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := mcs.collection.ReplaceOne(ctx, bson.M{"raw_fingerprint": key}, entry, opts); err != nil {
		return fmt.Errorf("mongo cache upsert: %w", err)
	}

	mcs.l1Cache.Add(key, result)
	return nil
}

// Delete removes a single entry from both layers.
func (mcs *MongoCacheService) Delete(ctx context.Context, key string) error {
	mcs.l1Cache.Remove(key)
	if _, err := mcs.collection.DeleteOne(ctx, bson.M{"raw_fingerprint": key}); err != nil {
		return fmt.Errorf("mongo cache delete: %w", err)
	}
	return nil
}

// Clear empties both layers.
func (mcs *MongoCacheService) Clear(ctx context.Context) error {
	mcs.l1Cache.Purge()
	if _, err := mcs.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("mongo cache clear: %w", err)
	}
	return nil
}

// Exists reports whether key is cached in either layer.
func (mcs *MongoCacheService) Exists(ctx context.Context, key string) (bool, error) {
	if mcs.l1Cache.Contains(key) {
		return true, nil
	}
	n, err := mcs.collection.CountDocuments(ctx, bson.M{"raw_fingerprint": key}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetStats returns combined counters for both layers.
func (mcs *MongoCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	items, err := mcs.collection.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, err
	}

	hits, misses := mcs.totalHits.Load(), mcs.totalMiss.Load()
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

// WarmUp preloads the LRU with the most recently accessed entries.
func (mcs *MongoCacheService) WarmUp(ctx context.Context, limit int) error {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "last_accessed", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := mcs.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("mongo cache warmup: %w", err)
	}
	defer cursor.Close(ctx)

	loaded := 0
	for cursor.Next(ctx) {
		var entry models.ParseCache
		if err := cursor.Decode(&entry); err != nil {
			continue
		}
		result := entry.Result
		mcs.l1Cache.Add(entry.RawFingerprint, &result)
		loaded++
	}

	mcs.logger.Info("cache warmed up", zap.Int("entries", loaded))
	return cursor.Err()
}

// Close is a no-op; the Mongo client is owned by main.
func (mcs *MongoCacheService) Close() error { return nil }
