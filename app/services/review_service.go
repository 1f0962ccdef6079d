package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/contact-parser/app/models"
	"github.com/contact-parser/helpers/utils"
)

// ErrReviewNotFound is returned for unknown review IDs.
var ErrReviewNotFound = errors.New("review not found")

// ReviewService persists parses that need a human look.
type ReviewService struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewReviewService creates the service and its collection indexes.
func NewReviewService(db *mongo.Database, logger *zap.Logger) *ReviewService {
	collection := db.Collection("parse_reviews")

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "review_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{bson.E{Key: "status", Value: 1}}},
		{Keys: bson.D{bson.E{Key: "created_at", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("could not create parse_reviews indexes", zap.Error(err))
	}

	return &ReviewService{collection: collection, logger: logger}
}

// Enqueue stores an automatic result for review.
func (rs *ReviewService) Enqueue(ctx context.Context, result models.ParseResult) (*models.ParseReview, error) {
	review := models.NewParseReview(utils.GenerateUUID(), result)

	if _, err := rs.collection.InsertOne(ctx, review); err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	rs.logger.Info("parse queued for review",
		zap.String("review_id", review.ID),
		zap.String("kind", review.Kind))
	return review, nil
}

// List returns reviews filtered by status ("" means all), newest first.
func (rs *ReviewService) List(ctx context.Context, status string, limit, offset int) ([]models.ParseReview, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := rs.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := rs.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.ParseReview
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, total, nil
}

// Approve accepts the automatic result of a pending review.
func (rs *ReviewService) Approve(ctx context.Context, reviewID, reviewerID string) error {
	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":      models.ReviewStatusApproved,
		"reviewer_id": reviewerID,
		"reviewed_at": now,
	}}

	res, err := rs.collection.UpdateOne(ctx, bson.M{"review_id": reviewID}, update)
	if err != nil {
		return fmt.Errorf("approve review: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// CountPending returns the number of reviews still waiting.
func (rs *ReviewService) CountPending(ctx context.Context) (int64, error) {
	return rs.collection.CountDocuments(ctx, bson.M{"status": models.ReviewStatusPending})
}
