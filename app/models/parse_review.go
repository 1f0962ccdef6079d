package models

import "time"

// Review statuses.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusInReview = "in_review"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// ParseReview is an input whose automatic parse came back empty or suspect
// and was queued for a human to look at.
type ParseReview struct {
	ID           string       `bson:"review_id" json:"review_id"`
	Raw          string       `bson:"raw" json:"raw"`
	Kind         string       `bson:"kind" json:"kind"`
	AutoResult   ParseResult  `bson:"auto_result" json:"auto_result"`
	Status       string       `bson:"status" json:"status"`
	ManualResult *ParseResult `bson:"manual_result,omitempty" json:"manual_result,omitempty"`
	ReviewerID   *string      `bson:"reviewer_id,omitempty" json:"reviewer_id,omitempty"`
	ReviewedAt   *time.Time   `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	CreatedAt    time.Time    `bson:"created_at" json:"created_at"`
}

// NewParseReview queues an automatic result for review.
func NewParseReview(id string, result ParseResult) *ParseReview {
	return &ParseReview{
		ID:         id,
		Raw:        result.Raw,
		Kind:       result.Kind,
		AutoResult: result,
		Status:     ReviewStatusPending,
		CreatedAt:  time.Now(),
	}
}

// IsValidStatus reports whether the status is one of the known values.
func (pr *ParseReview) IsValidStatus() bool {
	switch pr.Status {
	case ReviewStatusPending, ReviewStatusInReview, ReviewStatusApproved, ReviewStatusRejected:
		return true
	}
	return false
}

// Approve accepts the automatic result.
func (pr *ParseReview) Approve(reviewerID string) {
	pr.Status = ReviewStatusApproved
	pr.ReviewerID = &reviewerID
	now := time.Now()
	pr.ReviewedAt = &now
}

// Reject discards the automatic result.
func (pr *ParseReview) Reject(reviewerID string) {
	pr.Status = ReviewStatusRejected
	pr.ReviewerID = &reviewerID
	now := time.Now()
	pr.ReviewedAt = &now
}

// SetManualResult records a corrected result and closes the review.
func (pr *ParseReview) SetManualResult(result ParseResult, reviewerID string) {
	pr.ManualResult = &result
	pr.Status = ReviewStatusApproved
	pr.ReviewerID = &reviewerID
	now := time.Now()
	pr.ReviewedAt = &now
}

// IsPending reports whether the review is still waiting.
func (pr *ParseReview) IsPending() bool {
	return pr.Status == ReviewStatusPending
}
