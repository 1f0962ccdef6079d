package models

import "time"

// Parse kinds accepted by the service.
const (
	KindName    = "name"
	KindAddress = "address"
)

// Result statuses.
const (
	StatusOK          = "ok"
	StatusNeedsReview = "needs_review"
	StatusFailed      = "failed"
)

// ParseResult is the envelope returned for every parse request. Exactly one
// of Name or Address is set, according to Kind.
type ParseResult struct {
	Raw              string      `bson:"raw" json:"raw"`                             // Input as received
	Kind             string      `bson:"kind" json:"kind"`                           // "name" or "address"
	Name             *PersonName `bson:"name,omitempty" json:"name,omitempty"`       // Set when Kind == "name"
	Address          *Address    `bson:"address,omitempty" json:"address,omitempty"` // Set when Kind == "address"
	Status           string      `bson:"status" json:"status"`                       // ok / needs_review / failed
	RawFingerprint   string      `bson:"raw_fingerprint" json:"raw_fingerprint"`     // Cache key, sha256 of folded input
	ProcessingTimeMs int64       `bson:"processing_time_ms" json:"processing_time_ms"`
}

// ParseCache is the persistent cache document wrapping a ParseResult.
type ParseCache struct {
	RawFingerprint string      `bson:"raw_fingerprint" json:"raw_fingerprint"`
	Result         ParseResult `bson:"result" json:"result"`
	CreatedAt      time.Time   `bson:"created_at" json:"created_at"`
	LastAccessed   time.Time   `bson:"last_accessed" json:"last_accessed"`
	HitCount       int64       `bson:"hit_count" json:"hit_count"`
}
