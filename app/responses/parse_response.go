package responses

import "github.com/contact-parser/app/models"

// Job statuses.
const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// ParseResponse wraps a single parse result.
type ParseResponse struct {
	Result           models.ParseResult `json:"result"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
	CacheHit         bool               `json:"cache_hit"`
}

// BatchParseResponse acknowledges an accepted batch job.
type BatchParseResponse struct {
	JobID            string `json:"job_id"`
	TotalTexts       int    `json:"total_texts"`
	EstimatedSeconds int    `json:"estimated_seconds"`
	Message          string `json:"message"`
}

// JobStatusResponse reports batch job progress.
type JobStatusResponse struct {
	JobID     string  `json:"job_id"`
	Status    string  `json:"status"`
	Progress  float64 `json:"progress"`
	Processed int     `json:"processed"`
	Total     int     `json:"total"`
	Message   string  `json:"message"`
}

// JobResultsResponse carries the finished batch output.
type JobResultsResponse struct {
	JobID   string                `json:"job_id"`
	Results []*models.ParseResult `json:"results"`
	Total   int                   `json:"total"`
}

// ReviewListResponse lists queued parse reviews.
type ReviewListResponse struct {
	Reviews []models.ParseReview `json:"reviews"`
	Total   int64                `json:"total"`
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
}

// AdminStatsResponse summarizes service health for operators.
type AdminStatsResponse struct {
	CacheHitRate   float64                `json:"cache_hit_rate"`
	TotalCached    int64                  `json:"total_cached"`
	PendingReviews int64                  `json:"pending_reviews"`
	UptimeSeconds  int64                  `json:"uptime_seconds"`
	MemoryUsage    map[string]interface{} `json:"memory_usage"`
}

// HealthCheckResponse reports liveness details.
type HealthCheckResponse struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Uptime   string            `json:"uptime"`
	Services map[string]string `json:"services"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse is the uniform acknowledgement envelope.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
