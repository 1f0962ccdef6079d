package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/contact-parser/app/models"
	"github.com/contact-parser/app/requests"
	"github.com/contact-parser/app/responses"
	"github.com/contact-parser/helpers/utils"
	"github.com/contact-parser/internal/normalizer"
	"github.com/contact-parser/internal/parser"
)

// ErrJobNotFound is returned for unknown batch job IDs.
var ErrJobNotFound = errors.New("job not found")

// ParseService runs the two parsing engines, hands suspect results to the
// review queue, and tracks batch jobs.
type ParseService struct {
	nameParser    *parser.NameParser
	addressParser *parser.AddressParser
	reviews       *ReviewService // nil when no review store is configured
	logger        *zap.Logger
	startTime     time.Time

	mu         sync.RWMutex
	jobs       map[string]*JobStatus
	jobResults map[string][]*models.ParseResult
}

// JobStatus tracks one batch job.
type JobStatus struct {
	JobID     string
	Status    string
	Progress  float64
	Processed int
	Total     int
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewParseService wires the engines, the optional review store, and the
// batch job registry.
func NewParseService(nameParser *parser.NameParser, addressParser *parser.AddressParser, reviews *ReviewService, logger *zap.Logger) *ParseService {
	return &ParseService{
		nameParser:    nameParser,
		addressParser: addressParser,
		reviews:       reviews,
		logger:        logger,
		startTime:     time.Now(),
		jobs:          make(map[string]*JobStatus),
		jobResults:    make(map[string][]*models.ParseResult),
	}
}

// Parse runs one input through the engine for kind.
func (ps *ParseService) Parse(kind, text string, options requests.ParseOptions) (*models.ParseResult, error) {
	start := time.Now()
	useEmptyDefault := !options.NilDefaults

	result := &models.ParseResult{
		Raw:            text,
		Kind:           kind,
		Status:         models.StatusOK,
		RawFingerprint: CacheKey(kind, text),
	}

	switch kind {
	case models.KindName:
		result.Name = ps.nameParser.Parse(text, useEmptyDefault)
		if strings.TrimSpace(text) != "" && result.Name.IsEmpty() {
			result.Status = models.StatusNeedsReview
		}
	case models.KindAddress:
		result.Address = ps.addressParser.Parse(text, useEmptyDefault)
		if strings.TrimSpace(text) != "" && result.Address.IsEmpty() {
			result.Status = models.StatusNeedsReview
		}
	default:
		return nil, fmt.Errorf("unknown parse kind %q", kind)
	}

	result.ProcessingTimeMs = time.Since(start).Milliseconds()

	if result.Status == models.StatusNeedsReview && ps.reviews != nil {
		// Queueing is best-effort and off the request path.
		go func(r models.ParseResult) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if _, err := ps.reviews.Enqueue(ctx, r); err != nil {
				ps.logger.Warn("could not queue parse for review",
					zap.Error(err), zap.String("raw", r.Raw))
			}
		}(*result)
	}

	ps.logger.Debug("parsed input",
		zap.String("kind", kind),
		zap.String("status", result.Status),
		zap.Int64("duration_ms", result.ProcessingTimeMs))

	return result, nil
}

// ParseName parses one person name.
func (ps *ParseService) ParseName(text string, options requests.ParseOptions) (*models.ParseResult, error) {
	return ps.Parse(models.KindName, text, options)
}

// ParseAddress parses one street address.
func (ps *ParseService) ParseAddress(text string, options requests.ParseOptions) (*models.ParseResult, error) {
	return ps.Parse(models.KindAddress, text, options)
}

// StartBatchJob registers a job and processes it in the background,
// returning the job ID immediately.
func (ps *ParseService) StartBatchJob(kind string, texts []string, options requests.ParseOptions) string {
	jobID := utils.GenerateUUID()

	ps.mu.Lock()
	ps.jobs[jobID] = &JobStatus{
		JobID:     jobID,
		Status:    responses.JobStatusRunning,
		Total:     len(texts),
		Message:   "processing",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	ps.mu.Unlock()

	go ps.processBatchJob(jobID, kind, texts, options)
	return jobID
}

func (ps *ParseService) processBatchJob(jobID, kind string, texts []string, options requests.ParseOptions) {
	results := make([]*models.ParseResult, len(texts))

	for i, text := range texts {
		result, err := ps.Parse(kind, text, options)
		if err != nil {
			result = &models.ParseResult{Raw: text, Kind: kind, Status: models.StatusFailed}
		}
		results[i] = result

		ps.mu.Lock()
		if job, exists := ps.jobs[jobID]; exists {
			job.Processed = i + 1
			job.Progress = float64(i+1) / float64(len(texts))
			job.UpdatedAt = time.Now()
		}
		ps.mu.Unlock()
	}

	// Completion and result publication happen under one lock so a poller
	// never sees a done job without results. This also closes out
	// zero-text jobs, which skip the loop entirely.
	ps.mu.Lock()
	if job, exists := ps.jobs[jobID]; exists {
		job.Status = responses.JobStatusDone
		job.Progress = 1
		job.Message = "completed"
		job.UpdatedAt = time.Now()
	}
	ps.jobResults[jobID] = results
	ps.mu.Unlock()

	ps.logger.Info("batch job completed",
		zap.String("job_id", jobID),
		zap.String("kind", kind),
		zap.Int("total", len(texts)))
}

// GetJobStatus returns a snapshot of a batch job's progress. The live
// record keeps changing under the mutex while the job runs, so callers get
// a copy, never the record itself.
func (ps *ParseService) GetJobStatus(jobID string) (*JobStatus, error) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	job, exists := ps.jobs[jobID]
	if !exists {
		return nil, ErrJobNotFound
	}
	snapshot := *job
	return &snapshot, nil
}

// GetJobResults returns the output of a finished batch job.
func (ps *ParseService) GetJobResults(jobID string) ([]*models.ParseResult, error) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	results, exists := ps.jobResults[jobID]
	if !exists {
		return nil, ErrJobNotFound
	}
	return results, nil
}

// Uptime reports how long the service has been running.
func (ps *ParseService) Uptime() time.Duration {
	return time.Since(ps.startTime)
}

// CacheKey derives the cache key for one input of one kind. The text is
// folded and collapsed before the kind separator is prepended, so spacing
// at the text boundary cannot leak into the key.
func CacheKey(kind, text string) string {
	return normalizer.Fingerprint(kind + "\x1f" + normalizer.Collapse(normalizer.Fold(text)))
}
