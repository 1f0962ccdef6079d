package services

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/contact-parser/app/models"
	"github.com/contact-parser/app/requests"
	"github.com/contact-parser/app/responses"
	"github.com/contact-parser/internal/parser"
)

func newTestParseService() *ParseService {
	return NewParseService(parser.NewNameParser(), parser.NewAddressParser(), nil, zap.NewNop())
}

func TestParseService_ParseName(t *testing.T) {
	ps := newTestParseService()

	result, err := ps.ParseName("Dr. Jane Roe", requests.ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Kind != models.KindName {
		t.Errorf("Kind = %q, want %q", result.Kind, models.KindName)
	}
	if result.Status != models.StatusOK {
		t.Errorf("Status = %q, want %q", result.Status, models.StatusOK)
	}
	if result.Name == nil || result.Name.GetLastName() != "Roe" {
		t.Errorf("Name = %+v, want LastName Roe", result.Name)
	}
	if result.Address != nil {
		t.Error("Address must be nil for a name parse")
	}
	if result.RawFingerprint != CacheKey(models.KindName, "Dr. Jane Roe") {
		t.Error("RawFingerprint should match the cache key for the input")
	}
}

func TestParseService_ParseAddress(t *testing.T) {
	ps := newTestParseService()

	result, err := ps.ParseAddress("2790 SW Marine Drive", requests.ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Kind != models.KindAddress {
		t.Errorf("Kind = %q, want %q", result.Kind, models.KindAddress)
	}
	if result.Address == nil || result.Address.GetStreetName() != "Marine" {
		t.Errorf("Address = %+v, want StreetName Marine", result.Address)
	}
	if result.Name != nil {
		t.Error("Name must be nil for an address parse")
	}
}

func TestParseService_UnknownKind(t *testing.T) {
	ps := newTestParseService()

	if _, err := ps.Parse("email", "x", requests.ParseOptions{}); err == nil {
		t.Error("unknown kind should fail")
	}
}

func TestParseService_NeedsReview(t *testing.T) {
	ps := newTestParseService()

	// Non-blank input that produces nothing is flagged for review.
	result, err := ps.ParseName("!!!", requests.ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Status != models.StatusNeedsReview {
		t.Errorf("Status = %q, want %q", result.Status, models.StatusNeedsReview)
	}

	// Blank input is not review-worthy.
	blank, err := ps.ParseName("   ", requests.ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if blank.Status != models.StatusOK {
		t.Errorf("Status = %q, want %q", blank.Status, models.StatusOK)
	}
}

func TestParseService_NilDefaultsOption(t *testing.T) {
	ps := newTestParseService()

	result, err := ps.ParseName("Madonna", requests.ParseOptions{NilDefaults: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.Name.LastName != nil {
		t.Errorf("LastName = %v, want nil", result.Name.LastName)
	}

	filled, err := ps.ParseName("Madonna", requests.ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if filled.Name.LastName == nil || *filled.Name.LastName != "" {
		t.Errorf("LastName = %v, want empty string", filled.Name.LastName)
	}
}

func TestParseService_BatchJob(t *testing.T) {
	ps := newTestParseService()

	texts := []string{"John Doe", "Mr. Pink", "Cousteau, Jacques-Yves"}
	jobID := ps.StartBatchJob(models.KindName, texts, requests.ParseOptions{})
	if jobID == "" {
		t.Fatal("StartBatchJob returned an empty job ID")
	}

	var results []*models.ParseResult
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		var err error
		results, err = ps.GetJobResults(jobID)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrJobNotFound) {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if len(results) != len(texts) {
		t.Fatalf("got %d results, want %d", len(results), len(texts))
	}
	if results[1].Name.GetTitle() != "Mr." {
		t.Errorf("Title = %q, want Mr.", results[1].Name.GetTitle())
	}

	status, err := ps.GetJobStatus(jobID)
	if err != nil {
		t.Fatal(err)
	}
	if status.Status != responses.JobStatusDone {
		t.Errorf("Status = %q, want done", status.Status)
	}
	if status.Processed != len(texts) || status.Total != len(texts) {
		t.Errorf("Processed/Total = %d/%d, want %d/%d", status.Processed, status.Total, len(texts), len(texts))
	}
	if status.Progress != 1 {
		t.Errorf("Progress = %f, want 1", status.Progress)
	}
}

// waitForJobDone polls until the job reports done or the deadline passes.
func waitForJobDone(t *testing.T, ps *ParseService, jobID string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		status, err := ps.GetJobStatus(jobID)
		if err != nil {
			t.Fatal(err)
		}
		if status.Status == responses.JobStatusDone {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s never finished", jobID)
}

// GetJobStatus must hand out a copy; later progress updates on the live
// record may not show through a status a caller already holds.
func TestParseService_JobStatusIsSnapshot(t *testing.T) {
	ps := newTestParseService()

	jobID := ps.StartBatchJob(models.KindName, []string{"John Doe"}, requests.ParseOptions{})
	waitForJobDone(t, ps, jobID)

	snapshot, err := ps.GetJobStatus(jobID)
	if err != nil {
		t.Fatal(err)
	}

	ps.mu.Lock()
	ps.jobs[jobID].Message = "mutated"
	ps.mu.Unlock()

	if snapshot.Message == "mutated" {
		t.Error("GetJobStatus returned the live record, not a copy")
	}
}

// Polling an in-flight job concurrently with its worker must be safe; the
// race detector flags any unlocked access here.
func TestParseService_StatusPollingDuringRun(t *testing.T) {
	ps := newTestParseService()

	texts := make([]string, 500)
	for i := range texts {
		texts[i] = "John Doe"
	}
	jobID := ps.StartBatchJob(models.KindName, texts, requests.ParseOptions{})

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		status, err := ps.GetJobStatus(jobID)
		if err != nil {
			t.Fatal(err)
		}
		_ = status.Progress
		_ = status.Processed
		if status.Status == responses.JobStatusDone {
			return
		}
	}
	t.Fatalf("job %s never finished", jobID)
}

func TestParseService_EmptyBatchJob(t *testing.T) {
	ps := newTestParseService()

	jobID := ps.StartBatchJob(models.KindName, nil, requests.ParseOptions{})
	waitForJobDone(t, ps, jobID)

	status, err := ps.GetJobStatus(jobID)
	if err != nil {
		t.Fatal(err)
	}
	if status.Progress != 1 {
		t.Errorf("Progress = %f, want 1", status.Progress)
	}

	results, err := ps.GetJobResults(jobID)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestParseService_JobNotFound(t *testing.T) {
	ps := newTestParseService()

	if _, err := ps.GetJobStatus("nope"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("GetJobStatus error = %v, want ErrJobNotFound", err)
	}
	if _, err := ps.GetJobResults("nope"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("GetJobResults error = %v, want ErrJobNotFound", err)
	}
}

func TestCacheKey(t *testing.T) {
	// Keys are insensitive to case and spacing of the input text.
	if CacheKey(models.KindName, " John  DOE ") != CacheKey(models.KindName, "john doe") {
		t.Error("equivalent inputs should share a key")
	}
	// The kind is part of the key, so name and address spaces never collide.
	if CacheKey(models.KindName, "x") == CacheKey(models.KindAddress, "x") {
		t.Error("kinds must partition the key space")
	}
}
