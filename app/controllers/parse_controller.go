package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/contact-parser/app/config"
	"github.com/contact-parser/app/models"
	"github.com/contact-parser/app/requests"
	"github.com/contact-parser/app/responses"
	"github.com/contact-parser/app/services"
)

// ParseController handles the name/address parsing endpoints.
type ParseController struct {
	parseService *services.ParseService
	cacheService services.ICacheService
	logger       *zap.Logger
}

// NewParseController wires the controller.
func NewParseController(parseService *services.ParseService, cacheService services.ICacheService, logger *zap.Logger) *ParseController {
	return &ParseController{
		parseService: parseService,
		cacheService: cacheService,
		logger:       logger,
	}
}

// ParseName handles POST /v1/names/parse.
func (pc *ParseController) ParseName(c *gin.Context) {
	var req requests.ParseNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "text is required: " + err.Error(),
		})
		return
	}
	pc.parse(c, models.KindName, *req.Text, req.Options)
}

// ParseAddress handles POST /v1/addresses/parse.
func (pc *ParseController) ParseAddress(c *gin.Context) {
	var req requests.ParseAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "text is required: " + err.Error(),
		})
		return
	}
	pc.parse(c, models.KindAddress, *req.Text, req.Options)
}

func (pc *ParseController) parse(c *gin.Context, kind, text string, options requests.ParseOptions) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(c.Request.Context(), config.RequestTimeout())
	defer cancel()

	if options.UseCache {
		key := services.CacheKey(kind, text)
		if cached, found, err := pc.cacheService.Get(ctx, key); err == nil && found {
			c.JSON(http.StatusOK, responses.ParseResponse{
				Result:           *cached,
				ProcessingTimeMs: time.Since(start).Milliseconds(),
				CacheHit:         true,
			})
			return
		}
	}

	result, err := pc.parseService.Parse(kind, text, options)
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "PARSE_ERROR",
			Message: err.Error(),
		})
		return
	}

	if options.UseCache {
		if err := pc.cacheService.Set(ctx, result.RawFingerprint, result); err != nil {
			pc.logger.Warn("cache set failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, responses.ParseResponse{
		Result:           *result,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		CacheHit:         false,
	})
}

// BatchParse handles POST /v1/parse/jobs.
func (pc *ParseController) BatchParse(c *gin.Context) {
	var req requests.BatchParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	if max := config.C.Batch.MaxTexts; max > 0 && len(req.Texts) > max {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "BATCH_TOO_LARGE",
			Message: fmt.Sprintf("at most %d texts per job", max),
		})
		return
	}

	jobID := pc.parseService.StartBatchJob(req.Kind, req.Texts, req.Options)

	c.JSON(http.StatusAccepted, responses.BatchParseResponse{
		JobID:            jobID,
		TotalTexts:       len(req.Texts),
		EstimatedSeconds: len(req.Texts)/1000 + 1,
		Message:          "job accepted",
	})
}

// GetJobStatus handles GET /v1/parse/jobs/:jobID/status.
func (pc *ParseController) GetJobStatus(c *gin.Context) {
	job, err := pc.parseService.GetJobStatus(c.Param("jobID"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrJobNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, responses.ErrorResponse{Error: "JOB_NOT_FOUND", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, responses.JobStatusResponse{
		JobID:     job.JobID,
		Status:    job.Status,
		Progress:  job.Progress,
		Processed: job.Processed,
		Total:     job.Total,
		Message:   job.Message,
	})
}

// GetJobResults handles GET /v1/parse/jobs/:jobID/results.
func (pc *ParseController) GetJobResults(c *gin.Context) {
	jobID := c.Param("jobID")
	results, err := pc.parseService.GetJobResults(jobID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrJobNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, responses.ErrorResponse{Error: "JOB_NOT_FOUND", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, responses.JobResultsResponse{
		JobID:   jobID,
		Results: results,
		Total:   len(results),
	})
}

// HealthCheck handles the health endpoints.
func (pc *ParseController) HealthCheck(c *gin.Context) {
	status := "healthy"
	servicesStatus := map[string]string{"parser": "up"}

	if _, err := pc.cacheService.GetStats(c.Request.Context()); err != nil {
		servicesStatus["cache"] = "down"
		status = "degraded"
	} else {
		servicesStatus["cache"] = "up"
	}

	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:   status,
		Version:  "1.0.0",
		Uptime:   fmt.Sprintf("%.0fs", pc.parseService.Uptime().Seconds()),
		Services: servicesStatus,
	})
}
