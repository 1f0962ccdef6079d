package controllers

import (
	"errors"
	"net/http"
	"runtime"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/contact-parser/app/requests"
	"github.com/contact-parser/app/responses"
	"github.com/contact-parser/app/services"
)

// AdminController handles the operator endpoints: stats, cache
// invalidation, and the review queue.
type AdminController struct {
	parseService  *services.ParseService
	reviewService *services.ReviewService
	cacheService  services.ICacheService
	logger        *zap.Logger
}

// NewAdminController wires the controller.
func NewAdminController(parseService *services.ParseService, reviewService *services.ReviewService, cacheService services.ICacheService, logger *zap.Logger) *AdminController {
	return &AdminController{
		parseService:  parseService,
		reviewService: reviewService,
		cacheService:  cacheService,
		logger:        logger,
	}
}

// GetStats handles GET /v1/admin/stats.
func (ac *AdminController) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	cacheStats, err := ac.cacheService.GetStats(ctx)
	if err != nil {
		ac.logger.Warn("cache stats unavailable", zap.Error(err))
		cacheStats = &services.CacheStats{}
	}

	var pending int64
	if ac.reviewService != nil {
		if pending, err = ac.reviewService.CountPending(ctx); err != nil {
			ac.logger.Warn("review count unavailable", zap.Error(err))
		}
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(http.StatusOK, responses.AdminStatsResponse{
		CacheHitRate:   cacheStats.HitRate,
		TotalCached:    cacheStats.TotalItems,
		PendingReviews: pending,
		UptimeSeconds:  int64(ac.parseService.Uptime().Seconds()),
		MemoryUsage: map[string]interface{}{
			"alloc_mb":      mem.Alloc / 1024 / 1024,
			"sys_mb":        mem.Sys / 1024 / 1024,
			"num_gc":        mem.NumGC,
			"num_goroutine": runtime.NumGoroutine(),
		},
	})
}

// InvalidateCache handles POST /v1/admin/cache/invalidate.
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	if err := ac.cacheService.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "CACHE_ERROR",
			Message: err.Error(),
		})
		return
	}

	ac.logger.Info("cache invalidated")
	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "cache invalidated",
	})
}

// ListReviews handles GET /v1/admin/reviews.
func (ac *AdminController) ListReviews(c *gin.Context) {
	if ac.reviewService == nil {
		c.JSON(http.StatusServiceUnavailable, responses.ErrorResponse{
			Error:   "REVIEWS_DISABLED",
			Message: "no review store configured",
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	status := c.Query("status")

	reviews, total, err := ac.reviewService.List(c.Request.Context(), status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "REVIEW_ERROR",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.ReviewListResponse{
		Reviews: reviews,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

// ApproveReview handles POST /v1/admin/reviews/:reviewID/approve.
func (ac *AdminController) ApproveReview(c *gin.Context) {
	if ac.reviewService == nil {
		c.JSON(http.StatusServiceUnavailable, responses.ErrorResponse{
			Error:   "REVIEWS_DISABLED",
			Message: "no review store configured",
		})
		return
	}

	var req requests.ReviewApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	reviewID := c.Param("reviewID")
	if err := ac.reviewService.Approve(c.Request.Context(), reviewID, req.ReviewerID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrReviewNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, responses.ErrorResponse{Error: "REVIEW_ERROR", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "review approved",
	})
}
