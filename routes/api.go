package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/contact-parser/app/controllers"
)

// SetupAPIRoutes installs the versioned API routes.
func SetupAPIRoutes(router *gin.Engine, parseController *controllers.ParseController, adminController *controllers.AdminController) {
	v1 := router.Group("/v1")
	{
		names := v1.Group("/names")
		{
			names.POST("/parse", parseController.ParseName)
		}

		addresses := v1.Group("/addresses")
		{
			addresses.POST("/parse", parseController.ParseAddress)
		}

		jobs := v1.Group("/parse/jobs")
		{
			jobs.POST("", parseController.BatchParse)
			jobs.GET("/:jobID/status", parseController.GetJobStatus)
			jobs.GET("/:jobID/results", parseController.GetJobResults)
		}

		admin := v1.Group("/admin")
		{
			admin.GET("/stats", adminController.GetStats)
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
			admin.GET("/reviews", adminController.ListReviews)
			admin.POST("/reviews/:reviewID/approve", adminController.ApproveReview)
		}

		v1.GET("/health", parseController.HealthCheck)
	}
}

// SetupHealthRoutes installs the unversioned probes.
func SetupHealthRoutes(router *gin.Engine, parseController *controllers.ParseController) {
	router.GET("/health", parseController.HealthCheck)
	router.GET("/ready", parseController.HealthCheck)
	router.GET("/live", parseController.HealthCheck)
}
