package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes installs the welcome and documentation routes.
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Contact Parser Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Contact Parser API v1",
				"endpoints": map[string]string{
					"parse_name":    "POST /v1/names/parse",
					"parse_address": "POST /v1/addresses/parse",
					"batch":         "POST /v1/parse/jobs",
					"job_status":    "GET /v1/parse/jobs/:jobID/status",
					"job_results":   "GET /v1/parse/jobs/:jobID/results",
					"health":        "GET /v1/health",
				},
			})
		})
	}
}
