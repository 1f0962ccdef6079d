package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/contact-parser/app/controllers"
)

// SetupAllRoutes installs every route group on the router.
func SetupAllRoutes(router *gin.Engine, parseController *controllers.ParseController, adminController *controllers.AdminController) {
	SetupAPIRoutes(router, parseController, adminController)
	SetupHealthRoutes(router, parseController)
	SetupWebRoutes(router)
}
