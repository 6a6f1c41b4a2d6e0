package operator

import (
	"github.com/gin-gonic/gin"

	"totem/internal/shared/config"
	"totem/internal/shared/middleware"
)

// SetupOperatorRoutes configures operator routes. Login is public; settings
// require an operator token.
func SetupOperatorRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	operatorGroup := rg.Group("/operator")
	{
		operatorGroup.POST("/login", controller.Login) // POST /api/v1/operator/login

		protected := operatorGroup.Group("")
		protected.Use(middleware.OperatorAuth(cfg))
		{
			protected.PUT("/settings", controller.UpdateSettings) // PUT /api/v1/operator/settings
		}
	}
}
