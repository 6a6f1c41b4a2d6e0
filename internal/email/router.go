package email

import "github.com/gin-gonic/gin"

// SetupEmailRoutes configures email dispatch and relay routes
func SetupEmailRoutes(rg *gin.RouterGroup, controller *Controller) {
	emailGroup := rg.Group("/email")
	{
		emailGroup.POST("", controller.Submit)       // POST /api/v1/email
		emailGroup.GET("/status", controller.Status) // GET  /api/v1/email/status
	}

	// Relay endpoint lives at the API root so a standalone relay deployment
	// exposes the same path.
	rg.POST("/send-email", controller.SendEmail) // POST /api/v1/send-email
}
