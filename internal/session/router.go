package session

import "github.com/gin-gonic/gin"

// SetupSessionRoutes configures session routes
func SetupSessionRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/session", controller.GetSession) // GET /api/v1/session
}
