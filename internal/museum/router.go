package museum

import "github.com/gin-gonic/gin"

// SetupMuseumRoutes configures museum routes
func SetupMuseumRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/museum", controller.GetMuseum) // GET /api/v1/museum
}
