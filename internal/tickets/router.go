package tickets

import "github.com/gin-gonic/gin"

// SetupTicketRoutes configures ticket generation routes
func SetupTicketRoutes(rg *gin.RouterGroup, controller *Controller) {
	tickets := rg.Group("/tickets")
	{
		tickets.GET("", controller.GetTickets)           // GET /api/v1/tickets
		tickets.POST("/viewed", controller.TicketViewed) // POST /api/v1/tickets/viewed
	}
}
