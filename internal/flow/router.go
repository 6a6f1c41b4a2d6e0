package flow

import "github.com/gin-gonic/gin"

// SetupFlowRoutes configures all purchase-flow routes
func SetupFlowRoutes(rg *gin.RouterGroup, controller *Controller) {
	flow := rg.Group("/flow")
	{
		flow.GET("/state", controller.GetState)                         // GET  /api/v1/flow/state
		flow.POST("/language", controller.ChooseLanguage)               // POST /api/v1/flow/language
		flow.POST("/quantity/increment", controller.IncrementQuantity)  // POST /api/v1/flow/quantity/increment
		flow.POST("/quantity/decrement", controller.DecrementQuantity)  // POST /api/v1/flow/quantity/decrement
		flow.POST("/proceed", controller.Proceed)                       // POST /api/v1/flow/proceed
		flow.POST("/back", controller.Back)                             // POST /api/v1/flow/back
		flow.POST("/donation", controller.SelectDonation)               // POST /api/v1/flow/donation
		flow.POST("/pay", controller.Pay)                               // POST /api/v1/flow/pay
		flow.POST("/new-purchase", controller.NewPurchase)              // POST /api/v1/flow/new-purchase
		flow.POST("/touch", controller.Touch)                           // POST /api/v1/flow/touch
	}

	rg.GET("/timer", controller.TimerStatus) // GET /api/v1/timer
}
