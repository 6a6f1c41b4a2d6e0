package tickets

import (
	"errors"
	"net/http"

	"totem/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// ViewTracker is notified when the carousel shows a ticket; the purchase
// flow uses it to arm the idle timer on the last one.
type ViewTracker interface {
	TicketViewed(index int)
}

type Controller struct {
	service Service
	views   ViewTracker
}

func NewController(service Service, views ViewTracker) *Controller {
	return &Controller{service: service, views: views}
}

// GetTickets handles GET /api/v1/tickets
func (c *Controller) GetTickets(ctx *gin.Context) {
	batch, err := c.service.Tickets(ctx.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrGenerationInFlight):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Ticket generation already in progress", nil, nil)
		case errors.Is(err, ErrStaleAttempt):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Generation attempt superseded", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to generate tickets", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tickets retrieved", batch, nil)
}

// TicketViewed handles POST /api/v1/tickets/viewed
func (c *Controller) TicketViewed(ctx *gin.Context) {
	var req ViewedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	c.views.TicketViewed(req.Index)
	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket view recorded", gin.H{"index": req.Index}, nil)
}
