package email

import (
	"errors"
	"net/http"

	"totem/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	dispatcher *Dispatcher
	relay      *Relay
}

func NewController(dispatcher *Dispatcher, relay *Relay) *Controller {
	return &Controller{dispatcher: dispatcher, relay: relay}
}

// Submit handles POST /api/v1/email
func (c *Controller) Submit(ctx *gin.Context) {
	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.dispatcher.Submit(req.Email); err != nil {
		switch {
		case errors.Is(err, ErrInvalidEmail):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid email address", nil, nil)
		case errors.Is(err, ErrSendInFlight):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Email dispatch already in progress", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to dispatch email", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusAccepted, "Email dispatch started", gin.H{"email": req.Email}, nil)
}

// Status handles GET /api/v1/email/status
func (c *Controller) Status(ctx *gin.Context) {
	response.RespondJSON(ctx, "success", http.StatusOK, "Email status retrieved", gin.H{
		"status": c.dispatcher.Status(),
	}, nil)
}

// SendEmail handles POST /api/v1/send-email, the relay side.
func (c *Controller) SendEmail(ctx *gin.Context) {
	var req RelayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.relay.Send(ctx.Request.Context(), req); err != nil {
		if errors.Is(err, ErrRelayBadRequest) {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid relay payload", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to send email", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Email sent", gin.H{"email": req.Email}, nil)
}
