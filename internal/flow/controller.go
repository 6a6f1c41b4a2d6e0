package flow

import (
	"errors"
	"net/http"

	"totem/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service *Service
}

func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// GetState handles GET /api/v1/flow/state
func (c *Controller) GetState(ctx *gin.Context) {
	armed, remaining := c.service.TimerState()
	response.RespondJSON(ctx, "success", http.StatusOK, "Flow state retrieved", gin.H{
		"screen":          c.service.State(),
		"timer_armed":     armed,
		"timer_remaining": remaining,
	}, nil)
}

// ChooseLanguage handles POST /api/v1/flow/language
func (c *Controller) ChooseLanguage(ctx *gin.Context) {
	var req LanguageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	screen, err := c.service.ChooseLanguage(req.Code)
	if err != nil {
		c.respondTransitionError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Language selected", gin.H{"screen": screen}, nil)
}

// IncrementQuantity handles POST /api/v1/flow/quantity/increment
func (c *Controller) IncrementQuantity(ctx *gin.Context) {
	c.adjustQuantity(ctx, c.service.IncrementQuantity)
}

// DecrementQuantity handles POST /api/v1/flow/quantity/decrement
func (c *Controller) DecrementQuantity(ctx *gin.Context) {
	c.adjustQuantity(ctx, c.service.DecrementQuantity)
}

func (c *Controller) adjustQuantity(ctx *gin.Context, adjust func() (int, error)) {
	quantity, err := adjust()
	if err != nil {
		c.respondTransitionError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Quantity updated", gin.H{"quantity": quantity}, nil)
}

// Proceed handles POST /api/v1/flow/proceed
func (c *Controller) Proceed(ctx *gin.Context) {
	screen, err := c.service.Proceed()
	if err != nil {
		c.respondTransitionError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Proceeded", gin.H{"screen": screen}, nil)
}

// Back handles POST /api/v1/flow/back
func (c *Controller) Back(ctx *gin.Context) {
	screen, err := c.service.Back()
	if err != nil {
		c.respondTransitionError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Went back", gin.H{"screen": screen}, nil)
}

// SelectDonation handles POST /api/v1/flow/donation
func (c *Controller) SelectDonation(ctx *gin.Context) {
	var req DonationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid donation amount", nil, err.Error())
		return
	}

	screen, err := c.service.SelectDonation(req.Amount)
	if err != nil {
		c.respondTransitionError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Donation selected", gin.H{"screen": screen, "amount": req.Amount}, nil)
}

// Pay handles POST /api/v1/flow/pay
func (c *Controller) Pay(ctx *gin.Context) {
	result, err := c.service.Pay(ctx.Request.Context())
	if err != nil {
		c.respondTransitionError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment confirmed", result, nil)
}

// NewPurchase handles POST /api/v1/flow/new-purchase
func (c *Controller) NewPurchase(ctx *gin.Context) {
	screen, err := c.service.NewPurchase()
	if err != nil {
		c.respondTransitionError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "New purchase started", gin.H{"screen": screen}, nil)
}

// TimerStatus handles GET /api/v1/timer
func (c *Controller) TimerStatus(ctx *gin.Context) {
	armed, remaining := c.service.TimerState()
	response.RespondJSON(ctx, "success", http.StatusOK, "Timer state retrieved", gin.H{
		"armed":     armed,
		"remaining": remaining,
	}, nil)
}

// Touch handles POST /api/v1/flow/touch
func (c *Controller) Touch(ctx *gin.Context) {
	c.service.Touch()
	response.RespondJSON(ctx, "success", http.StatusOK, "Interaction recorded", nil, nil)
}

func (c *Controller) respondTransitionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidTransition):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Action not allowed on current screen", nil, err.Error())
	case errors.Is(err, ErrInvalidDonation):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Donation amount must be positive", nil, err.Error())
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Flow action failed", nil, err.Error())
	}
}
