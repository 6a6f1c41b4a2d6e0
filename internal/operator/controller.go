package operator

import (
	"errors"
	"net/http"

	"totem/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Login handles POST /api/v1/operator/login
func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), req.PIN)
	if err != nil {
		if errors.Is(err, ErrInvalidPIN) {
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid PIN", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Login failed", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Operator authenticated", resp, nil)
}

// UpdateSettings handles PUT /api/v1/operator/settings
func (c *Controller) UpdateSettings(ctx *gin.Context) {
	var req SettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	snap, err := c.service.UpdateSettings(ctx.Request.Context(), &req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update settings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Settings updated", snap, nil)
}
