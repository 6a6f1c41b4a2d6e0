package museum

import (
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

// GetMuseum handles GET /api/v1/museum
func (c *Controller) GetMuseum(ctx *gin.Context) {
	m := c.service.Current(ctx.Request.Context())
	response.RespondJSON(ctx, "success", http.StatusOK, "Museum retrieved", m, nil)
}
