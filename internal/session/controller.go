package session

import (
	"net/http"

	"totem/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	store *Store
}

func NewController(store *Store) *Controller {
	return &Controller{store: store}
}

// GetSession handles GET /api/v1/session
func (c *Controller) GetSession(ctx *gin.Context) {
	response.RespondJSON(ctx, "success", http.StatusOK, "Session retrieved", c.store.Snapshot(), nil)
}
