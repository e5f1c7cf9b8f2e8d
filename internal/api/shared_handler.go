package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/core"
)

// SharedHandler serves public shared-content records. No authentication is required.
type SharedHandler struct {
	persistence *core.Persistence
	logger      *zap.Logger
}

func NewSharedHandler(persistence *core.Persistence, logger *zap.Logger) *SharedHandler {
	return &SharedHandler{persistence: persistence, logger: logger}
}

// GetGeneral handles GET /shared/general/:id
func (h *SharedHandler) GetGeneral(c *gin.Context) {
	content, err := h.persistence.GetSharedGeneral(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

// GetAmazon handles GET /shared/amazon/:id
func (h *SharedHandler) GetAmazon(c *gin.Context) {
	content, err := h.persistence.GetSharedAmazon(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, content)
}
