package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/core"
	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// WorkspaceHandler serves the stateful API: one workspace per browser context.
type WorkspaceHandler struct {
	registry *core.WorkspaceRegistry
	logger   *zap.Logger
}

func NewWorkspaceHandler(registry *core.WorkspaceRegistry, logger *zap.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{registry: registry, logger: logger}
}

// workspace looks up the :workspaceId workspace, replying with an error when it is gone.
func (h *WorkspaceHandler) workspace(c *gin.Context) (*core.Workspace, bool) {
	w, err := h.registry.Get(c.Param("workspaceId"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return nil, false
	}
	return w, true
}

// CreateWorkspace handles POST /workspaces
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	w, err := h.registry.Create(c.Request.Context(), req.PageURL, req.IDToken)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, w.State())
}

// GetWorkspace handles GET /workspaces/:workspaceId. Reading has no side effects: the
// notifications in the snapshot stay pending until acknowledged.
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, w.State())
}

// AckNotifications handles POST /workspaces/:workspaceId/notifications/ack
func (h *WorkspaceHandler) AckNotifications(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	var req AckNotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	n, err := w.AckNotifications(req.LastID)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, AckNotificationsResponse{Acknowledged: n})
}

// CloseWorkspace handles DELETE /workspaces/:workspaceId
func (h *WorkspaceHandler) CloseWorkspace(c *gin.Context) {
	if err := h.registry.Close(c.Param("workspaceId")); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SignUp handles POST /workspaces/:workspaceId/auth/signup
func (h *WorkspaceHandler) SignUp(c *gin.Context) {
	h.authenticate(c, (*core.Workspace).SignUp)
}

// SignIn handles POST /workspaces/:workspaceId/auth/signin
func (h *WorkspaceHandler) SignIn(c *gin.Context) {
	h.authenticate(c, (*core.Workspace).SignIn)
}

func (h *WorkspaceHandler) authenticate(c *gin.Context, fn func(*core.Workspace, context.Context, string, string) (models.Session, error)) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session, err := fn(w, c.Request.Context(), req.Email, req.Password)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Session: session, IDToken: w.IDToken()})
}

// SignOut handles POST /workspaces/:workspaceId/auth/signout
func (h *WorkspaceHandler) SignOut(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	if err := w.SignOut(c.Request.Context()); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// OpenAuthPrompt handles POST /workspaces/:workspaceId/auth/prompt
func (h *WorkspaceHandler) OpenAuthPrompt(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	w.OpenAuthPrompt()
	c.Status(http.StatusNoContent)
}

// CloseAuthPrompt handles DELETE /workspaces/:workspaceId/auth/prompt
func (h *WorkspaceHandler) CloseAuthPrompt(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	w.CloseAuthPrompt()
	c.Status(http.StatusNoContent)
}
