package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bannerforge/bannerforge-backend/internal/core"
	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// UpdateField handles PATCH /workspaces/:workspaceId/form
func (h *WorkspaceHandler) UpdateField(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	var req UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	form, err := w.UpdateField(req.Field, req.Value)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// GeneratePreview handles POST /workspaces/:workspaceId/form/preview
func (h *WorkspaceHandler) GeneratePreview(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	form, err := w.GeneratePreview()
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// EmbedHTML handles GET /workspaces/:workspaceId/form/embed
func (h *WorkspaceHandler) EmbedHTML(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	html, err := w.EmbedHTML()
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, EmbedResponse{HTML: html})
}

// LoadBanner handles POST /workspaces/:workspaceId/form/load/:bannerId
func (h *WorkspaceHandler) LoadBanner(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	form, err := w.LoadBanner(c.Request.Context(), c.Param("bannerId"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// GenerateGeneral handles POST /workspaces/:workspaceId/content/general
func (h *WorkspaceHandler) GenerateGeneral(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	var req GeneralContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	platform, err := models.ParsePlatform(req.Platform)
	if err != nil {
		badRequest(c, err)
		return
	}
	st, err := w.GenerateGeneral(c.Request.Context(), core.GeneralContentRequest{
		Prompt:       req.Prompt,
		Platform:     platform,
		ExternalLink: req.ExternalLink,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// GenerateAmazon handles POST /workspaces/:workspaceId/content/amazon
func (h *WorkspaceHandler) GenerateAmazon(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	var req AmazonContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	platform, err := models.ParsePlatform(req.Platform)
	if err != nil {
		badRequest(c, err)
		return
	}
	st, err := w.GenerateAmazon(c.Request.Context(), core.AmazonContentRequest{
		Prompt:          req.Prompt,
		AffiliateLink:   req.AffiliateLink,
		Platform:        platform,
		ProductImageURL: req.ProductImageURL,
	})
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// GenerateIdeas handles POST /workspaces/:workspaceId/content/ideas
func (h *WorkspaceHandler) GenerateIdeas(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	var req IdeasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ideas, err := w.GenerateIdeas(c.Request.Context(), req.Prompt)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, IdeasResponse{Ideas: ideas})
}

// ApplyIdea handles POST /workspaces/:workspaceId/content/ideas/:index/apply
func (h *WorkspaceHandler) ApplyIdea(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Idea index must be an integer"})
		return
	}
	form, err := w.ApplyIdea(index)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// ShareGeneral handles POST /workspaces/:workspaceId/content/general/share
func (h *WorkspaceHandler) ShareGeneral(c *gin.Context) {
	h.share(c, (*core.Workspace).ShareGeneral)
}

// ShareAmazon handles POST /workspaces/:workspaceId/content/amazon/share
func (h *WorkspaceHandler) ShareAmazon(c *gin.Context) {
	h.share(c, (*core.Workspace).ShareAmazon)
}

func (h *WorkspaceHandler) share(c *gin.Context, fn func(*core.Workspace, context.Context) (core.ShareResult, error)) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	res, err := fn(w, c.Request.Context())
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// SaveBanner handles POST /workspaces/:workspaceId/banners
func (h *WorkspaceHandler) SaveBanner(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	id, err := w.SaveBanner(c.Request.Context())
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

// DeleteBanner handles DELETE /workspaces/:workspaceId/banners/:bannerId
func (h *WorkspaceHandler) DeleteBanner(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	if err := w.DeleteBanner(c.Request.Context(), c.Param("bannerId")); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// StreamBanners handles GET /workspaces/:workspaceId/banners/stream
func (h *WorkspaceHandler) StreamBanners(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	updates, stop, err := w.WatchBanners()
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	defer stop()
	streamBanners(c, updates, c.Request.Context().Done())
}

// GetSocialLinks handles GET /workspaces/:workspaceId/profile/social-links
func (h *WorkspaceHandler) GetSocialLinks(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	links, err := w.SocialLinks(c.Request.Context())
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

// UpdateSocialLinks handles PUT /workspaces/:workspaceId/profile/social-links
func (h *WorkspaceHandler) UpdateSocialLinks(c *gin.Context) {
	w, ok := h.workspace(c)
	if !ok {
		return
	}
	var req models.SocialLinks
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	links, err := w.UpdateSocialLinks(c.Request.Context(), req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, links)
}
