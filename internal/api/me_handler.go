package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/core"
	"github.com/bannerforge/bannerforge-backend/internal/middleware"
	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// MeHandler serves the stateless API for front ends that sign in to Firebase themselves.
// Every route runs behind AuthMiddleware.
type MeHandler struct {
	persistence   *core.Persistence
	profiles      *core.ProfileService
	publicBaseURL string
	logger        *zap.Logger
}

func NewMeHandler(persistence *core.Persistence, profiles *core.ProfileService, publicBaseURL string, logger *zap.Logger) *MeHandler {
	return &MeHandler{persistence: persistence, profiles: profiles, publicBaseURL: publicBaseURL, logger: logger}
}

func userFromContext(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return "", false
	}
	return userID, true
}

// InitializeProfile handles POST /me/profile/initialize
func (h *MeHandler) InitializeProfile(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}
	created, err := h.profiles.Ensure(c.Request.Context(), userID, c.GetString(middleware.ContextUserEmail))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	view, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, ProfileInitializeResponse{Created: created, Profile: view})
}

// GetProfile handles GET /me/profile
func (h *MeHandler) GetProfile(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}
	view, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateSocialLinks handles PUT /me/profile/social-links
func (h *MeHandler) UpdateSocialLinks(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}
	var req models.SocialLinks
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	links, err := h.profiles.UpdateSocialLinks(c.Request.Context(), userID, req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

// ListBanners handles GET /me/banners
func (h *MeHandler) ListBanners(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}
	banners, err := h.persistence.ListBannersOnce(c.Request.Context(), userID)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, BannersResponse{Items: banners})
}

// StreamBanners handles GET /me/banners/stream
func (h *MeHandler) StreamBanners(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	updates := make(latestBanners, 1)
	unsubscribe := h.persistence.ListBanners(ctx, userID,
		func(items []*models.SavedBanner) {
			updates.push(core.BannerListState{Items: items})
		},
		func(err error) {
			h.logger.Error("Banner stream failed", zap.String("userId", userID), zap.Error(err))
			updates.push(core.BannerListState{Items: []*models.SavedBanner{}, Error: "Failed to load saved banners."})
		})
	defer unsubscribe()
	streamBanners(c, updates, ctx.Done())
}

// SaveBanner handles POST /me/banners. Omitted fields take the editor defaults.
func (h *MeHandler) SaveBanner(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}
	cfg := models.DefaultBannerConfig()
	if err := c.ShouldBindJSON(&cfg); err != nil {
		badRequest(c, err)
		return
	}
	if !cfg.BorderAnimation.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid field", Details: "borderAnimation must be none, pulse or glow"})
		return
	}
	if bad := cfg.InvalidColors(); len(bad) > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid field", Details: strings.Join(bad, ", ") + " must be hex colours like #1a1a2e"})
		return
	}
	if cfg.BorderAnimation == "" {
		cfg.BorderAnimation = models.BorderAnimationNone
	}
	id, err := h.persistence.SaveBanner(c.Request.Context(), userID, cfg)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

// DeleteBanner handles DELETE /me/banners/:bannerId
func (h *MeHandler) DeleteBanner(c *gin.Context) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}
	if err := h.persistence.DeleteBanner(c.Request.Context(), userID, c.Param("bannerId")); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ShareGeneral handles POST /me/shared/general
func (h *MeHandler) ShareGeneral(c *gin.Context) {
	var req ShareGeneralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	platform, err := models.ParsePlatform(req.Platform)
	if err != nil {
		badRequest(c, err)
		return
	}
	html, err := core.ComposeGeneralHTML(req.Content, req.ImageURL, platform)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	h.share(c, &models.SharedGeneralContent{
		Prompt:       req.Prompt,
		Content:      req.Content,
		ImageURL:     req.ImageURL,
		Platform:     platform,
		ExternalLink: req.ExternalLink,
		HTMLOutput:   html,
	})
}

// ShareAmazon handles POST /me/shared/amazon
func (h *MeHandler) ShareAmazon(c *gin.Context) {
	var req ShareAmazonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	platform, err := models.ParsePlatform(req.Platform)
	if err != nil {
		badRequest(c, err)
		return
	}
	html, err := core.ComposeAmazonHTML(req.Content, req.ProductImageURL, req.AffiliateLink, platform)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	h.share(c, &models.SharedAmazonContent{
		Prompt:          req.Prompt,
		Content:         req.Content,
		ProductImageURL: req.ProductImageURL,
		AffiliateLink:   req.AffiliateLink,
		Platform:        platform,
		HTMLOutput:      html,
	})
}

func (h *MeHandler) share(c *gin.Context, record models.SharedRecord) {
	userID, ok := userFromContext(c)
	if !ok {
		return
	}
	id, err := h.persistence.ShareContent(c.Request.Context(), userID, record)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	url, err := core.BuildShareURL(h.publicBaseURL, record.Kind(), id)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, core.ShareResult{ID: id, URL: url})
}
