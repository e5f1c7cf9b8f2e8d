package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/middleware"
)

// SetupRoutes configures all the application routes. Global middleware (logging, recovery,
// CORS) is applied to router by the caller.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
	workspaceHandler *WorkspaceHandler,
	meHandler *MeHandler,
	sharedHandler *SharedHandler,
) {
	apiV1 := router.Group("/api/v1")
	{
		workspaces := apiV1.Group("/workspaces")
		{
			workspaces.POST("", workspaceHandler.CreateWorkspace)
			workspaces.GET("/:workspaceId", workspaceHandler.GetWorkspace)
			workspaces.DELETE("/:workspaceId", workspaceHandler.CloseWorkspace)
			workspaces.POST("/:workspaceId/notifications/ack", workspaceHandler.AckNotifications)

			workspaces.POST("/:workspaceId/auth/signup", workspaceHandler.SignUp)
			workspaces.POST("/:workspaceId/auth/signin", workspaceHandler.SignIn)
			workspaces.POST("/:workspaceId/auth/signout", workspaceHandler.SignOut)
			workspaces.POST("/:workspaceId/auth/prompt", workspaceHandler.OpenAuthPrompt)
			workspaces.DELETE("/:workspaceId/auth/prompt", workspaceHandler.CloseAuthPrompt)

			workspaces.PATCH("/:workspaceId/form", workspaceHandler.UpdateField)
			workspaces.POST("/:workspaceId/form/preview", workspaceHandler.GeneratePreview)
			workspaces.GET("/:workspaceId/form/embed", workspaceHandler.EmbedHTML)
			workspaces.POST("/:workspaceId/form/load/:bannerId", workspaceHandler.LoadBanner)

			workspaces.POST("/:workspaceId/content/general", workspaceHandler.GenerateGeneral)
			workspaces.POST("/:workspaceId/content/general/share", workspaceHandler.ShareGeneral)
			workspaces.POST("/:workspaceId/content/amazon", workspaceHandler.GenerateAmazon)
			workspaces.POST("/:workspaceId/content/amazon/share", workspaceHandler.ShareAmazon)
			workspaces.POST("/:workspaceId/content/ideas", workspaceHandler.GenerateIdeas)
			workspaces.POST("/:workspaceId/content/ideas/:index/apply", workspaceHandler.ApplyIdea)

			workspaces.POST("/:workspaceId/banners", workspaceHandler.SaveBanner)
			workspaces.GET("/:workspaceId/banners/stream", workspaceHandler.StreamBanners)
			workspaces.DELETE("/:workspaceId/banners/:bannerId", workspaceHandler.DeleteBanner)

			workspaces.GET("/:workspaceId/profile/social-links", workspaceHandler.GetSocialLinks)
			workspaces.PUT("/:workspaceId/profile/social-links", workspaceHandler.UpdateSocialLinks)
		}

		me := apiV1.Group("/me", authMW.VerifyToken())
		{
			me.POST("/profile/initialize", meHandler.InitializeProfile)
			me.GET("/profile", meHandler.GetProfile)
			me.PUT("/profile/social-links", meHandler.UpdateSocialLinks)
			me.GET("/banners", meHandler.ListBanners)
			me.GET("/banners/stream", meHandler.StreamBanners)
			me.POST("/banners", meHandler.SaveBanner)
			me.DELETE("/banners/:bannerId", meHandler.DeleteBanner)
			me.POST("/shared/general", meHandler.ShareGeneral)
			me.POST("/shared/amazon", meHandler.ShareAmazon)
		}

		shared := apiV1.Group("/shared")
		{
			shared.GET("/general/:id", sharedHandler.GetGeneral)
			shared.GET("/amazon/:id", sharedHandler.GetAmazon)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "BannerForge backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}
