package core

import (
	"context"

	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// AuthService is the authentication service of a single browser context.
type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*models.AuthUser, error)
	SignIn(ctx context.Context, email, password string) (*models.AuthUser, error)
	SignOut(ctx context.Context) error
	// Restore signs in the holder of a persisted ID token.
	Restore(ctx context.Context, idToken string) (*models.AuthUser, error)
	// OnAuthStateChange calls fn with the current user right away and again after every
	// sign-in or sign-out. Calls are serialized.
	OnAuthStateChange(fn func(*models.AuthUser)) (unsubscribe func())
	CurrentUser() *models.AuthUser
}

// Generator is the hosted generation API.
type Generator interface {
	GenerateGeneralContent(ctx context.Context, in models.GeneralContentInput) (string, error)
	GenerateAmazonContent(ctx context.Context, in models.AmazonContentInput) (string, error)
	GenerateBannerIdeas(ctx context.Context, theme string) ([]models.BannerIdea, error)
}

// Notifier receives user-visible, non-fatal messages.
type Notifier interface {
	Notify(n Notification)
}
