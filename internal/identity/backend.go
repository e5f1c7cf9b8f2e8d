package identity

import (
	"context"

	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// Backend is the hosted authentication service.
type Backend interface {
	SignUp(ctx context.Context, email, password string) (*models.AuthUser, error)
	SignIn(ctx context.Context, email, password string) (*models.AuthUser, error)
	// SignOut revokes the refresh tokens of uid.
	SignOut(ctx context.Context, uid string) error
	VerifyIDToken(ctx context.Context, idToken string) (*models.AuthUser, error)
}
