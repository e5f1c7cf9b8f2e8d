package db

import (
	"context"

	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// BannerRepository defines storage operations on a user's saved banners.
type BannerRepository interface {
	Create(ctx context.Context, userID string, cfg models.BannerConfig) (string, error) // Returns new banner ID
	GetByID(ctx context.Context, userID, bannerID string) (*models.SavedBanner, error)
	List(ctx context.Context, userID string) ([]*models.SavedBanner, error)
	// Subscribe delivers the full banner list, newest first, on every change until the
	// returned function is called or ctx ends. onError is called at most once, after which
	// no further deliveries happen.
	Subscribe(ctx context.Context, userID string, onData func([]*models.SavedBanner), onError func(error)) (unsubscribe func())
	Delete(ctx context.Context, userID, bannerID string) error
}

// ProfileRepository defines storage operations on per-user profile documents.
type ProfileRepository interface {
	GetByID(ctx context.Context, userID string) (*models.UserProfile, error)
	// CreateIfAbsent writes profile unless a document already exists for profile.ID.
	CreateIfAbsent(ctx context.Context, profile *models.UserProfile) (created bool, err error)
	UpdateSocialLinks(ctx context.Context, userID string, links models.SocialLinks) error
}

// SharedContentRepository defines storage operations on the public shared-content collections.
type SharedContentRepository interface {
	CreateGeneral(ctx context.Context, content *models.SharedGeneralContent) (string, error)
	CreateAmazon(ctx context.Context, content *models.SharedAmazonContent) (string, error)
	GetGeneral(ctx context.Context, id string) (*models.SharedGeneralContent, error)
	GetAmazon(ctx context.Context, id string) (*models.SharedAmazonContent, error)
}
