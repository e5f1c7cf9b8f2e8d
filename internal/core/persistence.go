package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/db"
	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// Persistence is the typed facade over the banner and shared-content collections. Every
// user-scoped call rejects an empty userID before touching the database.
type Persistence struct {
	banners db.BannerRepository
	shared  db.SharedContentRepository
	logger  *zap.Logger
}

func NewPersistence(banners db.BannerRepository, shared db.SharedContentRepository, logger *zap.Logger) *Persistence {
	return &Persistence{banners: banners, shared: shared, logger: logger}
}

// SaveBanner stores cfg under userID and returns the new banner id.
func (p *Persistence) SaveBanner(ctx context.Context, userID string, cfg models.BannerConfig) (string, error) {
	if userID == "" {
		return "", ErrAuthRequired
	}
	id, err := p.banners.Create(ctx, userID, cfg)
	if err != nil {
		p.logger.Error("Error saving banner", zap.String("userId", userID), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	p.logger.Info("Banner saved", zap.String("userId", userID), zap.String("bannerId", id))
	return id, nil
}

// ListBanners subscribes to userID's banners, newest first. Without a user it delivers an
// empty list right away and returns a no-op unsubscribe.
func (p *Persistence) ListBanners(ctx context.Context, userID string, onData func([]*models.SavedBanner), onError func(error)) func() {
	if userID == "" {
		onData([]*models.SavedBanner{})
		return func() {}
	}
	return p.banners.Subscribe(ctx, userID, onData, func(err error) {
		onError(fmt.Errorf("%w: %w", ErrDatabase, err))
	})
}

// ListBannersOnce reads userID's banners a single time.
func (p *Persistence) ListBannersOnce(ctx context.Context, userID string) ([]*models.SavedBanner, error) {
	if userID == "" {
		return []*models.SavedBanner{}, nil
	}
	banners, err := p.banners.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return banners, nil
}

func (p *Persistence) GetBanner(ctx context.Context, userID, bannerID string) (*models.SavedBanner, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	if strings.TrimSpace(bannerID) == "" {
		return nil, ErrBannerIDRequired
	}
	banner, err := p.banners.GetByID(ctx, userID, bannerID)
	if err != nil {
		return nil, wrapDBError(err)
	}
	return banner, nil
}

// DeleteBanner removes one banner. Confirmation is the caller's job.
func (p *Persistence) DeleteBanner(ctx context.Context, userID, bannerID string) error {
	if userID == "" {
		return ErrAuthRequired
	}
	if strings.TrimSpace(bannerID) == "" {
		return ErrBannerIDRequired
	}
	if err := p.banners.Delete(ctx, userID, bannerID); err != nil {
		p.logger.Error("Error deleting banner", zap.String("userId", userID), zap.String("bannerId", bannerID), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	p.logger.Info("Banner deleted", zap.String("userId", userID), zap.String("bannerId", bannerID))
	return nil
}

// ShareContent publishes record, stamped with userID, and returns its id.
func (p *Persistence) ShareContent(ctx context.Context, userID string, record models.SharedRecord) (string, error) {
	if userID == "" {
		return "", ErrAuthRequired
	}
	record.Stamp(userID)

	var (
		id  string
		err error
	)
	switch rec := record.(type) {
	case *models.SharedGeneralContent:
		id, err = p.shared.CreateGeneral(ctx, rec)
	case *models.SharedAmazonContent:
		id, err = p.shared.CreateAmazon(ctx, rec)
	default:
		return "", fmt.Errorf("unsupported shared record %T", record)
	}
	if err != nil {
		p.logger.Error("Error sharing content", zap.String("userId", userID), zap.String("kind", string(record.Kind())), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	p.logger.Info("Content shared", zap.String("userId", userID), zap.String("kind", string(record.Kind())), zap.String("id", id))
	return id, nil
}

// GetSharedGeneral reads a public general record. No user is required.
func (p *Persistence) GetSharedGeneral(ctx context.Context, id string) (*models.SharedGeneralContent, error) {
	content, err := p.shared.GetGeneral(ctx, id)
	if err != nil {
		return nil, wrapDBError(err)
	}
	return content, nil
}

// GetSharedAmazon reads a public Amazon record. No user is required.
func (p *Persistence) GetSharedAmazon(ctx context.Context, id string) (*models.SharedAmazonContent, error) {
	content, err := p.shared.GetAmazon(ctx, id)
	if err != nil {
		return nil, wrapDBError(err)
	}
	return content, nil
}

// wrapDBError keeps db.ErrNotFound visible and marks everything else as a database failure.
func wrapDBError(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrDatabase, err)
}
