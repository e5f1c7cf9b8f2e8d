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

// ProfileView is a profile together with its resolved admin status.
type ProfileView struct {
	UserID      string             `json:"userId"`
	Email       string             `json:"email,omitempty"`
	IsAdmin     bool               `json:"isAdmin"`
	Exists      bool               `json:"exists"`
	SocialLinks models.SocialLinks `json:"socialLinks"`
}

// ProfileService serves profile reads and writes for an already authenticated user.
type ProfileService struct {
	profiles db.ProfileRepository
	logger   *zap.Logger
}

func NewProfileService(profiles db.ProfileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, logger: logger}
}

// Ensure creates the profile document of userID unless it already exists.
func (s *ProfileService) Ensure(ctx context.Context, userID, email string) (bool, error) {
	if userID == "" {
		return false, ErrAuthRequired
	}
	created, err := s.profiles.CreateIfAbsent(ctx, &models.UserProfile{ID: userID, Email: email})
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	if created {
		s.logger.Info("User profile created", zap.String("userId", userID))
	}
	return created, nil
}

// Get returns the profile of userID. A missing document yields an empty, non-admin view.
func (s *ProfileService) Get(ctx context.Context, userID string) (*ProfileView, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	view := &ProfileView{UserID: userID}
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return view, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	view.Exists = true
	view.Email = profile.Email
	view.IsAdmin = profile.IsAdmin
	if profile.SocialLinks != nil {
		view.SocialLinks = *profile.SocialLinks
	}
	return view, nil
}

// UpdateSocialLinks stores trimmed links on the profile of userID.
func (s *ProfileService) UpdateSocialLinks(ctx context.Context, userID string, links models.SocialLinks) (models.SocialLinks, error) {
	if userID == "" {
		return models.SocialLinks{}, ErrAuthRequired
	}
	links = models.SocialLinks{
		Twitter:  strings.TrimSpace(links.Twitter),
		LinkedIn: strings.TrimSpace(links.LinkedIn),
		GitHub:   strings.TrimSpace(links.GitHub),
		Website:  strings.TrimSpace(links.Website),
	}
	if err := s.profiles.UpdateSocialLinks(ctx, userID, links); err != nil {
		s.logger.Error("Error updating social links", zap.String("userId", userID), zap.Error(err))
		return models.SocialLinks{}, fmt.Errorf("%w: %w", ErrDatabase, err)
	}
	return links, nil
}
