package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// firestoreProfileRepository implements the ProfileRepository interface using Firestore.
type firestoreProfileRepository struct {
	client *firestore.Client
	layout Layout
}

// NewFirestoreProfileRepository creates a new instance of firestoreProfileRepository.
func NewFirestoreProfileRepository(client *firestore.Client, layout Layout, logger *zap.Logger) ProfileRepository {
	if client == nil {
		logger.Fatal("Firestore client is not initialized for ProfileRepository.")
	}
	return &firestoreProfileRepository{client: client, layout: layout}
}

func (r *firestoreProfileRepository) doc(userID string) *firestore.DocumentRef {
	return r.client.Doc(r.layout.UserDoc(userID))
}

// GetByID reads the profile document of userID. The document is decoded by hand because
// isAdmin is written out-of-band and may hold any type; only a boolean true grants admin.
func (r *firestoreProfileRepository) GetByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByID operation")
	}
	docSnap, err := r.doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("profile for user '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile for user '%s': %w", userID, err)
	}
	return profileFromData(docSnap.Ref.ID, docSnap.Data()), nil
}

func profileFromData(userID string, data map[string]interface{}) *models.UserProfile {
	profile := &models.UserProfile{ID: userID}
	profile.Email, _ = data["email"].(string)
	if isAdmin, ok := data["isAdmin"].(bool); ok && isAdmin {
		profile.IsAdmin = true
	}
	if createdAt, ok := data["createdAt"].(time.Time); ok {
		profile.CreatedAt = createdAt
	}
	if links, ok := data["socialLinks"].(map[string]interface{}); ok {
		profile.SocialLinks = &models.SocialLinks{}
		profile.SocialLinks.Twitter, _ = links["twitter"].(string)
		profile.SocialLinks.LinkedIn, _ = links["linkedin"].(string)
		profile.SocialLinks.GitHub, _ = links["github"].(string)
		profile.SocialLinks.Website, _ = links["website"].(string)
	}
	return profile
}

// CreateIfAbsent creates the profile document inside a transaction so a concurrent sign-up
// never overwrites an existing document.
func (r *firestoreProfileRepository) CreateIfAbsent(ctx context.Context, profile *models.UserProfile) (bool, error) {
	if profile == nil || profile.ID == "" {
		return false, errors.New("profile ID cannot be empty for CreateIfAbsent operation")
	}
	ref := r.doc(profile.ID)

	created := false
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		created = false
		_, err := tx.Get(ref)
		if err == nil {
			return nil
		}
		if status.Code(err) != codes.NotFound {
			return fmt.Errorf("get profile: %w", err)
		}
		created = true
		return tx.Create(ref, profile)
	})
	if err != nil {
		return false, fmt.Errorf("failed to create profile for user '%s': %w", profile.ID, err)
	}
	return created, nil
}

// UpdateSocialLinks merges the links into the profile document, leaving every other field as is.
func (r *firestoreProfileRepository) UpdateSocialLinks(ctx context.Context, userID string, links models.SocialLinks) error {
	if userID == "" {
		return errors.New("userID cannot be empty for UpdateSocialLinks operation")
	}
	data := map[string]interface{}{
		"socialLinks": map[string]interface{}{
			"twitter":  links.Twitter,
			"linkedin": links.LinkedIn,
			"github":   links.GitHub,
			"website":  links.Website,
		},
	}
	if _, err := r.doc(userID).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update social links for user '%s': %w", userID, err)
	}
	return nil
}
