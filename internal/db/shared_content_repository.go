package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// firestoreSharedContentRepository implements the SharedContentRepository interface using Firestore.
type firestoreSharedContentRepository struct {
	client *firestore.Client
	layout Layout
}

// NewFirestoreSharedContentRepository creates a new instance of firestoreSharedContentRepository.
func NewFirestoreSharedContentRepository(client *firestore.Client, layout Layout, logger *zap.Logger) SharedContentRepository {
	if client == nil {
		logger.Fatal("Firestore client is not initialized for SharedContentRepository.")
	}
	return &firestoreSharedContentRepository{client: client, layout: layout}
}

func (r *firestoreSharedContentRepository) create(ctx context.Context, kind models.SharedContentKind, data interface{}) (string, error) {
	ref := r.client.Collection(r.layout.Shared(kind)).NewDoc()
	if _, err := ref.Create(ctx, data); err != nil {
		return "", fmt.Errorf("failed to create shared %s content: %w", kind, err)
	}
	return ref.ID, nil
}

func (r *firestoreSharedContentRepository) get(ctx context.Context, kind models.SharedContentKind, id string, dst interface{}) error {
	if id == "" {
		return fmt.Errorf("shared %s content id is empty: %w", kind, ErrNotFound)
	}
	docSnap, err := r.client.Collection(r.layout.Shared(kind)).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("shared %s content '%s' not found: %w", kind, id, ErrNotFound)
		}
		return fmt.Errorf("failed to get shared %s content '%s': %w", kind, id, err)
	}
	if err := docSnap.DataTo(dst); err != nil {
		return fmt.Errorf("failed to decode shared %s content '%s': %w", kind, id, err)
	}
	return nil
}

// CreateGeneral stores a general-content snapshot. SharedAt is filled in server-side.
func (r *firestoreSharedContentRepository) CreateGeneral(ctx context.Context, content *models.SharedGeneralContent) (string, error) {
	return r.create(ctx, models.SharedContentGeneral, content)
}

// CreateAmazon stores an Amazon-content snapshot. SharedAt is filled in server-side.
func (r *firestoreSharedContentRepository) CreateAmazon(ctx context.Context, content *models.SharedAmazonContent) (string, error) {
	return r.create(ctx, models.SharedContentAmazon, content)
}

func (r *firestoreSharedContentRepository) GetGeneral(ctx context.Context, id string) (*models.SharedGeneralContent, error) {
	var content models.SharedGeneralContent
	if err := r.get(ctx, models.SharedContentGeneral, id, &content); err != nil {
		return nil, err
	}
	content.ID = id
	return &content, nil
}

func (r *firestoreSharedContentRepository) GetAmazon(ctx context.Context, id string) (*models.SharedAmazonContent, error) {
	var content models.SharedAmazonContent
	if err := r.get(ctx, models.SharedContentAmazon, id, &content); err != nil {
		return nil, err
	}
	content.ID = id
	return &content, nil
}
