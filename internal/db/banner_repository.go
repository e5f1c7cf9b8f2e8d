package db

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// firestoreBannerRepository implements the BannerRepository interface using Firestore.
type firestoreBannerRepository struct {
	client *firestore.Client
	layout Layout
	logger *zap.Logger
}

// NewFirestoreBannerRepository creates a new instance of firestoreBannerRepository.
func NewFirestoreBannerRepository(client *firestore.Client, layout Layout, logger *zap.Logger) BannerRepository {
	if client == nil {
		logger.Fatal("Firestore client is not initialized for BannerRepository.")
	}
	return &firestoreBannerRepository{client: client, layout: layout, logger: logger}
}

func (r *firestoreBannerRepository) collection(userID string) *firestore.CollectionRef {
	return r.client.Collection(r.layout.Banners(userID))
}

func (r *firestoreBannerRepository) newestFirst(userID string) firestore.Query {
	return r.collection(userID).OrderBy("createdAt", firestore.Desc)
}

// Create stores cfg as a new banner. CreatedAt is filled in server-side.
func (r *firestoreBannerRepository) Create(ctx context.Context, userID string, cfg models.BannerConfig) (string, error) {
	if userID == "" {
		return "", errors.New("userID cannot be empty for Create operation")
	}
	ref := r.collection(userID).NewDoc()
	if _, err := ref.Create(ctx, &models.SavedBanner{BannerConfig: cfg}); err != nil {
		return "", fmt.Errorf("failed to create banner for user '%s': %w", userID, err)
	}
	return ref.ID, nil
}

// GetByID retrieves one saved banner.
func (r *firestoreBannerRepository) GetByID(ctx context.Context, userID, bannerID string) (*models.SavedBanner, error) {
	docSnap, err := r.collection(userID).Doc(bannerID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("banner '%s' not found: %w", bannerID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get banner '%s': %w", bannerID, err)
	}
	return decodeBanner(docSnap)
}

// List returns the user's banners, newest first.
func (r *firestoreBannerRepository) List(ctx context.Context, userID string) ([]*models.SavedBanner, error) {
	iter := r.newestFirst(userID).Documents(ctx)
	defer iter.Stop()

	banners := make([]*models.SavedBanner, 0)
	for {
		docSnap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate banners for user '%s': %w", userID, err)
		}
		banner, err := decodeBanner(docSnap)
		if err != nil {
			return nil, err
		}
		banners = append(banners, banner)
	}
	return banners, nil
}

// Subscribe opens a live query over the user's banners. Deliveries run on a dedicated
// goroutine in snapshot order.
func (r *firestoreBannerRepository) Subscribe(ctx context.Context, userID string, onData func([]*models.SavedBanner), onError func(error)) func() {
	ctx, cancel := context.WithCancel(ctx)
	var stopped atomic.Bool
	snapshots := r.newestFirst(userID).Snapshots(ctx)

	go func() {
		// Stop must not run concurrently with Next, so it is called here rather than by unsubscribe.
		defer snapshots.Stop()
		for {
			qs, err := snapshots.Next()
			if err != nil {
				if stopped.Load() || ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				r.logger.Error("Banner subscription failed", zap.String("userId", userID), zap.Error(err))
				onError(fmt.Errorf("banner subscription for user '%s': %w", userID, err))
				return
			}

			banners, err := readBannerSnapshot(qs)
			if stopped.Load() {
				return
			}
			if err != nil {
				onError(fmt.Errorf("read banner snapshot for user '%s': %w", userID, err))
				return
			}
			onData(banners)
		}
	}()

	return func() {
		if stopped.CompareAndSwap(false, true) {
			cancel()
		}
	}
}

// Delete removes a single banner document. Deleting a missing document is not an error.
func (r *firestoreBannerRepository) Delete(ctx context.Context, userID, bannerID string) error {
	if bannerID == "" {
		return errors.New("bannerID cannot be empty for Delete operation")
	}
	if _, err := r.collection(userID).Doc(bannerID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete banner '%s': %w", bannerID, err)
	}
	return nil
}

func decodeBanner(docSnap *firestore.DocumentSnapshot) (*models.SavedBanner, error) {
	var banner models.SavedBanner
	if err := docSnap.DataTo(&banner); err != nil {
		return nil, fmt.Errorf("failed to decode banner '%s': %w", docSnap.Ref.ID, err)
	}
	banner.ID = docSnap.Ref.ID
	return &banner, nil
}

func readBannerSnapshot(qs *firestore.QuerySnapshot) ([]*models.SavedBanner, error) {
	docs, err := qs.Documents.GetAll()
	if err != nil {
		return nil, err
	}
	banners := make([]*models.SavedBanner, 0, len(docs))
	for _, docSnap := range docs {
		banner, err := decodeBanner(docSnap)
		if err != nil {
			return nil, err
		}
		banners = append(banners, banner)
	}
	return banners, nil
}
