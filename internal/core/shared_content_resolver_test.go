package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/models"
)

func newTestResolver(t *testing.T, shared *mockSharedContentRepository, pageURL string) (*SharedContentResolver, *NotificationQueue) {
	t.Helper()
	q := NewNotificationQueue(0)
	r, err := NewSharedContentResolver(shared, pageURL, q, zap.NewNop())
	require.NoError(t, err)
	return r, q
}

func TestSharedContentResolver_General(t *testing.T) {
	shared := &mockSharedContentRepository{GetGeneralFunc: func(ctx context.Context, id string) (*models.SharedGeneralContent, error) {
		return &models.SharedGeneralContent{ID: id, Content: "shared post", Platform: models.PlatformX}, nil
	}}
	r, _ := newTestResolver(t, shared, "https://app.example.com/?sharedAiContentId=abc&utm=1")

	record := r.Resolve(context.Background())

	require.NotNil(t, record)
	general, ok := record.(*models.SharedGeneralContent)
	require.True(t, ok)
	assert.Equal(t, "abc", general.ID)
	assert.Equal(t, "https://app.example.com/?utm=1", r.CurrentURL())

	assert.Nil(t, r.Resolve(context.Background()))
	assert.Equal(t, 1, shared.generalGets)
}

func TestSharedContentResolver_GeneralWinsOverAmazon(t *testing.T) {
	shared := &mockSharedContentRepository{
		GetGeneralFunc: func(ctx context.Context, id string) (*models.SharedGeneralContent, error) {
			return &models.SharedGeneralContent{ID: id}, nil
		},
	}
	r, _ := newTestResolver(t, shared, "https://app.example.com/?sharedAiContentId=g1&sharedAmazonContentId=a1")

	record := r.Resolve(context.Background())

	assert.Equal(t, models.SharedContentGeneral, record.Kind())
	assert.Equal(t, 0, shared.amazonGets)
	assert.Equal(t, "https://app.example.com/?sharedAmazonContentId=a1", r.CurrentURL())
}

func TestSharedContentResolver_Amazon(t *testing.T) {
	shared := &mockSharedContentRepository{GetAmazonFunc: func(ctx context.Context, id string) (*models.SharedAmazonContent, error) {
		return &models.SharedAmazonContent{ID: id, AffiliateLink: "https://amzn.to/k"}, nil
	}}
	r, _ := newTestResolver(t, shared, "https://app.example.com/?sharedAmazonContentId=a1")

	record := r.Resolve(context.Background())

	amazon, ok := record.(*models.SharedAmazonContent)
	require.True(t, ok)
	assert.Equal(t, "https://amzn.to/k", amazon.AffiliateLink)
	assert.Equal(t, "https://app.example.com/", r.CurrentURL())
}

func TestSharedContentResolver_NotFoundKeepsParam(t *testing.T) {
	r, q := newTestResolver(t, &mockSharedContentRepository{}, "https://app.example.com/?sharedAiContentId=gone")

	assert.Nil(t, r.Resolve(context.Background()))
	assert.Equal(t, "https://app.example.com/?sharedAiContentId=gone", r.CurrentURL())
	assert.Empty(t, q.Drain())
}

func TestSharedContentResolver_ReadFailureNotifies(t *testing.T) {
	shared := &mockSharedContentRepository{GetGeneralFunc: func(ctx context.Context, id string) (*models.SharedGeneralContent, error) {
		return nil, errors.New("unavailable")
	}}
	r, q := newTestResolver(t, shared, "https://app.example.com/?sharedAiContentId=x")

	assert.Nil(t, r.Resolve(context.Background()))
	notes := q.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, NotificationError, notes[0].Level)
}

func TestSharedContentResolver_NoParam(t *testing.T) {
	shared := &mockSharedContentRepository{}
	r, _ := newTestResolver(t, shared, "https://app.example.com/")

	assert.Nil(t, r.Resolve(context.Background()))
	assert.Equal(t, 0, shared.generalGets+shared.amazonGets)
}
