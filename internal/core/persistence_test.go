package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/db"
	"github.com/bannerforge/bannerforge-backend/internal/models"
)

func TestPersistence_SaveBanner(t *testing.T) {
	t.Run("no user never touches the database", func(t *testing.T) {
		repo := newMockBannerRepository()
		p := NewPersistence(repo, &mockSharedContentRepository{}, zap.NewNop())

		_, err := p.SaveBanner(context.Background(), "", models.DefaultBannerConfig())
		assert.ErrorIs(t, err, ErrAuthRequired)
		assert.Equal(t, 0, repo.createCalls)
	})

	t.Run("saved banner shows up in the live list", func(t *testing.T) {
		repo := newMockBannerRepository()
		p := NewPersistence(repo, &mockSharedContentRepository{}, zap.NewNop())

		var latest []*models.SavedBanner
		unsub := p.ListBanners(context.Background(), "u1", func(items []*models.SavedBanner) { latest = items }, func(error) {})
		defer unsub()
		assert.Empty(t, latest)

		cfg := models.DefaultBannerConfig()
		cfg.Description = "Spring sale"
		id, err := p.SaveBanner(context.Background(), "u1", cfg)
		require.NoError(t, err)

		require.Len(t, latest, 1)
		assert.Equal(t, id, latest[0].ID)
		assert.Equal(t, cfg, latest[0].BannerConfig)
	})

	t.Run("database failure is wrapped", func(t *testing.T) {
		repo := newMockBannerRepository()
		repo.CreateErr = errors.New("permission denied")
		p := NewPersistence(repo, &mockSharedContentRepository{}, zap.NewNop())

		_, err := p.SaveBanner(context.Background(), "u1", models.DefaultBannerConfig())
		assert.ErrorIs(t, err, ErrDatabase)
	})
}

func TestPersistence_ListBannersWithoutUser(t *testing.T) {
	repo := newMockBannerRepository()
	p := NewPersistence(repo, &mockSharedContentRepository{}, zap.NewNop())

	var got []*models.SavedBanner
	unsub := p.ListBanners(context.Background(), "", func(items []*models.SavedBanner) { got = items }, func(error) {})
	unsub()

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, repo.activeSubscriptions())
}

func TestPersistence_ListBannersError(t *testing.T) {
	repo := newMockBannerRepository()
	p := NewPersistence(repo, &mockSharedContentRepository{}, zap.NewNop())

	var gotErr error
	unsub := p.ListBanners(context.Background(), "u1", func([]*models.SavedBanner) {}, func(err error) { gotErr = err })
	defer unsub()

	repo.fail("u1", errors.New("stream broken"))
	assert.ErrorIs(t, gotErr, ErrDatabase)
}

func TestPersistence_DeleteBanner(t *testing.T) {
	repo := newMockBannerRepository()
	p := NewPersistence(repo, &mockSharedContentRepository{}, zap.NewNop())

	id, err := p.SaveBanner(context.Background(), "u1", models.DefaultBannerConfig())
	require.NoError(t, err)

	assert.ErrorIs(t, p.DeleteBanner(context.Background(), "", id), ErrAuthRequired)
	assert.ErrorIs(t, p.DeleteBanner(context.Background(), "u1", " "), ErrBannerIDRequired)
	assert.Equal(t, 0, repo.deleteCalls)

	require.NoError(t, p.DeleteBanner(context.Background(), "u1", id))
	items, err := p.ListBannersOnce(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = p.GetBanner(context.Background(), "u1", id)
	assert.ErrorIs(t, err, db.ErrNotFound)
	assert.NotErrorIs(t, err, ErrDatabase)
}

func TestPersistence_ShareContent(t *testing.T) {
	var stored *models.SharedGeneralContent
	shared := &mockSharedContentRepository{
		CreateGeneralFunc: func(ctx context.Context, content *models.SharedGeneralContent) (string, error) {
			stored = content
			return "s1", nil
		},
		CreateAmazonFunc: func(ctx context.Context, content *models.SharedAmazonContent) (string, error) {
			return "", errors.New("unavailable")
		},
	}
	p := NewPersistence(newMockBannerRepository(), shared, zap.NewNop())

	_, err := p.ShareContent(context.Background(), "", &models.SharedGeneralContent{Content: "x"})
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Equal(t, 0, shared.createdCount)

	id, err := p.ShareContent(context.Background(), "u1", &models.SharedGeneralContent{Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, "s1", id)
	assert.Equal(t, "u1", stored.SharedBy)

	_, err = p.ShareContent(context.Background(), "u1", &models.SharedAmazonContent{Content: "y"})
	assert.ErrorIs(t, err, ErrDatabase)
}

func TestPersistence_GetSharedNotFound(t *testing.T) {
	p := NewPersistence(newMockBannerRepository(), &mockSharedContentRepository{}, zap.NewNop())

	_, err := p.GetSharedGeneral(context.Background(), "missing")
	assert.ErrorIs(t, err, db.ErrNotFound)
	_, err = p.GetSharedAmazon(context.Background(), "missing")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestBuildShareURL(t *testing.T) {
	tests := []struct {
		name    string
		pageURL string
		kind    models.SharedContentKind
		want    string
	}{
		{"general", "https://app.example.com/", models.SharedContentGeneral, "https://app.example.com/?sharedAiContentId=abc"},
		{"amazon drops other params", "https://app.example.com/edit?tab=2#top", models.SharedContentAmazon, "https://app.example.com/edit?sharedAmazonContentId=abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildShareURL(tt.pageURL, tt.kind, "abc")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
