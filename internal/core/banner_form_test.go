package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bannerforge/bannerforge-backend/internal/models"
)

func TestBannerForm_UpdateField(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		check func(t *testing.T, cfg models.BannerConfig)
	}{
		{"image url", "imageUrl", "https://img.example.com/a.png", func(t *testing.T, cfg models.BannerConfig) {
			assert.Equal(t, "https://img.example.com/a.png", cfg.ImageURL)
		}},
		{"destination link alias", "destinationLink", "https://shop.example.com", func(t *testing.T, cfg models.BannerConfig) {
			assert.Equal(t, "https://shop.example.com", cfg.Link)
		}},
		{"background color alias", "backgroundColor", "#000000", func(t *testing.T, cfg models.BannerConfig) {
			assert.Equal(t, "#000000", cfg.BgColor)
		}},
		{"short hex colour", "textColor", "#abc", func(t *testing.T, cfg models.BannerConfig) {
			assert.Equal(t, "#abc", cfg.TextColor)
		}},
		{"hex colour is trimmed", "accentColor", " #A1b2C3 ", func(t *testing.T, cfg models.BannerConfig) {
			assert.Equal(t, "#A1b2C3", cfg.AccentColor)
		}},
		{"font size parses integers", "fontSize", " 18 ", func(t *testing.T, cfg models.BannerConfig) {
			assert.Equal(t, 18, cfg.FontSize)
		}},
		{"width alias", "width", "728", func(t *testing.T, cfg models.BannerConfig) {
			assert.Equal(t, 728, cfg.BannerWidth)
		}},
		{"height out of range is kept", "bannerHeight", "5000", func(t *testing.T, cfg models.BannerConfig) {
			assert.Equal(t, 5000, cfg.BannerHeight)
		}},
		{"border animation", "borderAnimation", "glow", func(t *testing.T, cfg models.BannerConfig) {
			assert.Equal(t, models.BorderAnimationGlow, cfg.BorderAnimation)
		}},
		{"button text", "buttonText", "Shop now", func(t *testing.T, cfg models.BannerConfig) {
			assert.Equal(t, "Shop now", cfg.ButtonText)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewBannerForm()
			require.NoError(t, f.UpdateField(tt.field, tt.value))
			tt.check(t, f.Config())
		})
	}
}

func TestBannerForm_UpdateFieldErrors(t *testing.T) {
	f := NewBannerForm()
	before := f.Config()

	assert.ErrorIs(t, f.UpdateField("shadow", "x"), ErrUnknownField)
	assert.ErrorIs(t, f.UpdateField("fontSize", "big"), ErrInvalidFieldValue)
	assert.ErrorIs(t, f.UpdateField("bannerWidth", ""), ErrInvalidFieldValue)
	assert.ErrorIs(t, f.UpdateField("borderAnimation", "spin"), ErrInvalidFieldValue)
	assert.Equal(t, before, f.Config())
}

func TestBannerForm_RejectsNonHexColors(t *testing.T) {
	tests := []struct {
		field string
		value string
	}{
		{"bgColor", "rgb(10, 20, 30)"},
		{"bgColor", "hsl(200, 50%, 50%)"},
		{"textColor", "var(--brand)"},
		{"accentColor", "red"},
		{"accentColor", "#12345"},
		{"backgroundColor", "1a1a2e"},
		{"textColor", ""},
	}

	for _, tt := range tests {
		t.Run(tt.field+" "+tt.value, func(t *testing.T) {
			f := NewBannerForm()
			before := f.Config()
			assert.ErrorIs(t, f.UpdateField(tt.field, tt.value), ErrInvalidFieldValue)
			assert.Equal(t, before, f.Config())
		})
	}
}

func TestBannerForm_EmbedKeepsHexColors(t *testing.T) {
	f := NewBannerForm()
	require.NoError(t, f.UpdateField("bgColor", "#102030"))
	require.Error(t, f.UpdateField("accentColor", "rgb(1, 2, 3)"))

	html, err := BuildEmbedHTML(f.Config())
	require.NoError(t, err)
	assert.Contains(t, html, "#102030")
	assert.NotContains(t, html, "ZgotmplZ")
}

func TestBannerForm_OutOfRangeIsReported(t *testing.T) {
	f := NewBannerForm()
	require.NoError(t, f.UpdateField("fontSize", "40"))
	require.NoError(t, f.UpdateField("bannerWidth", "50"))

	st := f.State()
	assert.Equal(t, 40, st.Config.FontSize)
	assert.Equal(t, []string{"fontSize", "bannerWidth"}, st.OutOfRange)
}

func TestBannerForm_GeneratePreview(t *testing.T) {
	f := NewBannerForm()
	before := f.Config()
	assert.False(t, f.State().PreviewVisible)

	f.GeneratePreview()
	f.GeneratePreview()

	assert.True(t, f.State().PreviewVisible)
	assert.Equal(t, before, f.Config())
}

func TestBannerForm_ApplyIdea(t *testing.T) {
	f := NewBannerForm()
	before := f.Config()

	f.ApplyIdea(models.BannerIdea{IdeaName: "X", DescriptionSuggestion: "D", CTASuggestion: "C", VisualConcept: "V"})

	after := f.Config()
	assert.Equal(t, "D", after.Description)
	assert.Equal(t, "C", after.ButtonText)
	assert.True(t, f.State().PreviewVisible)

	after.Description = before.Description
	after.ButtonText = before.ButtonText
	assert.Equal(t, before, after)
}

func TestBannerForm_Load(t *testing.T) {
	f := NewBannerForm()
	saved := models.DefaultBannerConfig()
	saved.Description = "Saved banner"
	saved.BorderAnimation = ""

	f.Load(saved)

	assert.Equal(t, "Saved banner", f.Config().Description)
	assert.Equal(t, models.BorderAnimationNone, f.Config().BorderAnimation)
	assert.True(t, f.State().PreviewVisible)
}
