package core

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// BannerForm holds the banner being edited and whether its preview is shown.
type BannerForm struct {
	mu             sync.RWMutex
	config         models.BannerConfig
	previewVisible bool
}

func NewBannerForm() *BannerForm {
	return &BannerForm{config: models.DefaultBannerConfig()}
}

// FormState is a snapshot of a BannerForm.
type FormState struct {
	Config         models.BannerConfig `json:"config"`
	PreviewVisible bool                `json:"previewVisible"`
	// OutOfRange lists numeric fields outside the editor ranges. They are kept as entered.
	OutOfRange []string `json:"outOfRange,omitempty"`
}

func (f *BannerForm) State() FormState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return FormState{Config: f.config, PreviewVisible: f.previewVisible, OutOfRange: f.config.OutOfRange()}
}

func (f *BannerForm) Config() models.BannerConfig {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.config
}

// fieldAliases maps accepted field names to the canonical JSON name.
var fieldAliases = map[string]string{
	"imageurl":        "imageUrl",
	"description":     "description",
	"link":            "link",
	"destinationlink": "link",
	"bgcolor":         "bgColor",
	"backgroundcolor": "bgColor",
	"textcolor":       "textColor",
	"accentcolor":     "accentColor",
	"fontsize":        "fontSize",
	"bannerwidth":     "bannerWidth",
	"width":           "bannerWidth",
	"bannerheight":    "bannerHeight",
	"height":          "bannerHeight",
	"buttontext":      "buttonText",
	"borderanimation": "borderAnimation",
}

// UpdateField sets one field from its form input. Numeric fields must parse as integers but
// are not clamped to the editor ranges.
func (f *BannerForm) UpdateField(name, value string) error {
	field, ok := fieldAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	cfg := f.config

	switch field {
	case "imageUrl":
		cfg.ImageURL = value
	case "description":
		cfg.Description = value
	case "link":
		cfg.Link = value
	case "bgColor", "textColor", "accentColor":
		color := strings.TrimSpace(value)
		if !models.IsHexColor(color) {
			return fmt.Errorf("%w: %s must be a hex colour like #1a1a2e", ErrInvalidFieldValue, field)
		}
		switch field {
		case "bgColor":
			cfg.BgColor = color
		case "textColor":
			cfg.TextColor = color
		default:
			cfg.AccentColor = color
		}
	case "buttonText":
		cfg.ButtonText = value
	case "borderAnimation":
		anim := models.BorderAnimation(strings.TrimSpace(value))
		if !anim.Valid() {
			return fmt.Errorf("%w: borderAnimation must be none, pulse or glow", ErrInvalidFieldValue)
		}
		if anim == "" {
			anim = models.BorderAnimationNone
		}
		cfg.BorderAnimation = anim
	case "fontSize", "bannerWidth", "bannerHeight":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", ErrInvalidFieldValue, field)
		}
		switch field {
		case "fontSize":
			cfg.FontSize = n
		case "bannerWidth":
			cfg.BannerWidth = n
		default:
			cfg.BannerHeight = n
		}
	}

	f.config = cfg
	return nil
}

// GeneratePreview shows the preview. It never changes the config.
func (f *BannerForm) GeneratePreview() {
	f.mu.Lock()
	f.previewVisible = true
	f.mu.Unlock()
}

// ApplyIdea copies an idea's description and call to action into the banner and shows the
// preview. Every other field is kept.
func (f *BannerForm) ApplyIdea(idea models.BannerIdea) {
	f.mu.Lock()
	f.config.Description = idea.DescriptionSuggestion
	f.config.ButtonText = idea.CTASuggestion
	f.previewVisible = true
	f.mu.Unlock()
}

// Load replaces the banner with a saved one and shows the preview.
func (f *BannerForm) Load(cfg models.BannerConfig) {
	if cfg.BorderAnimation == "" {
		cfg.BorderAnimation = models.BorderAnimationNone
	}
	f.mu.Lock()
	f.config = cfg
	f.previewVisible = true
	f.mu.Unlock()
}

// EmbedHTML renders the current banner.
func (f *BannerForm) EmbedHTML() (string, error) {
	return BuildEmbedHTML(f.Config())
}
