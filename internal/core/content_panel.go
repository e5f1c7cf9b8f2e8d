package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// GeneralContentState is the general-content sub-panel.
type GeneralContentState struct {
	Prompt       string          `json:"prompt"`
	Platform     models.Platform `json:"platform"`
	ExternalLink string          `json:"externalLink,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Generating   bool            `json:"generating"`
	Content      string          `json:"content"`
	HTML         string          `json:"html"`
}

// AmazonContentState is the Amazon-content sub-panel.
type AmazonContentState struct {
	Prompt          string          `json:"prompt"`
	AffiliateLink   string          `json:"affiliateLink"`
	ProductImageURL string          `json:"productImageUrl,omitempty"`
	Platform        models.Platform `json:"platform"`
	Generating      bool            `json:"generating"`
	Content         string          `json:"content"`
	HTML            string          `json:"html"`
}

// BannerIdeasState is the banner-ideas sub-panel.
type BannerIdeasState struct {
	Prompt     string              `json:"prompt"`
	Generating bool                `json:"generating"`
	Ideas      []models.BannerIdea `json:"ideas"`
}

// ContentState is a snapshot of a ContentPanel.
type ContentState struct {
	General GeneralContentState `json:"general"`
	Amazon  AmazonContentState  `json:"amazon"`
	Ideas   BannerIdeasState    `json:"ideas"`
}

// GeneralContentRequest is the input of ContentPanel.GenerateGeneral.
type GeneralContentRequest struct {
	Prompt       string
	Platform     models.Platform
	ExternalLink string
	ImageURL     string
}

// AmazonContentRequest is the input of ContentPanel.GenerateAmazon.
type AmazonContentRequest struct {
	Prompt          string
	AffiliateLink   string
	Platform        models.Platform
	ProductImageURL string
}

// ContentPanel holds the three generation sub-panels. Each sub-panel runs one generation at
// a time; a failed generation keeps the previous result.
type ContentPanel struct {
	generator Generator
	notifier  Notifier
	logger    *zap.Logger

	mu      sync.Mutex
	general GeneralContentState
	amazon  AmazonContentState
	ideas   BannerIdeasState
}

func NewContentPanel(generator Generator, notifier Notifier, logger *zap.Logger) *ContentPanel {
	return &ContentPanel{
		generator: generator,
		notifier:  notifier,
		logger:    logger,
		general:   GeneralContentState{Platform: models.PlatformBlog},
		amazon:    AmazonContentState{Platform: models.PlatformBlog},
		ideas:     BannerIdeasState{Ideas: []models.BannerIdea{}},
	}
}

func (p *ContentPanel) State() ContentState {
	p.mu.Lock()
	defer p.mu.Unlock()
	ideas := append([]models.BannerIdea{}, p.ideas.Ideas...)
	st := ContentState{General: p.general, Amazon: p.amazon, Ideas: p.ideas}
	st.Ideas.Ideas = ideas
	return st
}

// GenerateGeneral drafts general content and composes its display HTML.
func (p *ContentPanel) GenerateGeneral(ctx context.Context, req GeneralContentRequest) (GeneralContentState, error) {
	if req.Platform == "" {
		req.Platform = models.PlatformBlog
	}

	p.mu.Lock()
	if p.general.Generating {
		p.mu.Unlock()
		return GeneralContentState{}, ErrGenerationInProgress
	}
	p.general.Prompt = req.Prompt
	p.general.Platform = req.Platform
	p.general.ExternalLink = req.ExternalLink
	p.general.ImageURL = req.ImageURL
	if strings.TrimSpace(req.Prompt) == "" {
		p.mu.Unlock()
		notifyError(p.notifier, "Error", "Please enter a prompt for content generation.")
		return GeneralContentState{}, ErrPromptRequired
	}
	p.general.Generating = true
	p.mu.Unlock()

	content, err := p.generator.GenerateGeneralContent(ctx, models.GeneralContentInput{
		Prompt:       req.Prompt,
		Platform:     req.Platform,
		ExternalLink: strings.TrimSpace(req.ExternalLink),
	})
	var html string
	if err == nil {
		html, err = ComposeGeneralHTML(content, req.ImageURL, req.Platform)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.general.Generating = false
	if err != nil {
		p.logger.Error("Error generating general content", zap.Error(err))
		notifyError(p.notifier, "Error", "Failed to generate AI content.")
		return p.general, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	p.general.Content = content
	p.general.HTML = html
	notifySuccess(p.notifier, "Success", "AI content generated!")
	return p.general, nil
}

// AmazonPrompt is the product description sent to the generation API.
func AmazonPrompt(productPrompt, productImageURL string) string {
	image := "No image provided."
	if strings.TrimSpace(productImageURL) != "" {
		image = productImageURL
	}
	return "Product: " + productPrompt + ". Image available at: " + image
}

// GenerateAmazon drafts affiliate content. Prompt and affiliate link are both required and
// are checked before the generation API is called.
func (p *ContentPanel) GenerateAmazon(ctx context.Context, req AmazonContentRequest) (AmazonContentState, error) {
	if req.Platform == "" {
		req.Platform = models.PlatformBlog
	}

	p.mu.Lock()
	if p.amazon.Generating {
		p.mu.Unlock()
		return AmazonContentState{}, ErrGenerationInProgress
	}
	p.amazon.Prompt = req.Prompt
	p.amazon.AffiliateLink = req.AffiliateLink
	p.amazon.Platform = req.Platform
	p.amazon.ProductImageURL = req.ProductImageURL
	if err := validateAmazonRequest(req); err != nil {
		p.mu.Unlock()
		if errors.Is(err, ErrPromptRequired) {
			notifyError(p.notifier, "Error", "Please enter a prompt for Amazon content.")
		} else {
			notifyError(p.notifier, "Error", "Please enter your Amazon affiliate link.")
		}
		return AmazonContentState{}, err
	}
	p.amazon.Generating = true
	p.mu.Unlock()

	content, err := p.generator.GenerateAmazonContent(ctx, models.AmazonContentInput{
		Prompt:        AmazonPrompt(req.Prompt, req.ProductImageURL),
		AffiliateLink: req.AffiliateLink,
		Platform:      req.Platform,
	})
	var html string
	if err == nil {
		html, err = ComposeAmazonHTML(content, req.ProductImageURL, req.AffiliateLink, req.Platform)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.amazon.Generating = false
	if err != nil {
		p.logger.Error("Error generating Amazon content", zap.Error(err))
		notifyError(p.notifier, "Error", "Failed to generate Amazon content.")
		return p.amazon, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	p.amazon.Content = content
	p.amazon.HTML = html
	notifySuccess(p.notifier, "Success", "Amazon content generated!")
	return p.amazon, nil
}

func validateAmazonRequest(req AmazonContentRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return ErrPromptRequired
	}
	if strings.TrimSpace(req.AffiliateLink) == "" {
		return ErrAffiliateLinkRequired
	}
	return nil
}

// GenerateIdeas brainstorms banner ideas. The previous ideas are cleared when a run starts.
func (p *ContentPanel) GenerateIdeas(ctx context.Context, theme string) ([]models.BannerIdea, error) {
	p.mu.Lock()
	if p.ideas.Generating {
		p.mu.Unlock()
		return nil, ErrGenerationInProgress
	}
	p.ideas.Prompt = theme
	if strings.TrimSpace(theme) == "" {
		p.mu.Unlock()
		notifyError(p.notifier, "Error", "Please enter a theme for banner ideas.")
		return nil, ErrPromptRequired
	}
	p.ideas.Generating = true
	p.ideas.Ideas = []models.BannerIdea{}
	p.mu.Unlock()

	ideas, err := p.generator.GenerateBannerIdeas(ctx, theme)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.ideas.Generating = false
	if err != nil {
		p.logger.Error("Error generating banner ideas", zap.Error(err))
		notifyError(p.notifier, "Error", "Failed to generate banner ideas.")
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	p.ideas.Ideas = ideas
	notifySuccess(p.notifier, "Success", "Banner ideas generated!")
	return append([]models.BannerIdea{}, ideas...), nil
}

// Idea returns the idea at index from the latest brainstorm.
func (p *ContentPanel) Idea(index int) (models.BannerIdea, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= len(p.ideas.Ideas) {
		return models.BannerIdea{}, fmt.Errorf("%w: index %d", ErrIdeaNotFound, index)
	}
	return p.ideas.Ideas[index], nil
}

// SharedGeneral snapshots the general result for sharing.
func (p *ContentPanel) SharedGeneral() (*models.SharedGeneralContent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if strings.TrimSpace(p.general.Content) == "" {
		return nil, ErrNothingToShare
	}
	return &models.SharedGeneralContent{
		Prompt:       p.general.Prompt,
		Content:      p.general.Content,
		ImageURL:     p.general.ImageURL,
		Platform:     p.general.Platform,
		ExternalLink: p.general.ExternalLink,
		HTMLOutput:   p.general.HTML,
	}, nil
}

// SharedAmazon snapshots the Amazon result for sharing.
func (p *ContentPanel) SharedAmazon() (*models.SharedAmazonContent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if strings.TrimSpace(p.amazon.Content) == "" {
		return nil, ErrNothingToShare
	}
	return &models.SharedAmazonContent{
		Prompt:          p.amazon.Prompt,
		Content:         p.amazon.Content,
		ProductImageURL: p.amazon.ProductImageURL,
		AffiliateLink:   p.amazon.AffiliateLink,
		Platform:        p.amazon.Platform,
		HTMLOutput:      p.amazon.HTML,
	}, nil
}

// LoadShared fills the matching sub-panel with a shared record. The display HTML is
// recomposed from the record's fields.
func (p *ContentPanel) LoadShared(record models.SharedRecord) error {
	switch rec := record.(type) {
	case *models.SharedGeneralContent:
		platform := rec.Platform
		if platform == "" {
			platform = models.PlatformBlog
		}
		html, err := ComposeGeneralHTML(rec.Content, rec.ImageURL, platform)
		if err != nil {
			return err
		}
		p.mu.Lock()
		p.general = GeneralContentState{
			Prompt:       rec.Prompt,
			Platform:     platform,
			ExternalLink: rec.ExternalLink,
			ImageURL:     rec.ImageURL,
			Content:      rec.Content,
			HTML:         html,
		}
		p.mu.Unlock()
	case *models.SharedAmazonContent:
		platform := rec.Platform
		if platform == "" {
			platform = models.PlatformBlog
		}
		html, err := ComposeAmazonHTML(rec.Content, rec.ProductImageURL, rec.AffiliateLink, platform)
		if err != nil {
			return err
		}
		p.mu.Lock()
		p.amazon = AmazonContentState{
			Prompt:          rec.Prompt,
			AffiliateLink:   rec.AffiliateLink,
			ProductImageURL: rec.ProductImageURL,
			Platform:        platform,
			Content:         rec.Content,
			HTML:            html,
		}
		p.mu.Unlock()
	}
	return nil
}
