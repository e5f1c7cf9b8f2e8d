package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// ContentGenerator turns content requests into prompts and parses the model's JSON answers.
type ContentGenerator struct {
	provider Provider
	logger   *zap.Logger
}

func NewContentGenerator(provider Provider, logger *zap.Logger) *ContentGenerator {
	return &ContentGenerator{provider: provider, logger: logger}
}

type contentOutput struct {
	Content string `json:"content"`
}

// GenerateGeneralContent drafts platform-specific copy for a free-form request.
func (g *ContentGenerator) GenerateGeneralContent(ctx context.Context, in models.GeneralContentInput) (string, error) {
	prompt, err := render(generalContentPrompt, in)
	if err != nil {
		return "", fmt.Errorf("render general prompt: %w", err)
	}
	return g.generateContent(ctx, "general", prompt)
}

// GenerateAmazonContent drafts affiliate copy for a product.
func (g *ContentGenerator) GenerateAmazonContent(ctx context.Context, in models.AmazonContentInput) (string, error) {
	prompt, err := render(amazonContentPrompt, in)
	if err != nil {
		return "", fmt.Errorf("render amazon prompt: %w", err)
	}
	return g.generateContent(ctx, "amazon", prompt)
}

// GenerateBannerIdeas brainstorms BannerIdeaCount banner concepts for a theme.
func (g *ContentGenerator) GenerateBannerIdeas(ctx context.Context, theme string) ([]models.BannerIdea, error) {
	prompt, err := render(bannerIdeasPrompt, struct {
		Prompt string
		Count  int
	}{Prompt: theme, Count: BannerIdeaCount})
	if err != nil {
		return nil, fmt.Errorf("render ideas prompt: %w", err)
	}

	raw, err := g.provider.GenerateJSON(ctx, prompt, bannerIdeasSchema, bannerIdeasSafety)
	if err != nil {
		g.logger.Error("Banner ideas generation failed", zap.Error(err))
		return nil, err
	}

	var ideas []models.BannerIdea
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &ideas); err != nil {
		return nil, fmt.Errorf("malformed banner ideas response: %w", err)
	}
	if len(ideas) == 0 {
		return nil, errors.New("model returned no banner ideas")
	}
	return ideas, nil
}

func (g *ContentGenerator) generateContent(ctx context.Context, kind, prompt string) (string, error) {
	raw, err := g.provider.GenerateJSON(ctx, prompt, contentSchema, nil)
	if err != nil {
		g.logger.Error("Content generation failed", zap.String("kind", kind), zap.Error(err))
		return "", err
	}

	var out contentOutput
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &out); err != nil {
		return "", fmt.Errorf("malformed %s content response: %w", kind, err)
	}
	if strings.TrimSpace(out.Content) == "" {
		return "", fmt.Errorf("model returned empty %s content", kind)
	}
	return out.Content, nil
}

// stripCodeFence removes a ```json fence some model versions wrap around JSON output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
