package api

import (
	"github.com/bannerforge/bannerforge-backend/internal/core"
	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CreateWorkspaceRequest opens a workspace for the page the browser is on. IDToken restores
// a persisted session.
type CreateWorkspaceRequest struct {
	PageURL string `json:"pageUrl" binding:"required"`
	IDToken string `json:"idToken"`
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Session models.Session `json:"session"`
	// IDToken lets the browser persist the session and restore it in a new workspace.
	IDToken string `json:"idToken,omitempty"`
}

// AckNotificationsRequest acknowledges every notification up to and including LastID.
type AckNotificationsRequest struct {
	LastID uint64 `json:"lastId"`
}

type AckNotificationsResponse struct {
	Acknowledged int `json:"acknowledged"`
}

type UpdateFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type EmbedResponse struct {
	HTML string `json:"html"`
}

type GeneralContentRequest struct {
	Prompt       string `json:"prompt"`
	Platform     string `json:"platform"`
	ExternalLink string `json:"externalLink"`
	ImageURL     string `json:"imageUrl"`
}

type AmazonContentRequest struct {
	Prompt          string `json:"prompt"`
	AffiliateLink   string `json:"affiliateLink"`
	Platform        string `json:"platform"`
	ProductImageURL string `json:"productImageUrl"`
}

type IdeasRequest struct {
	Prompt string `json:"prompt"`
}

type IdeasResponse struct {
	Ideas []models.BannerIdea `json:"ideas"`
}

type IDResponse struct {
	ID string `json:"id"`
}

type BannersResponse struct {
	Items []*models.SavedBanner `json:"items"`
}

// ShareGeneralRequest publishes general content through the token API.
type ShareGeneralRequest struct {
	Prompt       string `json:"prompt"`
	Content      string `json:"content" binding:"required"`
	ImageURL     string `json:"imageUrl"`
	Platform     string `json:"platform"`
	ExternalLink string `json:"externalLink"`
}

// ShareAmazonRequest publishes Amazon content through the token API.
type ShareAmazonRequest struct {
	Prompt          string `json:"prompt"`
	Content         string `json:"content" binding:"required"`
	ProductImageURL string `json:"productImageUrl"`
	AffiliateLink   string `json:"affiliateLink"`
	Platform        string `json:"platform"`
}

type ProfileInitializeResponse struct {
	Created bool              `json:"created"`
	Profile *core.ProfileView `json:"profile"`
}
