package models

import (
	"fmt"
	"strings"
	"time"
)

// Platform is the publishing target a piece of generated content is written for.
type Platform string

const (
	PlatformBlog     Platform = "blog"
	PlatformFacebook Platform = "facebook"
	PlatformX        Platform = "x"
	PlatformTelegram Platform = "telegram"
)

// ParsePlatform validates a platform name. An empty name means blog.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return PlatformBlog, nil
	case PlatformBlog, PlatformFacebook, PlatformX, PlatformTelegram:
		return p, nil
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// DisplayName is the platform name with its first letter upper-cased ("x" becomes "X").
func (p Platform) DisplayName() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// SharedContentKind distinguishes the two public shared-content collections.
type SharedContentKind string

const (
	SharedContentGeneral SharedContentKind = "general"
	SharedContentAmazon  SharedContentKind = "amazon"
)

// QueryParam is the page query parameter that carries a shared record id of this kind.
func (k SharedContentKind) QueryParam() string {
	if k == SharedContentAmazon {
		return "sharedAmazonContentId"
	}
	return "sharedAiContentId"
}

// SharedRecord is implemented by both shared-content variants.
type SharedRecord interface {
	Kind() SharedContentKind
	Stamp(sharedBy string)
}

// SharedGeneralContent is an immutable public snapshot of generated general content.
type SharedGeneralContent struct {
	ID           string    `json:"id,omitempty" firestore:"-"`
	Prompt       string    `json:"prompt" firestore:"prompt"`
	Content      string    `json:"content" firestore:"content"`
	ImageURL     string    `json:"imageUrl" firestore:"imageUrl"`
	Platform     Platform  `json:"platform" firestore:"platform"`
	ExternalLink string    `json:"externalLink,omitempty" firestore:"externalLink,omitempty"`
	HTMLOutput   string    `json:"htmlOutput,omitempty" firestore:"htmlOutput,omitempty"`
	SharedBy     string    `json:"sharedBy,omitempty" firestore:"sharedBy"`
	SharedAt     time.Time `json:"sharedAt" firestore:"sharedAt,serverTimestamp"`
}

func (c *SharedGeneralContent) Kind() SharedContentKind { return SharedContentGeneral }
func (c *SharedGeneralContent) Stamp(sharedBy string)   { c.SharedBy = sharedBy }

// SharedAmazonContent is an immutable public snapshot of generated Amazon affiliate content.
type SharedAmazonContent struct {
	ID              string    `json:"id,omitempty" firestore:"-"`
	Prompt          string    `json:"prompt" firestore:"prompt"`
	Content         string    `json:"content" firestore:"content"`
	ProductImageURL string    `json:"productImageUrl" firestore:"productImageUrl"`
	AffiliateLink   string    `json:"affiliateLink" firestore:"affiliateLink"`
	Platform        Platform  `json:"platform" firestore:"platform"`
	HTMLOutput      string    `json:"htmlOutput,omitempty" firestore:"htmlOutput,omitempty"`
	SharedBy        string    `json:"sharedBy,omitempty" firestore:"sharedBy"`
	SharedAt        time.Time `json:"sharedAt" firestore:"sharedAt,serverTimestamp"`
}

func (c *SharedAmazonContent) Kind() SharedContentKind { return SharedContentAmazon }
func (c *SharedAmazonContent) Stamp(sharedBy string)   { c.SharedBy = sharedBy }
