package models

import (
	"regexp"
	"time"
)

// BorderAnimation selects the CSS animation applied to a banner's border.
type BorderAnimation string

const (
	BorderAnimationNone  BorderAnimation = "none"
	BorderAnimationPulse BorderAnimation = "pulse"
	BorderAnimationGlow  BorderAnimation = "glow"
)

// Valid reports whether a is one of the known animations. The empty value counts as none.
func (a BorderAnimation) Valid() bool {
	switch a {
	case "", BorderAnimationNone, BorderAnimationPulse, BorderAnimationGlow:
		return true
	}
	return false
}

// Editor ranges. The editor enforces them; the model only reports violations.
const (
	MinFontSize     = 10
	MaxFontSize     = 24
	MinBannerWidth  = 100
	MaxBannerWidth  = 1000
	MinBannerHeight = 100
	MaxBannerHeight = 1000
)

// BannerConfig is the full set of visual and textual parameters of one banner.
type BannerConfig struct {
	ImageURL        string          `json:"imageUrl" firestore:"imageUrl"`
	Description     string          `json:"description" firestore:"description"`
	Link            string          `json:"link" firestore:"link"`
	BgColor         string          `json:"bgColor" firestore:"bgColor"`
	TextColor       string          `json:"textColor" firestore:"textColor"`
	FontSize        int             `json:"fontSize" firestore:"fontSize"`
	AccentColor     string          `json:"accentColor" firestore:"accentColor"`
	ButtonText      string          `json:"buttonText" firestore:"buttonText"`
	BannerWidth     int             `json:"bannerWidth" firestore:"bannerWidth"`
	BannerHeight    int             `json:"bannerHeight" firestore:"bannerHeight"`
	BorderAnimation BorderAnimation `json:"borderAnimation,omitempty" firestore:"borderAnimation,omitempty"`
}

// DefaultBannerConfig returns the placeholder banner shown in a fresh editor.
func DefaultBannerConfig() BannerConfig {
	return BannerConfig{
		ImageURL:        "https://placehold.co/300x150.png",
		Description:     "Discover the future of digital design",
		Link:            "https://example.com",
		BgColor:         "#1a1a2e",
		TextColor:       "#ffffff",
		FontSize:        14,
		AccentColor:     "#ff6b6b",
		ButtonText:      "Discover more →",
		BannerWidth:     300,
		BannerHeight:    300,
		BorderAnimation: BorderAnimationNone,
	}
}

// OutOfRange lists the numeric fields whose values fall outside the editor ranges.
func (c BannerConfig) OutOfRange() []string {
	var fields []string
	if c.FontSize < MinFontSize || c.FontSize > MaxFontSize {
		fields = append(fields, "fontSize")
	}
	if c.BannerWidth < MinBannerWidth || c.BannerWidth > MaxBannerWidth {
		fields = append(fields, "bannerWidth")
	}
	if c.BannerHeight < MinBannerHeight || c.BannerHeight > MaxBannerHeight {
		fields = append(fields, "bannerHeight")
	}
	return fields
}

var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsHexColor reports whether s is a #rgb or #rrggbb colour. The embed styles append alpha
// digits to the accent colour, so no other CSS colour syntax is accepted.
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// InvalidColors lists the colour fields that are not hex colours.
func (c BannerConfig) InvalidColors() []string {
	var fields []string
	if !IsHexColor(c.BgColor) {
		fields = append(fields, "bgColor")
	}
	if !IsHexColor(c.TextColor) {
		fields = append(fields, "textColor")
	}
	if !IsHexColor(c.AccentColor) {
		fields = append(fields, "accentColor")
	}
	return fields
}

// SavedBanner is a BannerConfig persisted under its owner's banner collection.
type SavedBanner struct {
	ID string `json:"id" firestore:"-"` // Document ID, auto-generated
	BannerConfig
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
