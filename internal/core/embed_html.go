package core

import (
	"html/template"
	"math"
	"strconv"
	"strings"

	"github.com/bannerforge/bannerforge-backend/internal/models"
)

const embedContentPadding = 18

// Values are escaped for the context they land in; unsafe URLs become "#ZgotmplZ".
var embedTemplate = template.Must(template.New("embed").Parse(
	`<div style="width: {{.Width}}px; height: {{.Height}}px; background: linear-gradient(135deg, {{.BgColor}} 0%, {{.AccentColor}}22 100%); color: {{.TextColor}}; border-radius: 12px; overflow: hidden; position: relative; display: flex; flex-direction: column; font-family: Arial, sans-serif; box-shadow: 0 10px 25px rgba(0,0,0,0.15); transition: all 0.3s ease; cursor: pointer;` +
		`{{if eq .Animation "pulse"}} animation: pulse-border 1.5s infinite;{{else if eq .Animation "glow"}} animation: glow-border 3s infinite alternate; --accent-color-var: {{.AccentColor}};{{end}}"` +
		` onmouseover="this.style.transform='translateY(-5px)'; this.style.boxShadow='0 15px 35px rgba(0,0,0,0.2)'" onmouseout="this.style.transform='translateY(0)'; this.style.boxShadow='0 10px 25px rgba(0,0,0,0.15)'">
  <div style="height: {{.ImageHeight}}px; overflow: hidden; position: relative;">
    <img src="{{.ImageURL}}" alt="Banner Image" style="width: 100%; height: 100%; object-fit: cover; transition: transform 0.3s ease;" onerror="this.onerror=null; this.src='{{.PlaceholderURL}}'" onmouseover="this.style.transform='scale(1.05)'" onmouseout="this.style.transform='scale(1)'" />
    <div style="position: absolute; top: 0; left: 0; right: 0; bottom: 0; background: linear-gradient(to bottom, transparent 0%, rgba(0,0,0,0.3) 100%);"></div>
  </div>
  <div style="padding: {{.Padding}}px; font-size: {{.FontSize}}px; flex: 1; display: flex; flex-direction: column; position: relative;">
    <div style="flex: 1; overflow: hidden; line-height: 1.4; font-weight: 500; margin-bottom: 12px;">
      {{.Description}}
    </div>
    <a href="{{.Link}}" target="_blank" rel="noopener noreferrer" style="display: inline-block; text-align: center; padding: 10px 18px; background: linear-gradient(45deg, {{.AccentColor}}, {{.AccentColor}}dd); border-radius: 25px; text-decoration: none; color: white; font-size: {{.ButtonFontSize}}px; font-weight: 600; transition: all 0.3s ease; border: none; box-shadow: 0 4px 15px {{.AccentColor}}40;" onmouseover="this.style.transform='translateY(-2px)'; this.style.boxShadow='0 6px 20px {{.AccentColor}}60'" onmouseout="this.style.transform='translateY(0)'; this.style.boxShadow='0 4px 15px {{.AccentColor}}40'">
      {{.ButtonText}}
    </a>
  </div>
</div>
{{- if ne .Animation "none"}}
<style>
@keyframes pulse-border { 0% { box-shadow: 0 0 0 0 rgba(255,255,255,0.4); } 70% { box-shadow: 0 0 0 10px rgba(255,255,255,0); } 100% { box-shadow: 0 0 0 0 rgba(255,255,255,0); } }
@keyframes glow-border { from { box-shadow: 0 0 5px var(--accent-color-var), 0 0 10px var(--accent-color-var); } to { box-shadow: 0 0 15px var(--accent-color-var), 0 0 30px var(--accent-color-var); } }
</style>
{{- end}}`))

type embedData struct {
	models.BannerConfig
	Width          int
	Height         int
	ImageHeight    int
	Padding        int
	ButtonFontSize int
	Animation      string
	PlaceholderURL string
}

// ImageHeight is the height of the banner's image panel.
func ImageHeight(bannerHeight int) int {
	return int(math.Round(float64(bannerHeight) * 0.6))
}

// BuildEmbedHTML renders a self-contained HTML fragment with inline styles for cfg. The
// output depends only on cfg.
func BuildEmbedHTML(cfg models.BannerConfig) (string, error) {
	imageHeight := ImageHeight(cfg.BannerHeight)
	animation := string(cfg.BorderAnimation)
	if animation != string(models.BorderAnimationPulse) && animation != string(models.BorderAnimationGlow) {
		animation = string(models.BorderAnimationNone)
	}

	data := embedData{
		BannerConfig:   cfg,
		Width:          cfg.BannerWidth,
		Height:         cfg.BannerHeight,
		ImageHeight:    imageHeight,
		Padding:        embedContentPadding,
		ButtonFontSize: max(12, cfg.FontSize-2),
		Animation:      animation,
		PlaceholderURL: PlaceholderImageURL(cfg.BannerWidth, imageHeight),
	}

	var sb strings.Builder
	if err := embedTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// PlaceholderImageURL is the image shown when a banner image fails to load.
func PlaceholderImageURL(width, height int) string {
	return "https://placehold.co/" + strconv.Itoa(width) + "x" + strconv.Itoa(height) + ".png"
}
