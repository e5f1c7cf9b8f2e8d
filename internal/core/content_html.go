package core

import (
	"html/template"
	"strings"

	"github.com/bannerforge/bannerforge-backend/internal/models"
)

const amazonImageFallbackURL = "https://placehold.co/200x200.png"

var contentFuncs = template.FuncMap{
	// nl2br escapes s and turns newlines into line breaks.
	"nl2br": func(s string) template.HTML {
		return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br />"))
	},
}

const contentHeader = `{{define "header"}}{{if .Platform}}<h4 style="font-size: 1.1em; font-weight: 600; color: #333; margin-bottom: 0.5em;">Content for {{.Platform.DisplayName}}:</h4>{{end}}{{end}}` +
	`{{define "text"}}{{if .Text}}<div style="margin-bottom: 1em; line-height: 1.6;">{{nl2br .Text}}</div>{{end}}{{end}}`

var generalContentTemplate = template.Must(template.New("general").Funcs(contentFuncs).Parse(contentHeader +
	`{{template "header" .}}{{template "text" .}}` +
	`{{if .ImageURL}}<div style="margin-top: 1rem; text-align: center;"><img src="{{.ImageURL}}" alt="AI Generated Visual" style="max-width: 100%; height: auto; border-radius: 8px; box-shadow: 0 4px 12px rgba(0,0,0,0.1);"/></div>{{end}}`))

var amazonContentTemplate = template.Must(template.New("amazon").Funcs(contentFuncs).Parse(contentHeader +
	`{{template "header" .}}` +
	`{{if .ImageURL}}<div style="margin-bottom: 1rem; text-align: center;"><img src="{{.ImageURL}}" alt="Amazon Product Image" style="max-width: 100%; height: auto; border-radius: 8px; box-shadow: 0 4px 12px rgba(0,0,0,0.1); max-width: 200px; max-height: 200px; object-fit: contain;" onerror="this.onerror=null; this.src='{{.FallbackURL}}'"/></div>{{end}}` +
	`{{template "text" .}}` +
	`{{if .AffiliateLink}}<div style="margin-top: 1.5rem; text-align: center;"><a href="{{.AffiliateLink}}" target="_blank" rel="noopener noreferrer" style="display: inline-block; padding: 10px 20px; background-color: #FF9900; color: white; border-radius: 25px; text-decoration: none; font-weight: bold; font-size: 1em; box-shadow: 0 4px 15px rgba(255,153,0,0.4); transition: all 0.3s ease;">Buy on Amazon</a></div>{{end}}`))

type contentHTMLData struct {
	Platform      models.Platform
	Text          string
	ImageURL      string
	AffiliateLink string
	FallbackURL   string
}

// ComposeGeneralHTML renders generated text with a platform header and an optional image.
func ComposeGeneralHTML(text, imageURL string, platform models.Platform) (string, error) {
	return renderContent(generalContentTemplate, contentHTMLData{Platform: platform, Text: text, ImageURL: imageURL})
}

// ComposeAmazonHTML renders generated text with the product image and a "Buy on Amazon" button.
func ComposeAmazonHTML(text, imageURL, affiliateLink string, platform models.Platform) (string, error) {
	return renderContent(amazonContentTemplate, contentHTMLData{
		Platform:      platform,
		Text:          text,
		ImageURL:      imageURL,
		AffiliateLink: affiliateLink,
		FallbackURL:   amazonImageFallbackURL,
	})
}

func renderContent(t *template.Template, data contentHTMLData) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
