package llm

import (
	"strings"
	"text/template"

	"cloud.google.com/go/vertexai/genai"
)

// BannerIdeaCount is the number of ideas requested per brainstorm.
const BannerIdeaCount = 3

var generalContentPrompt = template.Must(template.New("general").Parse(
	`You are a content creation expert who specializes in generating content for various platforms.
Based on the platform, generate appropriate content. The content should be engaging and tailored to the specified platform.

Blog: Generate a detailed and informative blog post based on the prompt.
Facebook: Generate an engaging Facebook post based on the prompt. Include a call to action.
X (Twitter): Generate a concise and direct tweet based on the prompt. Include relevant hashtags.
Telegram: Generate an informative and concise message for Telegram based on the prompt.

Prompt: {{.Prompt}}
Platform: {{.Platform}}
{{- if .ExternalLink}}
Incorporate this external link into the content: {{.ExternalLink}}
{{- end}}
`))

var amazonContentPrompt = template.Must(template.New("amazon").Parse(
	`You are an expert marketing copywriter specializing in Amazon products.
You will generate marketing copy for the Amazon product described by the user.
The marketing copy should be appropriate for the platform specified by the user.
The user will provide an affiliate link. You must embed this affiliate link into the marketing copy in a clear and appropriate way, such as in a call to action button.

Platform: {{.Platform}}
Description: {{.Prompt}}
Affiliate Link: {{.AffiliateLink}}
`))

// bannerIdeasPrompt is kept in Italian, the language the ideas panel was written for.
var bannerIdeasPrompt = template.Must(template.New("ideas").Parse(
	`Genera {{.Count}} idee creative e uniche per un banner pubblicitario, basate sul tema/prodotto: "{{.Prompt}}".
Per ogni idea, includi:
1. ideaName: Un nome breve per l'idea.
2. descriptionSuggestion: Una breve descrizione accattivante per il banner (max 20 parole).
3. ctaSuggestion: Un testo per il pulsante di call-to-action (max 5 parole).
4. visualConcept: Un concetto visivo per l'immagine del banner (max 15 parole).
Formato la risposta come un array JSON di oggetti.
`))

// bannerIdeasSafety applies only to the ideas brainstorm. Content generation uses the
// model defaults.
var bannerIdeasSafety = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockOnlyHigh},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockMediumAndAbove},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockLowAndAbove},
}

var contentSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"content": {Type: genai.TypeString, Description: "The generated content."},
	},
	Required: []string{"content"},
}

var bannerIdeasSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"ideaName":              {Type: genai.TypeString},
			"descriptionSuggestion": {Type: genai.TypeString},
			"ctaSuggestion":         {Type: genai.TypeString},
			"visualConcept":         {Type: genai.TypeString},
		},
		Required: []string{"ideaName", "descriptionSuggestion", "ctaSuggestion", "visualConcept"},
	},
}

func render(t *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
