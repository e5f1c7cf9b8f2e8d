package llm

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/vertexai/genai"
)

type VertexGemini struct {
	client    *genai.Client
	modelName string
}

func NewVertexGemini(ctx context.Context, projectID, location, modelName string) (*VertexGemini, error) {
	c, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	return &VertexGemini{client: c, modelName: modelName}, nil
}

func (v *VertexGemini) Close() error { return v.client.Close() }

// GenerateJSON runs a single generation constrained to schema and returns the raw JSON text.
// A model is built per call because the schema and safety settings are part of its
// configuration. A nil safety slice keeps the model defaults.
func (v *VertexGemini) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, safety []*genai.SafetySetting) (string, error) {
	m := v.client.GenerativeModel(v.modelName)
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = schema
	m.SafetySettings = safety

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
		// the first candidate with content is the answer
		if sb.Len() > 0 {
			break
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("model returned no text")
	}
	return sb.String(), nil
}
