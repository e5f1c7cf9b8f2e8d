package llm

import (
	"context"

	"cloud.google.com/go/vertexai/genai"
)

// Provider is a hosted generative model that answers with JSON matching a response schema.
// safety overrides the model's block thresholds for this call only; nil keeps the defaults.
type Provider interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, safety []*genai.SafetySetting) (string, error)
	Close() error
}
