package remediate

import (
	"context"
	"fmt"

	genai "google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiBackend submits remediation requests to the Gemini API
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend creates a Gemini-backed remediation client
func NewGeminiBackend(ctx context.Context, apiKey, model string) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key cannot be empty")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiBackend{client: client, model: model}, nil
}

// Remediate performs a single content generation call. Transport and API
// failures surface as ErrUnavailable.
func (b *GeminiBackend) Remediate(ctx context.Context, req Request) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemInstructions, genai.RoleUser),
	}

	res, err := b.client.Models.GenerateContent(ctx, b.model, []*genai.Content{
		genai.NewContentFromText(req.UserMessage(), genai.RoleUser),
	}, config)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("%w: response contained no text", ErrUnavailable)
	}

	return text, nil
}
