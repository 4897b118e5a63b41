package remediate

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultOpenAIModel is used when no model is configured
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIBackend submits remediation requests to the OpenAI chat completions
// API
type OpenAIBackend struct {
	client openai.Client
	model  string
}

// NewOpenAIBackend creates an OpenAI-backed remediation client
func NewOpenAIBackend(apiKey, model string) (*OpenAIBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key cannot be empty")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAIBackend{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

// Remediate performs a single chat completion call. Transport and API
// failures surface as ErrUnavailable.
func (b *OpenAIBackend) Remediate(ctx context.Context, req Request) (string, error) {
	completion, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: b.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemInstructions),
			openai.UserMessage(req.UserMessage()),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", ErrUnavailable)
	}

	return completion.Choices[0].Message.Content, nil
}
