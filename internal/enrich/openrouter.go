package enrich

import (
	"context"
	"fmt"

	"github.com/revrost/go-openrouter"
)

// OpenRouterProvider generates creative text via the OpenRouter
// chat-completions API.
type OpenRouterProvider struct {
	client *openrouter.Client
	model  string
}

// NewOpenRouter creates an OpenRouter provider. Model may be empty to use
// the default.
func NewOpenRouter(apiKey, model string) *OpenRouterProvider {
	if model == "" {
		model = "openai/gpt-4o-mini"
	}
	return &OpenRouterProvider{
		client: openrouter.NewClient(apiKey),
		model:  model,
	}
}

// ID returns the provider identifier.
func (p *OpenRouterProvider) ID() ProviderID {
	return ProviderOpenRouter
}

// Generate sends the instruction and evidence and returns the raw
// completion text.
func (p *OpenRouterProvider) Generate(ctx context.Context, system, user string) (string, error) {
	request := openrouter.ChatCompletionRequest{
		Model: p.model,
		Messages: []openrouter.ChatCompletionMessage{
			{
				Role:    openrouter.ChatMessageRoleSystem,
				Content: openrouter.Content{Text: system},
			},
			{
				Role:    openrouter.ChatMessageRoleUser,
				Content: openrouter.Content{Text: user},
			},
		},
	}

	response, err := p.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return response.Choices[0].Message.Content.Text, nil
}
