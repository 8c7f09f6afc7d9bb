package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var errNoChoices = errors.New("no completion choices returned")

// openAICompat is a chat-completions client for providers exposing the
// OpenAI-compatible /chat/completions endpoint (Groq, Mistral).
type openAICompat struct {
	id         ProviderID
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewGroq creates a Groq-backed provider.
func NewGroq(baseURL, apiKey, model string) Provider {
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return &openAICompat{
		id:         ProviderGroq,
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

// NewMistral creates a Mistral-backed provider.
func NewMistral(baseURL, apiKey, model string) Provider {
	if model == "" {
		model = "mistral-small-latest"
	}
	return &openAICompat{
		id:         ProviderMistral,
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

func (p *openAICompat) ID() ProviderID {
	return p.id
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *formatHint   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type formatHint struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the instruction and evidence and returns the raw
// completion text. The per-call deadline comes from the caller's context.
func (p *openAICompat) Generate(ctx context.Context, system, user string) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("%s API key is not configured", p.id)
	}

	body, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: &formatHint{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s API error: status %d", p.id, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", errNoChoices
	}

	return parsed.Choices[0].Message.Content, nil
}
