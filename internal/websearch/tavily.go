package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/screenscout/screenscout/internal/config"
)

var ErrTavilyKeyMissing = errors.New("Tavily API key is not configured")

// Tavily is the tertiary AI-web-search provider, queried only as a last
// resort when both the primary and secondary tiers come up empty.
type Tavily struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     zerolog.Logger
}

// NewTavily creates a Tavily search provider.
func NewTavily(cfg config.SearchConfig, logger zerolog.Logger) *Tavily {
	return &Tavily{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		baseURL: cfg.TavilyBaseURL,
		apiKey:  cfg.TavilyAPIKey,
		logger:  logger.With().Str("component", "tavily").Logger(),
	}
}

// Name returns the provider name.
func (t *Tavily) Name() string {
	return "tavily"
}

// IsConfigured returns true if the API key is set.
func (t *Tavily) IsConfigured() bool {
	return t.apiKey != ""
}

type tavilyRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// Search runs a natural-language web search for the query.
func (t *Tavily) Search(ctx context.Context, query string) ([]Result, error) {
	if !t.IsConfigured() {
		return nil, ErrTavilyKeyMissing
	}

	body, err := json.Marshal(tavilyRequest{
		Query:      query,
		MaxResults: maxWebResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily returned status %d", resp.StatusCode)
	}

	var parsed tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]Result, 0, len(parsed.Results))
	for _, item := range parsed.Results {
		if item.Title == "" || item.URL == "" {
			continue
		}
		results = append(results, Result{
			Title:      item.Title,
			Snippet:    item.Content,
			URL:        item.URL,
			Kind:       classify(item.Title, item.Content),
			Confidence: confidenceFor(item.URL),
		})
	}

	t.logger.Debug().
		Str("query", query).
		Int("results", len(results)).
		Msg("AI web search completed")

	return results, nil
}
