package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/screenscout/screenscout/internal/config"
)

var ErrSerpAPIKeyMissing = errors.New("SerpAPI key is not configured")

// SerpAPI queries a Google search-engine-results API. It sits behind
// DuckDuckGo in the secondary tier and requires an API key.
type SerpAPI struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     zerolog.Logger
}

// NewSerpAPI creates a SerpAPI search provider.
func NewSerpAPI(cfg config.SearchConfig, logger zerolog.Logger) *SerpAPI {
	return &SerpAPI{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		baseURL: cfg.SerpAPIBaseURL,
		apiKey:  cfg.SerpAPIKey,
		logger:  logger.With().Str("component", "serpapi").Logger(),
	}
}

// Name returns the provider name.
func (s *SerpAPI) Name() string {
	return "serpapi"
}

// IsConfigured returns true if the API key is set.
func (s *SerpAPI) IsConfigured() bool {
	return s.apiKey != ""
}

type serpResponse struct {
	OrganicResults []struct {
		Title     string `json:"title"`
		Link      string `json:"link"`
		Snippet   string `json:"snippet"`
		Thumbnail string `json:"thumbnail"`
	} `json:"organic_results"`
}

// Search queries the organic results for the query.
func (s *SerpAPI) Search(ctx context.Context, query string) ([]Result, error) {
	if !s.IsConfigured() {
		return nil, ErrSerpAPIKeyMissing
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", s.apiKey)
	params.Set("num", fmt.Sprintf("%d", maxWebResults))

	reqURL := fmt.Sprintf("%s?%s", s.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi returned status %d", resp.StatusCode)
	}

	var parsed serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]Result, 0, len(parsed.OrganicResults))
	for _, item := range parsed.OrganicResults {
		if item.Title == "" || item.Link == "" {
			continue
		}
		results = append(results, Result{
			Title:      item.Title,
			Snippet:    item.Snippet,
			URL:        item.Link,
			Image:      item.Thumbnail,
			Kind:       classify(item.Title, item.Snippet),
			Confidence: confidenceFor(item.Link),
		})
		if len(results) >= maxWebResults {
			break
		}
	}

	s.logger.Debug().
		Str("query", query).
		Int("results", len(results)).
		Msg("SERP search completed")

	return results, nil
}
