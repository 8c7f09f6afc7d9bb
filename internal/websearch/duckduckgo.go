package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/screenscout/screenscout/internal/config"
)

const maxWebResults = 10

// DuckDuckGo scrapes the DuckDuckGo HTML endpoint. It needs no API key,
// which makes it the default secondary provider.
type DuckDuckGo struct {
	httpClient *http.Client
	baseURL    string
	logger     zerolog.Logger
}

// NewDuckDuckGo creates a DuckDuckGo search provider.
func NewDuckDuckGo(cfg config.SearchConfig, logger zerolog.Logger) *DuckDuckGo {
	return &DuckDuckGo{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		baseURL: cfg.DuckDuckGoBaseURL,
		logger:  logger.With().Str("component", "duckduckgo").Logger(),
	}
}

// Name returns the provider name.
func (d *DuckDuckGo) Name() string {
	return "duckduckgo"
}

// Search scrapes the HTML results page for the query.
func (d *DuckDuckGo) Search(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{}
	params.Set("q", query)

	reqURL := fmt.Sprintf("%s/?%s", strings.TrimRight(d.baseURL, "/"), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// The HTML endpoint rejects requests without a browser-like agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	results := make([]Result, 0, maxWebResults)
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		link := s.Find(".result__a")
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		snippet := strings.TrimSpace(s.Find(".result__snippet").Text())

		resultURL := unwrapRedirect(href)
		if title == "" || resultURL == "" {
			return true
		}

		results = append(results, Result{
			Title:      title,
			Snippet:    snippet,
			URL:        resultURL,
			Kind:       classify(title, snippet),
			Confidence: confidenceFor(resultURL),
		})
		return len(results) < maxWebResults
	})

	d.logger.Debug().
		Str("query", query).
		Int("results", len(results)).
		Msg("Web search completed")

	return results, nil
}

// unwrapRedirect extracts the target URL from DuckDuckGo's /l/?uddg=...
// redirect links. Direct URLs pass through unchanged.
func unwrapRedirect(href string) string {
	if href == "" {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}

	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}

	if parsed.Scheme == "" {
		return "https:" + href
	}
	return href
}
