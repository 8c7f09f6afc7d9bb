// Package hybrid orchestrates the primary metadata provider, the secondary
// web-search providers, and the tertiary AI web search into one ranked
// result list with a strict priority cascade.
package hybrid

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/screenscout/screenscout/internal/cache"
	"github.com/screenscout/screenscout/internal/metadata/tmdb"
	"github.com/screenscout/screenscout/internal/query"
	"github.com/screenscout/screenscout/internal/websearch"
)

const maxResults = 6

// Composite ranking bonuses. Any hit on the primary provider's own domain
// outranks web results; an exact title match outranks everything.
const (
	primaryDomainBonus = 10.0
	exactTitleBonus    = 20.0
	defaultConfidence  = 0.7
	popularityScale    = 100.0
)

// PrimarySearcher is the slice of the primary provider the aggregator
// needs.
type PrimarySearcher interface {
	MultiSearch(ctx context.Context, query string) ([]tmdb.MultiResult, error)
}

// Response is the aggregator's output. The whole payload is cached as one
// unit.
type Response struct {
	OK          bool               `json:"ok"`
	Query       string             `json:"query"`
	Total       int                `json:"total"`
	Results     []websearch.Result `json:"results"`
	ParsedQuery query.ParsedQuery  `json:"parsedQuery"`
	Cached      bool               `json:"cached,omitempty"`
}

// Service runs the search cascade.
type Service struct {
	primary   PrimarySearcher
	secondary []websearch.Provider
	tertiary  websearch.Provider
	store     cache.Store
	ttl       time.Duration
	logger    zerolog.Logger
}

// NewService creates a hybrid search service. Tertiary may be nil when no
// AI web-search provider is configured.
func NewService(primary PrimarySearcher, secondary []websearch.Provider, tertiary websearch.Provider, store cache.Store, ttl time.Duration, logger zerolog.Logger) *Service {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &Service{
		primary:   primary,
		secondary: secondary,
		tertiary:  tertiary,
		store:     store,
		ttl:       ttl,
		logger:    logger.With().Str("component", "hybrid").Logger(),
	}
}

// Search runs the cascade for a raw query. Provider failures at any single
// source are downgraded to zero results from that source; the cascade
// never aborts because one source is down.
func (s *Service) Search(ctx context.Context, raw string) (*Response, error) {
	parsed := query.Parse(raw)
	title := parsed.Title
	if title == "" {
		title = strings.TrimSpace(raw)
	}

	key := cache.Key("search", map[string]any{"q": strings.ToLower(strings.TrimSpace(raw))})
	if payload, ok := s.store.Get(ctx, key); ok {
		var cached Response
		if err := json.Unmarshal([]byte(payload), &cached); err == nil {
			cached.Cached = true
			return &cached, nil
		}
	}

	decorated := s.buildSearchString(title, parsed)

	// Stage 1: primary provider, queried with the cleaned title.
	results := s.searchPrimary(ctx, title, parsed)

	// Stage 2: secondary providers when the primary came up empty or the
	// query carries a regional-language hint.
	if len(results) == 0 || parsed.Language != "" {
		for _, provider := range s.secondary {
			secondary, err := provider.Search(ctx, decorated)
			if err != nil {
				s.logger.Warn().
					Err(err).
					Str("provider", provider.Name()).
					Msg("Secondary provider failed, continuing cascade")
				continue
			}
			results = mergeByURL(results, secondary)
		}
	}

	// Stage 3: AI web search as last resort.
	if len(results) == 0 && s.tertiary != nil {
		tertiary, err := s.tertiary.Search(ctx, decorated)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("provider", s.tertiary.Name()).
				Msg("Tertiary provider failed")
		} else {
			results = tertiary
		}
	}

	sortByComposite(results, title)
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	if results == nil {
		results = []websearch.Result{}
	}

	response := &Response{
		OK:          true,
		Query:       raw,
		Total:       len(results),
		Results:     results,
		ParsedQuery: parsed,
	}

	if payload, err := json.Marshal(response); err == nil {
		s.store.Set(ctx, key, string(payload), s.ttl)
	}

	s.logger.Debug().
		Str("query", raw).
		Int("results", len(results)).
		Msg("Hybrid search completed")

	return response, nil
}

// buildSearchString decorates the cleaned title with the detected hints
// for the web-search providers.
func (s *Service) buildSearchString(title string, parsed query.ParsedQuery) string {
	parts := []string{title}
	if parsed.Language != "" {
		parts = append(parts, parsed.Language)
	}
	if parsed.Year != "" {
		parts = append(parts, parsed.Year)
	}
	if parsed.Genre != "" {
		parts = append(parts, parsed.Genre)
	}
	parts = append(parts, "movie cast")
	return strings.Join(parts, " ")
}

// searchPrimary queries the primary provider and converts its mixed
// results. A failure is downgraded to zero results.
func (s *Service) searchPrimary(ctx context.Context, title string, parsed query.ParsedQuery) []websearch.Result {
	hits, err := s.primary.MultiSearch(ctx, title)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Primary provider failed, continuing cascade")
		return nil
	}

	results := make([]websearch.Result, 0, maxResults)
	for _, hit := range hits {
		result, ok := toResult(hit)
		if !ok {
			continue
		}
		if result.Year == "" {
			result.Year = parsed.Year
		}
		result.Language = parsed.Language
		results = append(results, result)
		if len(results) >= maxResults {
			break
		}
	}
	return results
}

// toResult converts one primary multi-search hit into the unified result
// shape.
func toResult(hit tmdb.MultiResult) (websearch.Result, bool) {
	var result websearch.Result

	switch hit.MediaType {
	case "movie", "tv":
		result.Kind = websearch.KindMovie
		result.Title = hit.Title
		if result.Title == "" {
			result.Title = hit.Name
		}
		result.URL = fmt.Sprintf("https://www.%s/%s/%d", tmdb.Domain, hit.MediaType, hit.ID)
		release := hit.ReleaseDate
		if release == "" {
			release = hit.FirstAirDate
		}
		if len(release) >= 4 {
			result.Year = release[:4]
		}
		if hit.PosterPath != nil {
			result.Image = *hit.PosterPath
		}
	case "person":
		result.Kind = websearch.KindPerson
		result.Title = hit.Name
		result.URL = fmt.Sprintf("https://www.%s/person/%d", tmdb.Domain, hit.ID)
		if hit.ProfilePath != nil {
			result.Image = *hit.ProfilePath
		}
	default:
		return result, false
	}

	if result.Title == "" {
		return result, false
	}

	result.Snippet = hit.Overview
	if hit.Popularity > 0 {
		result.Confidence = hit.Popularity / popularityScale
		if result.Confidence > 1 {
			result.Confidence = 1
		}
	} else {
		result.Confidence = defaultConfidence
	}

	return result, true
}

// mergeByURL appends lower-priority results to the existing list, skipping
// any whose URL exactly matches one already present.
func mergeByURL(existing, incoming []websearch.Result) []websearch.Result {
	seen := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		seen[r.URL] = struct{}{}
	}

	for _, r := range incoming {
		if _, dup := seen[r.URL]; dup {
			continue
		}
		seen[r.URL] = struct{}{}
		existing = append(existing, r)
	}
	return existing
}

// sortByComposite orders results by confidence plus the source-trust and
// exact-title bonuses, descending.
func sortByComposite(results []websearch.Result, title string) {
	normalizedQuery := query.NormalizeTitle(title)

	composite := func(r websearch.Result) float64 {
		score := r.Confidence
		if strings.Contains(r.URL, tmdb.Domain) {
			score += primaryDomainBonus
		}
		if query.NormalizeTitle(r.Title) == normalizedQuery {
			score += exactTitleBonus
		}
		return score
	}

	sort.SliceStable(results, func(i, j int) bool {
		return composite(results[i]) > composite(results[j])
	})
}
