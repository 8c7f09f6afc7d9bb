// Package resolver turns an ambiguous free-text query into a specific
// movie or person by scoring candidates from the primary metadata provider
// against the parsed query.
package resolver

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/screenscout/screenscout/internal/config"
	"github.com/screenscout/screenscout/internal/metadata/tmdb"
	"github.com/screenscout/screenscout/internal/query"
)

// Kind is the resolver's verdict for a query.
type Kind string

const (
	KindMovie     Kind = "movie"
	KindPerson    Kind = "person"
	KindAmbiguous Kind = "ambiguous"
	KindNone      Kind = "none"
)

// Scoring weights. Similarity dominates; popularity (scaled by the
// provider's rough 0-100 range) breaks ties; a matching year is a strong
// signal that the user meant this exact release.
const (
	movieSimilarityWeight  = 0.6
	personSimilarityWeight = 0.7
	popularityWeight       = 0.3
	popularityScale        = 100.0
	yearBoost              = 0.2
)

// Candidate is a scored match from the primary provider. Score is a
// composite and can exceed 1 when bonuses stack.
type Candidate struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Kind  Kind    `json:"kind"`
	Score float64 `json:"score"`
	Image string  `json:"image,omitempty"`
	Year  string  `json:"year,omitempty"`
}

// Chosen identifies the confidently resolved entity.
type Chosen struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Decision is the resolver's sole output. Chosen is present iff Kind is
// movie or person.
type Decision struct {
	Kind       Kind        `json:"kind"`
	Chosen     *Chosen     `json:"chosen,omitempty"`
	Candidates []Candidate `json:"candidates"`
}

// MetadataSearcher is the slice of the primary provider the resolver needs.
type MetadataSearcher interface {
	SearchMovies(ctx context.Context, query string, year string) ([]tmdb.MovieResult, error)
	SearchPersons(ctx context.Context, query string) ([]tmdb.PersonResult, error)
}

// Service resolves queries against the primary metadata provider.
type Service struct {
	provider MetadataSearcher
	cfg      config.ResolverConfig
	logger   zerolog.Logger
}

// NewService creates a resolver service.
func NewService(provider MetadataSearcher, cfg config.ResolverConfig, logger zerolog.Logger) *Service {
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = 10
	}
	return &Service{
		provider: provider,
		cfg:      cfg,
		logger:   logger.With().Str("component", "resolver").Logger(),
	}
}

// Resolve parses the raw query, fetches movie and person candidates from
// the primary provider concurrently, scores and ranks them, and applies
// the confidence-threshold policy. A provider failure on either branch is
// propagated: there is no partial resolution.
func (s *Service) Resolve(ctx context.Context, raw string) (*Decision, error) {
	parsed := query.Parse(raw)
	title := parsed.Title
	if title == "" {
		title = strings.TrimSpace(raw)
	}

	type movieSearch struct {
		results []tmdb.MovieResult
		err     error
	}
	type personSearch struct {
		results []tmdb.PersonResult
		err     error
	}

	movieCh := make(chan movieSearch, 1)
	personCh := make(chan personSearch, 1)

	go func() {
		results, err := s.provider.SearchMovies(ctx, title, parsed.Year)
		movieCh <- movieSearch{results: results, err: err}
	}()
	go func() {
		results, err := s.provider.SearchPersons(ctx, title)
		personCh <- personSearch{results: results, err: err}
	}()

	movies := <-movieCh
	persons := <-personCh

	if movies.err != nil {
		return nil, fmt.Errorf("movie search failed: %w", movies.err)
	}
	if persons.err != nil {
		return nil, fmt.Errorf("person search failed: %w", persons.err)
	}

	candidates := s.scoreCandidates(title, parsed.Year, movies.results, persons.results)
	decision := s.decide(candidates)

	s.logger.Debug().
		Str("query", raw).
		Str("title", title).
		Str("kind", string(decision.Kind)).
		Int("candidates", len(decision.Candidates)).
		Msg("Resolved query")

	return decision, nil
}

// scoreCandidates merges the movie and person result lists into one ranked
// candidate list.
func (s *Service) scoreCandidates(title, year string, movies []tmdb.MovieResult, persons []tmdb.PersonResult) []Candidate {
	candidates := make([]Candidate, 0, len(movies)+len(persons))

	for _, m := range movies {
		score := query.Similarity(m.Title, title)*movieSimilarityWeight +
			m.Popularity/popularityScale*popularityWeight
		if year != "" && strings.HasPrefix(m.ReleaseDate, year) {
			score += yearBoost
		}

		c := Candidate{
			ID:    m.ID,
			Name:  m.Title,
			Kind:  KindMovie,
			Score: score,
		}
		if len(m.ReleaseDate) >= 4 {
			c.Year = m.ReleaseDate[:4]
		}
		if m.PosterPath != nil {
			c.Image = *m.PosterPath
		}
		candidates = append(candidates, c)
	}

	for _, p := range persons {
		score := query.Similarity(p.Name, title)*personSimilarityWeight +
			p.Popularity/popularityScale*popularityWeight

		c := Candidate{
			ID:    p.ID,
			Name:  p.Name,
			Kind:  KindPerson,
			Score: score,
		}
		if p.ProfilePath != nil {
			c.Image = *p.ProfilePath
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates
}

// decide applies the confidence-threshold policy. The asymmetric
// thresholds (stricter when only one candidate exists, looser when a clear
// runner-up gap exists) avoid false-confident matches on a single mediocre
// hit while still resolving clear one-candidate wins.
func (s *Service) decide(candidates []Candidate) *Decision {
	if len(candidates) == 0 {
		return &Decision{Kind: KindNone, Candidates: []Candidate{}}
	}

	top := candidates[0]

	confident := top.Score >= s.cfg.ConfidentScore
	if !confident {
		if len(candidates) > 1 {
			confident = top.Score-candidates[1].Score >= s.cfg.ConfidentGap
		} else {
			confident = top.Score >= s.cfg.SoloScore
		}
	}

	capped := candidates
	if len(capped) > s.cfg.MaxCandidates {
		capped = capped[:s.cfg.MaxCandidates]
	}
	rounded := make([]Candidate, len(capped))
	for i, c := range capped {
		c.Score = math.Round(c.Score*1000) / 1000
		rounded[i] = c
	}

	if !confident {
		return &Decision{Kind: KindAmbiguous, Candidates: rounded}
	}

	return &Decision{
		Kind: top.Kind,
		Chosen: &Chosen{
			ID:   top.ID,
			Name: top.Name,
			Kind: top.Kind,
		},
		Candidates: rounded,
	}
}
