package metadata

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/screenscout/screenscout/internal/cache"
	"github.com/screenscout/screenscout/internal/enrich"
	"github.com/screenscout/screenscout/internal/metadata/tmdb"
)

const (
	maxCastCredits = 10
	maxFilmCredits = 12
	posterSize     = "w342"
	profileSize    = "w185"
	backdropSize   = "w780"

	// Streaming availability region for assembled records.
	watchRegion = "US"
)

// Provider is the slice of the primary provider the record service needs.
type Provider interface {
	GetMovie(ctx context.Context, id int) (*tmdb.MovieDetails, error)
	GetPerson(ctx context.Context, id int) (*tmdb.PersonDetails, error)
	GetWatchProviders(ctx context.Context, id int) (*tmdb.WatchProvidersResponse, error)
	GetImageURL(path string, size string) string
}

// Enricher produces best-effort creative text for a record.
type Enricher interface {
	Enrich(ctx context.Context, evidence string, preferred enrich.ProviderID) enrich.CreativeFields
}

// Service assembles composite records. Factual fields come exclusively
// from the provider; the enricher only ever fills CreativeFields.
type Service struct {
	provider  Provider
	enricher  Enricher
	preferred enrich.ProviderID
	store     cache.Store
	ttl       time.Duration
	logger    zerolog.Logger
}

// NewService creates a record service. Enricher may be nil when no
// text-generation provider is configured.
func NewService(provider Provider, enricher Enricher, preferred enrich.ProviderID, store cache.Store, ttl time.Duration, logger zerolog.Logger) *Service {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &Service{
		provider:  provider,
		enricher:  enricher,
		preferred: preferred,
		store:     store,
		ttl:       ttl,
		logger:    logger.With().Str("component", "metadata").Logger(),
	}
}

// Movie returns the composite record for a movie ID, serving from cache
// when possible. Enrichment runs once per cache fill.
func (s *Service) Movie(ctx context.Context, id int) (*MovieRecord, error) {
	key := cache.Key("movie", map[string]any{"id": id})
	if payload, ok := s.store.Get(ctx, key); ok {
		var record MovieRecord
		if err := json.Unmarshal([]byte(payload), &record); err == nil {
			return &record, nil
		}
	}

	details, err := s.provider.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	record := s.buildMovieRecord(ctx, details)
	if s.enricher != nil {
		record.Creative = s.enricher.Enrich(ctx, record.evidence(), s.preferred)
	}

	if payload, err := json.Marshal(record); err == nil {
		s.store.Set(ctx, key, string(payload), s.ttl)
	}

	s.logger.Debug().Int("id", id).Str("title", record.Title).Msg("Assembled movie record")
	return record, nil
}

// Person returns the composite record for a person ID.
func (s *Service) Person(ctx context.Context, id int) (*PersonRecord, error) {
	key := cache.Key("person", map[string]any{"id": id})
	if payload, ok := s.store.Get(ctx, key); ok {
		var record PersonRecord
		if err := json.Unmarshal([]byte(payload), &record); err == nil {
			return &record, nil
		}
	}

	details, err := s.provider.GetPerson(ctx, id)
	if err != nil {
		return nil, err
	}

	record := buildPersonRecord(details)
	record.Image = s.provider.GetImageURL(derefPath(details.ProfilePath), profileSize)
	if s.enricher != nil {
		record.Creative = s.enricher.Enrich(ctx, record.evidence(), s.preferred)
	}

	if payload, err := json.Marshal(record); err == nil {
		s.store.Set(ctx, key, string(payload), s.ttl)
	}

	s.logger.Debug().Int("id", id).Str("name", record.Name).Msg("Assembled person record")
	return record, nil
}

func (s *Service) buildMovieRecord(ctx context.Context, details *tmdb.MovieDetails) *MovieRecord {
	record := &MovieRecord{
		ID:          details.ID,
		Title:       details.Title,
		Year:        yearOf(details.ReleaseDate),
		ReleaseDate: details.ReleaseDate,
		Runtime:     details.Runtime,
		Genres:      genreNames(details.Genres),
		Overview:    details.Overview,
		Tagline:     details.Tagline,
		Rating:      details.VoteAverage,
		Votes:       details.VoteCount,
		Popularity:  details.Popularity,
		Poster:      s.provider.GetImageURL(derefPath(details.PosterPath), posterSize),
		Backdrop:    s.provider.GetImageURL(derefPath(details.BackdropPath), backdropSize),
		ImdbID:      details.ImdbID,
		Homepage:    details.Homepage,
	}

	if details.Credits != nil {
		for _, crew := range details.Credits.Crew {
			if crew.Job == "Director" {
				record.Directors = append(record.Directors, crew.Name)
			}
		}

		cast := details.Credits.Cast
		sort.SliceStable(cast, func(i, j int) bool { return cast[i].Order < cast[j].Order })
		for _, member := range cast {
			record.Cast = append(record.Cast, CastCredit{
				Name:      member.Name,
				Character: member.Character,
				Image:     s.provider.GetImageURL(derefPath(member.ProfilePath), profileSize),
			})
			if len(record.Cast) >= maxCastCredits {
				break
			}
		}
	}

	// Streaming availability is decorative; a failure never blocks the
	// record.
	if providers, err := s.provider.GetWatchProviders(ctx, details.ID); err == nil {
		if region, ok := providers.Results[watchRegion]; ok {
			for _, p := range region.Flatrate {
				record.Streaming = append(record.Streaming, p.ProviderName)
			}
		}
	} else {
		s.logger.Debug().Err(err).Int("id", details.ID).Msg("Watch providers unavailable")
	}

	return record
}

func buildPersonRecord(details *tmdb.PersonDetails) *PersonRecord {
	record := &PersonRecord{
		ID:           details.ID,
		Name:         details.Name,
		Biography:    details.Biography,
		Birthday:     details.Birthday,
		Deathday:     details.Deathday,
		PlaceOfBirth: details.PlaceOfBirth,
		KnownFor:     details.KnownForDept,
		Popularity:   details.Popularity,
	}

	if details.MovieCredits == nil {
		return record
	}

	entries := make([]tmdb.FilmographyEntry, 0,
		len(details.MovieCredits.Cast)+len(details.MovieCredits.Crew))
	entries = append(entries, details.MovieCredits.Cast...)
	entries = append(entries, details.MovieCredits.Crew...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Popularity > entries[j].Popularity
	})

	seen := make(map[int]struct{}, len(entries))
	for _, entry := range entries {
		if _, dup := seen[entry.ID]; dup {
			continue
		}
		seen[entry.ID] = struct{}{}

		role := entry.Character
		if role == "" {
			role = entry.Job
		}
		record.Filmography = append(record.Filmography, FilmCredit{
			ID:    entry.ID,
			Title: entry.Title,
			Year:  yearOf(entry.ReleaseDate),
			Role:  role,
		})
		if len(record.Filmography) >= maxFilmCredits {
			break
		}
	}

	return record
}
