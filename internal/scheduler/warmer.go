package scheduler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/screenscout/screenscout/internal/hybrid"
	"github.com/screenscout/screenscout/internal/metadata/tmdb"
)

const warmerLimit = 10

// TrendingProvider supplies the titles worth pre-caching.
type TrendingProvider interface {
	GetTrendingMovies(ctx context.Context) ([]tmdb.MovieResult, error)
}

// Searcher is the read-through search the warmer drives. Searching a
// title populates the shared cache as a side effect.
type Searcher interface {
	Search(ctx context.Context, query string) (*hybrid.Response, error)
}

// NewTrendingWarmerTask builds the periodic job that searches today's
// trending titles so common queries hit warm cache entries.
func NewTrendingWarmerTask(provider TrendingProvider, searcher Searcher, logger zerolog.Logger) TaskConfig {
	log := logger.With().Str("component", "cache-warmer").Logger()

	return TaskConfig{
		ID:         "trending-warmer",
		Name:       "Trending cache warmer",
		Cron:       "0 */6 * * *",
		RunOnStart: true,
		Func: func(ctx context.Context) error {
			trending, err := provider.GetTrendingMovies(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch trending movies: %w", err)
			}

			warmed := 0
			for _, movie := range trending {
				if movie.Title == "" {
					continue
				}
				if _, err := searcher.Search(ctx, movie.Title); err != nil {
					log.Warn().Err(err).Str("title", movie.Title).Msg("Failed to warm cache entry")
					continue
				}
				warmed++
				if warmed >= warmerLimit {
					break
				}
			}

			log.Debug().Int("warmed", warmed).Msg("Trending cache warm complete")
			return nil
		},
	}
}
