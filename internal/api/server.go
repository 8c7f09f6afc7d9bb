// Package api wires the services together and serves the HTTP API.
package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/screenscout/screenscout/internal/cache"
	"github.com/screenscout/screenscout/internal/config"
	"github.com/screenscout/screenscout/internal/enrich"
	"github.com/screenscout/screenscout/internal/hybrid"
	"github.com/screenscout/screenscout/internal/metadata"
	"github.com/screenscout/screenscout/internal/metadata/tmdb"
	"github.com/screenscout/screenscout/internal/resolver"
	"github.com/screenscout/screenscout/internal/watchlist"
	"github.com/screenscout/screenscout/internal/websearch"
)

// Server handles HTTP requests for the ScreenScout API.
type Server struct {
	echo   *echo.Echo
	db     *sql.DB
	store  cache.Store
	logger zerolog.Logger
	cfg    *config.Config

	// Services
	tmdbClient      *tmdb.Client
	resolverService *resolver.Service
	hybridService   *hybrid.Service
	metadataService *metadata.Service
	watchlistStore  *watchlist.Store
	enrichChain     *enrich.Chain
}

// NewServer creates a new API server instance.
func NewServer(db *sql.DB, store cache.Store, cfg *config.Config, logger zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:   e,
		db:     db,
		store:  store,
		logger: logger,
		cfg:    cfg,
	}

	cacheTTL := time.Duration(cfg.Search.CacheTTLHours) * time.Hour

	// Primary metadata provider and resolver
	s.tmdbClient = tmdb.NewClient(cfg.TMDB, logger)
	s.resolverService = resolver.NewService(s.tmdbClient, cfg.Resolver, logger)

	// Web-search cascade: DuckDuckGo always, SerpAPI and Tavily only when
	// their keys are configured
	secondary := []websearch.Provider{websearch.NewDuckDuckGo(cfg.Search, logger)}
	if serp := websearch.NewSerpAPI(cfg.Search, logger); serp.IsConfigured() {
		secondary = append(secondary, serp)
	}
	var tertiary websearch.Provider
	if tavily := websearch.NewTavily(cfg.Search, logger); tavily.IsConfigured() {
		tertiary = tavily
	}
	s.hybridService = hybrid.NewService(s.tmdbClient, secondary, tertiary, store, cacheTTL, logger)

	// Creative-text provider chain, in canonical order
	var providers []enrich.Provider
	if cfg.Enrich.OpenRouterKey != "" {
		providers = append(providers, enrich.NewOpenRouter(cfg.Enrich.OpenRouterKey, ""))
	}
	if cfg.Enrich.GroqKey != "" {
		providers = append(providers, enrich.NewGroq(cfg.Enrich.GroqBaseURL, cfg.Enrich.GroqKey, ""))
	}
	if cfg.Enrich.MistralKey != "" {
		providers = append(providers, enrich.NewMistral(cfg.Enrich.MistralBaseURL, cfg.Enrich.MistralKey, ""))
	}

	var enricher metadata.Enricher
	if len(providers) > 0 {
		s.enrichChain = enrich.NewChain(providers,
			time.Duration(cfg.Enrich.TimeoutSeconds)*time.Second, logger)
		enricher = s.enrichChain
	} else {
		logger.Info().Msg("No enrichment providers configured, records will carry factual fields only")
	}

	s.metadataService = metadata.NewService(s.tmdbClient, enricher,
		enrich.ProviderID(cfg.Enrich.Preferred), store, cacheTTL, logger)

	s.watchlistStore = watchlist.NewStore(db, logger)

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures Echo middleware.
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestID())

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogMethod:   true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Err(v.Error).
					Msg("request error")
			} else {
				s.logger.Info().
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Msg("request")
			}
			return nil
		},
	}))

	s.echo.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
}

// setupRoutes configures API routes.
func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)

	api := s.echo.Group("/api/v1")
	api.GET("/status", s.getStatus)

	cacheTTL := time.Duration(s.cfg.Search.CacheTTLHours) * time.Hour

	resolverHandlers := resolver.NewHandlers(s.resolverService, s.store, cacheTTL, s.logger)
	resolverHandlers.RegisterRoutes(api)

	hybridHandlers := hybrid.NewHandlers(s.hybridService, s.logger)
	hybridHandlers.RegisterRoutes(api)

	metadataHandlers := metadata.NewHandlers(s.metadataService, s.resolverService, s.logger)
	metadataHandlers.RegisterRoutes(api)

	watchlistHandlers := watchlist.NewHandlers(s.watchlistStore, s.logger)
	watchlistHandlers.RegisterRoutes(api)
}

// Start begins listening for HTTP requests.
func (s *Server) Start(address string) error {
	s.logger.Info().Str("address", address).Msg("starting HTTP server")
	return s.echo.Start(address)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

// Echo returns the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// TMDB returns the primary metadata client, used by the cache warmer.
func (s *Server) TMDB() *tmdb.Client {
	return s.tmdbClient
}

// Hybrid returns the hybrid search service, used by the cache warmer.
func (s *Server) Hybrid() *hybrid.Service {
	return s.hybridService
}

// --- Handler implementations ---

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"version":        "0.1.0",
		"tmdbConfigured": s.tmdbClient.IsConfigured(),
		"enrichEnabled":  s.enrichChain != nil,
	})
}
