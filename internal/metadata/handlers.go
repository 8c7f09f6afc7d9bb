package metadata

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/screenscout/screenscout/internal/metadata/tmdb"
	"github.com/screenscout/screenscout/internal/resolver"
)

// Resolver is the slice of the entity resolver the record handlers need.
type Resolver interface {
	Resolve(ctx context.Context, raw string) (*resolver.Decision, error)
}

// Handlers provides HTTP handlers for composite records.
type Handlers struct {
	service  *Service
	resolver Resolver
	logger   zerolog.Logger
}

// NewHandlers creates new record handlers.
func NewHandlers(service *Service, res Resolver, logger zerolog.Logger) *Handlers {
	return &Handlers{
		service:  service,
		resolver: res,
		logger:   logger.With().Str("component", "metadata-api").Logger(),
	}
}

// RegisterRoutes registers the record routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/movie", h.Movie)
	g.GET("/person", h.Person)
}

// RecordResponse is the payload of the record endpoints. When the query
// resolves confidently to the requested kind, Movie or Person is set;
// otherwise the resolver's candidate list is returned as-is so the caller
// can disambiguate.
type RecordResponse struct {
	OK         bool                 `json:"ok"`
	Type       resolver.Kind        `json:"type"`
	Query      string               `json:"query"`
	Movie      *MovieRecord         `json:"movie,omitempty"`
	Person     *PersonRecord        `json:"person,omitempty"`
	Candidates []resolver.Candidate `json:"candidates,omitempty"`
}

// Movie resolves a free-text query and returns the full movie record.
// GET /api/v1/movie?q=...
func (h *Handlers) Movie(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q parameter is required")
	}

	ctx := c.Request().Context()
	decision, err := h.resolver.Resolve(ctx, q)
	if err != nil {
		h.logger.Error().Err(err).Str("query", q).Msg("Resolution failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve query")
	}

	if decision.Kind != resolver.KindMovie {
		return c.JSON(http.StatusOK, RecordResponse{
			OK:         true,
			Type:       decision.Kind,
			Query:      q,
			Candidates: decision.Candidates,
		})
	}

	record, err := h.service.Movie(ctx, decision.Chosen.ID)
	if err != nil {
		return h.recordError(c, q, err)
	}

	return c.JSON(http.StatusOK, RecordResponse{
		OK:    true,
		Type:  resolver.KindMovie,
		Query: q,
		Movie: record,
	})
}

// Person resolves a free-text query and returns the full person record.
// GET /api/v1/person?q=...
func (h *Handlers) Person(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q parameter is required")
	}

	ctx := c.Request().Context()
	decision, err := h.resolver.Resolve(ctx, q)
	if err != nil {
		h.logger.Error().Err(err).Str("query", q).Msg("Resolution failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve query")
	}

	if decision.Kind != resolver.KindPerson {
		return c.JSON(http.StatusOK, RecordResponse{
			OK:         true,
			Type:       decision.Kind,
			Query:      q,
			Candidates: decision.Candidates,
		})
	}

	record, err := h.service.Person(ctx, decision.Chosen.ID)
	if err != nil {
		return h.recordError(c, q, err)
	}

	return c.JSON(http.StatusOK, RecordResponse{
		OK:     true,
		Type:   resolver.KindPerson,
		Query:  q,
		Person: record,
	})
}

func (h *Handlers) recordError(c echo.Context, q string, err error) error {
	if errors.Is(err, tmdb.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "record not found")
	}
	h.logger.Error().Err(err).Str("query", q).Msg("Record fetch failed")
	return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch record")
}
