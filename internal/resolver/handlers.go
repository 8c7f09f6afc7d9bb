package resolver

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/screenscout/screenscout/internal/cache"
)

// Handlers provides HTTP handlers for entity resolution.
type Handlers struct {
	service *Service
	store   cache.Store
	ttl     time.Duration
	logger  zerolog.Logger
}

// NewHandlers creates new resolver handlers.
func NewHandlers(service *Service, store cache.Store, ttl time.Duration, logger zerolog.Logger) *Handlers {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &Handlers{
		service: service,
		store:   store,
		ttl:     ttl,
		logger:  logger.With().Str("component", "resolver-api").Logger(),
	}
}

// RegisterRoutes registers the resolver routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/resolve", h.Resolve)
}

// ResolveResponse is the payload of GET /resolve.
type ResolveResponse struct {
	OK         bool        `json:"ok"`
	Type       Kind        `json:"type"`
	Query      string      `json:"query"`
	Candidates []Candidate `json:"candidates"`
	Chosen     *Chosen     `json:"chosen,omitempty"`
	Cached     bool        `json:"cached,omitempty"`
}

// Resolve resolves a free-text query to a movie or person.
// GET /api/v1/resolve?q=...
func (h *Handlers) Resolve(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q parameter is required")
	}

	ctx := c.Request().Context()
	key := cache.Key("resolve", map[string]any{"q": strings.ToLower(q)})

	if payload, ok := h.store.Get(ctx, key); ok {
		var response ResolveResponse
		if err := json.Unmarshal([]byte(payload), &response); err == nil {
			response.Cached = true
			return c.JSON(http.StatusOK, response)
		}
		// Corrupt cache entry: fall through and recompute.
	}

	decision, err := h.service.Resolve(ctx, q)
	if err != nil {
		h.logger.Error().Err(err).Str("query", q).Msg("Resolution failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve query")
	}

	response := ResolveResponse{
		OK:         true,
		Type:       decision.Kind,
		Query:      q,
		Candidates: decision.Candidates,
		Chosen:     decision.Chosen,
	}

	if payload, err := json.Marshal(response); err == nil {
		h.store.Set(ctx, key, string(payload), h.ttl)
	}

	return c.JSON(http.StatusOK, response)
}
