package hybrid

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handlers provides HTTP handlers for hybrid search.
type Handlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHandlers creates new hybrid search handlers.
func NewHandlers(service *Service, logger zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		logger:  logger.With().Str("component", "hybrid-api").Logger(),
	}
}

// RegisterRoutes registers the search routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
}

// Search runs the hybrid search cascade for a free-text query.
// GET /api/v1/search?q=...
func (h *Handlers) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q parameter is required")
	}

	response, err := h.service.Search(c.Request().Context(), q)
	if err != nil {
		h.logger.Error().Err(err).Str("query", q).Msg("Search failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, response)
}
