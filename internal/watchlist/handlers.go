package watchlist

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handlers provides HTTP handlers for the watchlist.
type Handlers struct {
	store  *Store
	logger zerolog.Logger
}

// NewHandlers creates new watchlist handlers.
func NewHandlers(store *Store, logger zerolog.Logger) *Handlers {
	return &Handlers{
		store:  store,
		logger: logger.With().Str("component", "watchlist-api").Logger(),
	}
}

// RegisterRoutes registers the watchlist routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/watchlist", h.List)
	g.POST("/watchlist", h.Add)
	g.DELETE("/watchlist/:id", h.Remove)
}

// AddRequest is the POST /watchlist body.
type AddRequest struct {
	Kind  string `json:"kind"`
	ID    int    `json:"id"`
	Title string `json:"title"`
	Year  string `json:"year"`
	Image string `json:"image"`
}

// ListResponse is the GET /watchlist payload.
type ListResponse struct {
	OK      bool    `json:"ok"`
	Total   int     `json:"total"`
	Entries []Entry `json:"entries"`
}

// List returns all watchlist entries, newest first.
// GET /api/v1/watchlist
func (h *Handlers) List(c echo.Context) error {
	entries, err := h.store.List(c.Request().Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list watchlist")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list watchlist")
	}

	return c.JSON(http.StatusOK, ListResponse{
		OK:      true,
		Total:   len(entries),
		Entries: entries,
	})
}

// Add saves a movie or person to the watchlist.
// POST /api/v1/watchlist
func (h *Handlers) Add(c echo.Context) error {
	var req AddRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req.Kind = strings.ToLower(strings.TrimSpace(req.Kind))
	if req.Kind != "movie" && req.Kind != "person" {
		return echo.NewHTTPError(http.StatusBadRequest, "kind must be movie or person")
	}
	if req.ID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	if strings.TrimSpace(req.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	entry, err := h.store.Add(c.Request().Context(), req.Kind, req.ID, req.Title, req.Year, req.Image)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return echo.NewHTTPError(http.StatusConflict, "entry already on watchlist")
		}
		h.logger.Error().Err(err).Msg("Failed to add watchlist entry")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add watchlist entry")
	}

	return c.JSON(http.StatusCreated, entry)
}

// Remove deletes a watchlist entry by ID.
// DELETE /api/v1/watchlist/:id
func (h *Handlers) Remove(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	if err := h.store.Remove(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "entry not found")
		}
		h.logger.Error().Err(err).Msg("Failed to remove watchlist entry")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to remove watchlist entry")
	}

	return c.NoContent(http.StatusNoContent)
}
