package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/screenscout/screenscout/internal/cache"
	"github.com/screenscout/screenscout/internal/config"
	"github.com/screenscout/screenscout/internal/database"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewServer(db.Conn(), cache.NewMemory(), config.Default(), zerolog.Nop())
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestStatus(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	// No API keys in the default config.
	if body["tmdbConfigured"] != false || body["enrichEnabled"] != false {
		t.Errorf("unexpected status body: %v", body)
	}
}

func TestRoutesRegistered(t *testing.T) {
	s := newTestServer(t)

	// Blank q must fail fast on every query endpoint.
	for _, path := range []string{"/api/v1/resolve", "/api/v1/search", "/api/v1/movie", "/api/v1/person"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		s.Echo().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s = %d, want 400", path, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/watchlist", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /api/v1/watchlist = %d, want 200", rec.Code)
	}
}
