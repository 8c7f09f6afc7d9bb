package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/screenscout/screenscout/internal/config"
)

func newTestClient(server *httptest.Server) *Client {
	cfg := config.TMDBConfig{
		APIKey:       "test-api-key",
		BaseURL:      server.URL,
		ImageBaseURL: "https://image.tmdb.org/t/p",
		Timeout:      5,
	}
	return NewClient(cfg, zerolog.Nop())
}

func TestClient_Name(t *testing.T) {
	client := NewClient(config.TMDBConfig{}, zerolog.Nop())
	if client.Name() != "tmdb" {
		t.Errorf("Name() = %q, want %q", client.Name(), "tmdb")
	}
}

func TestClient_IsConfigured(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		want   bool
	}{
		{"with key", "abc123", true},
		{"without key", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(config.TMDBConfig{APIKey: tt.apiKey}, zerolog.Nop())
			if got := client.IsConfigured(); got != tt.want {
				t.Errorf("IsConfigured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_SearchMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		query := r.URL.Query().Get("query")
		if query != "Matrix" {
			t.Errorf("unexpected query: %s", query)
		}

		response := SearchMoviesResponse{
			Page:         1,
			TotalResults: 2,
			TotalPages:   1,
			Results: []MovieResult{
				{
					ID:          603,
					Title:       "The Matrix",
					Overview:    "A computer hacker learns about the true nature of reality.",
					ReleaseDate: "1999-03-30",
				},
				{
					ID:          604,
					Title:       "The Matrix Reloaded",
					Overview:    "Neo and the rebel leaders continue to fight.",
					ReleaseDate: "2003-05-15",
				},
			},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server)
	results, err := client.SearchMovies(context.Background(), "Matrix", "")
	if err != nil {
		t.Fatalf("SearchMovies() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("SearchMovies() returned %d results, want 2", len(results))
	}

	if results[0].Title != "The Matrix" {
		t.Errorf("results[0].Title = %q, want %q", results[0].Title, "The Matrix")
	}
	if results[0].ID != 603 {
		t.Errorf("results[0].ID = %d, want %d", results[0].ID, 603)
	}
}

func TestClient_SearchMovies_WithYear(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		year := r.URL.Query().Get("year")
		if year != "1999" {
			t.Errorf("unexpected year: %s, want 1999", year)
		}

		response := SearchMoviesResponse{
			Page:         1,
			TotalResults: 1,
			TotalPages:   1,
			Results: []MovieResult{
				{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30"},
			},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server)
	results, err := client.SearchMovies(context.Background(), "Matrix", "1999")
	if err != nil {
		t.Fatalf("SearchMovies() error = %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("SearchMovies() returned %d results, want 1", len(results))
	}
}

func TestClient_SearchMovies_NoAPIKey(t *testing.T) {
	client := NewClient(config.TMDBConfig{}, zerolog.Nop())
	_, err := client.SearchMovies(context.Background(), "Matrix", "")
	if err != ErrAPIKeyMissing {
		t.Errorf("SearchMovies() error = %v, want %v", err, ErrAPIKeyMissing)
	}
}

func TestClient_SearchPersons(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/person" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		response := SearchPersonsResponse{
			Page:         1,
			TotalResults: 1,
			TotalPages:   1,
			Results: []PersonResult{
				{ID: 525, Name: "Christopher Nolan", Popularity: 38, KnownForDepartment: "Directing"},
			},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server)
	results, err := client.SearchPersons(context.Background(), "Christopher Nolan")
	if err != nil {
		t.Fatalf("SearchPersons() error = %v", err)
	}

	if len(results) != 1 || results[0].Name != "Christopher Nolan" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestClient_MultiSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/multi" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		response := MultiSearchResponse{
			Page:         1,
			TotalResults: 2,
			Results: []MultiResult{
				{ID: 157336, MediaType: "movie", Title: "Interstellar", ReleaseDate: "2014-11-05"},
				{ID: 525, MediaType: "person", Name: "Christopher Nolan"},
			},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server)
	results, err := client.MultiSearch(context.Background(), "interstellar nolan")
	if err != nil {
		t.Fatalf("MultiSearch() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("MultiSearch() returned %d results, want 2", len(results))
	}
	if results[1].MediaType != "person" {
		t.Errorf("results[1].MediaType = %q, want person", results[1].MediaType)
	}
}

func TestClient_GetMovie(t *testing.T) {
	poster := "/poster.jpg"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("append_to_response") != "credits" {
			t.Error("credits must be appended to the movie request")
		}

		response := MovieDetails{
			ID:          603,
			Title:       "The Matrix",
			Overview:    "A computer hacker learns about the true nature of reality.",
			ReleaseDate: "1999-03-30",
			Runtime:     136,
			ImdbID:      "tt0133093",
			PosterPath:  &poster,
			Genres: []Genre{
				{ID: 28, Name: "Action"},
				{ID: 878, Name: "Science Fiction"},
			},
			Credits: &Credits{
				Cast: []CastMember{{ID: 6384, Name: "Keanu Reeves", Character: "Neo", Order: 0}},
				Crew: []CrewMember{{ID: 9339, Name: "Lana Wachowski", Job: "Director", Department: "Directing"}},
			},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server)
	result, err := client.GetMovie(context.Background(), 603)
	if err != nil {
		t.Fatalf("GetMovie() error = %v", err)
	}

	if result.Title != "The Matrix" {
		t.Errorf("Title = %q, want %q", result.Title, "The Matrix")
	}
	if result.Runtime != 136 {
		t.Errorf("Runtime = %d, want %d", result.Runtime, 136)
	}
	if result.ImdbID != "tt0133093" {
		t.Errorf("ImdbID = %q, want %q", result.ImdbID, "tt0133093")
	}
	if result.Credits == nil || len(result.Credits.Cast) != 1 {
		t.Error("credits must be decoded")
	}
}

func TestClient_GetMovie_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{
			StatusCode:    34,
			StatusMessage: "The resource you requested could not be found.",
		})
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.GetMovie(context.Background(), 99999999)
	if err != ErrNotFound {
		t.Errorf("GetMovie() error = %v, want %v", err, ErrNotFound)
	}
}

func TestClient_GetPerson(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/person/525" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("append_to_response") != "movie_credits" {
			t.Error("movie_credits must be appended to the person request")
		}

		response := PersonDetails{
			ID:           525,
			Name:         "Christopher Nolan",
			Birthday:     "1970-07-30",
			KnownForDept: "Directing",
			MovieCredits: &MovieCredits{
				Crew: []FilmographyEntry{{ID: 157336, Title: "Interstellar", Job: "Director"}},
			},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server)
	result, err := client.GetPerson(context.Background(), 525)
	if err != nil {
		t.Fatalf("GetPerson() error = %v", err)
	}

	if result.Name != "Christopher Nolan" {
		t.Errorf("Name = %q, want %q", result.Name, "Christopher Nolan")
	}
	if result.MovieCredits == nil || len(result.MovieCredits.Crew) != 1 {
		t.Error("movie credits must be decoded")
	}
}

func TestClient_GetImageURL(t *testing.T) {
	client := NewClient(config.TMDBConfig{
		ImageBaseURL: "https://image.tmdb.org/t/p",
	}, zerolog.Nop())

	tests := []struct {
		path string
		size string
		want string
	}{
		{"/abc.jpg", "w500", "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"/poster.jpg", "original", "https://image.tmdb.org/t/p/original/poster.jpg"},
		{"", "w500", ""},
	}

	for _, tt := range tests {
		got := client.GetImageURL(tt.path, tt.size)
		if got != tt.want {
			t.Errorf("GetImageURL(%q, %q) = %q, want %q", tt.path, tt.size, got, tt.want)
		}
	}
}

func TestClient_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(ErrorResponse{
			StatusCode:    25,
			StatusMessage: "Your request count is over the allowed limit.",
		})
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.SearchMovies(context.Background(), "test", "")
	if err != ErrRateLimited {
		t.Errorf("SearchMovies() error = %v, want %v", err, ErrRateLimited)
	}
}
