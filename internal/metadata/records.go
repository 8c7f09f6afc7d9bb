// Package metadata assembles full movie and person records from the
// primary provider and decorates them with best-effort creative text.
package metadata

import (
	"fmt"
	"strings"

	"github.com/screenscout/screenscout/internal/enrich"
	"github.com/screenscout/screenscout/internal/metadata/tmdb"
)

// MovieRecord is the composite movie payload. Every field except Creative
// comes from the primary data provider and is never writable by a
// text-generation provider.
type MovieRecord struct {
	ID          int                   `json:"id"`
	Title       string                `json:"title"`
	Year        string                `json:"year,omitempty"`
	ReleaseDate string                `json:"releaseDate,omitempty"`
	Runtime     int                   `json:"runtime,omitempty"`
	Genres      []string              `json:"genres,omitempty"`
	Overview    string                `json:"overview,omitempty"`
	Tagline     string                `json:"tagline,omitempty"`
	Rating      float64               `json:"rating,omitempty"`
	Votes       int                   `json:"votes,omitempty"`
	Popularity  float64               `json:"popularity,omitempty"`
	Poster      string                `json:"poster,omitempty"`
	Backdrop    string                `json:"backdrop,omitempty"`
	ImdbID      string                `json:"imdbId,omitempty"`
	Homepage    string                `json:"homepage,omitempty"`
	Directors   []string              `json:"directors,omitempty"`
	Cast        []CastCredit          `json:"cast,omitempty"`
	Streaming   []string              `json:"streaming,omitempty"`
	Creative    enrich.CreativeFields `json:"creative"`
}

// CastCredit is one billed cast member.
type CastCredit struct {
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
	Image     string `json:"image,omitempty"`
}

// PersonRecord is the composite person payload.
type PersonRecord struct {
	ID           int                   `json:"id"`
	Name         string                `json:"name"`
	Biography    string                `json:"biography,omitempty"`
	Birthday     string                `json:"birthday,omitempty"`
	Deathday     string                `json:"deathday,omitempty"`
	PlaceOfBirth string                `json:"placeOfBirth,omitempty"`
	KnownFor     string                `json:"knownFor,omitempty"`
	Popularity   float64               `json:"popularity,omitempty"`
	Image        string                `json:"image,omitempty"`
	Filmography  []FilmCredit          `json:"filmography,omitempty"`
	Creative     enrich.CreativeFields `json:"creative"`
}

// FilmCredit is one filmography entry, most notable first.
type FilmCredit struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Year  string `json:"year,omitempty"`
	Role  string `json:"role,omitempty"`
}

// evidence renders the factual fields as plain text for the enrichment
// providers. Creative output is grounded on this text alone.
func (r *MovieRecord) evidence() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Movie: %s", r.Title)
	if r.Year != "" {
		fmt.Fprintf(&b, " (%s)", r.Year)
	}
	b.WriteString("\n")
	if len(r.Genres) > 0 {
		fmt.Fprintf(&b, "Genres: %s\n", strings.Join(r.Genres, ", "))
	}
	if len(r.Directors) > 0 {
		fmt.Fprintf(&b, "Directed by: %s\n", strings.Join(r.Directors, ", "))
	}
	if len(r.Cast) > 0 {
		names := make([]string, 0, len(r.Cast))
		for _, c := range r.Cast {
			names = append(names, c.Name)
		}
		fmt.Fprintf(&b, "Starring: %s\n", strings.Join(names, ", "))
	}
	if r.Overview != "" {
		fmt.Fprintf(&b, "Overview: %s\n", r.Overview)
	}
	return b.String()
}

func (r *PersonRecord) evidence() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Person: %s\n", r.Name)
	if r.KnownFor != "" {
		fmt.Fprintf(&b, "Known for: %s\n", r.KnownFor)
	}
	if len(r.Filmography) > 0 {
		titles := make([]string, 0, len(r.Filmography))
		for _, f := range r.Filmography {
			titles = append(titles, f.Title)
		}
		fmt.Fprintf(&b, "Credits: %s\n", strings.Join(titles, ", "))
	}
	if r.Biography != "" {
		fmt.Fprintf(&b, "Biography: %s\n", r.Biography)
	}
	return b.String()
}

func yearOf(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return ""
}

func derefPath(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func genreNames(genres []tmdb.Genre) []string {
	if len(genres) == 0 {
		return nil
	}
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return names
}
