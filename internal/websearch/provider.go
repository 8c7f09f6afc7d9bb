// Package websearch implements the secondary and tertiary search providers
// used when the primary metadata provider comes up empty or the query
// carries a regional-language hint.
package websearch

import "context"

// Kind classifies a web result.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindPerson Kind = "person"
	KindReview Kind = "review"
)

// Result is a single web search hit, annotated with an a-priori confidence
// score influenced by the hosting domain.
type Result struct {
	Title      string  `json:"title"`
	Snippet    string  `json:"snippet"`
	URL        string  `json:"url"`
	Image      string  `json:"image,omitempty"`
	Kind       Kind    `json:"kind"`
	Confidence float64 `json:"confidence"`
	Year       string  `json:"year,omitempty"`
	Language   string  `json:"language,omitempty"`
}

// Provider is a single web-search backend.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]Result, error)
}
