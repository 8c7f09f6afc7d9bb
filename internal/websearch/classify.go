package websearch

import "strings"

// Fixed domain-trust heuristic, not learned. IMDb is the authoritative
// film database; Wikipedia is the encyclopedia tier; the review
// aggregators sit just below.
const (
	baseConfidence       = 0.7
	filmDBConfidence     = 0.95
	wikipediaConfidence  = 0.9
	aggregatorConfidence = 0.85
)

var reviewHints = []string{"review", "rating", "critic", "rotten tomatoes", "metacritic"}

var personHints = []string{
	"actor", "actress", "director", "producer", "filmography",
	"born", "biography", "net worth",
}

// classify tags a web result as movie, person, or review based on title
// and snippet text.
func classify(title, snippet string) Kind {
	text := strings.ToLower(title + " " + snippet)

	for _, hint := range reviewHints {
		if strings.Contains(text, hint) {
			return KindReview
		}
	}
	for _, hint := range personHints {
		if strings.Contains(text, hint) {
			return KindPerson
		}
	}
	return KindMovie
}

// confidenceFor returns the a-priori confidence for a result URL.
func confidenceFor(url string) float64 {
	lowered := strings.ToLower(url)

	switch {
	case strings.Contains(lowered, "imdb.com"):
		return filmDBConfidence
	case strings.Contains(lowered, "wikipedia.org"):
		return wikipediaConfidence
	case strings.Contains(lowered, "rottentomatoes.com"),
		strings.Contains(lowered, "metacritic.com"):
		return aggregatorConfidence
	default:
		return baseConfidence
	}
}
