package query

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedQuery captures the structured hints extracted from a raw search
// string. Title is the cleaned query with all recognized hints stripped.
type ParsedQuery struct {
	Title     string `json:"title"`
	Year      string `json:"year,omitempty"`
	Language  string `json:"language,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Season    int    `json:"season,omitempty"`
	Episode   int    `json:"episode,omitempty"`
	IsComplex bool   `json:"isComplex"`
}

var (
	yearRegex          = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	seasonEpisodeRegex = regexp.MustCompile(`(?i)\bS(\d{1,2})\s*E(\d{1,2})\b`)
	seasonWordsRegex   = regexp.MustCompile(`(?i)\bseason\s+(\d{1,2})(?:\s*(?:episode|ep)\s*(\d{1,2}))?\b`)
	multipleSpaceRegex = regexp.MustCompile(`\s+`)
)

// languageKeyword maps a query token to a canonical regional-language name.
// Colloquial industry nicknames map to the language of that industry.
// Order matters: the first matching keyword wins and scanning stops.
type languageKeyword struct {
	keyword  string
	language string
}

var languageKeywords = []languageKeyword{
	{"tollywood", "Telugu"},
	{"kollywood", "Tamil"},
	{"mollywood", "Malayalam"},
	{"sandalwood", "Kannada"},
	{"bollywood", "Hindi"},
	{"telugu", "Telugu"},
	{"tamil", "Tamil"},
	{"malayalam", "Malayalam"},
	{"kannada", "Kannada"},
	{"hindi", "Hindi"},
	{"bengali", "Bengali"},
	{"marathi", "Marathi"},
	{"punjabi", "Punjabi"},
	{"gujarati", "Gujarati"},
}

var genreKeywords = []string{
	"science fiction",
	"sci-fi",
	"action",
	"comedy",
	"drama",
	"thriller",
	"horror",
	"romance",
	"fantasy",
	"documentary",
	"animation",
	"crime",
	"mystery",
	"adventure",
}

var noiseWords = []string{"movie", "film", "series", "show"}

// Parse extracts structured hints from a raw free-text query. It is a pure
// function: no I/O, no error conditions. If the cleaned title comes out
// empty, callers must fall back to the raw query rather than pass an empty
// title downstream.
func Parse(raw string) ParsedQuery {
	parsed := ParsedQuery{}
	working := strings.TrimSpace(raw)

	// 4-digit year
	if year := yearRegex.FindString(working); year != "" {
		parsed.Year = year
		parsed.IsComplex = true
		working = strings.Replace(working, year, " ", 1)
	}

	// Season/episode markers (S01E02, "season 1 episode 2")
	if m := seasonEpisodeRegex.FindStringSubmatch(working); m != nil {
		parsed.Season, _ = strconv.Atoi(m[1])
		parsed.Episode, _ = strconv.Atoi(m[2])
		parsed.IsComplex = true
		working = seasonEpisodeRegex.ReplaceAllString(working, " ")
	} else if m := seasonWordsRegex.FindStringSubmatch(working); m != nil {
		parsed.Season, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			parsed.Episode, _ = strconv.Atoi(m[2])
		}
		parsed.IsComplex = true
		working = seasonWordsRegex.ReplaceAllString(working, " ")
	}

	// Regional language: first substring match wins, no multi-language
	// detection.
	lowered := strings.ToLower(working)
	for _, lk := range languageKeywords {
		if strings.Contains(lowered, lk.keyword) {
			parsed.Language = lk.language
			parsed.IsComplex = true
			working = stripAll(working, lk.keyword)
			break
		}
	}

	// Genre: first match wins.
	lowered = strings.ToLower(working)
	for _, genre := range genreKeywords {
		if containsWord(lowered, genre) {
			parsed.Genre = genre
			parsed.IsComplex = true
			working = stripKeyword(working, genre)
			break
		}
	}

	// Generic noise words carry no signal.
	for _, noise := range noiseWords {
		working = stripKeyword(working, noise)
	}

	parsed.Title = collapseSpaces(working)
	return parsed
}

// stripKeyword removes all case-insensitive whole-word occurrences of
// keyword from s.
func stripKeyword(s, keyword string) string {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	return re.ReplaceAllString(s, " ")
}

// stripAll removes every case-insensitive occurrence of keyword from s,
// word boundary or not.
func stripAll(s, keyword string) string {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword))
	return re.ReplaceAllString(s, " ")
}

// containsWord reports whether lowered contains keyword as a whole word.
func containsWord(lowered, keyword string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	return re.MatchString(lowered)
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(multipleSpaceRegex.ReplaceAllString(s, " "))
}
