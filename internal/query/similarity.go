package query

import (
	"regexp"
	"strings"
)

var (
	nonAlnumRegex = regexp.MustCompile(`[^a-z0-9 ]+`)
	spaceRunRegex = regexp.MustCompile(`\s+`)
)

// NormalizeTitle converts a title to a normalized form for comparison:
// lowercase, everything outside [a-z0-9 ] replaced with a space, whitespace
// collapsed and trimmed.
func NormalizeTitle(title string) string {
	normalized := strings.ToLower(title)
	normalized = nonAlnumRegex.ReplaceAllString(normalized, " ")
	normalized = spaceRunRegex.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}

// Similarity computes a normalized string-similarity score in [0,1] between
// two titles using Levenshtein edit distance over normalized text.
// Similarity(x, x) == 1 for any x; the function is symmetric. Two empty
// strings score 1 thanks to the max(..., 1) denominator floor.
func Similarity(a, b string) float64 {
	na := NormalizeTitle(a)
	nb := NormalizeTitle(b)

	maxLen := len(na)
	if len(nb) > maxLen {
		maxLen = len(nb)
	}
	if maxLen < 1 {
		maxLen = 1
	}

	return 1 - float64(levenshtein(na, nb))/float64(maxLen)
}

// levenshtein computes the edit distance between two strings using the
// two-row dynamic programming formulation.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost

			min := del
			if ins < min {
				min = ins
			}
			if sub < min {
				min = sub
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
