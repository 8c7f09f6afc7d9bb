package query

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{name: "identical", a: "Interstellar", b: "Interstellar", expected: 1},
		{name: "identical after normalization", a: "Schitt's Creek", b: "schitts creek", expected: 1},
		{name: "both empty", a: "", b: "", expected: 1},
		{name: "one empty", a: "Dune", b: "", expected: 0},
		{name: "disjoint", a: "abcd", b: "wxyz", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestSimilarityReflexive(t *testing.T) {
	for _, s := range []string{"Inception", "The Matrix", "a", "12 Angry Men"} {
		if got := Similarity(s, s); got != 1 {
			t.Errorf("Similarity(%q, %q) = %f, want 1", s, s, got)
		}
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Interstellar", "Interstelar"},
		{"The Dark Knight", "Dark Knight"},
		{"Heat", "Hate"},
		{"", "Alien"},
	}

	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity(%q, %q) = %f but Similarity(%q, %q) = %f", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestSimilarityRange(t *testing.T) {
	pairs := [][2]string{
		{"Interstellar", "Inception"},
		{"a very long movie title indeed", "short"},
		{"Heat", "Heat 1995"},
	}

	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %f, out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"The Matrix", "the matrix"},
		{"Spider-Man: No Way Home", "spider man no way home"},
		{"  WALL·E  ", "wall e"},
		{"RRR", "rrr"},
	}

	for _, tt := range tests {
		if got := NormalizeTitle(tt.in); got != tt.expected {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}
