package match

import (
	"math"
	"testing"
)

func TestSimilarityKnownDistances(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"naruto", "naruto", 1.0},
		{"", "", 1.0},
		{"naruto", "", 0.0},
		{"", "naruto", 0.0},
		// distance 3 over max length 7
		{"kitten", "sitting", 1.0 - 3.0/7.0},
		// single substitution over length 4
		{"kimi", "kami", 0.75},
		{"abc", "xyz", 0.0},
	}

	for _, tc := range cases {
		got := Similarity(tc.a, tc.b)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Similarity(%q, %q) = %f, want %f", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"naruto shippuden", "naruto shippuden 2"},
		{"one piece", "one punch man"},
		{"", "bleach"},
		{"demon slayer", "demon slayer kimetsu no yaiba"},
	}

	for _, pair := range pairs {
		forward := Similarity(pair[0], pair[1])
		backward := Similarity(pair[1], pair[0])
		if forward != backward {
			t.Fatalf("Similarity(%q, %q) = %f but reversed = %f", pair[0], pair[1], forward, backward)
		}
	}
}

func TestSimilarityRange(t *testing.T) {
	pairs := [][2]string{
		{"a", "completely different string"},
		{"short", "longer string entirely"},
		{"same", "same"},
	}

	for _, pair := range pairs {
		got := Similarity(pair[0], pair[1])
		if got < 0.0 || got > 1.0 {
			t.Fatalf("Similarity(%q, %q) = %f out of [0,1]", pair[0], pair[1], got)
		}
	}
}
