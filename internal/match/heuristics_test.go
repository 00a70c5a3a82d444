package match

import "testing"

func TestHasSignificantDifference(t *testing.T) {
	cases := []struct {
		name  string
		normA string
		normB string
		want  bool
	}{
		{"identical", "naruto shippuden", "naruto shippuden", false},
		{"language tag asymmetry", "naruto sub ita", "naruto", true},
		{"language tag on both sides", "naruto ita", "naruto ita", false},
		{"strict subset", "blue lock", "blue lock episode nagi", true},
		{"strict subset reversed", "blue lock episode nagi", "blue lock", true},
		{"unique long token", "naruto shippuden", "naruto kai", true},
		{"differing season numbers", "naruto 2", "naruto 3", true},
		{"article subset still vetoes", "the naruto", "naruto", true},
		{"stopword uniques on both sides", "the naruto story", "il naruto story", false},
		{"short unique token ignored", "naruto xy", "naruto zz", false},
		{"both empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HasSignificantDifference(tc.normA, tc.normB)
			if got != tc.want {
				t.Fatalf("HasSignificantDifference(%q, %q) = %v, want %v", tc.normA, tc.normB, got, tc.want)
			}
		})
	}
}

func TestHasSubtitleDifference(t *testing.T) {
	cases := []struct {
		name string
		rawA string
		rawB string
		want bool
	}{
		{"no colons", "Blue Lock", "Blue Lock", false},
		{"colon on one side", "Blue Lock", "Blue Lock: Episode Nagi", true},
		{"same subtitle different case", "Re:Zero", "re:ZERO", false},
		{"different subtitles", "Fate: Zero", "Fate: Stay Night", true},
		{"same subtitle with spacing", "Naruto: Shippuden", "Naruto:   Shippuden", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HasSubtitleDifference(tc.rawA, tc.rawB)
			if got != tc.want {
				t.Fatalf("HasSubtitleDifference(%q, %q) = %v, want %v", tc.rawA, tc.rawB, got, tc.want)
			}
		})
	}
}
