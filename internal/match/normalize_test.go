package match

import (
	"strings"
	"testing"
)

func TestNormalizePipeline(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase and punctuation", "Naruto: Shippuden!!", "naruto shippuden"},
		{"ordinal word english", "Attack on Titan Second Season", "attack on titan 2"},
		{"ordinal word italian", "L'Attacco dei Giganti Seconda Stagione", "l attacco dei giganti 2"},
		{"season keyword after number", "Mob Psycho 100 Season 3", "mob psycho 100 3"},
		{"season keyword before number", "2nd Season Overlord", "2 overlord"},
		{"bare season marker", "Sword Art Online S2", "sword art online 2"},
		{"roman numeral", "Overlord IV", "overlord 4"},
		{"roman numeral with keyword", "Attack on Titan Stagione II", "attack on titan 2"},
		{"ordinal suffix", "Re:Zero 2nd", "re zero 2"},
		{"language marker removed", "Naruto (ITA)", "naruto"},
		{"sub ita marker removed", "One Piece (Sub ITA)", "one piece"},
		{"phrase table shippuuden", "Naruto Shippuuden", "naruto shippuden"},
		{"phrase table dragonball", "Dragonball Super", "dragon ball super"},
		{"whitespace collapse", "  Hunter   Hunter  ", "hunter hunter"},
		{"empty", "", ""},
		{"only punctuation", "!!! ???", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input)
			if got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Naruto: Shippuden 2nd Season (ITA)",
		"L'Attacco dei Giganti Stagione II",
		"Overlord IV",
		"Sword Art Online S2",
		"Demon Slayer: Kimetsu no Yaiba",
		"Saison 3 - La Guerre",
		"2ª Temporada",
		"Dragonball Z",
		"",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalizeOutputAlphabet(t *testing.T) {
	inputs := []string{
		"Naruto: Shippuden 2nd Season (ITA)",
		"Fullmetal Alchemist — Brotherhood!?",
		"Steins;Gate 0",
	}

	for _, input := range inputs {
		got := Normalize(input)
		for _, r := range got {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
				continue
			}
			t.Fatalf("Normalize(%q) = %q contains forbidden rune %q", input, got, r)
		}
		if strings.Contains(got, "  ") {
			t.Fatalf("Normalize(%q) = %q contains repeated spaces", input, got)
		}
		if got != strings.TrimSpace(got) {
			t.Fatalf("Normalize(%q) = %q not trimmed", input, got)
		}
	}
}
