package match

import "testing"

func TestParseID(t *testing.T) {
	cases := []struct {
		name string
		id   string
		want ParsedID
	}{
		{"season and language", "naruto-shippuden-2-ita", ParsedID{Base: "naruto-shippuden", Season: 2, Lang: "ita"}},
		{"trailing numeric season", "demon-slayer-1", ParsedID{Base: "demon-slayer", Season: 1}},
		{"no season marker", "one-piece", ParsedID{Base: "one-piece", Season: 0}},
		{"keyword with number", "tokyo-ghoul-stagione-2", ParsedID{Base: "tokyo-ghoul", Season: 2}},
		{"keyword before number order", "overlord-season-3", ParsedID{Base: "overlord", Season: 3}},
		{"number before keyword", "overlord-3-season", ParsedID{Base: "overlord", Season: 3}},
		{"keyword without number defaults to one", "bleach-season", ParsedID{Base: "bleach", Season: 1}},
		{"trailing roman numeral", "overlord-iv", ParsedID{Base: "overlord", Season: 4}},
		{"trailing ordinal suffix", "slime-datta-ken-2nd", ParsedID{Base: "slime-datta-ken", Season: 2}},
		{"trailing named ordinal", "haikyuu-second", ParsedID{Base: "haikyuu", Season: 2}},
		{"fused season marker", "attack-on-titan-s2", ParsedID{Base: "attack-on-titan", Season: 2}},
		{"idiomatic final season", "l-attacco-dei-giganti-final-season", ParsedID{Base: "l-attacco-dei-giganti", Season: 4}},
		{"opaque suffix stripped", "bukiyou-na-senpai.2nw2", ParsedID{Base: "bukiyou-na-senpai", Season: 0}},
		{"suffix stripped before season", "naruto-shippuden-2.4rEV", ParsedID{Base: "naruto-shippuden", Season: 2}},
		{"uppercase input", "NARUTO-Shippuden-2-ITA", ParsedID{Base: "naruto-shippuden", Season: 2, Lang: "ita"}},
		{"empty tokens dropped", "one--piece---2", ParsedID{Base: "one-piece", Season: 2}},
		{"empty input", "", ParsedID{Base: "", Season: 0}},
		{"only language marker", "ita", ParsedID{Base: "ita", Season: 0, Lang: "ita"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseID(tc.id)
			if got != tc.want {
				t.Fatalf("ParseID(%q) = %+v, want %+v", tc.id, got, tc.want)
			}
		})
	}
}

func TestParseIDIsPure(t *testing.T) {
	id := "naruto-shippuden-2-ita"
	first := ParseID(id)
	second := ParseID(id)
	if first != second {
		t.Fatalf("ParseID not deterministic: %+v vs %+v", first, second)
	}
}
