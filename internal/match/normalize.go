package match

import (
	"regexp"
	"strconv"
	"strings"
)

// ordinalWords maps spelled-out ordinals (English, Italian, Spanish, French,
// German) to their digit form. Extended by adding entries only.
var ordinalWords = map[string]string{
	"first": "1", "second": "2", "third": "3", "fourth": "4", "fifth": "5",
	"sixth": "6", "seventh": "7", "eighth": "8", "ninth": "9", "tenth": "10",

	"primo": "1", "prima": "1", "secondo": "2", "seconda": "2",
	"terzo": "3", "terza": "3", "quarto": "4", "quarta": "4",
	"quinto": "5", "quinta": "5", "sesto": "6", "sesta": "6",
	"settimo": "7", "settima": "7", "ottavo": "8", "ottava": "8",
	"nono": "9", "nona": "9", "decimo": "10", "decima": "10",

	"primero": "1", "primera": "1", "segundo": "2", "segunda": "2",
	"tercero": "3", "tercera": "3", "cuarto": "4", "cuarta": "4",
	"sexto": "6", "sexta": "6", "septimo": "7", "septima": "7",
	"octavo": "8", "octava": "8", "noveno": "9", "novena": "9",

	"premier": "1", "premiere": "1", "première": "1",
	"deuxieme": "2", "deuxième": "2", "troisieme": "3", "troisième": "3",
	"quatrieme": "4", "quatrième": "4", "cinquieme": "5", "cinquième": "5",
	"sixieme": "6", "sixième": "6",

	"erste": "1", "zweite": "2", "dritte": "3", "vierte": "4",
	"funfte": "5", "fünfte": "5", "sechste": "6", "siebte": "7",
	"achte": "8", "neunte": "9", "zehnte": "10",
}

var romanNumerals = map[string]string{
	"i": "1", "ii": "2", "iii": "3", "iv": "4", "v": "5",
	"vi": "6", "vii": "7", "viii": "8", "ix": "9", "x": "10",
}

// phraseNormalizations collapses known cross-source spelling variants that
// cause false negatives. Fixed table, not inferred.
var phraseNormalizations = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\bshippuuden\b`), "shippuden"},
	{regexp.MustCompile(`\bdragonball\b`), "dragon ball"},
	{regexp.MustCompile(`\bwo\b`), "o"},
}

const seasonKeywordAlternation = `season|seasons|stagione|stagioni|saison|saisons|temporada|temporadas|staffel`

var (
	ordinalWordPattern   = buildWordAlternation(ordinalWords)
	romanNumeralPattern  = regexp.MustCompile(`\b(?:viii|vii|vi|iii|ii|iv|ix|x|v|i)\b`)
	seasonAfterPattern   = regexp.MustCompile(`\b(?:` + seasonKeywordAlternation + `)[^a-z0-9]+(\d+)\b`)
	seasonBeforePattern  = regexp.MustCompile(`\b(\d+)(?:st|nd|rd|th)?[^a-z0-9]+(?:` + seasonKeywordAlternation + `)\b`)
	bareSeasonPattern    = regexp.MustCompile(`\bs(\d{1,2})\b`)
	ordinalSuffixPattern = regexp.MustCompile(`\b(\d+)(?:st|nd|rd|th)\b`)
	langMarkerPattern    = regexp.MustCompile(`\(\s*(?:sub\s*ita|ita|eng|sub|dub)\s*\)`)
	nonAlnumPattern      = regexp.MustCompile(`[^a-z0-9]+`)
)

func buildWordAlternation(words map[string]string) *regexp.Regexp {
	keys := make([]string, 0, len(words))
	for word := range words {
		keys = append(keys, regexp.QuoteMeta(word))
	}
	// Longer alternatives first so "premiere" wins over "premier".
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if len(keys[j]) > len(keys[i]) {
				keys[i], keys[j] = keys[j], keys[i]
			}
		}
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(keys, "|") + `)\b`)
}

// Normalize canonicalizes a raw title into a comparable form: lowercase,
// ordinals and season markers unified to digits, roman numerals converted,
// language markers dropped, punctuation collapsed to single spaces.
// Deterministic and idempotent; the output contains only lowercase
// alphanumerics and single spaces.
func Normalize(title string) string {
	clean := strings.ToLower(title)

	clean = ordinalWordPattern.ReplaceAllStringFunc(clean, func(word string) string {
		return ordinalWords[word]
	})

	clean = collapseSeasonMarkers(clean)

	clean = romanNumeralPattern.ReplaceAllStringFunc(clean, func(numeral string) string {
		return romanNumerals[numeral]
	})

	// Roman conversion can expose a fresh keyword+digit pair ("stagione ii"),
	// so the season collapse runs once more to keep Normalize idempotent.
	clean = collapseSeasonMarkers(clean)

	clean = ordinalSuffixPattern.ReplaceAllString(clean, "$1")
	clean = langMarkerPattern.ReplaceAllString(clean, " ")

	for _, phrase := range phraseNormalizations {
		clean = phrase.pattern.ReplaceAllString(clean, phrase.replacement)
	}

	clean = nonAlnumPattern.ReplaceAllString(clean, " ")
	return strings.Join(strings.Fields(clean), " ")
}

func collapseSeasonMarkers(clean string) string {
	clean = seasonAfterPattern.ReplaceAllString(clean, "$1")
	clean = seasonBeforePattern.ReplaceAllString(clean, "$1")
	clean = bareSeasonPattern.ReplaceAllString(clean, "$1")
	return clean
}

func ordinalWordValue(word string) (int, bool) {
	digits, ok := ordinalWords[word]
	if !ok {
		return 0, false
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return value, true
}

func romanNumeralValue(word string) (int, bool) {
	digits, ok := romanNumerals[word]
	if !ok {
		return 0, false
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return value, true
}
