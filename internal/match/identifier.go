package match

import (
	"strconv"
	"strings"
)

// ParsedID is the decomposition of a source-specific slug: the slug with
// season/language tokens stripped, the season number (0 when the slug carries
// no season marker) and the language tag when one is embedded ("" otherwise).
type ParsedID struct {
	Base   string
	Season int
	Lang   string
}

var idLangMarkers = map[string]struct{}{
	"ita": {},
	"eng": {},
}

var idSeasonKeywords = map[string]struct{}{
	"season":    {},
	"stagione":  {},
	"saison":    {},
	"temporada": {},
	"staffel":   {},
	"s":         {},
}

// idiomaticSeasonPatterns resolves slugs whose season is spelled as a phrase
// rather than a number. Fixed lookup, matched as a contiguous token run.
var idiomaticSeasonPatterns = []struct {
	tokens []string
	season int
}{
	{tokens: []string{"final", "season"}, season: 4},
	{tokens: []string{"after", "story"}, season: 2},
}

// ParseID decomposes a source slug such as "naruto-shippuden-2-ita" into
// {Base: "naruto-shippuden", Season: 2, Lang: "ita"}. Anything before the
// first "." is considered (sources append opaque suffixes after a dot).
// Pure and total: unparseable input degrades to the whole lowered id with
// season 0.
func ParseID(id string) ParsedID {
	lowered := strings.TrimSpace(strings.ToLower(id))
	if dot := strings.Index(lowered, "."); dot >= 0 {
		lowered = strings.TrimSpace(lowered[:dot])
	}

	rawTokens := strings.Split(lowered, "-")
	tokens := make([]string, 0, len(rawTokens))
	lang := ""
	for _, token := range rawTokens {
		if token == "" {
			continue
		}
		if _, isLang := idLangMarkers[token]; isLang && lang == "" {
			lang = token
			continue
		}
		tokens = append(tokens, token)
	}

	tokens, season := extractSeason(tokens)
	base := strings.Join(tokens, "-")
	if base == "" {
		return ParsedID{Base: lowered, Season: 0, Lang: lang}
	}
	return ParsedID{Base: base, Season: season, Lang: lang}
}

func extractSeason(tokens []string) ([]string, int) {
	if remaining, season, ok := matchIdiomaticSeason(tokens); ok {
		return remaining, season
	}

	for index, token := range tokens {
		if _, isKeyword := idSeasonKeywords[token]; !isKeyword {
			continue
		}
		if index+1 < len(tokens) {
			if season, ok := tokenSeasonNumber(tokens[index+1]); ok {
				return removeTokens(tokens, index, index+1), season
			}
		}
		if index > 0 {
			if season, ok := tokenSeasonNumber(tokens[index-1]); ok {
				return removeTokens(tokens, index-1, index), season
			}
		}
		// Keyword with no adjacent number still marks an explicit season.
		return removeTokens(tokens, index, index), 1
	}

	if len(tokens) > 1 {
		last := len(tokens) - 1
		if season, ok := tokenSeasonNumber(tokens[last]); ok {
			return tokens[:last], season
		}
	}

	return tokens, 0
}

func matchIdiomaticSeason(tokens []string) ([]string, int, bool) {
	for _, pattern := range idiomaticSeasonPatterns {
		if len(pattern.tokens) > len(tokens) {
			continue
		}
		for start := 0; start+len(pattern.tokens) <= len(tokens); start++ {
			if !tokensEqual(tokens[start:start+len(pattern.tokens)], pattern.tokens) {
				continue
			}
			return removeTokens(tokens, start, start+len(pattern.tokens)-1), pattern.season, true
		}
	}
	return nil, 0, false
}

func tokensEqual(a, b []string) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// tokenSeasonNumber interprets one slug token as a season number: pure
// digits, ordinal-suffixed digits ("2nd"), named ordinals ("seconda") and
// roman numerals all qualify.
func tokenSeasonNumber(token string) (int, bool) {
	if token == "" {
		return 0, false
	}
	if value, err := strconv.Atoi(token); err == nil {
		return value, true
	}
	if matched := ordinalSuffixPattern.FindStringSubmatch(token); matched != nil && len(matched[0]) == len(token) {
		value, err := strconv.Atoi(matched[1])
		if err == nil {
			return value, true
		}
	}
	if value, ok := ordinalWordValue(token); ok {
		return value, true
	}
	if value, ok := romanNumeralValue(token); ok {
		return value, true
	}
	if len(token) > 1 && token[0] == 's' {
		if value, err := strconv.Atoi(token[1:]); err == nil && value < 100 {
			return value, true
		}
	}
	return 0, false
}

func removeTokens(tokens []string, from, to int) []string {
	remaining := make([]string, 0, len(tokens))
	for index, token := range tokens {
		if index >= from && index <= to {
			continue
		}
		remaining = append(remaining, token)
	}
	return remaining
}
