package match

import (
	"sort"
	"strconv"
	"strings"
)

// languageMarkerTokens are sub/dub and language tags whose asymmetric
// presence means two titles denote different cuts of a work.
var languageMarkerTokens = map[string]struct{}{
	"ita": {},
	"eng": {},
	"jap": {},
	"sub": {},
	"dub": {},
}

// differenceStopwords are season/part/article words ignored when looking for
// tokens unique to one side of a comparison.
var differenceStopwords = map[string]struct{}{
	"season": {}, "stagione": {}, "saison": {}, "temporada": {}, "staffel": {},
	"part": {}, "parte": {}, "cour": {},
	"the": {}, "a": {}, "an": {}, "of": {}, "and": {}, "to": {},
	"no": {}, "o": {}, "wa": {}, "ni": {},
	"la": {}, "le": {}, "il": {}, "lo": {}, "gli": {}, "di": {}, "e": {},
}

// HasSignificantDifference reports whether two normalized titles differ in a
// way that must veto a match regardless of their similarity score. Rules run
// in order and short-circuit:
//
//  1. exactly one side carries a language/sub-dub marker token;
//  2. one title's token set is a strict subset of the other's ("Title" vs
//     "Title: Subtitle" survives normalization as a subset);
//  3. after dropping stopwords and language markers, either side keeps a
//     unique word longer than two characters, or the two sides disagree on
//     their unique numeric tokens (season numbers).
func HasSignificantDifference(normA, normB string) bool {
	tokensA := strings.Fields(normA)
	tokensB := strings.Fields(normB)

	if containsLanguageMarker(tokensA) != containsLanguageMarker(tokensB) {
		return true
	}

	setA := tokenSet(tokensA)
	setB := tokenSet(tokensB)
	if isStrictSubset(setA, setB) || isStrictSubset(setB, setA) {
		return true
	}

	uniqueWordsA, uniqueNumbersA := significantUniques(setA, setB)
	uniqueWordsB, uniqueNumbersB := significantUniques(setB, setA)
	if uniqueWordsA || uniqueWordsB {
		return true
	}
	if !numbersEqual(uniqueNumbersA, uniqueNumbersB) {
		return true
	}

	return false
}

// HasSubtitleDifference inspects raw, un-normalized titles: colon-delimited
// subtitles are destroyed by normalization, so when raw titles are available
// this check runs first. A colon on exactly one side, or differing text after
// the first colon, vetoes the pair.
func HasSubtitleDifference(rawA, rawB string) bool {
	colonA := strings.Index(rawA, ":")
	colonB := strings.Index(rawB, ":")

	if (colonA >= 0) != (colonB >= 0) {
		return true
	}
	if colonA < 0 {
		return false
	}

	subtitleA := strings.TrimSpace(rawA[colonA+1:])
	subtitleB := strings.TrimSpace(rawB[colonB+1:])
	return !strings.EqualFold(subtitleA, subtitleB)
}

func containsLanguageMarker(tokens []string) bool {
	for _, token := range tokens {
		if _, ok := languageMarkerTokens[token]; ok {
			return true
		}
	}
	return false
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

func isStrictSubset(smaller, larger map[string]struct{}) bool {
	if len(smaller) == 0 || len(smaller) >= len(larger) {
		return false
	}
	for token := range smaller {
		if _, ok := larger[token]; !ok {
			return false
		}
	}
	return true
}

// significantUniques reports whether the first set keeps a non-numeric unique
// token of length > 2, and collects its unique numeric tokens.
func significantUniques(set, other map[string]struct{}) (bool, []int) {
	var numbers []int
	hasSignificantWord := false
	for token := range set {
		if _, shared := other[token]; shared {
			continue
		}
		if _, stop := differenceStopwords[token]; stop {
			continue
		}
		if _, lang := languageMarkerTokens[token]; lang {
			continue
		}
		if value, err := strconv.Atoi(token); err == nil {
			numbers = append(numbers, value)
			continue
		}
		if len(token) > 2 {
			hasSignificantWord = true
		}
	}
	return hasSignificantWord, numbers
}

func numbersEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	sort.Ints(a)
	sort.Ints(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
