package match

import "strings"

// Similarity thresholds are empirically tuned against the normalized
// Levenshtein metric in Similarity. A shared identifier base already proves
// franchise identity, so the confirmation bar is lower there than for a pure
// title comparison, which is the only evidence on its own.
const (
	franchiseSimilarityThreshold = 0.6
	titleSimilarityThreshold     = 0.75
)

// ShouldMatch decides whether two entries from different sources denote the
// same work. Identifier agreement is authoritative when base, season and
// language all line up; a shared base with a differing season or language
// needs title confirmation at the lowered bar; anything else falls back to a
// pure title comparison. When the primary title fails, the anchor's alternate
// title is retried at the same threshold. With no titles at all the answer is
// no: unmerged beats false-merged.
func ShouldMatch(idA, idB, titleA, titleB, altTitleA string) bool {
	parsedA := ParseID(idA)
	parsedB := ParseID(idB)

	if parsedA.Base != "" && parsedA.Base == parsedB.Base {
		if parsedA.Season == parsedB.Season && parsedA.Lang == parsedB.Lang {
			return true
		}
		return titlesConfirm(titleA, titleB, franchiseSimilarityThreshold) ||
			titlesConfirm(altTitleA, titleB, franchiseSimilarityThreshold)
	}

	return titlesConfirm(titleA, titleB, titleSimilarityThreshold) ||
		titlesConfirm(altTitleA, titleB, titleSimilarityThreshold)
}

func titlesConfirm(rawA, rawB string, threshold float64) bool {
	if strings.TrimSpace(rawA) == "" || strings.TrimSpace(rawB) == "" {
		return false
	}
	if HasSubtitleDifference(rawA, rawB) {
		return false
	}

	normA := Normalize(rawA)
	normB := Normalize(rawB)
	if normA == "" || normB == "" {
		return false
	}
	if HasSignificantDifference(normA, normB) {
		return false
	}

	return Similarity(normA, normB) >= threshold
}
