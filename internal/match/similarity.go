package match

// Similarity returns a normalized string similarity in [0, 1]: one minus the
// Levenshtein distance divided by the longer length. Two empty strings are
// identical by definition. Symmetric in its arguments.
//
// The thresholds used by ShouldMatch are tuned against exactly this metric,
// so it is implemented explicitly rather than delegated to a library with its
// own notion of distance.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	runesA := []rune(a)
	runesB := []rune(b)
	longest := len(runesA)
	if len(runesB) > longest {
		longest = len(runesB)
	}
	if longest == 0 {
		return 1.0
	}

	return 1.0 - float64(levenshtein(runesA, runesB))/float64(longest)
}

// levenshtein is the classic insert/delete/substitute minimum edit distance,
// computed with a two-row dynamic program in O(len(a)*len(b)).
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	previous := make([]int, len(b)+1)
	current := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		previous[j] = j
	}

	for i := 1; i <= len(a); i++ {
		current[0] = i
		for j := 1; j <= len(b); j++ {
			substitution := previous[j-1]
			if a[i-1] != b[j-1] {
				substitution++
			}
			deletion := previous[j] + 1
			insertion := current[j-1] + 1

			minimum := substitution
			if deletion < minimum {
				minimum = deletion
			}
			if insertion < minimum {
				minimum = insertion
			}
			current[j] = minimum
		}
		previous, current = current, previous
	}

	return previous[len(b)]
}
