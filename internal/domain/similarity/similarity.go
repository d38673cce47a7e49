// Package similarity scores how close two words are by edit distance.
// Lengths are measured in runes.
package similarity

import (
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Distance returns the Levenshtein distance between a and b
// (insert, delete, substitute, each cost 1).
//
// When the length difference exceeds half the longer length the strings are
// treated as unrelated and the longer length is returned without running the
// dynamic program.
func Distance(a, b string) int {
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	longest := max(la, lb)

	diff := la - lb
	if diff < 0 {
		diff = -diff
	}
	if diff > longest/2 {
		return longest
	}

	return edlib.LevenshteinDistance(a, b)
}

// Similarity returns 1 - Distance/maxLen in [0,1].
// Identical strings score 1; an empty string against a non-empty one scores 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	return 1.0 - float64(Distance(a, b))/float64(longest)
}
