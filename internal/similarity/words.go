package similarity

import (
	"strings"

	"github.com/lumenotes/nugget-cli/internal/model"
)

// WordSimilarity scores two equal-length word sequences in [0,1]. Alignment
// and tokenization are the caller's responsibility: mismatched lengths score
// 0.0 outright, two empty sequences score 1.0.
//
// Per position, the first matching tier wins: exact match, substring
// containment in either direction, then edit-distance similarity scaled by
// the Levenshtein multiplier when it clears the threshold. The final score is
// the arithmetic mean over positions.
func WordSimilarity(a, b []string, opts model.SimilarityOptions) float64 {
	if len(a) != len(b) {
		return 0.0
	}
	if len(a) == 0 {
		return 1.0
	}

	var total float64
	for i := range a {
		total += wordScore(a[i], b[i], opts)
	}
	return total / float64(len(a))
}

// TextSimilarity tokenizes two whitespace-delimited strings and scores them
// with WordSimilarity. Empty tokens are filtered before scoring.
func TextSimilarity(a, b string, opts model.SimilarityOptions) float64 {
	return WordSimilarity(strings.Fields(a), strings.Fields(b), opts)
}

func wordScore(a, b string, opts model.SimilarityOptions) float64 {
	if a == b {
		return opts.ExactMatchScore
	}
	if a != "" && b != "" && (strings.Contains(a, b) || strings.Contains(b, a)) {
		return opts.SubstringMatchScore
	}
	sim := Similarity(a, b)
	if sim >= opts.LevenshteinThreshold {
		return sim * opts.LevenshteinMultiplier
	}
	return 0.0
}
