// Package validate scores whether an LLM-claimed passage actually occurs in
// the source text it was extracted from. Providers paraphrase, truncate, and
// re-punctuate the text they echo back, so containment is checked in tiers of
// decreasing strictness. Scores are fixed per tier, not cumulative.
package validate

import (
	"strings"

	"github.com/lumenotes/nugget-cli/internal/model"
	"github.com/lumenotes/nugget-cli/internal/similarity"
)

// Tier scores. First matching tier wins.
const (
	scoreExact           = 1.0
	scoreCaseInsensitive = 0.95
	scoreFuzzy           = 0.8
	scorePartialPrefix   = 0.6
)

// fuzzyThreshold is the minimum normalized edit similarity for a window
// substring to count as a fuzzy hit.
const fuzzyThreshold = 0.8

// prefixProbeLen is how many leading characters tier four retries with when
// the full passage was not found.
const prefixProbeLen = 100

// minChunkSize bounds the fuzzy search window from below so short passages
// still see enough surrounding context.
const minChunkSize = 200

// Result carries a validation score in [0,1] and the tier that produced it.
type Result struct {
	Score  float64
	Method model.MatchMethod
}

// Passage scores how confidently the claimed passage occurs in source.
// Malformed-but-well-typed input never errors; it degrades to score 0 with
// MatchUnverified.
func Passage(passage, source string) Result {
	passage = strings.TrimSpace(passage)
	if passage == "" || source == "" {
		return Result{Score: 0.0, Method: model.MatchUnverified}
	}

	if strings.Contains(source, passage) {
		return Result{Score: scoreExact, Method: model.MatchExact}
	}

	lowerSource := strings.ToLower(source)
	lowerPassage := strings.ToLower(passage)
	if strings.Contains(lowerSource, lowerPassage) {
		return Result{Score: scoreCaseInsensitive, Method: model.MatchCaseInsensitive}
	}

	if fuzzyContains(lowerPassage, lowerSource) {
		return Result{Score: scoreFuzzy, Method: model.MatchFuzzy}
	}

	if len(passage) > prefixProbeLen && strings.Contains(source, passage[:prefixProbeLen]) {
		return Result{Score: scorePartialPrefix, Method: model.MatchPartialPrefix}
	}

	return Result{Score: 0.0, Method: model.MatchUnverified}
}

// Validated reports whether a result clears the caller's confidence
// threshold.
func Validated(r Result, minConfidence float64) bool {
	return r.Score >= minConfidence
}

// fuzzyContains splits the source into overlapping windows and runs an
// edit-distance-tolerant substring search of the passage against each. Window
// size is max(2×|passage|, 200) with a 50% stride so a match straddling a
// window edge is still seen by the next window.
func fuzzyContains(passage, source string) bool {
	chunkSize := 2 * len(passage)
	if chunkSize < minChunkSize {
		chunkSize = minChunkSize
	}
	stride := chunkSize / 2

	for start := 0; start < len(source); start += stride {
		end := start + chunkSize
		if end > len(source) {
			end = len(source)
		}
		if fuzzyWindowMatch(passage, source[start:end]) {
			return true
		}
		if end == len(source) {
			break
		}
	}
	return false
}

// fuzzyWindowMatch slides a passage-sized probe across the window and checks
// whether any probe clears the similarity threshold. The probe step grows
// with passage length to keep the scan bounded; the edit-distance comparison
// absorbs the alignment slack the coarser step introduces.
func fuzzyWindowMatch(passage, window string) bool {
	n := len(passage)
	if n == 0 || len(window) < n {
		return false
	}

	step := n / 10
	if step < 1 {
		step = 1
	}

	for i := 0; i+n <= len(window); i += step {
		if similarity.Similarity(passage, window[i:i+n]) >= fuzzyThreshold {
			return true
		}
	}
	return false
}
