// Package anchor converts validated passages into (start, end) anchor pairs
// for range-based highlighting. The consumer locates a text range by naive
// literal search on the two anchors, so each must be a distinct, non-empty
// byte-for-byte substring of the passage text. Identical or rebuilt anchors
// silently break downstream range lookup.
package anchor

import (
	"strings"

	"github.com/lumenotes/nugget-cli/internal/model"
	"github.com/lumenotes/nugget-cli/internal/segment"
	"github.com/lumenotes/nugget-cli/internal/validate"
)

// Resolve validates a raw candidate against the source text and produces an
// immutable ResolvedNugget. Candidates that fail validation are kept and
// tagged MatchUnverified, never dropped; the caller decides whether to
// surface them.
//
// Invariant: StartAnchor != EndAnchor and both are non-empty for any
// candidate whose content has at least two characters. Content of a single
// character has only one non-empty substring, so both anchors collapse to it.
func Resolve(c model.RawCandidate, source string, opts model.BoundaryMatchOptions) model.ResolvedNugget {
	r := validate.Passage(c.FullContent, source)

	method := r.Method
	if !validate.Validated(r, opts.MinConfidenceThreshold) {
		method = model.MatchUnverified
	}

	start, end := anchors(strings.TrimSpace(c.FullContent), opts)

	return model.ResolvedNugget{
		Type:            c.Type,
		FullContent:     c.FullContent,
		StartAnchor:     start,
		EndAnchor:       end,
		Confidence:      clamp01(c.Confidence),
		ValidationScore: r.Score,
		MatchMethod:     method,
	}
}

// anchors derives the (start, end) pair for trimmed content.
func anchors(content string, opts model.BoundaryMatchOptions) (string, string) {
	if content == "" {
		return "", ""
	}

	// URLs split structurally at the domain/path boundary; word-based
	// anchors would glue the whole URL into both anchors.
	if head, tail, ok := segment.SplitURL(content); ok {
		return head, tail
	}

	maxStart := opts.MaxStartWords
	if maxStart <= 0 {
		maxStart = model.DefaultBoundaryMatchOptions().MaxStartWords
	}
	maxEnd := opts.MaxEndWords
	if maxEnd <= 0 {
		maxEnd = model.DefaultBoundaryMatchOptions().MaxEndWords
	}

	// Anchors are sliced out of the content by word byte ranges, never
	// rebuilt from tokens, so interior newlines and doubled spaces survive
	// and naive substring search on the consumer side always finds them.
	spans := segment.WordSpans(content)
	if distinctCount(strings.Fields(content)) > 1 {
		si := min(maxStart, len(spans)) - 1
		ei := len(spans) - min(maxEnd, len(spans))
		start := content[spans[0].Start:spans[si].End]
		end := content[spans[ei].Start:spans[len(spans)-1].End]
		if start != end {
			return start, end
		}
		// Short content where the first-N and last-N windows cover the same
		// words: fall back to the midpoint split.
		if head, tail := segment.SplitProse(content); head != tail && tail != "" {
			return head, tail
		}
	}

	return charAnchors(content)
}

// charAnchors slices a prefix and a strictly shorter suffix so the pair can
// never be equal. Used for single-word and repeated-word content.
func charAnchors(content string) (string, string) {
	runes := []rune(content)
	if len(runes) < 2 {
		return content, content
	}
	return content, string(runes[1:])
}

func distinctCount(words []string) int {
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		seen[w] = true
	}
	return len(seen)
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
