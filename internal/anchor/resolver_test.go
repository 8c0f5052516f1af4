package anchor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenotes/nugget-cli/internal/model"
)

func resolveContent(t *testing.T, content, source string) model.ResolvedNugget {
	t.Helper()
	c := model.RawCandidate{
		Type:        model.NuggetExplanation,
		FullContent: content,
		Confidence:  0.9,
	}
	return Resolve(c, source, model.DefaultBoundaryMatchOptions())
}

func TestResolve_ProseAnchors(t *testing.T) {
	t.Parallel()

	content := "spaced repetition schedules reviews at increasing intervals to exploit the spacing effect"
	n := resolveContent(t, content, "intro text "+content+" outro text")

	assert.Equal(t, "spaced repetition schedules reviews at", n.StartAnchor)
	assert.Equal(t, "to exploit the spacing effect", n.EndAnchor)
	assert.Equal(t, model.MatchExact, n.MatchMethod)
	assert.Equal(t, 1.0, n.ValidationScore)
}

func TestResolve_URLSplitsAtDomainBoundary(t *testing.T) {
	t.Parallel()

	n := resolveContent(t, "https://example.com/path", "see https://example.com/path for details")
	assert.Equal(t, "https://example.com", n.StartAnchor)
	assert.Equal(t, "/path", n.EndAnchor)
}

func TestResolve_URLWithoutPath(t *testing.T) {
	t.Parallel()

	n := resolveContent(t, "https://example.com", "visit https://example.com today")
	assert.Equal(t, "https://example.com", n.StartAnchor)
	assert.Equal(t, "example.com", n.EndAnchor)
	assert.NotEqual(t, n.StartAnchor, n.EndAnchor)
}

func TestResolve_SingleWordFallsBackToCharSlicing(t *testing.T) {
	t.Parallel()

	n := resolveContent(t, "serendipity", "a moment of serendipity changed everything")
	assert.NotEqual(t, n.StartAnchor, n.EndAnchor)
	assert.NotEmpty(t, n.StartAnchor)
	assert.NotEmpty(t, n.EndAnchor)
	assert.Contains(t, "serendipity", n.StartAnchor)
	assert.Contains(t, "serendipity", n.EndAnchor)
}

func TestResolve_RepeatedSingleWord(t *testing.T) {
	t.Parallel()

	n := resolveContent(t, "data data data", "data data data")
	assert.NotEqual(t, n.StartAnchor, n.EndAnchor)
	assert.NotEmpty(t, n.StartAnchor)
	assert.NotEmpty(t, n.EndAnchor)
}

func TestResolve_ShortProseMidpointSplit(t *testing.T) {
	t.Parallel()

	// Four words: first-5 and last-5 windows both cover everything, so the
	// resolver must split at the midpoint instead.
	n := resolveContent(t, "mental models compound knowledge", "mental models compound knowledge")
	assert.Equal(t, "mental models", n.StartAnchor)
	assert.Equal(t, "compound knowledge", n.EndAnchor)
}

func TestResolve_AnchorsAreLiteralSubstrings(t *testing.T) {
	t.Parallel()

	// LLM-echoed passages routinely carry newlines and doubled spaces; the
	// anchors must preserve those bytes so naive substring search finds them.
	content := "spaced repetition schedules reviews\nat increasing  intervals to exploit the spacing effect"
	n := resolveContent(t, content, content)

	assert.Equal(t, "spaced repetition schedules reviews\nat", n.StartAnchor)
	assert.Equal(t, "to exploit the spacing effect", n.EndAnchor)
	assert.True(t, strings.Contains(content, n.StartAnchor))
	assert.True(t, strings.Contains(content, n.EndAnchor))
}

func TestResolve_MidpointSplitKeepsOriginalBytes(t *testing.T) {
	t.Parallel()

	content := "mental  models compound\nknowledge"
	n := resolveContent(t, content, content)

	assert.Equal(t, "mental  models", n.StartAnchor)
	assert.Equal(t, "compound\nknowledge", n.EndAnchor)
	assert.True(t, strings.Contains(content, n.StartAnchor))
	assert.True(t, strings.Contains(content, n.EndAnchor))
}

func TestResolve_InvariantAcrossInputs(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"https://example.com/deep/path?q=1#frag",
		"https://example.com",
		"hello",
		"aa",
		"alpha beta",
		"one two three four five six seven eight nine ten",
		strings.Repeat("long prose with many words repeated over and over ", 20),
		"data data data data",
		"word",
		"line one\nline two\nline three",
		"double  spaced  words  here  now  and  then",
	}

	for _, in := range inputs {
		n := resolveContent(t, in, in)
		require.NotEmpty(t, n.StartAnchor, "input %q", in)
		require.NotEmpty(t, n.EndAnchor, "input %q", in)
		assert.NotEqual(t, n.StartAnchor, n.EndAnchor, "input %q", in)
		assert.True(t, strings.Contains(in, n.StartAnchor), "input %q start %q", in, n.StartAnchor)
		assert.True(t, strings.Contains(in, n.EndAnchor), "input %q end %q", in, n.EndAnchor)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()

	c := model.RawCandidate{
		Type:        model.NuggetTool,
		FullContent: "Anki implements per-card scheduling",
		Confidence:  0.73,
	}
	source := "Tools like Anki implements per-card scheduling for reviews"

	first := Resolve(c, source, model.DefaultBoundaryMatchOptions())
	second := Resolve(c, source, model.DefaultBoundaryMatchOptions())
	assert.Equal(t, first, second)
}

func TestResolve_UnverifiedKept(t *testing.T) {
	t.Parallel()

	n := resolveContent(t, "this text appears nowhere in the source", "completely unrelated material")
	assert.Equal(t, model.MatchUnverified, n.MatchMethod)
	assert.Equal(t, 0.0, n.ValidationScore)
	// Still anchored: downstream decides whether to surface it.
	assert.NotEmpty(t, n.StartAnchor)
	assert.NotEmpty(t, n.EndAnchor)
	assert.NotEqual(t, n.StartAnchor, n.EndAnchor)
}

func TestResolve_ConfidenceClamped(t *testing.T) {
	t.Parallel()

	c := model.RawCandidate{Type: model.NuggetMedia, FullContent: "alpha beta", Confidence: 1.7}
	n := Resolve(c, "alpha beta", model.DefaultBoundaryMatchOptions())
	assert.Equal(t, 1.0, n.Confidence)

	c.Confidence = -0.2
	n = Resolve(c, "alpha beta", model.DefaultBoundaryMatchOptions())
	assert.Equal(t, 0.0, n.Confidence)
}

func TestResolve_EmptyContent(t *testing.T) {
	t.Parallel()

	n := resolveContent(t, "", "some source")
	assert.Empty(t, n.StartAnchor)
	assert.Empty(t, n.EndAnchor)
	assert.Equal(t, model.MatchUnverified, n.MatchMethod)
}
