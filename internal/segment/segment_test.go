package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com/path", true},
		{"http://example.com", true},
		{"  https://example.com  ", true},
		{"ftp://example.com/file", false},
		{"example.com/path", false},
		{"just some prose", false},
		{"see https://example.com for details", false},
		{"https://", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsURL(tt.in), "input %q", tt.in)
	}
}

func TestSplitURL(t *testing.T) {
	t.Parallel()

	t.Run("domain path boundary", func(t *testing.T) {
		head, tail, ok := SplitURL("https://example.com/path")
		require.True(t, ok)
		assert.Equal(t, "https://example.com", head)
		assert.Equal(t, "/path", tail)
	})

	t.Run("query and fragment stay in tail", func(t *testing.T) {
		head, tail, ok := SplitURL("https://example.com/docs?q=1#top")
		require.True(t, ok)
		assert.Equal(t, "https://example.com", head)
		assert.Equal(t, "/docs?q=1#top", tail)
	})

	t.Run("no path falls back to bare host", func(t *testing.T) {
		head, tail, ok := SplitURL("https://example.com")
		require.True(t, ok)
		assert.Equal(t, "https://example.com", head)
		assert.Equal(t, "example.com", tail)
		assert.NotEqual(t, head, tail)
	})

	t.Run("root slash falls back to bare host", func(t *testing.T) {
		_, tail, ok := SplitURL("https://example.com/")
		require.True(t, ok)
		assert.Equal(t, "example.com", tail)
	})

	t.Run("not a url", func(t *testing.T) {
		_, _, ok := SplitURL("plain text")
		assert.False(t, ok)
	})
}

func TestSplitProse(t *testing.T) {
	t.Parallel()

	t.Run("even word count", func(t *testing.T) {
		head, tail := SplitProse("one two three four")
		assert.Equal(t, "one two", head)
		assert.Equal(t, "three four", tail)
	})

	t.Run("odd word count leans left", func(t *testing.T) {
		head, tail := SplitProse("one two three")
		assert.Equal(t, "one two", head)
		assert.Equal(t, "three", tail)
	})

	t.Run("single word", func(t *testing.T) {
		head, tail := SplitProse("alone")
		assert.Equal(t, "alone", head)
		assert.Equal(t, "", tail)
	})

	t.Run("empty", func(t *testing.T) {
		head, tail := SplitProse("   ")
		assert.Equal(t, "", head)
		assert.Equal(t, "", tail)
	})

	t.Run("interior whitespace survives", func(t *testing.T) {
		head, tail := SplitProse("one  two\nthree four")
		assert.Equal(t, "one  two", head)
		assert.Equal(t, "three four", tail)
	})
}

func TestWordSpans(t *testing.T) {
	t.Parallel()

	s := "  one\ttwo\nthree  "
	spans := WordSpans(s)
	require.Len(t, spans, 3)

	words := make([]string, len(spans))
	for i, sp := range spans {
		words[i] = s[sp.Start:sp.End]
	}
	assert.Equal(t, []string{"one", "two", "three"}, words)

	// A slice spanning adjacent words keeps the original separator bytes.
	assert.Equal(t, "one\ttwo", s[spans[0].Start:spans[1].End])

	assert.Empty(t, WordSpans("   "))
	assert.Empty(t, WordSpans(""))
}
