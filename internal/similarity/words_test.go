package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumenotes/nugget-cli/internal/model"
)

func TestWordSimilarity(t *testing.T) {
	t.Parallel()

	opts := model.DefaultSimilarityOptions()

	t.Run("mismatched lengths score zero", func(t *testing.T) {
		assert.Equal(t, 0.0, WordSimilarity([]string{"a", "b"}, []string{"a"}, opts))
		assert.Equal(t, 0.0, WordSimilarity(nil, []string{"a"}, opts))
	})

	t.Run("both empty score one", func(t *testing.T) {
		assert.Equal(t, 1.0, WordSimilarity(nil, nil, opts))
	})

	t.Run("identical sequence scores one", func(t *testing.T) {
		words := []string{"the", "quick", "brown", "fox"}
		assert.Equal(t, 1.0, WordSimilarity(words, words, opts))
	})

	t.Run("substring tier is symmetric", func(t *testing.T) {
		assert.InDelta(t, opts.SubstringMatchScore, WordSimilarity([]string{"hello"}, []string{"hel"}, opts), 1e-9)
		assert.InDelta(t, opts.SubstringMatchScore, WordSimilarity([]string{"hel"}, []string{"hello"}, opts), 1e-9)
	})

	t.Run("levenshtein tier scales by multiplier", func(t *testing.T) {
		// similarity("hello","helo") = 0.8, scaled by 0.7.
		got := WordSimilarity([]string{"hello"}, []string{"helo"}, opts)
		assert.InDelta(t, 0.56, got, 1e-9)
	})

	t.Run("below threshold contributes zero", func(t *testing.T) {
		assert.Equal(t, 0.0, WordSimilarity([]string{"hello"}, []string{"zzz"}, opts))
	})

	t.Run("mean over positions", func(t *testing.T) {
		a := []string{"hello", "world"}
		b := []string{"hello", "zzzzz"}
		assert.InDelta(t, 0.5, WordSimilarity(a, b, opts), 1e-9)
	})
}

func TestTextSimilarity(t *testing.T) {
	t.Parallel()

	opts := model.DefaultSimilarityOptions()

	assert.Equal(t, 1.0, TextSimilarity("quick brown fox", "quick brown fox", opts))
	assert.Equal(t, 1.0, TextSimilarity("  quick  brown ", "quick brown", opts))
	assert.Equal(t, 0.0, TextSimilarity("one two", "one", opts))
	assert.Equal(t, 1.0, TextSimilarity("", "   ", opts))
}
