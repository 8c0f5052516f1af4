package similarity

import (
	"math"

	"github.com/rotisserie/eris"
)

// Sentinel errors for malformed vector input. These signal programmer errors;
// well-formed degenerate input (zero vectors) never errors.
var (
	ErrDimensionMismatch = eris.New("similarity: vector dimension mismatch")
	ErrEmptyVector       = eris.New("similarity: empty vector")
	ErrInvalidComponent  = eris.New("similarity: non-finite vector component")
)

// Cosine returns the cosine similarity of u and v, clamped to [-1,1] for
// floating-point safety. A zero-magnitude vector yields 0 rather than a
// division by zero.
func Cosine(u, v []float64) (float64, error) {
	if len(u) == 0 || len(v) == 0 {
		return 0, ErrEmptyVector
	}
	if len(u) != len(v) {
		return 0, ErrDimensionMismatch
	}

	var dot, normU, normV float64
	for i := range u {
		if !isFinite(u[i]) || !isFinite(v[i]) {
			return 0, ErrInvalidComponent
		}
		dot += u[i] * v[i]
		normU += u[i] * u[i]
		normV += v[i] * v[i]
	}

	if normU == 0 || normV == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normU) * math.Sqrt(normV))
	if sim > 1 {
		sim = 1
	}
	if sim < -1 {
		sim = -1
	}
	return sim, nil
}

// BatchCosine computes pairwise cosine similarity between us[i] and vs[i].
// It fails fast on the first invalid pair, reporting its index.
func BatchCosine(us, vs [][]float64) ([]float64, error) {
	if len(us) != len(vs) {
		return nil, eris.Wrapf(ErrDimensionMismatch, "batch sizes %d and %d", len(us), len(vs))
	}

	out := make([]float64, len(us))
	for i := range us {
		sim, err := Cosine(us[i], vs[i])
		if err != nil {
			return nil, eris.Wrapf(err, "pair %d", i)
		}
		out[i] = sim
	}
	return out, nil
}

// FindMostSimilar returns the index and score of the candidate most similar
// to query, considering only candidates scoring at or above threshold.
// Malformed candidates are skipped rather than failing the whole search.
// Returns (-1, 0, false) when nothing qualifies.
func FindMostSimilar(query []float64, candidates [][]float64, threshold float64) (int, float64, bool) {
	bestIdx := -1
	bestScore := 0.0

	for i, c := range candidates {
		sim, err := Cosine(query, c)
		if err != nil {
			continue
		}
		if sim < threshold {
			continue
		}
		if bestIdx == -1 || sim > bestScore {
			bestIdx = i
			bestScore = sim
		}
	}

	if bestIdx == -1 {
		return -1, 0, false
	}
	return bestIdx, bestScore, true
}

// GroupBySimilarity greedily clusters vector indices left to right. Each
// unclustered vector starts a new group and absorbs all later unclustered
// vectors whose similarity to it meets the threshold. Single-link to the
// group's first representative only, not transitive. Vectors that cannot be
// compared (malformed pairs) end up in their own groups.
func GroupBySimilarity(vectors [][]float64, threshold float64) [][]int {
	var groups [][]int
	clustered := make([]bool, len(vectors))

	for i := range vectors {
		if clustered[i] {
			continue
		}
		group := []int{i}
		clustered[i] = true

		for j := i + 1; j < len(vectors); j++ {
			if clustered[j] {
				continue
			}
			sim, err := Cosine(vectors[i], vectors[j])
			if err != nil || sim < threshold {
				continue
			}
			group = append(group, j)
			clustered[j] = true
		}
		groups = append(groups, group)
	}

	return groups
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
