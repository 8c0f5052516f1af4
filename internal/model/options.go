package model

// SimilarityOptions tunes the tiered word-similarity scorer. Pure
// configuration; zero lifecycle.
type SimilarityOptions struct {
	ExactMatchScore       float64 `yaml:"exact_match_score" mapstructure:"exact_match_score"`
	SubstringMatchScore   float64 `yaml:"substring_match_score" mapstructure:"substring_match_score"`
	LevenshteinMultiplier float64 `yaml:"levenshtein_multiplier" mapstructure:"levenshtein_multiplier"`
	LevenshteinThreshold  float64 `yaml:"levenshtein_threshold" mapstructure:"levenshtein_threshold"`
}

// DefaultSimilarityOptions returns the standard scoring weights.
func DefaultSimilarityOptions() SimilarityOptions {
	return SimilarityOptions{
		ExactMatchScore:       1.0,
		SubstringMatchScore:   0.8,
		LevenshteinMultiplier: 0.7,
		LevenshteinThreshold:  0.6,
	}
}

// BoundaryMatchOptions tunes boundary resolution and the validation
// confidence gate.
type BoundaryMatchOptions struct {
	// Tolerance is the edit-distance slack allowed when locating fuzzy
	// matches, expressed in characters.
	Tolerance int `yaml:"tolerance" mapstructure:"tolerance"`

	// MaxStartWords / MaxEndWords bound the anchor lengths in words.
	MaxStartWords int `yaml:"max_start_words" mapstructure:"max_start_words"`
	MaxEndWords   int `yaml:"max_end_words" mapstructure:"max_end_words"`

	// MinConfidenceThreshold is the validation score at or above which a
	// candidate counts as verified.
	MinConfidenceThreshold float64 `yaml:"min_confidence_threshold" mapstructure:"min_confidence_threshold"`
}

// DefaultBoundaryMatchOptions returns the standard resolution settings.
func DefaultBoundaryMatchOptions() BoundaryMatchOptions {
	return BoundaryMatchOptions{
		Tolerance:              2,
		MaxStartWords:          5,
		MaxEndWords:            5,
		MinConfidenceThreshold: 0.8,
	}
}
