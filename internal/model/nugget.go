package model

// NuggetType classifies the kind of insight a passage represents. The set is
// closed: provider prompts enumerate it verbatim, so adding a value here
// changes the extraction schema.
type NuggetType string

const (
	NuggetTool        NuggetType = "tool"
	NuggetMedia       NuggetType = "media"
	NuggetExplanation NuggetType = "explanation"
	NuggetAnalogy     NuggetType = "analogy"
	NuggetModel       NuggetType = "model"
)

// AllNuggetTypes returns every valid nugget type in declaration order.
func AllNuggetTypes() []NuggetType {
	return []NuggetType{
		NuggetTool,
		NuggetMedia,
		NuggetExplanation,
		NuggetAnalogy,
		NuggetModel,
	}
}

// ParseNuggetType maps a raw string to a NuggetType, reporting whether it is
// one of the known values.
func ParseNuggetType(s string) (NuggetType, bool) {
	switch NuggetType(s) {
	case NuggetTool, NuggetMedia, NuggetExplanation, NuggetAnalogy, NuggetModel:
		return NuggetType(s), true
	}
	return "", false
}

// MatchMethod records which validation tier located a candidate passage in
// the source text.
type MatchMethod string

const (
	MatchExact           MatchMethod = "exact"
	MatchCaseInsensitive MatchMethod = "case_insensitive"
	MatchFuzzy           MatchMethod = "fuzzy"
	MatchPartialPrefix   MatchMethod = "partial_prefix"
	MatchUnverified      MatchMethod = "unverified"
)

// RawCandidate is an unverified passage proposed by an LLM provider. It lives
// only for the duration of one extraction call.
type RawCandidate struct {
	Type        NuggetType `json:"type"`
	FullContent string     `json:"full_content"`
	Confidence  float64    `json:"confidence"`
}

// ResolvedNugget is a candidate that has been validated against the source
// text and anchored for range-based highlighting. StartAnchor and EndAnchor
// are literal substrings of FullContent, distinct and non-empty for any
// non-empty content. Never mutated after creation; replace, don't edit.
type ResolvedNugget struct {
	Type            NuggetType  `json:"type"`
	FullContent     string      `json:"full_content"`
	StartAnchor     string      `json:"start_anchor"`
	EndAnchor       string      `json:"end_anchor"`
	Confidence      float64     `json:"confidence"`
	ValidationScore float64     `json:"validation_score"`
	MatchMethod     MatchMethod `json:"match_method"`
}

// Validated reports whether the nugget's validation score met the caller's
// confidence threshold.
func (n ResolvedNugget) Validated() bool {
	return n.MatchMethod != MatchUnverified
}
