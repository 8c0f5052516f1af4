package provider

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/lumenotes/nugget-cli/internal/model"
	"github.com/lumenotes/nugget-cli/internal/resilience"
)

// candidatePayload is the loosely-typed shape models return. Pointers
// distinguish absent fields from zero values so shape violations are caught
// explicitly instead of propagating as empty candidates.
type candidatePayload struct {
	Type        *string  `json:"type"`
	FullContent *string  `json:"full_content"`
	Confidence  *float64 `json:"confidence"`
}

// parseCandidates parses a model response into raw candidates. The response
// must be a JSON array of {type, full_content, confidence} objects, with or
// without a markdown code fence. Shape violations are structural errors: they
// signal an integration bug, not a transient condition, and are never
// retried.
func parseCandidates(text string, allowed []model.NuggetType) ([]model.RawCandidate, error) {
	cleaned := cleanJSONArray(text)

	var payload []candidatePayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, resilience.NewError(resilience.ClassStructural, 0,
			eris.Wrap(err, "provider: unexpected response shape"))
	}

	allowedSet := make(map[model.NuggetType]bool, len(allowed))
	for _, t := range allowed {
		allowedSet[t] = true
	}

	candidates := make([]model.RawCandidate, 0, len(payload))
	for i, p := range payload {
		if p.FullContent == nil || strings.TrimSpace(*p.FullContent) == "" {
			return nil, resilience.NewError(resilience.ClassStructural, 0,
				eris.Errorf("provider: candidate %d missing required field full_content", i))
		}
		if p.Type == nil {
			return nil, resilience.NewError(resilience.ClassStructural, 0,
				eris.Errorf("provider: candidate %d missing required field type", i))
		}

		typ, ok := model.ParseNuggetType(*p.Type)
		if !ok {
			return nil, resilience.NewError(resilience.ClassStructural, 0,
				eris.Errorf("provider: candidate %d has unknown type %q", i, *p.Type))
		}
		if !allowedSet[typ] {
			// The model wandered outside the requested subset; drop the
			// candidate rather than fail the call.
			continue
		}

		confidence := 0.5
		if p.Confidence != nil {
			confidence = clamp01(*p.Confidence)
		}

		candidates = append(candidates, model.RawCandidate{
			Type:        typ,
			FullContent: *p.FullContent,
			Confidence:  confidence,
		})
	}

	return candidates, nil
}

// cleanJSONArray strips markdown fences and leading/trailing prose around the
// outermost JSON array.
func cleanJSONArray(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
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
