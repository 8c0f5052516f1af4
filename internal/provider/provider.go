// Package provider defines the LLM provider contract for nugget extraction
// and its Anthropic and OpenAI implementations. Providers return raw,
// unverified candidates; validation and anchoring happen downstream.
package provider

import (
	"context"

	"github.com/lumenotes/nugget-cli/internal/model"
)

// Request carries one extraction call's input.
type Request struct {
	// Content is the full source text nuggets are extracted from.
	Content string

	// Prompt is the extraction instruction presented to the model.
	Prompt string

	// Temperature optionally overrides the provider default.
	Temperature *float64

	// Types restricts extraction to a subset of nugget types. Empty means
	// all types.
	Types []model.NuggetType
}

// AllowedTypes returns the requested type subset, or every type when the
// request left it empty.
func (r Request) AllowedTypes() []model.NuggetType {
	if len(r.Types) > 0 {
		return r.Types
	}
	return model.AllNuggetTypes()
}

// Provider is implemented once per LLM backend.
type Provider interface {
	// Name identifies the backend in logs and error messages.
	Name() string

	// Extract asks the model for insight passages in content. Failures are
	// tagged with a resilience classification so the orchestrator can decide
	// between retry, fallback, and fail-fast.
	Extract(ctx context.Context, req Request) ([]model.RawCandidate, error)
}
