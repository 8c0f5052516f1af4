package provider

import (
	"fmt"
	"strings"

	"github.com/lumenotes/nugget-cli/internal/model"
)

// systemPromptTemplate fixes the response contract. The schema lines are part
// of the provider contract: parseCandidates rejects anything else as a
// structural error.
const systemPromptTemplate = `You are an insight extraction engine. You are given a document and an extraction instruction.

Extract short, self-contained insight passages ("nuggets") from the document. Each passage MUST be copied verbatim from the document text — never paraphrase, translate, or reword.

Allowed nugget types: %s

Respond with ONLY a JSON array, no prose, matching exactly:
[{"type": "<one of the allowed types>", "full_content": "<verbatim passage from the document>", "confidence": <0.0-1.0>}]

Return [] if the document contains no extractable insights.`

// buildSystemPrompt renders the response contract for the allowed type set.
func buildSystemPrompt(types []model.NuggetType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return fmt.Sprintf(systemPromptTemplate, strings.Join(names, ", "))
}

// buildUserPrompt combines the caller's instruction with the source document.
func buildUserPrompt(req Request) string {
	return fmt.Sprintf("%s\n\nDocument:\n%s", req.Prompt, req.Content)
}
