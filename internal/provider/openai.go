package provider

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/lumenotes/nugget-cli/internal/model"
	"github.com/lumenotes/nugget-cli/internal/resilience"
)

// defaultOpenAITemperature keeps extraction output focused when the caller
// does not override it.
const defaultOpenAITemperature = 0.2

// OpenAI extracts nuggets via the Chat Completions API. Typically configured
// as the fallback provider.
type OpenAI struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAI creates an OpenAI-backed provider. baseURL may be empty for the
// public API, or point at a compatible endpoint.
func NewOpenAI(apiKey, baseURL, modelID string, maxTokens int) *OpenAI {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	return &OpenAI{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     modelID,
		maxTokens: maxTokens,
	}
}

func (p *OpenAI) Name() string {
	return "openai"
}

func (p *OpenAI) Extract(ctx context.Context, req Request) ([]model.RawCandidate, error) {
	temperature := float32(defaultOpenAITemperature)
	if req.Temperature != nil {
		temperature = float32(*req.Temperature)
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(req.AllowedTypes())},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(req)},
		},
		MaxTokens:   p.maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, classifyOpenAI(eris.Wrap(err, "openai: create chat completion"))
	}

	if len(resp.Choices) == 0 {
		return nil, resilience.NewError(resilience.ClassStructural, 0,
			eris.New("openai: unexpected response shape: no choices"))
	}

	zap.L().Debug("openai extraction response",
		zap.String("model", resp.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return parseCandidates(resp.Choices[0].Message.Content, req.AllowedTypes())
}

// classifyOpenAI maps go-openai API errors onto the failure taxonomy via
// their HTTP status. Untyped errors fall through for heuristic
// classification.
func classifyOpenAI(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if class, ok := resilience.ClassifyStatus(apiErr.HTTPStatusCode); ok {
			return resilience.NewError(class, apiErr.HTTPStatusCode, err)
		}
	}
	return err
}
