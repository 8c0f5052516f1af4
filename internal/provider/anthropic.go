package provider

import (
	"context"
	"errors"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/lumenotes/nugget-cli/internal/model"
	"github.com/lumenotes/nugget-cli/internal/resilience"
)

// Anthropic extracts nuggets via the Claude Messages API.
type Anthropic struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// NewAnthropic creates an Anthropic-backed provider.
func NewAnthropic(apiKey, modelID string, maxTokens int64) *Anthropic {
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	return &Anthropic{
		client:    sdk.NewClient(option.WithAPIKey(apiKey)),
		model:     modelID,
		maxTokens: maxTokens,
	}
}

func (p *Anthropic) Name() string {
	return "anthropic"
}

func (p *Anthropic) Extract(ctx context.Context, req Request) ([]model.RawCandidate, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(p.model),
		MaxTokens: p.maxTokens,
		System: []sdk.TextBlockParam{
			{Text: buildSystemPrompt(req.AllowedTypes())},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(buildUserPrompt(req))),
		},
	}
	if req.Temperature != nil {
		params.Temperature = sdk.Float(*req.Temperature)
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, classifyAnthropic(eris.Wrap(err, "anthropic: create message"))
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	zap.L().Debug("anthropic extraction response",
		zap.String("model", string(msg.Model)),
		zap.String("stop_reason", string(msg.StopReason)),
		zap.Int64("input_tokens", msg.Usage.InputTokens),
		zap.Int64("output_tokens", msg.Usage.OutputTokens),
	)

	return parseCandidates(text, req.AllowedTypes())
}

// classifyAnthropic maps SDK errors onto the failure taxonomy using the
// structured status code when the SDK exposes one. Anything else falls
// through untagged for the orchestrator's heuristic classifier.
func classifyAnthropic(err error) error {
	var apierr *sdk.Error
	if errors.As(err, &apierr) {
		if class, ok := resilience.ClassifyStatus(apierr.StatusCode); ok {
			return resilience.NewError(class, apierr.StatusCode, err)
		}
	}
	return err
}
