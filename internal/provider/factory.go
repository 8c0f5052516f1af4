package provider

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/lumenotes/nugget-cli/internal/config"
)

// New builds the primary and optional fallback provider from configuration.
// Anthropic is primary when both are configured; OpenAI serves as primary
// only when it is the sole backend with credentials.
func New(cfg *config.Config) (primary, fallback Provider, err error) {
	if cfg.Anthropic.Key != "" {
		primary = NewAnthropic(cfg.Anthropic.Key, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)
	}

	if cfg.OpenAI.Key != "" {
		p := NewOpenAI(cfg.OpenAI.Key, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.OpenAI.MaxTokens)
		if primary == nil {
			primary = p
		} else {
			fallback = p
		}
	}

	if primary == nil {
		return nil, nil, eris.New("provider: no provider configured (set anthropic.key or openai.key)")
	}

	fields := []zap.Field{zap.String("primary", primary.Name())}
	if fallback != nil {
		fields = append(fields, zap.String("fallback", fallback.Name()))
	}
	zap.L().Info("providers configured", fields...)

	return primary, fallback, nil
}
