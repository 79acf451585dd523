package genai

import (
	"context"
	"errors"

	"github.com/wayacademy/manychat-bot-go/internal/config"
	"github.com/wayacademy/manychat-bot-go/internal/logger"
	"github.com/wayacademy/manychat-bot-go/internal/metrics"
)

// NewFromConfig builds the generator chain: OpenAI primary, Gemini
// fallback, whichever keys are configured. Errors when neither is.
func NewFromConfig(ctx context.Context, cfg *config.Config, log *logger.Logger, m *metrics.Metrics) (*FallbackGenerator, error) {
	var primary, fallback Generator

	if g := newOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL); g != nil {
		primary = g
	}

	gemini, err := newGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, err
	}
	if gemini != nil {
		if primary == nil {
			primary = gemini
		} else {
			fallback = gemini
		}
	}

	if primary == nil {
		return nil, errors.New("no generation provider configured")
	}

	return NewFallbackGenerator(primary, fallback, DefaultRetryConfig(), log, m), nil
}
