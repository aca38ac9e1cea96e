package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/voicebot/interview/backend/internal/config"
)

// NewFromConfig builds the primary and fallback generators for the configured
// provider and wraps them in a FallbackGenerator.
func NewFromConfig(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (*FallbackGenerator, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("%s credentials or model configuration missing", cfg.Provider)
	}

	var primary, fallback Generator
	switch cfg.Provider {
	case config.ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg.GeminiAPIKey, "")
		if err != nil {
			return nil, err
		}
		primary = NewGeminiGenerator(client, cfg.PrimaryModel)
		fallback = NewGeminiGenerator(client, cfg.FallbackModel)

	case config.ProviderArk:
		primaryModel, err := cfg.NewChatModel(ctx, cfg.PrimaryModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create primary chat model: %w", err)
		}
		primary = NewArkGenerator(primaryModel, cfg.PrimaryModel)

		fallback = primary
		if cfg.FallbackModel != cfg.PrimaryModel {
			fallbackModel, err := cfg.NewChatModel(ctx, cfg.FallbackModel)
			if err != nil {
				return nil, fmt.Errorf("failed to create fallback chat model: %w", err)
			}
			fallback = NewArkGenerator(fallbackModel, cfg.FallbackModel)
		}

	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}

	return NewFallbackGenerator(primary, fallback, logger), nil
}
