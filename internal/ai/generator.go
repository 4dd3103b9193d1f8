// Package ai adapts text-generation services to a single Generate call.
package ai

import (
	"context"
	"fmt"

	"univoice/internal/config"
)

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGenerator picks the collaborator named by cfg.Provider.
func NewGenerator(ctx context.Context, cfg config.LLMConfig, systemPrompt string) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model, systemPrompt)
	case config.ProviderOpenAI:
		if cfg.BaseURL == "" || cfg.APIKey == "" || cfg.Model == "" {
			return nil, fmt.Errorf("openai provider needs base_url, api_key and model")
		}
		return NewOpenAICompatibleClient(ChatConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
		}, systemPrompt), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
