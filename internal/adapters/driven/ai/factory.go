// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	openaillm "github.com/custodia-labs/lexai/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateLLMService creates the LLM service for the configured provider.
// A nil settings value uses the defaults.
func CreateLLMService(settings *domain.AISettings, apiKey string) (driven.LLMService, error) {
	if settings == nil {
		defaults := domain.DefaultAppSettings().AI
		settings = &defaults
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w", settings.Provider, domain.ErrMissingCredential)
	}

	switch settings.Provider {
	case domain.AIProviderOpenAI, "":
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  apiKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("%w: LLM provider %q", domain.ErrInvalidInput, settings.Provider)
	}
}

// ValidateLLMConfig validates an LLM configuration by creating a service and pinging it.
// This is intended for use by the settings command to check a key on entry.
func ValidateLLMConfig(settings *domain.AISettings, apiKey string) error {
	svc, err := CreateLLMService(settings, apiKey)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}
