package driven

import "github.com/custodia-labs/lexai/internal/core/domain"

// AIConfigValidator validates AI provider configurations.
// Implementations verify that configurations are valid by testing connectivity
// to the underlying AI services.
type AIConfigValidator interface {
	// ValidateLLM validates an LLM configuration and key by pinging the provider.
	ValidateLLM(config *domain.AISettings, apiKey string) error
}
