package driving

import (
	"context"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

// SettingsService manages application settings and the AI credential.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// SetDefaultSource updates the source used when a request selects none.
	SetDefaultSource(kind domain.SourceKind) error

	// SetTestMode toggles locally generated AI results when no key is stored.
	SetTestMode(enabled bool) error

	// SetMockOnRateLimit toggles the AI rate-limit fallback.
	SetMockOnRateLimit(enabled bool) error

	// SetAPIKey validates and stores the AI credential.
	SetAPIKey(ctx context.Context, key string) error

	// ClearAPIKey removes the stored AI credential.
	ClearAPIKey(ctx context.Context) error

	// HasAPIKey reports whether an AI credential is stored.
	HasAPIKey(ctx context.Context) (bool, error)

	// ValidateAPIKey checks the stored AI credential against the provider.
	ValidateAPIKey(ctx context.Context) error

	// MaskedAPIKey returns the stored key for display, or "" if none is stored.
	MaskedAPIKey(ctx context.Context) (string, error)
}
