package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driven"
	"github.com/custodia-labs/lexai/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDefaultSource = "search.default_source"
	keyAIProvider    = "ai.provider"
	keyAIModel       = "ai.model"
	keyAIBaseURL     = "ai.base_url"
	keyAITestMode    = "ai.test_mode"
	keyAIMockOnLimit = "ai.mock_on_rate_limit"
	keyScrapeBaseURL = "scrape.base_url"
	keyScrapeRate    = "scrape.rate_per_second"
	apiKeyPrefix     = "sk-"
)

// ErrNoCredentialStore is returned by key operations when no store is wired.
var ErrNoCredentialStore = errors.New("credential store not configured")

// SettingsService manages application settings and the AI credential.
type SettingsService struct {
	configStore driven.ConfigStore
	credentials driven.CredentialStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
// The credentials parameter is optional (can be nil).
func NewSettingsService(configStore driven.ConfigStore, credentials driven.CredentialStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		credentials: credentials,
	}
}

// SetAIValidator sets the validator used by ValidateAPIKey.
func (s *SettingsService) SetAIValidator(v driven.AIConfigValidator) {
	s.aiValidator = v
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			DefaultSource: s.getSource(defaults.Search.DefaultSource),
		},
		AI: domain.AISettings{
			Provider:        s.getProvider(defaults.AI.Provider),
			Model:           s.getString(keyAIModel, defaults.AI.Model),
			BaseURL:         s.getString(keyAIBaseURL, defaults.AI.BaseURL),
			TestMode:        s.getBool(keyAITestMode, defaults.AI.TestMode),
			MockOnRateLimit: s.getBool(keyAIMockOnLimit, defaults.AI.MockOnRateLimit),
		},
		Scrape: domain.ScrapeSettings{
			BaseURL:       s.getString(keyScrapeBaseURL, defaults.Scrape.BaseURL),
			RatePerSecond: s.getFloat(keyScrapeRate, defaults.Scrape.RatePerSecond),
		},
	}

	return settings, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// SetDefaultSource updates the source used when a request selects none.
func (s *SettingsService) SetDefaultSource(kind domain.SourceKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedSource, kind)
	}
	if err := s.configStore.Set(keyDefaultSource, kind.String()); err != nil {
		return fmt.Errorf("save default source: %w", err)
	}
	return nil
}

// SetTestMode toggles locally generated AI results when no key is stored.
func (s *SettingsService) SetTestMode(enabled bool) error {
	if err := s.configStore.Set(keyAITestMode, enabled); err != nil {
		return fmt.Errorf("save ai test_mode: %w", err)
	}
	return nil
}

// SetMockOnRateLimit toggles the AI rate-limit fallback.
func (s *SettingsService) SetMockOnRateLimit(enabled bool) error {
	if err := s.configStore.Set(keyAIMockOnLimit, enabled); err != nil {
		return fmt.Errorf("save ai mock_on_rate_limit: %w", err)
	}
	return nil
}

// SetAPIKey validates and stores the AI credential.
// Keys must be non-empty and carry the "sk-" prefix.
func (s *SettingsService) SetAPIKey(ctx context.Context, key string) error {
	if s.credentials == nil {
		return ErrNoCredentialStore
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: API key is empty", domain.ErrInvalidInput)
	}
	if !strings.HasPrefix(key, apiKeyPrefix) {
		return fmt.Errorf("%w: API key must start with %q", domain.ErrInvalidInput, apiKeyPrefix)
	}
	if err := s.credentials.SetAPIKey(ctx, key); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	return nil
}

// ClearAPIKey removes the stored AI credential.
func (s *SettingsService) ClearAPIKey(ctx context.Context) error {
	if s.credentials == nil {
		return ErrNoCredentialStore
	}
	return s.credentials.ClearAPIKey(ctx)
}

// HasAPIKey reports whether an AI credential is stored.
func (s *SettingsService) HasAPIKey(ctx context.Context) (bool, error) {
	key, err := s.apiKey(ctx)
	return key != "", err
}

// ValidateAPIKey checks the stored AI credential by pinging the provider.
// Without a validator only the presence of a key is checked.
func (s *SettingsService) ValidateAPIKey(ctx context.Context) error {
	key, err := s.apiKey(ctx)
	if err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("no API key stored: %w", domain.ErrMissingCredential)
	}
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.AI, key)
}

// MaskedAPIKey returns the stored key for display, or "" if none is stored.
func (s *SettingsService) MaskedAPIKey(ctx context.Context) (string, error) {
	key, err := s.apiKey(ctx)
	if err != nil || key == "" {
		return "", err
	}
	return domain.MaskAPIKey(key), nil
}

func (s *SettingsService) apiKey(ctx context.Context) (string, error) {
	if s.credentials == nil {
		return "", nil
	}
	return s.credentials.GetAPIKey(ctx)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getSource(defaultVal domain.SourceKind) domain.SourceKind {
	val := s.configStore.GetString(keyDefaultSource)
	if val == "" {
		return defaultVal
	}
	kind, err := domain.ParseSourceKind(val)
	if err != nil {
		return defaultVal
	}
	return kind
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	provider := domain.AIProvider(s.configStore.GetString(keyAIProvider))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
