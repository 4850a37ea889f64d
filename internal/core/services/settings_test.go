package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexai/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lexai/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, service.GetDefaults(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("search.default_source", "saflii")
	_ = store.Set("ai.model", "gpt-4o-mini")
	_ = store.Set("ai.test_mode", true)
	_ = store.Set("ai.mock_on_rate_limit", false)
	_ = store.Set("scrape.base_url", "http://localhost:9000/search")
	_ = store.Set("scrape.rate_per_second", 0.5)

	settings, err := NewSettingsService(store, nil).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.SourceScrape, settings.Search.DefaultSource)
	assert.Equal(t, "gpt-4o-mini", settings.AI.Model)
	assert.True(t, settings.AI.TestMode)
	assert.False(t, settings.AI.MockOnRateLimit)
	assert.Equal(t, "http://localhost:9000/search", settings.Scrape.BaseURL)
	assert.InDelta(t, 0.5, settings.Scrape.RatePerSecond, 0.0001)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("search.default_source", "westlaw")
	_ = store.Set("ai.provider", "invalid_provider")
	_ = store.Set("scrape.rate_per_second", -3)

	settings, err := NewSettingsService(store, nil).Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Search.DefaultSource, settings.Search.DefaultSource)
	assert.Equal(t, defaults.AI.Provider, settings.AI.Provider)
	assert.InDelta(t, defaults.Scrape.RatePerSecond, settings.Scrape.RatePerSecond, 0.0001)
}

func TestSettingsService_SetDefaultSource(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	require.NoError(t, service.SetDefaultSource(domain.SourceScrape))
	assert.Equal(t, "scrape", store.GetString("search.default_source"))

	err := service.SetDefaultSource("westlaw")
	assert.ErrorIs(t, err, domain.ErrUnsupportedSource)
}

func TestSettingsService_Toggles(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, service.SetTestMode(true))
	require.NoError(t, service.SetMockOnRateLimit(false))

	settings, _ := service.Get()
	assert.True(t, settings.AI.TestMode)
	assert.False(t, settings.AI.MockOnRateLimit)
}

func TestSettingsService_SetAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid", "sk-test-1234567890", false},
		{"valid with whitespace", "  sk-abc123456789  ", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"wrong prefix", "pk-1234567890", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			creds := memory.NewCredentialStore("")
			service := NewSettingsService(memory.NewConfigStore(), creds)

			err := service.SetAPIKey(ctx, tt.key)

			has, _ := service.HasAPIKey(ctx)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				assert.False(t, has)
			} else {
				require.NoError(t, err)
				assert.True(t, has)
			}
		})
	}
}

func TestSettingsService_MaskedAndClear(t *testing.T) {
	ctx := context.Background()
	service := NewSettingsService(memory.NewConfigStore(), memory.NewCredentialStore("sk-1234567890abcdef"))

	masked, err := service.MaskedAPIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-1...cdef", masked)

	require.NoError(t, service.ClearAPIKey(ctx))
	masked, err = service.MaskedAPIKey(ctx)
	require.NoError(t, err)
	assert.Empty(t, masked)
}

func TestSettingsService_NoCredentialStore(t *testing.T) {
	ctx := context.Background()
	service := NewSettingsService(memory.NewConfigStore(), nil)

	assert.ErrorIs(t, service.SetAPIKey(ctx, "sk-abcdefghijk"), ErrNoCredentialStore)
	assert.ErrorIs(t, service.ClearAPIKey(ctx), ErrNoCredentialStore)
	has, err := service.HasAPIKey(ctx)
	assert.NoError(t, err)
	assert.False(t, has)
}

type mockValidator struct {
	gotKey   string
	gotModel string
	err      error
}

func (m *mockValidator) ValidateLLM(config *domain.AISettings, apiKey string) error {
	m.gotKey = apiKey
	m.gotModel = config.Model
	return m.err
}

func TestSettingsService_ValidateAPIKey(t *testing.T) {
	ctx := context.Background()

	t.Run("no key", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore(), memory.NewCredentialStore(""))
		assert.ErrorIs(t, service.ValidateAPIKey(ctx), domain.ErrMissingCredential)
	})

	t.Run("no validator accepts stored key", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore(), memory.NewCredentialStore("sk-abc123456789"))
		assert.NoError(t, service.ValidateAPIKey(ctx))
	})

	t.Run("delegates to validator", func(t *testing.T) {
		validator := &mockValidator{err: domain.ErrSourceUnavailable}
		service := NewSettingsService(memory.NewConfigStore(), memory.NewCredentialStore("sk-abc123456789"))
		service.SetAIValidator(validator)

		err := service.ValidateAPIKey(ctx)

		assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
		assert.Equal(t, "sk-abc123456789", validator.gotKey)
		assert.Equal(t, "gpt-4o", validator.gotModel)
	})
}
