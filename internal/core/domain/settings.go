package domain

// Default settings values.
const (
	DefaultAIModel         = "gpt-4o"
	DefaultAIBaseURL       = "https://api.openai.com/v1"
	DefaultScrapeBaseURL   = "https://www.saflii.org/cgi-bin/sinosrch-adw.cgi"
	DefaultScrapeRate      = 1
	DefaultSource          = SourceStatic
	unknownDescription     = "Unknown"
	minimumMaskedKeyLength = 8
)

// AIProvider identifies an AI service provider for completions.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is OpenAI cloud API (or a compatible endpoint).
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// AISettings holds AI completion configuration.
// The API key itself lives in the credential store, not here.
type AISettings struct {
	// Provider is the completion provider.
	Provider AIProvider

	// Model is the chat model name.
	Model string

	// BaseURL is the API endpoint.
	BaseURL string

	// TestMode returns locally generated results when no key is stored.
	TestMode bool

	// MockOnRateLimit substitutes generated results when the provider rate limits.
	MockOnRateLimit bool
}

// ScrapeSettings holds external database configuration.
type ScrapeSettings struct {
	// BaseURL is the search endpoint.
	BaseURL string

	// RatePerSecond throttles outbound requests.
	RatePerSecond float64
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// DefaultSource is used when a request does not select a source.
	DefaultSource SourceKind
}

// AppSettings is the complete application configuration.
type AppSettings struct {
	Search SearchSettings
	AI     AISettings
	Scrape ScrapeSettings
}

// DefaultAppSettings returns settings with default values.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{DefaultSource: DefaultSource},
		AI: AISettings{
			Provider:        AIProviderOpenAI,
			Model:           DefaultAIModel,
			BaseURL:         DefaultAIBaseURL,
			TestMode:        false,
			MockOnRateLimit: true,
		},
		Scrape: ScrapeSettings{
			BaseURL:       DefaultScrapeBaseURL,
			RatePerSecond: DefaultScrapeRate,
		},
	}
}

// MaskAPIKey hides all but the first and last four characters of a key.
func MaskAPIKey(key string) string {
	if len(key) <= minimumMaskedKeyLength {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
