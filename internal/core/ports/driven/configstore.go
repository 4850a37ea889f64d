package driven

// ConfigStore is the settings backend. Keys are flat dot paths such as
// "ai.model" or "scrape.rate_per_second"; how they are laid out on disk
// is up to the implementation.
//
// Typed getters never fail: a missing key or a value of the wrong type
// yields the zero value, and the settings service applies defaults.
type ConfigStore interface {
	// Get returns the raw value and whether key is set.
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	// GetFloat widens integer values.
	GetFloat(key string) float64
	GetBool(key string) bool

	// Set writes through to storage.
	Set(key string, value any) error
	Save() error
	// Load replaces the in-memory view with what storage holds.
	Load() error
	// Path identifies the backing storage for display.
	Path() string
}
