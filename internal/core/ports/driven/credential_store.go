package driven

import "context"

// CredentialStore persists the AI provider credential.
// An absent key is a valid initial state and is reported as an empty string.
type CredentialStore interface {
	// GetAPIKey returns the stored key, or "" if none is stored.
	GetAPIKey(ctx context.Context) (string, error)

	// SetAPIKey stores the key, replacing any existing one.
	SetAPIKey(ctx context.Context, key string) error

	// ClearAPIKey removes the stored key. Clearing an absent key is not an error.
	ClearAPIKey(ctx context.Context) error
}
