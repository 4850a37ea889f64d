package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/lexai/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore is an in-memory implementation of driven.CredentialStore for testing.
type CredentialStore struct {
	mu     sync.RWMutex
	apiKey string
}

// NewCredentialStore creates a new in-memory credential store holding key.
// Pass "" for an empty store.
func NewCredentialStore(key string) *CredentialStore {
	return &CredentialStore{apiKey: key}
}

// GetAPIKey returns the stored key, or "".
func (s *CredentialStore) GetAPIKey(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey, nil
}

// SetAPIKey stores the key.
func (s *CredentialStore) SetAPIKey(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = key
	return nil
}

// ClearAPIKey removes the key.
func (s *CredentialStore) ClearAPIKey(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = ""
	return nil
}
