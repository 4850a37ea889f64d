package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driven"
)

// Ensure QuotaStore implements the interface.
var _ driven.QuotaStore = (*QuotaStore)(nil)

// QuotaStore is an in-memory implementation of driven.QuotaStore for testing.
type QuotaStore struct {
	mu    sync.RWMutex
	state *domain.QuotaState

	// LoadErr and SaveErr, when set, are returned instead of touching state.
	LoadErr error
	SaveErr error

	saves int
}

// NewQuotaStore creates a new empty in-memory quota store.
func NewQuotaStore() *QuotaStore {
	return &QuotaStore{}
}

// Load returns a copy of the stored ledger.
func (s *QuotaStore) Load(_ context.Context) (*domain.QuotaState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.state == nil {
		return nil, domain.ErrNotFound
	}
	state := *s.state
	return &state, nil
}

// Save replaces the stored ledger.
func (s *QuotaStore) Save(_ context.Context, state domain.QuotaState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.state = &state
	s.saves++
	return nil
}

// Saves returns how many successful saves have been made.
func (s *QuotaStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
