package driven

import (
	"context"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

// QuotaStore persists the daily usage ledger under a single key.
type QuotaStore interface {
	// Load returns the stored ledger.
	// Returns domain.ErrNotFound if nothing has been stored yet.
	Load(ctx context.Context) (*domain.QuotaState, error)

	// Save replaces the stored ledger.
	Save(ctx context.Context, state domain.QuotaState) error
}
