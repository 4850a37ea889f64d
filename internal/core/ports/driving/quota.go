package driving

import (
	"context"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

// QuotaService exposes the daily usage ledger.
type QuotaService interface {
	// ReadState returns the current ledger, applying day rollover.
	ReadState(ctx context.Context) domain.QuotaState

	// Increment counts one search. No-op for premium users.
	Increment(ctx context.Context) domain.QuotaState

	// SetPremium sets or clears the premium flag.
	SetPremium(ctx context.Context, premium bool) domain.QuotaState

	// HasReachedLimit reports whether a non-premium user is out of searches.
	HasReachedLimit(ctx context.Context) bool
}
