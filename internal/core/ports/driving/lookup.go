package driving

import (
	"context"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

// CaseLookupService fetches single cases by id under the same daily quota
// as searches.
type CaseLookupService interface {
	// Lookup reports blocks and unknown ids in the outcome. The error
	// return is reserved for unexpected failures.
	Lookup(ctx context.Context, id string) (*domain.LookupOutcome, error)
}
