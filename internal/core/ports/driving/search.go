package driving

import (
	"context"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

// SearchService runs quota-gated searches on behalf of external actors.
type SearchService interface {
	// Search checks the quota, dispatches to the selected source and
	// reports the outcome. Quota blocks and source failures are carried
	// in the outcome. The error return is reserved for unexpected failures.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchOutcome, error)
}
