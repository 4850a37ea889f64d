package driven

import (
	"context"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

// SearchClient is one case-law source.
//
// Implementations return errors wrapping the domain taxonomy
// (ErrSourceUnavailable, ErrRateLimited, ErrMissingCredential,
// ErrMalformedResponse) so callers can choose a fallback.
type SearchClient interface {
	// Kind identifies the source.
	Kind() domain.SourceKind

	// Search returns case results for the query.
	Search(ctx context.Context, query domain.SearchQuery) ([]domain.CaseResult, error)
}

// CaseLookup fetches a single case by id. An unknown id wraps
// domain.ErrNotFound.
type CaseLookup interface {
	ByID(ctx context.Context, id string) (*domain.CaseResult, error)
}
