package driving

import (
	"context"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

// CaseActionService provides actions on a single case result.
type CaseActionService interface {
	// CopyCitation copies the case title and citation to the system clipboard.
	CopyCitation(ctx context.Context, result *domain.CaseResult) error

	// OpenSource opens the case's source link in the default browser.
	// Returns domain.ErrNotFound if the result has no usable link.
	OpenSource(ctx context.Context, result *domain.CaseResult) error
}
