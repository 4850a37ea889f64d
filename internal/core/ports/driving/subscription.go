package driving

import (
	"context"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

// SubscriptionService handles the premium upgrade flow.
type SubscriptionService interface {
	// Upgrade initiates a premium payment for email. Premium is granted
	// asynchronously when the gateway reports success.
	Upgrade(ctx context.Context, email string) (*domain.PaymentRequest, error)

	// Downgrade clears the premium flag.
	Downgrade(ctx context.Context) domain.QuotaState
}
