package driven

import (
	"context"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

// PaymentGateway initiates premium payments with an external provider.
type PaymentGateway interface {
	// Initiate starts a payment. onSuccess is called asynchronously once the
	// provider confirms payment; it is never called if Initiate returns an error.
	Initiate(ctx context.Context, req domain.PaymentRequest, onSuccess func()) error
}
