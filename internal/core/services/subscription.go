package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driven"
	"github.com/custodia-labs/lexai/internal/core/ports/driving"
	"github.com/custodia-labs/lexai/internal/logger"
)

// Ensure SubscriptionService implements the interface.
var _ driving.SubscriptionService = (*SubscriptionService)(nil)

// ErrNoPaymentGateway is returned when upgrades are attempted without a gateway.
var ErrNoPaymentGateway = errors.New("payment gateway not configured")

// SubscriptionService handles premium upgrades through a payment gateway.
type SubscriptionService struct {
	quota   driving.QuotaService
	gateway driven.PaymentGateway
	now     func() time.Time
	nonce   func() int
}

// NewSubscriptionService creates a subscription service.
// The gateway parameter is optional (can be nil).
func NewSubscriptionService(quota driving.QuotaService, gateway driven.PaymentGateway) *SubscriptionService {
	return &SubscriptionService{
		quota:   quota,
		gateway: gateway,
		now:     time.Now,
		nonce:   func() int { return rand.IntN(1000) },
	}
}

// Upgrade builds a payment request and hands it to the gateway. When the
// gateway confirms payment the premium flag is set.
func (s *SubscriptionService) Upgrade(ctx context.Context, email string) (*domain.PaymentRequest, error) {
	req, err := domain.NewPaymentRequest(email, s.now(), s.nonce())
	if err != nil {
		return nil, err
	}
	if s.gateway == nil {
		return nil, ErrNoPaymentGateway
	}

	// The callback outlives the request that started it.
	cbCtx := context.WithoutCancel(ctx)
	onSuccess := func() {
		logger.Info("Payment %s confirmed", req.Reference)
		s.quota.SetPremium(cbCtx, true)
	}

	logger.Debug("Initiating payment %s for %s (%s)", req.Reference, req.Email, req.FormatAmount())
	if err := s.gateway.Initiate(ctx, req, onSuccess); err != nil {
		return nil, err
	}
	return &req, nil
}

// Downgrade clears the premium flag.
func (s *SubscriptionService) Downgrade(ctx context.Context) domain.QuotaState {
	return s.quota.SetPremium(ctx, false)
}
