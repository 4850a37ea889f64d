// Package paystack provides a simulated Paystack payment gateway.
//
// No request leaves the machine: Initiate validates the request, logs it,
// and confirms the payment after a fixed delay. Real checkout belongs to
// an external collaborator.
package paystack

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driven"
	"github.com/custodia-labs/lexai/internal/logger"
)

// DefaultConfirmDelay is how long the simulated checkout takes.
const DefaultConfirmDelay = 2 * time.Second

// Ensure Gateway implements the interface.
var _ driven.PaymentGateway = (*Gateway)(nil)

// Gateway is a simulated payment gateway.
type Gateway struct {
	delay   time.Duration
	pending sync.WaitGroup

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewGateway creates a gateway that confirms payments after delay.
// A non-positive delay uses DefaultConfirmDelay.
func NewGateway(delay time.Duration) *Gateway {
	if delay <= 0 {
		delay = DefaultConfirmDelay
	}
	return &Gateway{delay: delay, timers: make(map[string]*time.Timer)}
}

// Initiate schedules confirmation of req. onSuccess runs on its own
// goroutine once the delay elapses.
func (g *Gateway) Initiate(ctx context.Context, req domain.PaymentRequest, onSuccess func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.AmountCents <= 0 {
		return fmt.Errorf("paystack: amount must be positive: %w", domain.ErrInvalidInput)
	}
	if req.Reference == "" {
		return fmt.Errorf("paystack: missing reference: %w", domain.ErrInvalidInput)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.timers[req.Reference]; exists {
		return fmt.Errorf("paystack: duplicate reference %s: %w", req.Reference, domain.ErrInvalidInput)
	}

	logger.Info("Initiating payment %s: %s %s for %s",
		req.Reference, req.FormatAmount(), req.Currency, req.Email)

	g.pending.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(g.delay, func() {
		defer g.pending.Done()
		g.mu.Lock()
		// A timer that fired while Cancel held the lock is no longer registered.
		live := g.timers[req.Reference] == timer
		if live {
			delete(g.timers, req.Reference)
		}
		g.mu.Unlock()
		if !live {
			logger.Debug("Payment %s cancelled", req.Reference)
			return
		}

		logger.Info("Payment %s confirmed", req.Reference)
		if onSuccess != nil {
			onSuccess()
		}
	})
	g.timers[req.Reference] = timer
	return nil
}

// Wait blocks until every scheduled confirmation has run or been cancelled.
func (g *Gateway) Wait() {
	g.pending.Wait()
}

// Cancel stops pending confirmations; their callbacks never run.
func (g *Gateway) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelLocked()
}

func (g *Gateway) cancelLocked() {
	for ref, timer := range g.timers {
		if timer.Stop() {
			g.pending.Done()
			logger.Debug("Payment %s cancelled", ref)
		}
		delete(g.timers, ref)
	}
}
