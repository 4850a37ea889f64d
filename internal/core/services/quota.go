package services

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driven"
	"github.com/custodia-labs/lexai/internal/core/ports/driving"
	"github.com/custodia-labs/lexai/internal/logger"
)

// Ensure QuotaTracker implements the interface.
var _ driving.QuotaService = (*QuotaTracker)(nil)

// QuotaTracker maintains the daily free-search ledger.
//
// Day rollover is evaluated lazily on every read. Storage failures never
// block a search: a failed read is treated as no prior state and a failed
// write is logged and ignored.
type QuotaTracker struct {
	store driven.QuotaStore
	now   func() time.Time
}

// NewQuotaTracker creates a tracker backed by store.
func NewQuotaTracker(store driven.QuotaStore) *QuotaTracker {
	return &QuotaTracker{
		store: store,
		now:   time.Now,
	}
}

// SetClock replaces the time source. Used by tests to cross day boundaries.
func (q *QuotaTracker) SetClock(now func() time.Time) {
	q.now = now
}

// ReadState returns the current ledger, resetting the count when the stored
// window is from an earlier day and the user is not premium.
func (q *QuotaTracker) ReadState(ctx context.Context) domain.QuotaState {
	now := q.now()

	stored, err := q.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Quota read failed, starting fresh: %v", err)
		}
		fresh := domain.NewQuotaState(now)
		q.save(ctx, fresh)
		return fresh
	}

	state := *stored
	if !state.IsPremium && !state.InWindow(now) {
		logger.Debug("Quota window %s expired, resetting count %d", state.Date.Format(time.DateOnly), state.Count)
		state.Count = 0
		state.Date = now
		q.save(ctx, state)
	}
	return state
}

// Increment counts one search. Premium users are never counted.
func (q *QuotaTracker) Increment(ctx context.Context) domain.QuotaState {
	state := q.ReadState(ctx)
	if state.IsPremium {
		return state
	}
	state.Count++
	q.save(ctx, state)
	logger.Debug("Quota used: %d/%d", state.Count, domain.DailyLimit)
	return state
}

// SetPremium sets or clears the premium flag.
func (q *QuotaTracker) SetPremium(ctx context.Context, premium bool) domain.QuotaState {
	state := q.ReadState(ctx)
	state.IsPremium = premium
	q.save(ctx, state)
	logger.Info("Premium set to %t", premium)
	return state
}

// HasReachedLimit reports whether a non-premium user has used today's allowance.
func (q *QuotaTracker) HasReachedLimit(ctx context.Context) bool {
	return q.ReadState(ctx).LimitReached()
}

func (q *QuotaTracker) save(ctx context.Context, state domain.QuotaState) {
	if err := q.store.Save(ctx, state); err != nil {
		logger.Warn("Quota write failed: %v", err)
	}
}
