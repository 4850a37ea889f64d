package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driven"
	"github.com/custodia-labs/lexai/internal/core/ports/driving"
	"github.com/custodia-labs/lexai/internal/logger"
)

var _ driving.CaseLookupService = (*CaseLookupService)(nil)

// CaseLookupService resolves case ids. A found case costs one search from
// the daily quota; a blocked or unknown lookup costs nothing.
type CaseLookupService struct {
	quota  driving.QuotaService
	source driven.CaseLookup
}

// NewCaseLookupService creates a lookup over source.
func NewCaseLookupService(quota driving.QuotaService, source driven.CaseLookup) *CaseLookupService {
	return &CaseLookupService{quota: quota, source: source}
}

// Lookup fetches the case with id.
func (s *CaseLookupService) Lookup(ctx context.Context, id string) (*domain.LookupOutcome, error) {
	logger.Section("Lookup")

	id = strings.TrimSpace(id)
	if id == "" {
		return &domain.LookupOutcome{Err: fmt.Errorf("%w: empty case id", domain.ErrInvalidInput)}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outcome := &domain.LookupOutcome{}
	if s.quota.HasReachedLimit(ctx) {
		outcome.Blocked = true
		outcome.Quota = s.quota.ReadState(ctx)
		logger.Info("Daily limit of %d reached, lookup of %s blocked", domain.DailyLimit, id)
		return outcome, nil
	}

	found, err := s.source.ByID(ctx, id)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	case err != nil:
		outcome.Err = err
		outcome.Quota = s.quota.ReadState(ctx)
		logger.Debug("Lookup of %s failed: %v", id, err)
		return outcome, nil
	}

	outcome.Case = found
	outcome.Quota = s.quota.Increment(ctx)
	logger.Debug("Lookup of %s found %q", id, found.Title)
	return outcome, nil
}
