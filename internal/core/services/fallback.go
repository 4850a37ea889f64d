package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driven"
	"github.com/custodia-labs/lexai/internal/logger"
)

// Ensure FallbackChain implements the interface.
var _ driven.SearchClient = (*FallbackChain)(nil)

// FallbackStep is one strategy in a fallback chain.
type FallbackStep struct {
	// Client produces the results for this step.
	Client driven.SearchClient

	// When decides whether the step runs given the last error.
	// It is ignored for the first step, which always runs.
	When func(err error) bool
}

// FallbackChain tries its steps in order until one returns without error.
// A later step runs only if its When accepts the most recent error;
// rejected steps are skipped. If every attempted step fails, the last
// error is returned.
type FallbackChain struct {
	steps []FallbackStep
}

// NewFallbackChain creates a chain led by primary.
func NewFallbackChain(primary driven.SearchClient, fallbacks ...FallbackStep) *FallbackChain {
	steps := make([]FallbackStep, 0, len(fallbacks)+1)
	steps = append(steps, FallbackStep{Client: primary})
	steps = append(steps, fallbacks...)
	return &FallbackChain{steps: steps}
}

// Kind reports the primary client's kind.
func (c *FallbackChain) Kind() domain.SourceKind {
	return c.steps[0].Client.Kind()
}

// Search runs the chain.
func (c *FallbackChain) Search(ctx context.Context, query domain.SearchQuery) ([]domain.CaseResult, error) {
	var lastErr error
	for i, step := range c.steps {
		if i > 0 {
			if step.When == nil || !step.When(lastErr) {
				logger.Debug("Fallback %d (%s) skipped for: %v", i, step.Client.Kind(), lastErr)
				continue
			}
			logger.Info("Falling back to %s after: %v", step.Client.Kind(), lastErr)
		}

		results, err := step.Client.Search(ctx, query)
		if err == nil {
			return results, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// OnErrors returns a predicate matching errors that wrap any of targets.
func OnErrors(targets ...error) func(error) bool {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// ScrapeChain falls back from the scrape client to the static dataset
// when the database is unreachable or throttling.
func ScrapeChain(scrape, static driven.SearchClient) *FallbackChain {
	return NewFallbackChain(scrape, FallbackStep{
		Client: static,
		When:   OnErrors(domain.ErrSourceUnavailable, domain.ErrRateLimited),
	})
}

// AIChain falls back from the completion client to generated results when
// the provider rate limits and enabled reports true. Missing credentials
// are never recovered.
func AIChain(ai, mock driven.SearchClient, enabled func() bool) *FallbackChain {
	rateLimited := OnErrors(domain.ErrRateLimited)
	return NewFallbackChain(ai, FallbackStep{
		Client: mock,
		When: func(err error) bool {
			return rateLimited(err) && enabled()
		},
	})
}
