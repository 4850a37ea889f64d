package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driven"
	"github.com/custodia-labs/lexai/internal/core/ports/driving"
	"github.com/custodia-labs/lexai/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService is the quota-gated search orchestrator.
//
// Each call moves Idle -> CheckingQuota -> (Blocked | Dispatching) -> Completed.
// The quota is re-read on every call and incremented only after a source
// returns successfully.
type SearchService struct {
	quota    driving.QuotaService
	clients  map[domain.SourceKind]driven.SearchClient
	settings driving.SettingsService
}

// NewSearchService creates a new search orchestrator. Each client is
// registered under its Kind; a later client replaces an earlier one.
func NewSearchService(quota driving.QuotaService, clients ...driven.SearchClient) *SearchService {
	s := &SearchService{
		quota:   quota,
		clients: make(map[domain.SourceKind]driven.SearchClient, len(clients)),
	}
	for _, c := range clients {
		s.clients[c.Kind()] = c
	}
	return s
}

// SetSettingsService sets the settings service used to resolve the default source.
func (s *SearchService) SetSettingsService(settings driving.SettingsService) {
	s.settings = settings
}

// Search runs one orchestrated search.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchOutcome, error) {
	logger.Section("Search")

	kind := s.resolveSource(req.Source)
	outcome := &domain.SearchOutcome{
		Results: []domain.CaseResult{},
		Source:  kind,
	}

	if req.Query.IsEmpty() {
		logger.Debug("Empty query, staying idle")
		return outcome, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Debug("Query: %q source=%s", req.Query.Query, kind)

	// CheckingQuota
	if s.quota.HasReachedLimit(ctx) {
		outcome.Blocked = true
		outcome.Quota = s.quota.ReadState(ctx)
		logger.Info("Daily limit of %d reached, search blocked", domain.DailyLimit)
		return outcome, nil
	}

	// Dispatching
	client, ok := s.clients[kind]
	if !ok {
		outcome.Err = fmt.Errorf("%w: %q", domain.ErrUnsupportedSource, kind)
		outcome.Quota = s.quota.ReadState(ctx)
		logger.Warn("No client registered for %s", kind)
		return outcome, nil
	}

	results, err := client.Search(ctx, req.Query)
	if err != nil {
		outcome.Err = err
		outcome.Quota = s.quota.ReadState(ctx)
		logger.Warn("Source %s failed: %v", kind, err)
		return outcome, nil
	}

	if results != nil {
		outcome.Results = results
	}
	outcome.Quota = s.quota.Increment(ctx)
	logger.Info("%d results from %s", len(outcome.Results), kind)
	return outcome, nil
}

func (s *SearchService) resolveSource(kind domain.SourceKind) domain.SourceKind {
	if kind != "" {
		return kind
	}
	if s.settings != nil {
		if settings, err := s.settings.Get(); err == nil && settings.Search.DefaultSource.IsValid() {
			return settings.Search.DefaultSource
		}
	}
	return domain.DefaultSource
}
