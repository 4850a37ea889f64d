package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	outcome *domain.SearchOutcome
	err     error
	last    domain.SearchRequest
}

func (m *mockSearchService) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchOutcome, error) {
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	if m.outcome == nil {
		return &domain.SearchOutcome{Source: domain.SourceStatic}, nil
	}
	return m.outcome, nil
}

// mockQuotaService is a mock implementation of driving.QuotaService.
type mockQuotaService struct {
	state domain.QuotaState
}

func (m *mockQuotaService) ReadState(context.Context) domain.QuotaState { return m.state }

func (m *mockQuotaService) Increment(context.Context) domain.QuotaState {
	m.state.Count++
	return m.state
}

func (m *mockQuotaService) SetPremium(_ context.Context, premium bool) domain.QuotaState {
	m.state.IsPremium = premium
	return m.state
}

func (m *mockQuotaService) HasReachedLimit(context.Context) bool { return m.state.LimitReached() }

func newQuota(count int, premium bool) *mockQuotaService {
	return &mockQuotaService{state: domain.QuotaState{
		Count:     count,
		Date:      time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC),
		IsPremium: premium,
	}}
}

// mockLookupService is a mock implementation of driving.CaseLookupService.
type mockLookupService struct {
	outcome *domain.LookupOutcome
	err     error
	ids     []string
}

func (m *mockLookupService) Lookup(_ context.Context, id string) (*domain.LookupOutcome, error) {
	m.ids = append(m.ids, id)
	if m.err != nil {
		return nil, m.err
	}
	return m.outcome, nil
}
