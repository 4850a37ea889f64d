package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driven"
)

// mockSearchClient is a scriptable driven.SearchClient.
type mockSearchClient struct {
	mu         sync.Mutex
	kind       domain.SourceKind
	SearchFunc func(ctx context.Context, q domain.SearchQuery) ([]domain.CaseResult, error)
	calls      int
}

var _ driven.SearchClient = (*mockSearchClient)(nil)

func newMockClient(kind domain.SourceKind, results []domain.CaseResult, err error) *mockSearchClient {
	return &mockSearchClient{
		kind: kind,
		SearchFunc: func(_ context.Context, _ domain.SearchQuery) ([]domain.CaseResult, error) {
			return results, err
		},
	}
}

func (m *mockSearchClient) Kind() domain.SourceKind { return m.kind }

func (m *mockSearchClient) Search(ctx context.Context, q domain.SearchQuery) ([]domain.CaseResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.SearchFunc(ctx, q)
}

func (m *mockSearchClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockPaymentGateway records requests and optionally confirms them immediately.
type mockPaymentGateway struct {
	InitiateErr error
	Confirm     bool
	requests    []domain.PaymentRequest
	callback    func()
}

var _ driven.PaymentGateway = (*mockPaymentGateway)(nil)

func (m *mockPaymentGateway) Initiate(_ context.Context, req domain.PaymentRequest, onSuccess func()) error {
	if m.InitiateErr != nil {
		return m.InitiateErr
	}
	m.requests = append(m.requests, req)
	m.callback = onSuccess
	if m.Confirm {
		onSuccess()
	}
	return nil
}

func casesNamed(titles ...string) []domain.CaseResult {
	out := make([]domain.CaseResult, len(titles))
	for i, title := range titles {
		out[i] = domain.CaseResult{ID: title, Title: title, Tags: []string{domain.DefaultTag}}
	}
	return out
}
