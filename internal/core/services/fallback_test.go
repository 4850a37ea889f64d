package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

func TestFallbackChain_FirstSuccessWins(t *testing.T) {
	primary := newMockClient(domain.SourceScrape, casesNamed("scraped"), nil)
	backup := newMockClient(domain.SourceStatic, casesNamed("static"), nil)
	chain := NewFallbackChain(primary, FallbackStep{Client: backup, When: func(error) bool { return true }})

	results, err := chain.Search(context.Background(), domain.SearchQuery{Query: "tax"})

	require.NoError(t, err)
	assert.Equal(t, "scraped", results[0].Title)
	assert.Equal(t, 0, backup.Calls())
	assert.Equal(t, domain.SourceScrape, chain.Kind())
}

func TestFallbackChain_FallsBackOnMatchingError(t *testing.T) {
	primary := newMockClient(domain.SourceScrape, nil, fmt.Errorf("status 500: %w", domain.ErrSourceUnavailable))
	backup := newMockClient(domain.SourceStatic, casesNamed("static"), nil)
	chain := ScrapeChain(primary, backup)

	results, err := chain.Search(context.Background(), domain.SearchQuery{Query: "tax"})

	require.NoError(t, err)
	assert.Equal(t, "static", results[0].Title)
	assert.Equal(t, 1, primary.Calls())
	assert.Equal(t, 1, backup.Calls())
}

func TestFallbackChain_SkipsRejectedSteps(t *testing.T) {
	primary := newMockClient(domain.SourceAI, nil, domain.ErrRateLimited)
	never := newMockClient(domain.SourceStatic, casesNamed("never"), nil)
	later := newMockClient(domain.SourceStatic, casesNamed("later"), nil)
	chain := NewFallbackChain(primary,
		FallbackStep{Client: never, When: OnErrors(domain.ErrSourceUnavailable)},
		FallbackStep{Client: later, When: OnErrors(domain.ErrRateLimited)},
	)

	results, err := chain.Search(context.Background(), domain.SearchQuery{Query: "x"})

	require.NoError(t, err)
	assert.Equal(t, "later", results[0].Title)
	assert.Equal(t, 0, never.Calls())
}

func TestFallbackChain_ReturnsLastError(t *testing.T) {
	first := errors.New("first")
	second := fmt.Errorf("second: %w", domain.ErrMalformedResponse)
	primary := newMockClient(domain.SourceAI, nil, first)
	backup := newMockClient(domain.SourceStatic, nil, second)
	chain := NewFallbackChain(primary, FallbackStep{Client: backup, When: func(error) bool { return true }})

	_, err := chain.Search(context.Background(), domain.SearchQuery{Query: "x"})

	assert.Equal(t, second, err)
}

func TestFallbackChain_NilPredicateNeverRuns(t *testing.T) {
	primary := newMockClient(domain.SourceAI, nil, domain.ErrRateLimited)
	backup := newMockClient(domain.SourceStatic, casesNamed("b"), nil)
	chain := NewFallbackChain(primary, FallbackStep{Client: backup})

	_, err := chain.Search(context.Background(), domain.SearchQuery{Query: "x"})

	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Equal(t, 0, backup.Calls())
}

func TestScrapeChain_Predicates(t *testing.T) {
	tests := []struct {
		name         string
		primaryErr   error
		wantFallback bool
	}{
		{"unavailable", domain.ErrSourceUnavailable, true},
		{"rate limited", fmt.Errorf("saflii: %w", domain.ErrRateLimited), true},
		{"malformed", domain.ErrMalformedResponse, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := newMockClient(domain.SourceScrape, nil, tt.primaryErr)
			backup := newMockClient(domain.SourceStatic, casesNamed("static"), nil)

			_, err := ScrapeChain(primary, backup).Search(context.Background(), domain.SearchQuery{Query: "x"})

			if tt.wantFallback {
				assert.NoError(t, err)
				assert.Equal(t, 1, backup.Calls())
			} else {
				assert.ErrorIs(t, err, tt.primaryErr)
				assert.Equal(t, 0, backup.Calls())
			}
		})
	}
}

func TestAIChain(t *testing.T) {
	tests := []struct {
		name         string
		primaryErr   error
		enabled      bool
		wantFallback bool
	}{
		{"rate limited and enabled", domain.ErrRateLimited, true, true},
		{"rate limited but disabled", domain.ErrRateLimited, false, false},
		{"missing credential never recovered", domain.ErrMissingCredential, true, false},
		{"unavailable surfaces", domain.ErrSourceUnavailable, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := newMockClient(domain.SourceAI, nil, tt.primaryErr)
			mock := newMockClient(domain.SourceAI, casesNamed("generated"), nil)
			chain := AIChain(ai, mock, func() bool { return tt.enabled })

			results, err := chain.Search(context.Background(), domain.SearchQuery{Query: "x"})

			if tt.wantFallback {
				require.NoError(t, err)
				assert.Len(t, results, 1)
			} else {
				assert.ErrorIs(t, err, tt.primaryErr)
				assert.Empty(t, results)
				assert.Equal(t, 0, mock.Calls())
			}
		})
	}
}
