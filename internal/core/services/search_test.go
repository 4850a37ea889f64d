package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexai/internal/adapters/driven/sources/static"
	"github.com/custodia-labs/lexai/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lexai/internal/core/domain"
)

func TestSearchService_EmptyQueryStaysIdle(t *testing.T) {
	store := memory.NewQuotaStore()
	client := newMockClient(domain.SourceStatic, casesNamed("a"), nil)
	service := NewSearchService(newTestTracker(store, testNow), client)

	tests := []string{"", "   ", "\t\n"}
	for _, q := range tests {
		outcome, err := service.Search(context.Background(), domain.SearchRequest{Query: domain.SearchQuery{Query: q}})

		require.NoError(t, err)
		assert.Empty(t, outcome.Results)
		assert.False(t, outcome.Blocked)
		assert.NoError(t, outcome.Err)
	}

	assert.Equal(t, 0, client.Calls())
	assert.Equal(t, 0, store.Saves(), "quota must not be read")
}

func TestSearchService_SuccessIncrementsOnce(t *testing.T) {
	ctx := context.Background()
	store := memory.NewQuotaStore()
	client := newMockClient(domain.SourceStatic, casesNamed("a", "b"), nil)
	service := NewSearchService(newTestTracker(store, testNow), client)

	outcome, err := service.Search(ctx, domain.SearchRequest{
		Query:  domain.SearchQuery{Query: "tax"},
		Source: domain.SourceStatic,
	})

	require.NoError(t, err)
	assert.True(t, outcome.Succeeded())
	assert.Len(t, outcome.Results, 2)
	assert.Equal(t, 1, outcome.Quota.Count)
	assert.Equal(t, 1, client.Calls())

	stored, _ := store.Load(ctx)
	assert.Equal(t, 1, stored.Count)
}

func TestSearchService_BlocksAfterDailyLimit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewQuotaStore()
	client := newMockClient(domain.SourceStatic, casesNamed("a"), nil)
	service := NewSearchService(newTestTracker(store, testNow), client)
	req := domain.SearchRequest{Query: domain.SearchQuery{Query: "tax"}, Source: domain.SourceStatic}

	for i := 0; i < domain.DailyLimit; i++ {
		outcome, err := service.Search(ctx, req)
		require.NoError(t, err)
		require.False(t, outcome.Blocked)
	}

	outcome, err := service.Search(ctx, req)

	require.NoError(t, err)
	assert.True(t, outcome.Blocked)
	assert.Empty(t, outcome.Results)
	assert.Equal(t, domain.DailyLimit, outcome.Quota.Count)
	assert.Equal(t, domain.DailyLimit, client.Calls(), "fourth search must not reach the source")
}

func TestSearchService_PremiumNeverBlocked(t *testing.T) {
	ctx := context.Background()
	store := memory.NewQuotaStore()
	require.NoError(t, store.Save(ctx, domain.QuotaState{Count: 0, Date: testNow, IsPremium: true}))
	client := newMockClient(domain.SourceStatic, casesNamed("a"), nil)
	service := NewSearchService(newTestTracker(store, testNow), client)

	for i := 0; i < domain.DailyLimit+2; i++ {
		outcome, err := service.Search(ctx, domain.SearchRequest{Query: domain.SearchQuery{Query: "x"}})
		require.NoError(t, err)
		assert.False(t, outcome.Blocked)
		assert.Equal(t, 0, outcome.Quota.Count)
	}
}

func TestSearchService_SourceErrorSurfacedVerbatim(t *testing.T) {
	ctx := context.Background()
	store := memory.NewQuotaStore()
	sourceErr := fmt.Errorf("ai: %w", domain.ErrMissingCredential)
	client := newMockClient(domain.SourceAI, nil, sourceErr)
	service := NewSearchService(newTestTracker(store, testNow), client)

	outcome, err := service.Search(ctx, domain.SearchRequest{Query: domain.SearchQuery{Query: "x"}, Source: domain.SourceAI})

	require.NoError(t, err)
	assert.Equal(t, sourceErr, outcome.Err)
	assert.Empty(t, outcome.Results)
	assert.Equal(t, 1, client.Calls(), "no retry")
	assert.Equal(t, 0, outcome.Quota.Count)
}

func TestSearchService_UnsupportedSource(t *testing.T) {
	service := NewSearchService(newTestTracker(memory.NewQuotaStore(), testNow))

	outcome, err := service.Search(context.Background(), domain.SearchRequest{
		Query:  domain.SearchQuery{Query: "x"},
		Source: domain.SourceScrape,
	})

	require.NoError(t, err)
	assert.ErrorIs(t, outcome.Err, domain.ErrUnsupportedSource)
	assert.Equal(t, 0, outcome.Quota.Count)
}

func TestSearchService_DefaultSourceFromSettings(t *testing.T) {
	config := memory.NewConfigStore()
	settings := NewSettingsService(config, nil)
	require.NoError(t, settings.SetDefaultSource(domain.SourceAI))

	staticClient := newMockClient(domain.SourceStatic, casesNamed("static"), nil)
	aiClient := newMockClient(domain.SourceAI, casesNamed("ai"), nil)
	service := NewSearchService(newTestTracker(memory.NewQuotaStore(), testNow), staticClient, aiClient)
	service.SetSettingsService(settings)

	outcome, err := service.Search(context.Background(), domain.SearchRequest{Query: domain.SearchQuery{Query: "x"}})

	require.NoError(t, err)
	assert.Equal(t, domain.SourceAI, outcome.Source)
	assert.Equal(t, "ai", outcome.Results[0].Title)
	assert.Equal(t, 0, staticClient.Calls())
}

func TestSearchService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := newMockClient(domain.SourceStatic, casesNamed("a"), nil)
	service := NewSearchService(newTestTracker(memory.NewQuotaStore(), testNow), client)

	_, err := service.Search(ctx, domain.SearchRequest{Query: domain.SearchQuery{Query: "x"}})

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, client.Calls())
}

func TestSearchService_ScrapeFallbackEqualsStatic(t *testing.T) {
	ctx := context.Background()
	staticClient := static.NewClient()
	scrape := newMockClient(domain.SourceScrape, nil, fmt.Errorf("status 500: %w", domain.ErrSourceUnavailable))
	service := NewSearchService(newTestTracker(memory.NewQuotaStore(), testNow),
		staticClient, ScrapeChain(scrape, staticClient))
	query := domain.SearchQuery{Query: "property"}

	outcome, err := service.Search(ctx, domain.SearchRequest{Query: query, Source: domain.SourceScrape})
	require.NoError(t, err)
	require.NoError(t, outcome.Err)

	direct, err := staticClient.Search(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, direct, outcome.Results)
	assert.Equal(t, 1, outcome.Quota.Count)
}

func TestSearchService_EndToEndNegligence(t *testing.T) {
	ctx := context.Background()
	store := memory.NewQuotaStore()
	tracker := newTestTracker(store, testNow)
	service := NewSearchService(tracker, static.NewClient())

	require.Equal(t, 0, tracker.ReadState(ctx).Count)

	outcome, err := service.Search(ctx, domain.SearchRequest{
		Query:  domain.SearchQuery{Query: "negligence"},
		Source: domain.SourceStatic,
	})

	require.NoError(t, err)
	require.True(t, outcome.Succeeded())
	assert.NotEmpty(t, outcome.Results)
	for _, r := range outcome.Results {
		assert.False(t, r.Suggested)
	}

	stored, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Count)
}
