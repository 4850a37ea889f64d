package static

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

func TestClient_Kind(t *testing.T) {
	assert.Equal(t, domain.SourceStatic, NewClient().Kind())
}

func TestClient_Search_CaseInsensitive(t *testing.T) {
	client := NewClient()

	results, err := client.Search(context.Background(), domain.SearchQuery{Query: "tax"})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ABC Investments v Commissioner of SARS", results[0].Title)
	assert.Contains(t, results[0].Summary, "Tax assessment dispute")
	assert.False(t, results[0].Suggested)
}

func TestClient_Search_Matches(t *testing.T) {
	client := NewClient()

	tests := []struct {
		name     string
		query    domain.SearchQuery
		expected []string
	}{
		{"title", domain.SearchQuery{Query: "mboweni"}, []string{"1"}},
		{"tag", domain.SearchQuery{Query: "LABOUR LAW"}, []string{"4"}},
		{"negligence", domain.SearchQuery{Query: "negligence"}, []string{"6", "7"}},
		{"court filter", domain.SearchQuery{Query: "delict", Court: "Constitutional"}, []string{"6", "7", "8"}},
		{"year filter", domain.SearchQuery{Query: "delict", Year: "2014"}, []string{"8"}},
		{"topic filter", domain.SearchQuery{Query: "law", Topic: "banking"}, []string{"5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := client.Search(context.Background(), tt.query)
			require.NoError(t, err)

			ids := make([]string, len(results))
			for i, r := range results {
				ids[i] = r.ID
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestClient_Search_NoMatchSuggests(t *testing.T) {
	client := NewClient()

	results, err := client.Search(context.Background(), domain.SearchQuery{Query: "maritime salvage"})

	require.NoError(t, err)
	require.Len(t, results, SuggestionCount)
	for _, r := range results {
		assert.True(t, r.Suggested)
		assert.Contains(t, r.Tags, domain.SuggestedTag)
	}
	assert.Equal(t, "1", results[0].ID)
}

func TestClient_Search_SuggestionsDoNotMutateDataset(t *testing.T) {
	client := NewClient()

	_, _ = client.Search(context.Background(), domain.SearchQuery{Query: "zzz"})
	results, _ := client.Search(context.Background(), domain.SearchQuery{Query: "mboweni"})

	require.Len(t, results, 1)
	assert.False(t, results[0].Suggested)
	assert.NotContains(t, results[0].Tags, domain.SuggestedTag)
}

func TestClient_Search_EmptyDataset(t *testing.T) {
	client := NewClientWithCases(nil)

	results, err := client.Search(context.Background(), domain.SearchQuery{Query: "tax"})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClient_Suggest_CapsAtDatasetSize(t *testing.T) {
	client := NewClientWithCases(Cases()[:2])

	assert.Len(t, client.Suggest(SuggestionCount), 2)
}

func TestCases_ReturnsCopy(t *testing.T) {
	cases := Cases()
	cases[0].Tags[0] = "Changed"

	assert.Equal(t, "Constitutional Law", Cases()[0].Tags[0])
}

func TestClient_ByID(t *testing.T) {
	client := NewClient()

	found, err := client.ByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "1", found.ID)

	found.Tags = append(found.Tags, "Mutated")
	again, err := client.ByID(context.Background(), "1")
	require.NoError(t, err)
	assert.NotContains(t, again.Tags, "Mutated", "returned case is a copy")

	_, err = client.ByID(context.Background(), "no-such-case")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
