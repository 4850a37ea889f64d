package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
	assert.Equal(t, "Search South African case law", searchCmd.Short)
}

func TestSearchCmd_Flags(t *testing.T) {
	source := searchCmd.Flags().Lookup("source")
	require.NotNil(t, source)
	assert.Equal(t, "s", source.Shorthand)
	assert.Equal(t, "", source.DefValue)

	for _, name := range []string{"court", "year", "topic", "json"} {
		assert.NotNil(t, searchCmd.Flags().Lookup(name), "flag %s should exist", name)
	}
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := executeCommand(t, "", "search")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	searchService = nil

	_, _, err := executeCommand(t, "", "search", "housing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}

func TestSearchCmd_PrintsResults(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := executeCommand(t, "", "search", "death penalty")

	require.NoError(t, err)
	assert.Contains(t, out, "Results from Sample cases (offline):")
	assert.Contains(t, out, "[1] S v Makwanyane")
	assert.Contains(t, out, "1995 (3) SA 391 (CC) · Constitutional Court · 1995-06-06")
	assert.Contains(t, out, "Confidence: 92%")
	assert.Contains(t, out, "https://www.saflii.org/za/cases/ZACC/1995/3.html")
	assert.Contains(t, out, "[2] Government of the RSA v Grootboom (suggested)")
	assert.Contains(t, out, "2 of 3 free searches left today")
}

func TestSearchCmd_BuildsRequest(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want domain.SearchRequest
	}{
		{
			name: "joins words and leaves source unset",
			args: []string{"search", "right", "to", "housing"},
			want: domain.SearchRequest{Query: domain.SearchQuery{Query: "right to housing"}},
		},
		{
			name: "source alias and filters",
			args: []string{
				"search", "--source", "saflii", "--court", "Constitutional Court",
				"--year", "2000", "--topic", "housing", "eviction",
			},
			want: domain.SearchRequest{
				Query: domain.SearchQuery{
					Query: "eviction",
					Court: "Constitutional Court",
					Year:  "2000",
					Topic: "housing",
				},
				Source: domain.SourceScrape,
			},
		},
		{
			name: "short source flag",
			args: []string{"search", "-s", "ai", "dismissal"},
			want: domain.SearchRequest{
				Query:  domain.SearchQuery{Query: "dismissal"},
				Source: domain.SourceAI,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, cleanup := setupTestServices()
			defer cleanup()

			_, _, err := executeCommand(t, "", tt.args...)
			resetFlags()

			require.NoError(t, err)
			require.Len(t, svc.search.requests, 1)
			assert.Equal(t, tt.want, svc.search.requests[0])
		})
	}
}

func TestSearchCmd_InvalidSource(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := executeCommand(t, "", "search", "--source", "westlaw", "housing")

	assert.ErrorIs(t, err, domain.ErrUnsupportedSource)
	assert.Empty(t, svc.search.requests)
}

func TestSearchCmd_BlankQuery(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := executeCommand(t, "", "search", "   ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, svc.search.requests)
}

func TestSearchCmd_Blocked(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	svc.search.outcome = &domain.SearchOutcome{
		Blocked: true,
		Source:  domain.SourceStatic,
		Quota:   domain.QuotaState{Count: domain.DailyLimit},
	}

	out, _, err := executeCommand(t, "", "search", "housing")

	assert.ErrorIs(t, err, domain.ErrQuotaBlocked)
	assert.Contains(t, out, "Daily search limit reached (3 of 3 used).")
	assert.Contains(t, out, "lexai upgrade")
	assert.NotContains(t, out, "Results from")
}

func TestSearchCmd_OutcomeErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantNotice string
		wantCode   string
	}{
		{
			name:       "missing credential",
			err:        fmt.Errorf("openai: %w", domain.ErrMissingCredential),
			wantNotice: "needs an OpenAI API key",
			wantCode:   domain.CodeMissingCredential,
		},
		{
			name:       "source unavailable is retryable",
			err:        fmt.Errorf("saflii: %w", domain.ErrSourceUnavailable),
			wantNotice: "Something went wrong while searching. Please try again.",
			wantCode:   domain.CodeSourceUnavailable,
		},
		{
			name:       "malformed response is retryable",
			err:        domain.ErrMalformedResponse,
			wantNotice: "Something went wrong while searching. Please try again.",
			wantCode:   domain.CodeMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, cleanup := setupTestServices()
			defer cleanup()
			svc.search.outcome = &domain.SearchOutcome{Source: domain.SourceAI, Err: tt.err}

			_, stderr, err := executeCommand(t, "", "search", "housing")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), tt.wantCode)
			assert.Contains(t, stderr, tt.wantNotice)
		})
	}
}

func TestSearchCmd_ServiceError(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	svc.search.err = errors.New("boom")

	_, _, err := executeCommand(t, "", "search", "housing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

func TestSearchCmd_NoResults(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	svc.search.outcome = &domain.SearchOutcome{Source: domain.SourceScrape, Quota: domain.QuotaState{IsPremium: true}}

	out, _, err := executeCommand(t, "", "search", "nothing")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
	assert.Contains(t, out, "Premium: unlimited searches")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := executeCommand(t, "", "search", "--json", "death penalty")
	require.NoError(t, err)

	var got searchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, domain.SourceStatic, got.Source)
	assert.False(t, got.Blocked)
	assert.Equal(t, 2, got.Remaining)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "S v Makwanyane", got.Results[0].Title)
	assert.Nil(t, got.Error)
	assert.Contains(t, out, `"confidenceScore": 92`)
}

func TestSearchCmd_JSONOutputCarriesErrorCode(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	svc.search.outcome = &domain.SearchOutcome{Source: domain.SourceScrape, Err: domain.ErrRateLimited}

	out, _, err := executeCommand(t, "", "search", "--json", "housing")
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	var got searchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.Error)
	assert.Equal(t, domain.CodeRateLimited, got.Error.Code)
	assert.NotNil(t, got.Results, "results serialise as an empty list")
}

func TestSearchCmd_JSONOutputBlocked(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	svc.search.outcome = &domain.SearchOutcome{Blocked: true, Quota: domain.QuotaState{Count: 3}}

	out, _, err := executeCommand(t, "", "search", "--json", "housing")
	assert.ErrorIs(t, err, domain.ErrQuotaBlocked)

	var got searchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Blocked)
	assert.Equal(t, 0, got.Remaining)
}

func TestSearchNotice(t *testing.T) {
	assert.Contains(t, searchNotice(domain.ErrMissingCredential), "lexai settings apikey")
	assert.Equal(t, "Something went wrong while searching. Please try again.", searchNotice(domain.ErrSourceUnavailable))
	assert.Contains(t, searchNotice(domain.ErrUnsupportedSource), "Search failed:")
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "a · c", joinNonEmpty(" · ", "a", "", "c"))
	assert.Equal(t, "", joinNonEmpty(" · ", "", ""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := strings.Repeat("ä", 20)
	got := truncate(long, 10)
	assert.Equal(t, strings.Repeat("ä", 7)+"...", got)
}
