// Package static provides the offline sample-case search source.
package static

import (
	"context"
	"fmt"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driven"
	"github.com/custodia-labs/lexai/internal/logger"
)

// SuggestionCount is how many cases are suggested when nothing matches.
const SuggestionCount = 3

var (
	_ driven.SearchClient = (*Client)(nil)
	_ driven.CaseLookup   = (*Client)(nil)
)

// Client filters a fixed in-memory dataset.
type Client struct {
	cases []domain.CaseResult
}

// NewClient creates a client over the built-in dataset.
func NewClient() *Client {
	return NewClientWithCases(Cases())
}

// NewClientWithCases creates a client over cases.
func NewClientWithCases(cases []domain.CaseResult) *Client {
	return &Client{cases: cases}
}

// Kind returns domain.SourceStatic.
func (c *Client) Kind() domain.SourceKind {
	return domain.SourceStatic
}

// Search returns every case whose title, summary or tags contain the query
// and which satisfies the structured filters. When nothing matches, the
// first SuggestionCount cases are returned marked as suggestions so the
// caller never sees a bare empty state.
func (c *Client) Search(_ context.Context, query domain.SearchQuery) ([]domain.CaseResult, error) {
	matches := c.Match(query)
	if len(matches) > 0 {
		logger.Debug("Static lookup: %d matches", len(matches))
		return matches, nil
	}

	suggestions := c.Suggest(SuggestionCount)
	logger.Debug("Static lookup: no matches, suggesting %d", len(suggestions))
	return suggestions, nil
}

// Match returns copies of the cases matching the query and filters.
func (c *Client) Match(query domain.SearchQuery) []domain.CaseResult {
	results := []domain.CaseResult{}
	for i := range c.cases {
		item := &c.cases[i]
		if item.MatchesText(query.Query) && query.Accepts(item) {
			results = append(results, item.Clone())
		}
	}
	return results
}

// Suggest returns up to n leading cases annotated as suggestions.
func (c *Client) Suggest(n int) []domain.CaseResult {
	if n > len(c.cases) {
		n = len(c.cases)
	}
	results := make([]domain.CaseResult, 0, n)
	for i := 0; i < n; i++ {
		item := c.cases[i].Clone()
		item.Suggested = true
		item.AddTags(domain.SuggestedTag)
		results = append(results, item)
	}
	return results
}

// ByID returns a copy of the case with id.
func (c *Client) ByID(_ context.Context, id string) (*domain.CaseResult, error) {
	for i := range c.cases {
		if c.cases[i].ID == id {
			found := c.cases[i].Clone()
			return &found, nil
		}
	}
	return nil, fmt.Errorf("case %q: %w", id, domain.ErrNotFound)
}
