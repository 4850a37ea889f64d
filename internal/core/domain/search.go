package domain

import "strings"

// SearchQuery is the input to the search orchestrator.
type SearchQuery struct {
	// Query is the free-text query.
	Query string `json:"query"`

	// Court optionally restricts results to a court (substring match).
	Court string `json:"court,omitempty"`

	// Year optionally restricts results to a year (matched against date and citation).
	Year string `json:"year,omitempty"`

	// Topic optionally restricts results to a topic tag (substring match).
	Topic string `json:"topic,omitempty"`
}

// IsEmpty returns true when the query is empty or whitespace only.
func (q SearchQuery) IsEmpty() bool {
	return strings.TrimSpace(q.Query) == ""
}

// HasFilters returns true if any structured filter is set.
func (q SearchQuery) HasFilters() bool {
	return q.Court != "" || q.Year != "" || q.Topic != ""
}

// Accepts reports whether a case satisfies the structured filters.
// Sources that cannot honour filters do not call it.
func (q SearchQuery) Accepts(c *CaseResult) bool {
	if q.Court != "" && !containsFold(c.Court, q.Court) {
		return false
	}
	if q.Year != "" && !containsFold(c.Date, q.Year) && !containsFold(c.Citation, q.Year) {
		return false
	}
	if q.Topic != "" {
		found := false
		for _, tag := range c.Tags {
			if containsFold(tag, q.Topic) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// SearchRequest is a query bound to a source selection.
type SearchRequest struct {
	// Query holds the text and filters.
	Query SearchQuery

	// Source selects the source. Empty means the configured default.
	Source SourceKind
}

// SearchOutcome is the structured result of one orchestrated search.
// Expected outcomes (quota blocks, source errors) are carried here
// rather than returned as Go errors.
type SearchOutcome struct {
	// Results are the normalised case results.
	Results []CaseResult

	// Blocked is true when the daily limit stopped the search before dispatch.
	Blocked bool

	// Source is the source kind that was selected.
	Source SourceKind

	// Quota is the ledger state after the search.
	Quota QuotaState

	// Err is the source-level error, surfaced verbatim.
	Err error
}

// Succeeded returns true if the search was dispatched and completed without error.
func (o *SearchOutcome) Succeeded() bool {
	return o != nil && !o.Blocked && o.Err == nil
}

// LookupOutcome is the result of fetching one case by id. Like a search,
// a lookup is quota-gated and counts against the daily limit when found.
type LookupOutcome struct {
	Case    *CaseResult
	Blocked bool
	Quota   QuotaState
	// Err is ErrNotFound for an unknown id.
	Err error
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
