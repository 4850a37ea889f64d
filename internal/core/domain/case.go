package domain

import "strings"

// Placeholder values used when a source cannot populate a field.
const (
	UnknownTitle         = "Unknown Title"
	CitationNotAvailable = "Citation not available"
	UnknownCourt         = "South African Court"
	DefaultTag           = "Legal Case"
	SuggestedTag         = "Suggested"
)

// CaseResult is one legal case summary returned to the caller.
// Results are built fresh on every search and never persisted.
type CaseResult struct {
	// ID is unique within a single result set. Scraped and AI results
	// may get a new ID on every call.
	ID string `json:"id"`

	// Title is the case name, e.g. "Minister of Police v Mboweni".
	Title string `json:"title"`

	// Citation is the neutral citation, e.g. "[2023] ZACC 12".
	Citation string `json:"citation"`

	// Court is the deciding court.
	Court string `json:"court"`

	// Date is the judgment date as displayed by the source.
	Date string `json:"date"`

	// Summary is a short description of the matter.
	Summary string `json:"summary"`

	// Tags are ordered topic labels without duplicates.
	Tags []string `json:"tags"`

	// SourceLink points to the origin document. Generated results may
	// carry a stub value.
	SourceLink string `json:"sourceLink"`

	// Judge is the presiding judge when known.
	Judge string `json:"judge,omitempty"`

	// ConfidenceScore is 0-100 and only set for AI-sourced results.
	ConfidenceScore *int `json:"confidenceScore,omitempty"`

	// Source is an attribution label, e.g. "Precedence AI".
	Source string `json:"source,omitempty"`

	// Suggested marks a fallback suggestion rather than a direct match.
	Suggested bool `json:"suggested,omitempty"`
}

// MatchesText reports whether the term appears, case-insensitively,
// in the title, the summary or any tag.
func (c *CaseResult) MatchesText(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Title), term) ||
		strings.Contains(strings.ToLower(c.Summary), term) {
		return true
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// AddTags appends tags that are not already present, preserving order.
func (c *CaseResult) AddTags(tags ...string) {
	c.Tags = AppendUnique(c.Tags, tags...)
}

// Clone returns a deep copy so callers can annotate results without
// touching shared sample data.
func (c CaseResult) Clone() CaseResult {
	out := c
	if c.Tags != nil {
		out.Tags = make([]string, len(c.Tags))
		copy(out.Tags, c.Tags)
	}
	if c.ConfidenceScore != nil {
		score := *c.ConfidenceScore
		out.ConfidenceScore = &score
	}
	return out
}

// AppendUnique appends values to dst, skipping empty strings and
// values already present.
func AppendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if v == "" || containsString(dst, v) {
			continue
		}
		dst = append(dst, v)
	}
	return dst
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// Score returns a pointer to an int, for setting ConfidenceScore.
func Score(v int) *int {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return &v
}
