package completion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

// Defaults for fields the model leaves out.
const (
	DefaultTitle      = "Untitled Case"
	DefaultCitation   = "No citation provided"
	DefaultCourt      = "Unknown Court"
	DefaultSummary    = "No summary available"
	DefaultTag        = "AI Generated"
	DefaultLink       = "#"
	DefaultConfidence = 75

	// SourceLabel attributes generated results.
	SourceLabel = "Precedence AI"
)

// replyCase is one case as the model returns it. Every field is optional.
type replyCase struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Citation        string   `json:"citation"`
	Court           string   `json:"court"`
	Date            string   `json:"date"`
	Summary         string   `json:"summary"`
	Tags            []string `json:"tags"`
	Judge           string   `json:"judge"`
	URL             string   `json:"url"`
	SourceLink      string   `json:"sourceLink"`
	ConfidenceScore *float64 `json:"confidenceScore"`
}

// ParseReply decodes a model reply into case results.
//
// The reply may be wrapped in a ``` or ```json fence and may be either an
// object {"cases": [...]} or a bare array. Missing fields get defaults and
// entries without an id get one from newID. Anything else wraps
// domain.ErrMalformedResponse.
func ParseReply(reply string, now time.Time, newID func() string) ([]domain.CaseResult, error) {
	body := []byte(StripFence(reply))

	var items []replyCase
	switch {
	case bytes.HasPrefix(body, []byte("[")):
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("completion: decode reply: %w: %v", domain.ErrMalformedResponse, err)
		}
	default:
		var envelope struct {
			Cases *[]replyCase `json:"cases"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("completion: decode reply: %w: %v", domain.ErrMalformedResponse, err)
		}
		if envelope.Cases == nil {
			return nil, fmt.Errorf("completion: reply has no cases array: %w", domain.ErrMalformedResponse)
		}
		items = *envelope.Cases
	}

	results := make([]domain.CaseResult, 0, len(items))
	for _, item := range items {
		results = append(results, item.toCaseResult(now, newID))
	}
	return results, nil
}

// StripFence removes an optional Markdown code fence around s.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop the info string (e.g. "json") up to the first newline.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func (r replyCase) toCaseResult(now time.Time, newID func() string) domain.CaseResult {
	c := domain.CaseResult{
		ID:         orDefault(r.ID, ""),
		Title:      orDefault(r.Title, DefaultTitle),
		Citation:   orDefault(r.Citation, DefaultCitation),
		Court:      orDefault(r.Court, DefaultCourt),
		Date:       orDefault(r.Date, now.Format(time.DateOnly)),
		Summary:    orDefault(r.Summary, DefaultSummary),
		SourceLink: orDefault(r.URL, orDefault(r.SourceLink, DefaultLink)),
		Judge:      strings.TrimSpace(r.Judge),
		Source:     SourceLabel,
	}
	if c.ID == "" {
		c.ID = newID()
	}

	c.AddTags(trimAll(r.Tags)...)
	if len(c.Tags) == 0 {
		c.Tags = []string{DefaultTag}
	}

	score := DefaultConfidence
	if r.ConfidenceScore != nil && *r.ConfidenceScore > 0 {
		score = int(math.Round(min(*r.ConfidenceScore, 100)))
	}
	c.ConfidenceScore = domain.Score(score)
	return c
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
