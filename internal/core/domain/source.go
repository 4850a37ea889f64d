package domain

import (
	"fmt"
	"strings"
)

// SourceKind identifies which strategy satisfies a search.
type SourceKind string

// Available source kinds.
const (
	// SourceStatic filters the built-in sample dataset.
	SourceStatic SourceKind = "static"

	// SourceScrape queries the SAFLII legal database and parses its HTML.
	SourceScrape SourceKind = "scrape"

	// SourceAI asks a chat-completion model for case summaries.
	SourceAI SourceKind = "ai"
)

// AllSourceKinds lists the source kinds in display order.
func AllSourceKinds() []SourceKind {
	return []SourceKind{SourceStatic, SourceScrape, SourceAI}
}

// ParseSourceKind converts user input into a SourceKind.
// A few aliases from the original interface are accepted.
func ParseSourceKind(s string) (SourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static", "mock", "sample":
		return SourceStatic, nil
	case "scrape", "saflii":
		return SourceScrape, nil
	case "ai", "gpt", "openai":
		return SourceAI, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedSource, s)
	}
}

// IsValid returns true if the source kind is recognised.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceStatic, SourceScrape, SourceAI:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SourceKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the source.
func (k SourceKind) Description() string {
	switch k {
	case SourceStatic:
		return "Sample cases (offline)"
	case SourceScrape:
		return "SAFLII case law database"
	case SourceAI:
		return "Precedence AI (LLM)"
	default:
		return "Unknown"
	}
}

// Next returns the following source kind, wrapping around.
func (k SourceKind) Next() SourceKind {
	kinds := AllSourceKinds()
	for i, kind := range kinds {
		if kind == k {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return SourceStatic
}
