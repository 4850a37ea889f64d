package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoSearchService indicates that no search service was provided.
	ErrNoSearchService = errors.New("search service is required")

	// ErrEmptyOutcome indicates the search service returned neither an outcome nor an error.
	ErrEmptyOutcome = errors.New("search returned no outcome")
)
