package saflii

import (
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

// RateLimitError is returned when SAFLII throttles requests.
type RateLimitError struct {
	RetryAt time.Time
}

func (e *RateLimitError) Error() string {
	if e.RetryAt.IsZero() {
		return "saflii: rate limited"
	}
	return fmt.Sprintf("saflii: rate limited until %s", e.RetryAt.Format(time.RFC3339))
}

// Unwrap maps the error onto the domain taxonomy.
func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("saflii: HTTP %d (URL: %s)", e.StatusCode, e.URL)
}

// Unwrap maps the error onto the domain taxonomy.
func (e *APIError) Unwrap() error {
	return domain.ErrSourceUnavailable
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}
