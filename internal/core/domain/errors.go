package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedSource indicates an unknown or unconfigured source kind.
	ErrUnsupportedSource = errors.New("unsupported source")

	// Search Errors.

	// ErrQuotaBlocked indicates the daily free-tier limit has been reached.
	// This is an expected gating outcome, not a failure.
	ErrQuotaBlocked = errors.New("daily request limit reached")

	// ErrSourceUnavailable indicates a network or HTTP failure talking to a source.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMissingCredential indicates the AI source has no API key configured.
	// It is never recovered automatically.
	ErrMissingCredential = errors.New("missing credential")

	// ErrMalformedResponse indicates scraped HTML or an AI reply could not be parsed.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrRateLimited indicates the provider signalled a rate limit.
	ErrRateLimited = errors.New("rate limited")
)

// Stable error codes exposed to driving adapters.
const (
	CodeQuotaBlocked      = "QUOTA_BLOCKED"
	CodeSourceUnavailable = "SOURCE_UNAVAILABLE"
	CodeMissingCredential = "MISSING_CREDENTIAL"
	CodeMalformedResponse = "MALFORMED_RESPONSE"
	CodeRateLimited       = "RATE_LIMITED"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeUnsupportedSource = "UNSUPPORTED_SOURCE"
	CodeNotFound          = "NOT_FOUND"
	CodeInternal          = "INTERNAL"
)

// ErrorCode maps an error onto the stable code of the taxonomy.
// A nil error has no code.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrQuotaBlocked):
		return CodeQuotaBlocked
	case errors.Is(err, ErrMissingCredential):
		return CodeMissingCredential
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited
	case errors.Is(err, ErrMalformedResponse):
		return CodeMalformedResponse
	case errors.Is(err, ErrSourceUnavailable):
		return CodeSourceUnavailable
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrUnsupportedSource):
		return CodeUnsupportedSource
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	default:
		return CodeInternal
	}
}

// IsRetryable reports whether the user can simply try the search again.
// Quota blocks route to the upgrade flow and missing credentials need
// configuration, so neither is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	switch ErrorCode(err) {
	case CodeQuotaBlocked, CodeMissingCredential, CodeInvalidInput, CodeUnsupportedSource:
		return false
	default:
		return true
	}
}
