package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedSource", ErrUnsupportedSource},
		{"ErrQuotaBlocked", ErrQuotaBlocked},
		{"ErrSourceUnavailable", ErrSourceUnavailable},
		{"ErrMissingCredential", ErrMissingCredential},
		{"ErrMalformedResponse", ErrMalformedResponse},
		{"ErrRateLimited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"quota blocked", ErrQuotaBlocked, CodeQuotaBlocked},
		{"wrapped source unavailable", fmt.Errorf("saflii: status 500: %w", ErrSourceUnavailable), CodeSourceUnavailable},
		{"missing credential", ErrMissingCredential, CodeMissingCredential},
		{"wrapped malformed", fmt.Errorf("parse reply: %w", ErrMalformedResponse), CodeMalformedResponse},
		{"rate limited", ErrRateLimited, CodeRateLimited},
		{"invalid input", ErrInvalidInput, CodeInvalidInput},
		{"unsupported source", ErrUnsupportedSource, CodeUnsupportedSource},
		{"not found", ErrNotFound, CodeNotFound},
		{"unknown", errors.New("disk on fire"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorCode(tt.err))
		})
	}
}

func TestErrorCode_RateLimitWinsOverUnavailable(t *testing.T) {
	err := fmt.Errorf("openai: %w: %w", ErrSourceUnavailable, ErrRateLimited)
	assert.Equal(t, CodeRateLimited, ErrorCode(err))
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(ErrQuotaBlocked))
	assert.False(t, IsRetryable(ErrMissingCredential))
	assert.False(t, IsRetryable(fmt.Errorf("bad: %w", ErrInvalidInput)))
	assert.True(t, IsRetryable(ErrSourceUnavailable))
	assert.True(t, IsRetryable(ErrRateLimited))
	assert.True(t, IsRetryable(ErrMalformedResponse))
	assert.True(t, IsRetryable(errors.New("unexpected")))
}
