// Package openai talks to the OpenAI chat completions API, or any server
// that speaks the same wire format.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driven"
)

var _ driven.LLMService = (*LLMService)(nil)

// Defaults applied by NewLLMService.
const (
	DefaultBaseURL    = domain.DefaultAIBaseURL
	DefaultLLMModel   = domain.DefaultAIModel
	DefaultLLMTimeout = 120 * time.Second
)

// maxErrorBody caps how much of an error body ends up in a message.
const maxErrorBody = 512

// LLMConfig configures an LLMService. Only APIKey is required.
type LLMConfig struct {
	APIKey string
	// BaseURL points at an OpenAI-compatible endpoint.
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LLMService is a chat completions client.
type LLMService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// APIError is a non-success reply from the API. It unwraps to
// domain.ErrRateLimited for 429 and domain.ErrSourceUnavailable otherwise.
type APIError struct {
	Status     int
	Type       string
	Message    string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("openai: %s: %s", e.Unwrap(), e.Message)
	}
	return fmt.Sprintf("openai (status %d): %s: %s", e.Status, e.Unwrap(), e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusTooManyRequests {
		return domain.ErrRateLimited
	}
	return domain.ErrSourceUnavailable
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []wireMessage `json:"messages"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	Temperature    float64       `json:"temperature,omitempty"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

type chatResponse struct {
	errorEnvelope
	Choices []struct {
		Message      wireMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// NewLLMService fills defaults and returns a client. A missing key wraps
// domain.ErrMissingCredential.
func NewLLMService(cfg LLMConfig) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: %w", domain.ErrMissingCredential)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}
	return &LLMService{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Chat sends messages and returns the first choice's content. An
// undecodable success body wraps domain.ErrMalformedResponse.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	req := chatRequest{
		Model:       s.model,
		Messages:    make([]wireMessage, 0, len(messages)),
		MaxTokens:   max(opts.MaxTokens, 0),
		Temperature: max(opts.Temperature, 0),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, wireMessage(m))
	}
	if opts.JSONResponse {
		req.ResponseFormat = &struct {
			Type string `json:"type"`
		}{Type: "json_object"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	raw, err := s.do(ctx, http.MethodPost, "/chat/completions", body)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("openai: decode response: %w: %v", domain.ErrMalformedResponse, err)
	}
	if resp.Error != nil {
		return "", &APIError{Type: resp.Error.Type, Message: resp.Error.Message}
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no response choices returned: %w", domain.ErrMalformedResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *LLMService) ModelName() string { return s.model }

// Ping lists models, which checks the key without spending tokens.
func (s *LLMService) Ping(ctx context.Context) error {
	_, err := s.do(ctx, http.MethodGet, "/models", nil)
	return err
}

func (s *LLMService) Close() error { return nil }

// do performs an authenticated request and returns the body of a 200
// reply. Transport failures and other statuses come back as errors in
// the domain taxonomy.
func (s *LLMService) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("openai: %w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: read response: %w: %v", domain.ErrSourceUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp, raw)
	}
	return raw, nil
}

// newAPIError prefers the provider's message and falls back to a
// truncated copy of the body.
func newAPIError(resp *http.Response, raw []byte) *APIError {
	apiErr := &APIError{
		Status:     resp.StatusCode,
		RetryAfter: retryAfter(resp.Header.Get("Retry-After")),
	}
	var env errorEnvelope
	if json.Unmarshal(raw, &env) == nil && env.Error != nil {
		apiErr.Type = env.Error.Type
		apiErr.Message = env.Error.Message
		return apiErr
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	apiErr.Message = msg
	return apiErr
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
