package completion

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driven"
	"github.com/custodia-labs/lexai/internal/logger"
)

// LLMFactory creates a chat service for the given settings and key.
type LLMFactory func(settings *domain.AISettings, apiKey string) (driven.LLMService, error)

// SettingsFunc returns the current AI settings.
type SettingsFunc func() domain.AISettings

// Ensure Client implements the interface.
var _ driven.SearchClient = (*Client)(nil)

// Client is the AI completion search source.
type Client struct {
	credentials driven.CredentialStore
	settings    SettingsFunc
	newLLM      LLMFactory
	mock        driven.SearchClient
	now         func() time.Time
	newID       func() string
}

// NewClient creates a completion client. Settings and the credential are
// read on every search so changes apply without a restart.
func NewClient(
	credentials driven.CredentialStore,
	settings SettingsFunc,
	newLLM LLMFactory,
	mock driven.SearchClient,
) *Client {
	if settings == nil {
		settings = func() domain.AISettings { return domain.DefaultAppSettings().AI }
	}
	return &Client{
		credentials: credentials,
		settings:    settings,
		newLLM:      newLLM,
		mock:        mock,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Kind returns domain.SourceAI.
func (c *Client) Kind() domain.SourceKind {
	return domain.SourceAI
}

// Search asks the model for cases matching the query. Structured filters
// are not passed to the model.
func (c *Client) Search(ctx context.Context, query domain.SearchQuery) ([]domain.CaseResult, error) {
	settings := c.settings()

	apiKey, err := c.credentials.GetAPIKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("completion: read credential: %w", err)
	}

	if apiKey == "" {
		if settings.TestMode && c.mock != nil {
			logger.Info("No API key stored, using generated results (test mode)")
			return c.mock.Search(ctx, query)
		}
		return nil, fmt.Errorf("completion: no API key stored: %w", domain.ErrMissingCredential)
	}

	llm, err := c.newLLM(&settings, apiKey)
	if err != nil {
		return nil, err
	}
	defer llm.Close()

	logger.Debug("Asking %s about %q", llm.ModelName(), query.Query)
	reply, err := llm.Chat(ctx, []driven.ChatMessage{
		{Role: "system", Content: SystemPrompt},
		{Role: "user", Content: UserPrompt(query.Query)},
	}, driven.ChatOptions{
		MaxTokens:    MaxTokens,
		Temperature:  Temperature,
		JSONResponse: true,
	})
	if err != nil {
		return nil, err
	}

	return ParseReply(reply, c.now(), c.newID)
}
