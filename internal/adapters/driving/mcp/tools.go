package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

// SearchInput is the input schema for the search_cases tool.
type SearchInput struct {
	Query  string `json:"query" jsonschema:"free-text description of the legal issue, e.g. negligence"`
	Source string `json:"source,omitempty" jsonschema:"one of static, scrape or ai (default: configured source)"`
	Court  string `json:"court,omitempty" jsonschema:"restrict to courts whose name contains this text"`
	Year   string `json:"year,omitempty" jsonschema:"restrict to a judgment year, e.g. 2023"`
	Topic  string `json:"topic,omitempty" jsonschema:"restrict to cases tagged with this topic"`
}

// SearchOutput is the output schema for the search_cases tool.
type SearchOutput struct {
	Results   []domain.CaseResult `json:"results"`
	Count     int                 `json:"count"`
	Source    string              `json:"source"`
	Blocked   bool                `json:"blocked"`
	Remaining int                 `json:"remaining" jsonschema:"free searches left today, -1 for premium"`
	Error     *ErrorOutput        `json:"error,omitempty"`
}

// ErrorOutput describes an expected search failure.
type ErrorOutput struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// QuotaInput is the (empty) input schema for the quota_status tool.
type QuotaInput struct{}

// QuotaOutput is the output schema for the quota_status tool.
type QuotaOutput struct {
	Count       int    `json:"count"`
	Limit       int    `json:"limit"`
	Remaining   int    `json:"remaining" jsonschema:"-1 for premium"`
	IsPremium   bool   `json:"isPremium"`
	WindowStart string `json:"windowStart"`
}

// CaseInput is the input schema for the get_case tool.
type CaseInput struct {
	ID string `json:"id" jsonschema:"case id as returned by search_cases"`
}

// CaseOutput is the output schema for the get_case tool.
type CaseOutput struct {
	Case      *domain.CaseResult `json:"case,omitempty"`
	Blocked   bool               `json:"blocked"`
	Remaining int                `json:"remaining" jsonschema:"free searches left today, -1 for premium"`
	Error     *ErrorOutput       `json:"error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_cases",
		Description: "Search South African case law. Free users get 3 searches per day.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "quota_status",
		Description: "Report today's search usage and premium status",
	}, s.handleQuota)

	if s.ports.Lookup != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "get_case",
			Description: "Fetch one sample case by id. Counts as a search against the daily quota.",
		}, s.handleGetCase)
	}
}

// handleSearch handles the search_cases tool invocation. Quota blocks and
// source failures are reported in the output, not as tool errors.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	req := domain.SearchRequest{
		Query: domain.SearchQuery{
			Query: input.Query,
			Court: input.Court,
			Year:  input.Year,
			Topic: input.Topic,
		},
	}
	if input.Source != "" {
		kind, err := domain.ParseSourceKind(input.Source)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		req.Source = kind
	}

	outcome, err := s.ports.Search.Search(ctx, req)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results:   outcome.Results,
		Count:     len(outcome.Results),
		Source:    outcome.Source.String(),
		Blocked:   outcome.Blocked,
		Remaining: outcome.Quota.Remaining(),
	}
	if output.Results == nil {
		output.Results = []domain.CaseResult{}
	}

	output.Error = errorOutput(outcome.Blocked, outcome.Err)
	return nil, output, nil
}

// handleGetCase handles the get_case tool invocation. Blocks and unknown
// ids are reported in the output.
func (s *Server) handleGetCase(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CaseInput,
) (*mcp.CallToolResult, CaseOutput, error) {
	outcome, err := s.ports.Lookup.Lookup(ctx, input.ID)
	if err != nil {
		return nil, CaseOutput{}, err
	}
	return nil, CaseOutput{
		Case:      outcome.Case,
		Blocked:   outcome.Blocked,
		Remaining: outcome.Quota.Remaining(),
		Error:     errorOutput(outcome.Blocked, outcome.Err),
	}, nil
}

func errorOutput(blocked bool, err error) *ErrorOutput {
	switch {
	case blocked:
		return &ErrorOutput{
			Code:    domain.CodeQuotaBlocked,
			Message: "Daily limit reached. Upgrade to premium for unlimited searches.",
		}
	case err != nil:
		return &ErrorOutput{
			Code:      domain.ErrorCode(err),
			Message:   err.Error(),
			Retryable: domain.IsRetryable(err),
		}
	}
	return nil
}

// handleQuota handles the quota_status tool invocation.
func (s *Server) handleQuota(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ QuotaInput,
) (*mcp.CallToolResult, QuotaOutput, error) {
	return nil, quotaOutput(s.ports.Quota.ReadState(ctx)), nil
}

func quotaOutput(state domain.QuotaState) QuotaOutput {
	return QuotaOutput{
		Count:       state.Count,
		Limit:       domain.DailyLimit,
		Remaining:   state.Remaining(),
		IsPremium:   state.IsPremium,
		WindowStart: state.Date.Format(time.RFC3339),
	}
}
