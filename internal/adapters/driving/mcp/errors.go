// Package mcp provides an MCP (Model Context Protocol) server adapter for lexai.
// It lets AI assistants search South African case law through the same
// quota-gated orchestrator as the CLI.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingQuotaService is returned when the quota service is not provided.
var ErrMissingQuotaService = errors.New("mcp: quota service is required")
