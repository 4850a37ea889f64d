package mcp

import (
	"github.com/custodia-labs/lexai/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs quota-gated searches.
	Search driving.SearchService

	// Quota reports the daily usage ledger.
	Quota driving.QuotaService

	// Lookup fetches cases by id. Optional: without it get_case is not offered.
	Lookup driving.CaseLookupService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Quota == nil {
		return ErrMissingQuotaService
	}
	return nil
}
