// Package tui provides an interactive terminal user interface for lexai.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/lexai/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs quota-gated case searches.
	Search driving.SearchService

	// Quota reports the daily usage ledger.
	Quota driving.QuotaService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService

	// Subscription handles the premium upgrade flow. Optional.
	Subscription driving.SubscriptionService

	// Actions copies and opens case results. Optional.
	Actions driving.CaseActionService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	search driving.SearchService,
	quota driving.QuotaService,
	settings driving.SettingsService,
	subscription driving.SubscriptionService,
) *Ports {
	return &Ports{
		Search:       search,
		Quota:        quota,
		Settings:     settings,
		Subscription: subscription,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Quota == nil {
		return ErrMissingQuotaService
	}
	return nil
}
