// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/lexai/internal/core/domain"
)

// SearchRequested is a command to perform a search.
type SearchRequested struct {
	Seq     uint64
	Request domain.SearchRequest
}

// SearchCompleted carries a search outcome back to the model.
// Seq identifies the request; completions for superseded requests are dropped.
type SearchCompleted struct {
	Seq     uint64
	Outcome *domain.SearchOutcome
	Err     error
}

// ResultSelected is sent when a case result is opened.
type ResultSelected struct {
	Result domain.CaseResult
}

// SourceChanged is sent when the search view cycles its source.
type SourceChanged struct {
	Source domain.SourceKind
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewCaseDetail shows a single case result.
	ViewCaseDetail
	// ViewUpgrade is the premium upgrade prompt.
	ViewUpgrade
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewCaseDetail:
		return "case_detail"
	case ViewUpgrade:
		return "upgrade"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// QuotaLoaded carries the current usage ledger.
type QuotaLoaded struct {
	State domain.QuotaState
}

// UpgradeStarted signals that a premium payment was initiated.
type UpgradeStarted struct {
	Request *domain.PaymentRequest
	Err     error
}

// ConfigChanged signals that the config file changed on disk.
type ConfigChanged struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	// MaskedKey is the stored AI key for display, empty when none is stored.
	MaskedKey string
	Err       error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
