// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexai/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateError     State = "error"
	StateBlocked   State = "blocked"
	StateHelp      State = "help"
	StateResults   State = "results"
)

// Bar displays search state, quota and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       State
	message     string
	resultCount int
	source      domain.SourceKind
	quota       *domain.QuotaState
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	if q := s.renderQuota(); q != "" {
		left += s.styles.Muted.Render("  ·  ") + q
	}
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateSearching:
		if s.source != "" {
			return s.styles.Muted.Render(fmt.Sprintf("Searching %s...", s.source.Description()))
		}
		return s.styles.Muted.Render("Searching...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateBlocked:
		return s.styles.Premium.Render("Daily limit reached")
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateReady, StateResults:
		if s.message != "" {
			return s.styles.Normal.Render(s.message)
		}
		if s.resultCount > 0 {
			return s.styles.Normal.Render(fmt.Sprintf("%d cases", s.resultCount))
		}
		return s.styles.Muted.Render("Ready")
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderQuota() string {
	if s.quota == nil {
		return ""
	}
	if s.quota.IsPremium {
		return s.styles.Premium.Render("Premium")
	}
	text := fmt.Sprintf("%d/%d searches left", s.quota.Remaining(), domain.DailyLimit)
	if s.quota.Remaining() == 0 {
		return s.styles.Warning.Render(text)
	}
	return s.styles.Muted.Render(text)
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch {
	case s.state == StateBlocked:
		bindings = s.keymap.BlockedHelp()
	case s.state == StateResults && s.resultCount > 0:
		bindings = s.keymap.ResultsHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetResultCount sets the result count.
func (s *Bar) SetResultCount(count int) {
	s.resultCount = count
}

// ResultCount returns the current result count.
func (s *Bar) ResultCount() int {
	return s.resultCount
}

// SetSource sets the source shown while searching.
func (s *Bar) SetSource(kind domain.SourceKind) {
	s.source = kind
}

// SetQuota sets the quota shown on the bar.
func (s *Bar) SetQuota(state domain.QuotaState) {
	s.quota = &state
}

// Quota returns the displayed quota, or nil if none has been set.
func (s *Bar) Quota() *domain.QuotaState {
	return s.quota
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the search-related state. The quota display is kept.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.resultCount = 0
}
