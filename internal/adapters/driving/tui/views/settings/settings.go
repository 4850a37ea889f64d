// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driving"
)

// ErrNoSettingsService indicates settings cannot be loaded or saved.
var ErrNoSettingsService = errors.New("settings service not available")

// Item identifies a settings row.
type Item int

const (
	ItemDefaultSource Item = iota
	ItemTestMode
	ItemMockOnRateLimit
	ItemAPIKey
	itemCount
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
)

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService
	ctx             context.Context

	settings  *domain.AppSettings
	maskedKey string
	err       error
	notice    string

	selected    int
	editingKey  bool
	apiKeyInput textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	apiKeyInput := textinput.New()
	apiKeyInput.Placeholder = "sk-..."
	apiKeyInput.EchoMode = textinput.EchoPassword
	apiKeyInput.CharLimit = 256

	return &View{
		styles:          s,
		settingsService: settingsService,
		ctx:             context.Background(),
		apiKeyInput:     apiKeyInput,
	}
}

// WithContext sets the context used for credential calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// Reset returns the view to the first row.
func (v *View) Reset() {
	v.selected = 0
	v.editingKey = false
	v.apiKeyInput.Reset()
	v.apiKeyInput.Blur()
	v.err = nil
	v.notice = ""
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := svc.Get()
		if err != nil {
			return messages.SettingsLoaded{Err: err}
		}
		masked, err := svc.MaskedAPIKey(ctx)
		return messages.SettingsLoaded{Settings: settings, MaskedKey: masked, Err: err}
	}
}

// save runs a settings mutation and reports the result.
func (v *View) save(notice string, fn func(driving.SettingsService) error) tea.Cmd {
	svc := v.settingsService
	v.notice = notice
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Err: fn(svc)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Settings != nil {
			v.settings = msg.Settings
			v.maskedKey = msg.MaskedKey
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.notice = ""
			return v, nil
		}
		v.err = nil
		return v, v.loadSettings()

	case messages.ConfigChanged:
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.editingKey {
		return v.handleKeyInput(msg)
	}

	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < int(itemCount)-1 {
			v.selected++
		}
	case "x":
		if Item(v.selected) == ItemAPIKey {
			return v, v.save("API key removed", func(svc driving.SettingsService) error {
				return svc.ClearAPIKey(v.ctx)
			})
		}
	case keyEnter, " ":
		return v, v.activate(Item(v.selected))
	}
	return v, nil
}

func (v *View) handleKeyInput(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.editingKey = false
		v.apiKeyInput.Reset()
		v.apiKeyInput.Blur()
		return v, nil
	case keyEnter:
		key := strings.TrimSpace(v.apiKeyInput.Value())
		v.editingKey = false
		v.apiKeyInput.Reset()
		v.apiKeyInput.Blur()
		if key == "" {
			return v, nil
		}
		return v, v.save("API key saved", func(svc driving.SettingsService) error {
			return svc.SetAPIKey(v.ctx, key)
		})
	}
	var cmd tea.Cmd
	v.apiKeyInput, cmd = v.apiKeyInput.Update(msg)
	return v, cmd
}

func (v *View) activate(item Item) tea.Cmd {
	if v.settings == nil && item != ItemAPIKey {
		return nil
	}

	switch item {
	case ItemDefaultSource:
		next := v.settings.Search.DefaultSource.Next()
		return v.save("Default source: "+next.Description(), func(svc driving.SettingsService) error {
			return svc.SetDefaultSource(next)
		})
	case ItemTestMode:
		enabled := !v.settings.AI.TestMode
		return v.save("Test mode "+onOff(enabled), func(svc driving.SettingsService) error {
			return svc.SetTestMode(enabled)
		})
	case ItemMockOnRateLimit:
		enabled := !v.settings.AI.MockOnRateLimit
		return v.save("Rate-limit fallback "+onOff(enabled), func(svc driving.SettingsService) error {
			return svc.SetMockOnRateLimit(enabled)
		})
	case ItemAPIKey:
		v.editingKey = true
		return v.apiKeyInput.Focus()
	case itemCount:
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.settings == nil {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		} else {
			b.WriteString(v.styles.Muted.Render("Loading settings..."))
		}
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	keyValue := "not set"
	if v.maskedKey != "" {
		keyValue = v.maskedKey
	}
	rows := []struct{ label, value string }{
		{"Default source", v.settings.Search.DefaultSource.Description()},
		{"AI test mode", onOff(v.settings.AI.TestMode)},
		{"Fallback on rate limit", onOff(v.settings.AI.MockOnRateLimit)},
		{"OpenAI API key", keyValue},
	}

	for i, row := range rows {
		line := fmt.Sprintf("%-24s %s", row.label, row.value)
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(line))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Model: %s   Endpoint: %s",
		v.settings.AI.Model, v.settings.AI.BaseURL)))
	b.WriteString("\n")

	if v.editingKey {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("New API key: "))
		b.WriteString(v.styles.InputField.Render(v.apiKeyInput.View()))
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	} else if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.editingKey {
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] change  [x] remove key  [esc] back"))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Selected returns the selected row.
func (v *View) Selected() Item {
	return Item(v.selected)
}

// EditingKey reports whether the API key input is active.
func (v *View) EditingKey() bool {
	return v.editingKey
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
