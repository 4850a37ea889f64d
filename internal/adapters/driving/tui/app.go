package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/views/casedetail"
	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/views/upgrade"
	"github.com/custodia-labs/lexai/internal/core/domain"
)

// defaultSourceLoaded carries the configured default source to the search view.
type defaultSourceLoaded struct {
	Source domain.SourceKind
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView     *menu.View
	searchView   *search.View
	caseView     *casedetail.View
	upgradeView  *upgrade.View
	settingsView *settings.View

	// configEvents delivers config file changes, nil when not watching.
	configEvents <-chan struct{}

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		searchView:   search.NewView(s, km, ports.Search),
		caseView:     casedetail.NewView(s, ports.Actions),
		upgradeView:  upgrade.NewView(s, ports.Subscription, ports.Quota),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.caseView.WithContext(ctx)
	a.upgradeView.WithContext(ctx)
	a.settingsView.WithContext(ctx)
	return a
}

// WithConfigEvents subscribes the app to config file change notifications.
func (a *App) WithConfigEvents(events <-chan struct{}) *App {
	a.configEvents = events
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("lexai - Precedence AI"),
		a.loadQuota(),
		a.loadDefaultSource(),
		a.waitForConfig(),
	)
}

func (a *App) loadQuota() tea.Cmd {
	quota := a.ports.Quota
	ctx := a.ctx
	return func() tea.Msg {
		return messages.QuotaLoaded{State: quota.ReadState(ctx)}
	}
}

func (a *App) loadDefaultSource() tea.Cmd {
	svc := a.ports.Settings
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		s, err := svc.Get()
		if err != nil || s == nil {
			return nil
		}
		return defaultSourceLoaded{Source: s.Search.DefaultSource}
	}
}

func (a *App) waitForConfig() tea.Cmd {
	events := a.configEvents
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return messages.ConfigChanged{}
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.SearchCompleted:
		// Always delivered to the search view; it drops stale sequences.
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.ResultSelected:
		a.caseView.SetResult(msg.Result)
		a.currentView = messages.ViewCaseDetail
		return a, nil

	case messages.ViewChanged:
		return a, a.changeView(msg.View)

	case messages.QuotaLoaded:
		a.menuView.Update(msg)
		a.searchView.Update(msg)
		a.upgradeView, cmd = a.upgradeView.Update(msg)
		return a, cmd

	case messages.UpgradeStarted:
		a.upgradeView, cmd = a.upgradeView.Update(msg)
		return a, cmd

	case defaultSourceLoaded:
		a.searchView.SetSource(msg.Source)
		return a, nil

	case messages.SettingsLoaded:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, tea.Batch(cmd, a.loadDefaultSource())

	case messages.ConfigChanged:
		a.searchView.SetStatusMessage("Configuration reloaded")
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, tea.Batch(cmd, a.loadDefaultSource(), a.loadQuota(), a.waitForConfig())

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewSearch {
			a.searchView, cmd = a.searchView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.updateCurrent(msg)
}

// updateCurrent forwards a message to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
	case messages.ViewCaseDetail:
		a.caseView, cmd = a.caseView.Update(msg)
	case messages.ViewUpgrade:
		a.upgradeView, cmd = a.upgradeView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// changeView switches the active view and runs its initialisation.
func (a *App) changeView(view messages.ViewType) tea.Cmd {
	previous := a.currentView
	a.currentView = view

	switch view {
	case messages.ViewSearch:
		// Returning from a case keeps the results.
		if previous != messages.ViewCaseDetail {
			a.searchView.Reset()
		}
		return a.searchView.Init()
	case messages.ViewUpgrade:
		a.upgradeView.Reset()
		return a.upgradeView.Init()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewMenu:
		return a.loadQuota()
	case messages.ViewCaseDetail, messages.ViewHelp:
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewCaseDetail:
		return a.caseView.View()
	case messages.ViewUpgrade:
		return a.upgradeView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc           Back
  ctrl+c        Quit

Search:
  (type)        Enter search query
  shift+tab     Move between query, court, year and topic
  tab           Cycle source (sample cases, SAFLII, Precedence AI)
  enter         Submit search

Results:
  j/k, ↑/↓      Navigate results
  enter         Open case
  /             New search
  u             Upgrade to Premium

Case:
  c             Copy citation
  o             Open source link

` + fmt.Sprintf("Free accounts get %d searches per day.", domain.DailyLimit) + `

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the current search results.
func (a *App) Results() []domain.CaseResult {
	return a.searchView.Results()
}

// SelectedIndex returns the currently selected result index.
func (a *App) SelectedIndex() int {
	return a.searchView.SelectedIndex()
}

// SearchView exposes the search view for inspection.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.caseView.SetDimensions(width, height)
	a.upgradeView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
