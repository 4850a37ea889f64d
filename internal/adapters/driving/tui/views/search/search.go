// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driving"
)

// Field indexes within the input row.
const (
	fieldQuery = iota
	fieldCourt
	fieldYear
	fieldTopic
	fieldCount
)

// RetryNotice is shown for every failure the user can simply retry.
const RetryNotice = "Something went wrong while searching. Please try again."

// View is the search view: query and filter inputs, source selector,
// results list and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	fields    [fieldCount]*input.Field
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	source     domain.SourceKind
	seq        uint64
	loading    bool
	blocked    bool
	err        error
	notice     string
	focusInput bool // true = typing in a field, false = navigating results
	focused    int

	width  int
	height int
	ready  bool
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:        s,
		keymap:        km,
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		source:        domain.DefaultSource,
		focusInput:    true,
		width:         80,
		height:        24,
	}
	v.fields[fieldQuery] = input.NewSearchInput(s)
	v.fields[fieldCourt] = input.NewField(s, "Court: ", "any court", 64)
	v.fields[fieldYear] = input.NewField(s, "Year: ", "any", 4)
	v.fields[fieldTopic] = input.NewField(s, "Topic: ", "any topic", 64)
	return v
}

// WithContext sets the context used for searches.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.fields[fieldQuery].Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		return v, v.handleSearchCompleted(msg)

	case messages.QuotaLoaded:
		v.statusbar.SetQuota(msg.State)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.fields[v.focused], cmd = v.fields[v.focused].Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if keymap.Matches(msg.String(), v.keymap.NextSource) {
		v.CycleSource()
		return v, nil
	}

	if v.focusInput {
		return v.handleInputKey(msg)
	}
	return v.handleResultsKey(msg)
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		return v, v.Submit()
	case keymap.Matches(msg.String(), v.keymap.NextField):
		v.focusField((v.focused + 1) % fieldCount)
		return v, nil
	}

	var cmd tea.Cmd
	v.fields[v.focused], cmd = v.fields[v.focused].Update(msg)
	return v, cmd
}

func (v *View) handleResultsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Upgrade):
		return v, changeView(messages.ViewUpgrade)
	case keymap.Matches(keyStr, v.keymap.NewSearch):
		v.focusInput = true
		v.focusField(fieldQuery)
		return v, nil
	case msg.Type == tea.KeyEnter:
		if v.blocked {
			return v, changeView(messages.ViewUpgrade)
		}
		if result := v.list.SelectedResult(); result != nil {
			selected := *result
			return v, func() tea.Msg {
				return messages.ResultSelected{Result: selected}
			}
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// Submit starts a search for the current inputs. Any earlier in-flight
// search is superseded. An empty query clears the results and returns nil.
func (v *View) Submit() tea.Cmd {
	req := v.Request()
	if req.Query.IsEmpty() {
		v.seq++
		v.loading = false
		v.blocked = false
		v.err = nil
		v.notice = ""
		v.list.SetResults(nil)
		v.statusbar.Clear()
		v.statusbar.SetState(status.StateReady)
		return nil
	}

	v.seq++
	v.loading = true
	v.blocked = false
	v.err = nil
	v.notice = ""
	v.focusInput = false
	v.blurAll()
	v.statusbar.Clear()
	v.statusbar.SetSource(req.Source)
	v.statusbar.SetState(status.StateSearching)

	return v.performSearch(v.seq, req)
}

// Request builds the search request from the current inputs.
func (v *View) Request() domain.SearchRequest {
	return domain.SearchRequest{
		Query: domain.SearchQuery{
			Query: strings.TrimSpace(v.fields[fieldQuery].Value()),
			Court: strings.TrimSpace(v.fields[fieldCourt].Value()),
			Year:  strings.TrimSpace(v.fields[fieldYear].Value()),
			Topic: strings.TrimSpace(v.fields[fieldTopic].Value()),
		},
		Source: v.source,
	}
}

func (v *View) performSearch(seq uint64, req domain.SearchRequest) tea.Cmd {
	svc := v.searchService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.SearchCompleted{Seq: seq, Err: ErrNoSearchService}
		}
		outcome, err := svc.Search(ctx, req)
		return messages.SearchCompleted{Seq: seq, Outcome: outcome, Err: err}
	}
}

// handleSearchCompleted applies a completion unless a newer search has
// been submitted since.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) tea.Cmd {
	if msg.Seq != v.seq {
		return nil
	}
	v.loading = false

	if msg.Err == nil && msg.Outcome == nil {
		msg.Err = ErrEmptyOutcome
	}
	if msg.Err != nil {
		v.setError(msg.Err)
		return nil
	}

	outcome := msg.Outcome
	v.statusbar.SetQuota(outcome.Quota)
	quotaCmd := func() tea.Msg { return messages.QuotaLoaded{State: outcome.Quota} }

	switch {
	case outcome.Blocked:
		v.blocked = true
		v.list.SetResults(nil)
		v.statusbar.SetState(status.StateBlocked)
		return tea.Batch(quotaCmd, changeView(messages.ViewUpgrade))
	case outcome.Err != nil:
		v.setError(outcome.Err)
		return quotaCmd
	}

	v.err = nil
	v.list.SetResults(outcome.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(outcome.Results))
	return quotaCmd
}

func (v *View) setError(err error) {
	v.loading = false
	v.err = err
	v.notice = Notice(err)
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(domain.ErrorCode(err))
}

// Notice returns the user-facing message for a failed search.
func Notice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrMissingCredential):
		return "The AI source needs an OpenAI API key. Add one with `lexai settings apikey` or enable test mode."
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedSource):
		return err.Error()
	case domain.IsRetryable(err):
		return RetryNotice
	default:
		return err.Error()
	}
}

// CycleSource switches to the next search source.
func (v *View) CycleSource() {
	v.source = v.source.Next()
}

// SetSource selects the search source.
func (v *View) SetSource(kind domain.SourceKind) {
	if kind.IsValid() {
		v.source = kind
	}
}

// Source returns the selected search source.
func (v *View) Source() domain.SourceKind {
	return v.source
}

// SetQuota updates the status bar quota display.
func (v *View) SetQuota(state domain.QuotaState) {
	v.statusbar.SetQuota(state)
}

// SetStatusMessage shows a transient message on the status bar.
func (v *View) SetStatusMessage(msg string) {
	v.statusbar.SetMessage(msg)
}

func (v *View) focusField(idx int) {
	v.blurAll()
	v.focused = idx
	v.fields[idx].Focus()
}

func (v *View) blurAll() {
	for _, f := range v.fields {
		f.Blur()
	}
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections,
		v.styles.Title.Render("Precedence AI")+"  "+v.styles.Muted.Render("South African case law"),
		"",
		v.fields[fieldQuery].View(),
		lipgloss.JoinHorizontal(lipgloss.Top,
			v.fields[fieldCourt].View(), " ", v.fields[fieldYear].View(), " ", v.fields[fieldTopic].View()),
		v.renderSource(),
		"",
	)

	switch {
	case v.loading:
		sections = append(sections, v.styles.Muted.Render("Searching..."))
	case v.blocked:
		sections = append(sections,
			v.styles.Premium.Render(fmt.Sprintf("You have used all %d free searches for today.", domain.DailyLimit)),
			v.styles.Muted.Render("Upgrade to Premium for unlimited searches. Press u to upgrade."))
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render(v.notice))
	default:
		sections = append(sections, v.list.View())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderSource() string {
	parts := make([]string, 0, len(domain.AllSourceKinds()))
	for _, kind := range domain.AllSourceKinds() {
		label := kind.Description()
		if kind == v.source {
			parts = append(parts, v.styles.Selected.Render(" "+label+" "))
		} else {
			parts = append(parts, v.styles.Muted.Render(" "+label+" "))
		}
	}
	return v.styles.Muted.Render("Source: ") + strings.Join(parts, " ")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.fields[fieldQuery].SetWidth(width)
	filterWidth := width / 3
	for _, f := range v.fields[fieldCourt:] {
		f.SetWidth(filterWidth)
	}
	v.list.SetDimensions(width, height-12)
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.fields[fieldQuery].Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.fields[fieldQuery].SetValue(query)
}

// SetFilters sets the court, year and topic filters.
func (v *View) SetFilters(court, year, topic string) {
	v.fields[fieldCourt].SetValue(court)
	v.fields[fieldYear].SetValue(year)
	v.fields[fieldTopic].SetValue(topic)
}

// Results returns the current case results.
func (v *View) Results() []domain.CaseResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.CaseResult {
	return v.list.SelectedResult()
}

// Seq returns the sequence number of the latest submitted search.
func (v *View) Seq() uint64 {
	return v.seq
}

// Loading reports whether the latest search is still in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Blocked reports whether the latest search hit the daily limit.
func (v *View) Blocked() bool {
	return v.blocked
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Notice returns the message shown for the current error.
func (v *View) Notice() string {
	return v.notice
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.notice = ""
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Reset returns the view to input mode with empty fields and results.
func (v *View) Reset() {
	v.focusInput = true
	for _, f := range v.fields {
		f.SetValue("")
	}
	v.focusField(fieldQuery)
	v.list.SetResults(nil)
	v.loading = false
	v.blocked = false
	v.ClearError()
}

// InputFocused returns whether an input field has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// FocusedField returns the index of the focused input field.
func (v *View) FocusedField() int {
	return v.focused
}
