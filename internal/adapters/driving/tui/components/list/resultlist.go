// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexai/internal/core/domain"
)

// linesPerResult is the rendered height of one case: title, citation, summary.
const linesPerResult = 3

// ResultList displays case results in a navigable list.
type ResultList struct {
	results  []domain.CaseResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No cases found. Try another query or source.")
	}

	lines := make([]string, 0, len(r.results)+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Cases (%d)", len(r.results))), "")

	visibleCount := (r.height - 4) / linesPerResult
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.results) {
		end = len(r.results)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	return strings.Join(lines, "\n")
}

func (r *ResultList) renderResult(index int, result *domain.CaseResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	maxTitleLen := r.width - 16
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	title := truncate(result.Title, maxTitleLen)

	badge := ""
	if result.ConfidenceScore != nil {
		badge = fmt.Sprintf("%d%%", *result.ConfidenceScore)
	}

	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitleLen, title, badge))
	} else {
		titleLine = r.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitleLen, title))
		if result.ConfidenceScore != nil {
			titleLine += r.styles.Confidence(*result.ConfidenceScore).Render(badge)
		}
	}

	meta := result.Citation
	if result.Court != "" {
		meta += " · " + result.Court
	}
	if result.Date != "" {
		meta += " · " + result.Date
	}
	metaLine := r.styles.Citation.Render("    " + truncate(meta, r.width-6))
	if result.Suggested {
		metaLine += " " + r.styles.Warning.Render("(suggested)")
	}

	maxPreviewLen := r.width - 6
	if maxPreviewLen < 20 {
		maxPreviewLen = 20
	}
	previewLine := r.styles.Muted.Render("    " + truncate(result.Summary, maxPreviewLen))

	return titleLine + "\n" + metaLine + "\n" + previewLine
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if limit < 4 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// SetResults replaces the list contents and resets the selection.
func (r *ResultList) SetResults(results []domain.CaseResult) {
	r.results = results
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.CaseResult {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.CaseResult {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
