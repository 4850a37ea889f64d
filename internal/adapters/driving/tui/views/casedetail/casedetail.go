// Package casedetail provides the case detail view for the TUI.
package casedetail

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driving"
)

const (
	labelWidth   = 12
	minWrapWidth = 20
)

// View shows every field of a single case result.
type View struct {
	styles  *styles.Styles
	actions driving.CaseActionService
	ctx     context.Context

	result       *domain.CaseResult
	scrollOffset int
	status       string
	width        int
	height       int
	ready        bool
}

// NewView creates a new case detail view. actions may be nil.
func NewView(s *styles.Styles, actions driving.CaseActionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		actions: actions,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for actions.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetResult sets the case to display.
func (v *View) SetResult(result domain.CaseResult) {
	v.result = &result
	v.scrollOffset = 0
	v.status = ""
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the case detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "c":
		v.runAction("Citation copied", func(r *domain.CaseResult) error {
			return v.actions.CopyCitation(v.ctx, r)
		})
	case "o":
		v.runAction("Opening source...", func(r *domain.CaseResult) error {
			return v.actions.OpenSource(v.ctx, r)
		})
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}
	}
	return v, nil
}

func (v *View) runAction(success string, action func(*domain.CaseResult) error) {
	switch {
	case v.result == nil:
		return
	case v.actions == nil:
		v.status = "Action not available"
	default:
		if err := action(v.result); err != nil {
			v.status = "Error: " + err.Error()
		} else {
			v.status = success
		}
	}
}

func (v *View) visibleLines() int {
	// title, separator, status, help, padding
	available := v.height - 7
	if available < 1 {
		available = 1
	}
	return available
}

func (v *View) maxScrollOffset() int {
	maxOffset := len(v.buildContent()) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// buildContent lays out the case as label/value lines followed by the
// wrapped summary.
func (v *View) buildContent() []string {
	r := v.result
	if r == nil {
		return nil
	}

	lines := []string{
		v.formatField("Citation", r.Citation),
		v.formatField("Court", r.Court),
		v.formatField("Date", r.Date),
	}
	if r.Judge != "" {
		lines = append(lines, v.formatField("Judge", r.Judge))
	}
	if r.Source != "" {
		lines = append(lines, v.formatField("Source", r.Source))
	}
	if r.ConfidenceScore != nil {
		lines = append(lines, v.formatField("Confidence", fmt.Sprintf("%d%%", *r.ConfidenceScore)))
	}
	if r.Suggested {
		lines = append(lines, v.formatField("Match", "suggested (partial match)"))
	}
	if len(r.Tags) > 0 {
		lines = append(lines, v.formatField("Tags", strings.Join(r.Tags, ", ")))
	}
	if r.SourceLink != "" && r.SourceLink != "#" {
		lines = append(lines, v.formatField("Link", r.SourceLink))
	}

	lines = append(lines, "", "Summary:")
	lines = append(lines, wrap(r.Summary, v.width-4)...)
	return lines
}

func (v *View) formatField(label, value string) string {
	return fmt.Sprintf("%-*s %s", labelWidth, label+":", value)
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	if width < minWrapWidth {
		width = minWrapWidth
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}

// View renders the case detail view.
func (v *View) View() string {
	var b strings.Builder

	if v.result == nil {
		b.WriteString(v.styles.Title.Render("Case Details"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("No case selected"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	b.WriteString(v.styles.Title.Render(v.result.Title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", minInt(v.width-4, 60)))
	b.WriteString("\n\n")

	lines := v.buildContent()
	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.renderLine(lines[i]))
		b.WriteString("\n")
	}

	if len(lines) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1, minInt(v.scrollOffset+visible, len(lines)), len(lines))))
		b.WriteString("\n")
	}

	if v.status != "" {
		b.WriteString("\n")
		if strings.HasPrefix(v.status, "Error") {
			b.WriteString(v.styles.Error.Render(v.status))
		} else {
			b.WriteString(v.styles.Success.Render(v.status))
		}
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderLine(line string) string {
	if line == "Summary:" {
		return v.styles.Subtitle.Render(line)
	}
	if label, value, ok := strings.Cut(line, ":"); ok && len(label) < labelWidth && !strings.Contains(label, " ") {
		if label == "Citation" {
			return v.styles.Subtitle.Render(label+":") + v.styles.Citation.Render(value)
		}
		return v.styles.Subtitle.Render(label+":") + v.styles.Normal.Render(value)
	}
	return v.styles.Normal.Render(line)
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [c] copy citation  [o] open source  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Result returns the displayed case.
func (v *View) Result() *domain.CaseResult {
	return v.result
}

// Status returns the last action status message.
func (v *View) Status() string {
	return v.status
}

// ScrollOffset returns the current scroll position.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
