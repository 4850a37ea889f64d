// Package upgrade provides the premium upgrade prompt for the TUI.
package upgrade

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driving"
)

// Polling while a payment is confirmed asynchronously.
const (
	DefaultPollInterval = 500 * time.Millisecond
	maxPolls            = 20
)

// ErrNoSubscriptionService indicates upgrades are not configured.
var ErrNoSubscriptionService = errors.New("subscription service is not available")

// Phase tracks where the upgrade flow is.
type Phase int

const (
	PhaseEmail Phase = iota
	PhasePending
	PhasePremium
)

// View is the premium upgrade prompt.
type View struct {
	styles       *styles.Styles
	subscription driving.SubscriptionService
	quota        driving.QuotaService
	ctx          context.Context

	email        textinput.Model
	phase        Phase
	request      *domain.PaymentRequest
	err          error
	polls        int
	pollInterval time.Duration

	width  int
	height int
	ready  bool
}

// NewView creates a new upgrade view. subscription may be nil.
func NewView(s *styles.Styles, subscription driving.SubscriptionService, quota driving.QuotaService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 40

	return &View{
		styles:       s,
		subscription: subscription,
		quota:        quota,
		ctx:          context.Background(),
		email:        email,
		pollInterval: DefaultPollInterval,
		width:        80,
		height:       24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetPollInterval overrides how often the quota is re-read while a payment is pending.
func (v *View) SetPollInterval(d time.Duration) {
	v.pollInterval = d
}

// Init focuses the email input.
func (v *View) Init() tea.Cmd {
	return v.email.Focus()
}

// Reset returns the view to the email prompt, or to the premium
// notice when premium is already active.
func (v *View) Reset() {
	v.email.Reset()
	v.request = nil
	v.err = nil
	v.polls = 0
	v.phase = PhaseEmail
	if v.quota != nil && v.quota.ReadState(v.ctx).IsPremium {
		v.phase = PhasePremium
	}
}

// Update handles messages for the upgrade view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.UpgradeStarted:
		if msg.Err != nil {
			v.phase = PhaseEmail
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.request = msg.Request
		v.phase = PhasePending
		v.polls = 0
		return v, v.poll()

	case messages.QuotaLoaded:
		if msg.State.IsPremium {
			v.phase = PhasePremium
			return v, nil
		}
		if v.phase == PhasePending && v.polls < maxPolls {
			return v, v.poll()
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	v.email, cmd = v.email.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	switch v.phase {
	case PhaseEmail:
		if msg.Type == tea.KeyEnter {
			return v, v.submit()
		}
		var cmd tea.Cmd
		v.email, cmd = v.email.Update(msg)
		return v, cmd

	case PhasePremium:
		if msg.String() == "d" && v.subscription != nil {
			state := v.subscription.Downgrade(v.ctx)
			v.Reset()
			return v, func() tea.Msg { return messages.QuotaLoaded{State: state} }
		}
	case PhasePending:
	}
	return v, nil
}

func (v *View) submit() tea.Cmd {
	email := strings.TrimSpace(v.email.Value())
	if email == "" {
		v.err = fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
		return nil
	}
	svc := v.subscription
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.UpgradeStarted{Err: ErrNoSubscriptionService}
		}
		req, err := svc.Upgrade(ctx, email)
		return messages.UpgradeStarted{Request: req, Err: err}
	}
}

// poll schedules a quota read after the poll interval.
func (v *View) poll() tea.Cmd {
	if v.quota == nil {
		return nil
	}
	v.polls++
	quota := v.quota
	ctx := v.ctx
	return tea.Tick(v.pollInterval, func(time.Time) tea.Msg {
		return messages.QuotaLoaded{State: quota.ReadState(ctx)}
	})
}

// View renders the upgrade view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Premium.Render("Precedence AI Premium"))
	b.WriteString("\n\n")

	switch v.phase {
	case PhasePremium:
		b.WriteString(v.styles.Success.Render("Premium is active. Enjoy unlimited searches."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[d] cancel premium  [esc] back"))
		return b.String()

	case PhasePending:
		if v.request != nil {
			b.WriteString(v.styles.Normal.Render(fmt.Sprintf("Payment of %s for %s initiated.",
				v.request.FormatAmount(), v.request.Email)))
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render("Reference: " + v.request.Reference))
			b.WriteString("\n\n")
		}
		b.WriteString(v.styles.Muted.Render("Waiting for payment confirmation..."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()

	case PhaseEmail:
	}

	b.WriteString(v.styles.Normal.Render(fmt.Sprintf(
		"Free accounts get %d searches per day. Premium removes the limit for %s per month.",
		domain.DailyLimit, domain.PaymentRequest{AmountCents: domain.PremiumAmountCents}.FormatAmount())))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Subtitle.Render("Email: "))
	b.WriteString(v.styles.InputField.Render(v.email.View()))
	b.WriteString("\n")
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] pay  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Phase returns the current phase of the flow.
func (v *View) Phase() Phase {
	return v.phase
}

// Request returns the initiated payment, if any.
func (v *View) Request() *domain.PaymentRequest {
	return v.request
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// SetEmail sets the email input value.
func (v *View) SetEmail(email string) {
	v.email.SetValue(email)
}
