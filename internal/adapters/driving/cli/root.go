// Package cli provides the lexai command line interface.
// It is a driving adapter over the core services, built on cobra.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexai/internal/core/ports/driving"
	"github.com/custodia-labs/lexai/internal/logger"
)

// version is set at build time via ldflags or by SetVersion.
var version = "dev"

// PaymentWaiter blocks until pending payment confirmations have run.
type PaymentWaiter interface {
	Wait()
}

// Services holds the driving ports used by the commands.
type Services struct {
	Search       driving.SearchService
	Quota        driving.QuotaService
	Settings     driving.SettingsService
	Subscription driving.SubscriptionService
	Actions      driving.CaseActionService
	Lookup       driving.CaseLookupService

	// Payments lets upgrade wait for the gateway callback. Optional.
	Payments PaymentWaiter

	// ConfigEvents signals config file changes to the TUI. Optional.
	ConfigEvents <-chan struct{}
}

var (
	searchService       driving.SearchService
	quotaService        driving.QuotaService
	settingsService     driving.SettingsService
	subscriptionService driving.SubscriptionService
	actionService       driving.CaseActionService
	lookupService       driving.CaseLookupService
	paymentWaiter       PaymentWaiter
	configEvents        <-chan struct{}
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lexai",
	Short: "South African case law search",
	Long: `lexai searches South African case law from three sources:

  static  - a built-in set of landmark judgments (works offline)
  scrape  - the SAFLII case law database
  ai      - Precedence AI, an LLM-backed legal research assistant

Free accounts get a small number of searches per day. Run 'lexai upgrade'
for unlimited searches. Run 'lexai tui' for the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices injects the driving ports.
func SetServices(s Services) {
	searchService = s.Search
	quotaService = s.Quota
	settingsService = s.Settings
	subscriptionService = s.Subscription
	actionService = s.Actions
	lookupService = s.Lookup
	paymentWaiter = s.Payments
	configEvents = s.ConfigEvents
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which commands use for
// cancellation.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
