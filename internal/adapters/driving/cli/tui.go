package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexai/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for lexai.

The TUI provides a visual interface for searching case law, reading case
details, managing settings and upgrading to Premium.

Controls:
  Tab       - Cycle source
  Shift+Tab - Move between query and filters
  Enter     - Search / Open case
  ↑/k, ↓/j  - Navigate results
  c, o      - Copy citation, open source link
  Esc       - Back
  Ctrl+C    - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds the TUI ports from the injected services.
func tuiPorts() *tui.Ports {
	ports := tui.NewPorts(searchService, quotaService, settingsService, subscriptionService)
	ports.Actions = actionService
	return ports
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())
	if configEvents != nil {
		app.WithConfigEvents(configEvents)
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
