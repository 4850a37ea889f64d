package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

var (
	apiKeyClear  bool
	apiKeyVerify bool
)

var errSettingsNotConfigured = errors.New("settings service not configured")

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the default source, Precedence AI options and
the OpenAI API key.

Use subcommands to change individual settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsSourceCmd = &cobra.Command{
	Use:   "source [static|scrape|ai]",
	Short: "Set the default search source",
	Long: `Set the source used when a search does not name one.

Available sources:
  static  - built-in landmark judgments (offline)
  scrape  - SAFLII case law database
  ai      - Precedence AI (needs an OpenAI API key or test mode)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsSource,
}

var settingsAPIKeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Set, verify or clear the OpenAI API key",
	Long: `Prompts for an OpenAI API key, checks it against the provider and
stores it locally. The key is never echoed or printed in full.`,
	Args: cobra.NoArgs,
	RunE: runSettingsAPIKey,
}

var settingsTestModeCmd = &cobra.Command{
	Use:   "testmode [on|off]",
	Short: "Use generated AI results when no API key is stored",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsTestMode,
}

var settingsFallbackCmd = &cobra.Command{
	Use:   "fallback [on|off]",
	Short: "Use generated AI results when the provider rate limits",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsFallback,
}

func init() {
	settingsAPIKeyCmd.Flags().BoolVar(&apiKeyClear, "clear", false, "remove the stored key")
	settingsAPIKeyCmd.Flags().BoolVar(&apiKeyVerify, "verify", false, "check the stored key")
	settingsAPIKeyCmd.MarkFlagsMutuallyExclusive("clear", "verify")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsSourceCmd)
	settingsCmd.AddCommand(settingsAPIKeyCmd)
	settingsCmd.AddCommand(settingsTestModeCmd)
	settingsCmd.AddCommand(settingsFallbackCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Default source: %s (%s)\n", settings.Search.DefaultSource, settings.Search.DefaultSource.Description())
	cmd.Println()

	cmd.Println("[Precedence AI]")
	cmd.Printf("  Provider: %s\n", settings.AI.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.AI.Model)
	cmd.Printf("  Base URL: %s\n", settings.AI.BaseURL)
	masked, err := settingsService.MaskedAPIKey(cmd.Context())
	switch {
	case err != nil:
		cmd.Printf("  API Key: (unavailable: %v)\n", err)
	case masked == "":
		cmd.Println("  API Key: (not set)")
	default:
		cmd.Printf("  API Key: %s\n", masked)
	}
	cmd.Printf("  Test mode: %s\n", onOff(settings.AI.TestMode))
	cmd.Printf("  Rate-limit fallback: %s\n", onOff(settings.AI.MockOnRateLimit))
	cmd.Println()

	cmd.Println("[SAFLII]")
	cmd.Printf("  Base URL: %s\n", settings.Scrape.BaseURL)
	cmd.Printf("  Requests per second: %s\n", strconv.FormatFloat(settings.Scrape.RatePerSecond, 'f', -1, 64))
	cmd.Println()

	if masked == "" && !settings.AI.TestMode {
		cmd.Println("Note: Precedence AI searches need an API key or test mode.")
		cmd.Println("Run 'lexai settings apikey' or 'lexai settings testmode on'.")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("lexai Settings Wizard")
	cmd.Println("=====================")
	cmd.Println()

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	// Step 1: default source
	kind, err := promptSource(cmd, reader, current.Search.DefaultSource)
	if err != nil {
		return err
	}
	if err := settingsService.SetDefaultSource(kind); err != nil {
		return fmt.Errorf("failed to set default source: %w", err)
	}
	cmd.Println()

	// Step 2: API key
	hasKey, err := settingsService.HasAPIKey(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}
	prompt := "Set an OpenAI API key for Precedence AI? [y/N]: "
	if hasKey {
		prompt = "Replace the stored OpenAI API key? [y/N]: "
	}
	cmd.Print(prompt)
	if isYes(readLine(reader)) {
		cmd.Print("API key: ")
		key := readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
		if err := settingsService.SetAPIKey(cmd.Context(), key); err != nil {
			return fmt.Errorf("failed to set API key: %w", err)
		}
		hasKey = true
		cmd.Println("API key verified and saved.")
	}
	cmd.Println()

	// Step 3: test mode is only offered without a key
	if !hasKey {
		cmd.Print("Enable test mode (generated AI results without a key)? [y/N]: ")
		if err := settingsService.SetTestMode(isYes(readLine(reader))); err != nil {
			return fmt.Errorf("failed to set test mode: %w", err)
		}
		cmd.Println()
	}

	cmd.Println("Settings saved.")
	return nil
}

func runSettingsSource(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	var kind domain.SourceKind
	if len(args) == 1 {
		parsed, err := domain.ParseSourceKind(args[0])
		if err != nil {
			return err
		}
		kind = parsed
	} else {
		current := domain.DefaultSource
		if s, err := settingsService.Get(); err == nil && s != nil {
			current = s.Search.DefaultSource
		}
		selected, err := promptSource(cmd, bufio.NewReader(cmd.InOrStdin()), current)
		if err != nil {
			return err
		}
		kind = selected
	}

	if err := settingsService.SetDefaultSource(kind); err != nil {
		return fmt.Errorf("failed to set default source: %w", err)
	}
	cmd.Printf("Default source set to: %s\n", kind.Description())

	if kind == domain.SourceAI {
		hasKey, _ := settingsService.HasAPIKey(cmd.Context()) //nolint:errcheck // Best-effort check
		s, _ := settingsService.Get()                          //nolint:errcheck // Best-effort check
		if !hasKey && (s == nil || !s.AI.TestMode) {
			cmd.Println("\nNote: Precedence AI needs an API key.")
			cmd.Println("Run 'lexai settings apikey' to configure.")
		}
	}
	return nil
}

func runSettingsAPIKey(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	ctx := cmd.Context()

	switch {
	case apiKeyClear:
		if err := settingsService.ClearAPIKey(ctx); err != nil {
			return fmt.Errorf("failed to clear API key: %w", err)
		}
		cmd.Println("API key removed.")
		return nil

	case apiKeyVerify:
		if err := settingsService.ValidateAPIKey(ctx); err != nil {
			return fmt.Errorf("API key check failed [%s]: %w", domain.ErrorCode(err), err)
		}
		masked, _ := settingsService.MaskedAPIKey(ctx) //nolint:errcheck // display only
		cmd.Printf("API key %s is valid.\n", masked)
		return nil
	}

	cmd.Print("OpenAI API key: ")
	in := cmd.InOrStdin()
	key := readPassword(in, bufio.NewReader(in))
	cmd.Println()
	if key == "" {
		return fmt.Errorf("no key entered: %w", domain.ErrInvalidInput)
	}

	if err := settingsService.SetAPIKey(ctx, key); err != nil {
		return fmt.Errorf("failed to set API key: %w", err)
	}
	cmd.Printf("API key %s verified and saved.\n", maskAPIKey(key))
	return nil
}

func runSettingsTestMode(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	enabled, err := parseToggle(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.SetTestMode(enabled); err != nil {
		return fmt.Errorf("failed to set test mode: %w", err)
	}
	cmd.Printf("Test mode: %s\n", onOff(enabled))
	return nil
}

func runSettingsFallback(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	enabled, err := parseToggle(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.SetMockOnRateLimit(enabled); err != nil {
		return fmt.Errorf("failed to set rate-limit fallback: %w", err)
	}
	cmd.Printf("Rate-limit fallback: %s\n", onOff(enabled))
	return nil
}

func promptSource(cmd *cobra.Command, reader *bufio.Reader, current domain.SourceKind) (domain.SourceKind, error) {
	cmd.Println("Select Default Source")
	cmd.Println("---------------------")
	kinds := domain.AllSourceKinds()
	defaultIdx := 1
	for i, kind := range kinds {
		marker := ""
		if kind == current {
			marker = " (current)"
			defaultIdx = i + 1
		}
		cmd.Printf("  %d. %s%s\n", i+1, kind.Description(), marker)
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultIdx)
	input := readLine(reader)
	if input == "" {
		return kinds[defaultIdx-1], nil
	}
	idx := parseChoice(input, len(kinds), 0)
	if idx == 0 {
		return "", errors.New("invalid selection")
	}
	return kinds[idx-1], nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func parseToggle(input string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: expected on or off, got %q", domain.ErrInvalidInput, input)
	}
}

func isYes(input string) bool {
	switch strings.ToLower(input) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// readPassword reads a secret without echo when stdin is a terminal and
// falls back to a plain line read otherwise.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	return domain.MaskAPIKey(key)
}
