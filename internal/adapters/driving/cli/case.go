package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

var caseJSON bool

var caseCmd = &cobra.Command{
	Use:   "case <id>",
	Short: "Show one built-in case by id",
	Long: `Shows the full record of a built-in landmark judgment. The id is the
one listed by 'lexai search --json' for static results. A found case
counts against the daily free quota.`,
	Example: `  lexai case 1
  lexai case 3 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runCase,
}

func init() {
	caseCmd.Flags().BoolVar(&caseJSON, "json", false, "output the case as JSON")
	rootCmd.AddCommand(caseCmd)
}

// caseOutput is the JSON form of a lookup outcome.
type caseOutput struct {
	Case      *domain.CaseResult `json:"case,omitempty"`
	Blocked   bool               `json:"blocked"`
	Remaining int                `json:"remaining"`
	IsPremium bool               `json:"isPremium"`
	Error     *errorOutput       `json:"error,omitempty"`
}

func runCase(cmd *cobra.Command, args []string) error {
	if lookupService == nil {
		return errors.New("case lookup not configured")
	}

	outcome, err := lookupService.Lookup(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if caseJSON {
		out := caseOutput{
			Case:      outcome.Case,
			Blocked:   outcome.Blocked,
			Remaining: outcome.Quota.Remaining(),
			IsPremium: outcome.Quota.IsPremium,
		}
		if outcome.Err != nil {
			out.Error = &errorOutput{Code: domain.ErrorCode(outcome.Err), Message: outcome.Err.Error()}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encode case: %w", err)
		}
		cmd.Println(string(data))
		return lookupError(outcome)
	}

	switch {
	case outcome.Blocked:
		outputBlocked(cmd, outcome.Quota)
	case outcome.Err != nil:
		cmd.PrintErrf("No case with id %q.\n", strings.TrimSpace(args[0]))
	default:
		outputCase(cmd, outcome.Case)
		outputQuotaLine(cmd, outcome.Quota)
	}
	return lookupError(outcome)
}

func lookupError(outcome *domain.LookupOutcome) error {
	if outcome.Blocked {
		return domain.ErrQuotaBlocked
	}
	if outcome.Err != nil {
		return fmt.Errorf("lookup failed [%s]: %w", domain.ErrorCode(outcome.Err), outcome.Err)
	}
	return nil
}

func outputCase(cmd *cobra.Command, c *domain.CaseResult) {
	cmd.Println(c.Title)
	cmd.Printf("%s\n\n", joinNonEmpty(" · ", c.Citation, c.Court, c.Date))
	if c.Summary != "" {
		cmd.Printf("%s\n\n", c.Summary)
	}
	if len(c.Tags) > 0 {
		cmd.Printf("Tags: %s\n", strings.Join(c.Tags, ", "))
	}
	if c.SourceLink != "" {
		cmd.Printf("Source: %s\n", c.SourceLink)
	}
	cmd.Println()
}
