package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

var quotaJSON bool

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Show today's search usage",
	Long: `Shows how many searches have been used today and how many remain.
The count resets at the start of each calendar day.`,
	Args: cobra.NoArgs,
	RunE: runQuota,
}

func init() {
	quotaCmd.Flags().BoolVar(&quotaJSON, "json", false, "output usage as JSON")
	rootCmd.AddCommand(quotaCmd)
}

// quotaOutput is the JSON form of the quota ledger.
type quotaOutput struct {
	Count     int    `json:"count"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	IsPremium bool   `json:"isPremium"`
	Date      string `json:"date"`
}

func runQuota(cmd *cobra.Command, _ []string) error {
	if quotaService == nil {
		return errors.New("quota service not configured")
	}

	state := quotaService.ReadState(cmd.Context())

	if quotaJSON {
		data, err := json.MarshalIndent(quotaOutput{
			Count:     state.Count,
			Limit:     domain.DailyLimit,
			Remaining: state.Remaining(),
			IsPremium: state.IsPremium,
			Date:      state.Date.Format("2006-01-02"),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal quota: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	outputQuota(cmd, state)
	return nil
}

func outputQuota(cmd *cobra.Command, state domain.QuotaState) {
	if state.IsPremium {
		cmd.Println("Plan: Premium")
		cmd.Printf("Searches today: %d (unlimited)\n", state.Count)
		return
	}
	cmd.Println("Plan: Free")
	cmd.Printf("Searches today: %d of %d\n", min(state.Count, domain.DailyLimit), domain.DailyLimit)
	cmd.Printf("Remaining: %d\n", state.Remaining())
	if state.LimitReached() {
		cmd.Println("Limit reached. Run 'lexai upgrade' for unlimited searches.")
	}
}
