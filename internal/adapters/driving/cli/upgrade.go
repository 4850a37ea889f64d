package cli

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

var (
	upgradeEmail  string
	upgradeNoWait bool
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade to Premium",
	Long: fmt.Sprintf(`Starts a Premium payment of R%d.%02d (%s) through Paystack.
Premium removes the daily search limit. Unlimited searches are unlocked
once the payment is confirmed.`,
		domain.PremiumAmountCents/100, domain.PremiumAmountCents%100, domain.PremiumCurrency),
	Example: `  lexai upgrade --email you@example.com`,
	Args:    cobra.NoArgs,
	RunE:    runUpgrade,
}

var downgradeCmd = &cobra.Command{
	Use:   "downgrade",
	Short: "Return to the free plan",
	Args:  cobra.NoArgs,
	RunE:  runDowngrade,
}

func init() {
	upgradeCmd.Flags().StringVarP(&upgradeEmail, "email", "e", "", "billing email address")
	upgradeCmd.Flags().BoolVar(&upgradeNoWait, "no-wait", false, "return without waiting for confirmation")
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(downgradeCmd)
}

func runUpgrade(cmd *cobra.Command, _ []string) error {
	if subscriptionService == nil {
		return errors.New("subscription service not configured")
	}

	if quotaService != nil && quotaService.ReadState(cmd.Context()).IsPremium {
		cmd.Println("You are already on Premium.")
		return nil
	}

	email := upgradeEmail
	if email == "" {
		cmd.Print("Billing email: ")
		email = readLine(bufio.NewReader(cmd.InOrStdin()))
	}

	req, err := subscriptionService.Upgrade(cmd.Context(), email)
	if err != nil {
		return fmt.Errorf("upgrade failed: %w", err)
	}

	cmd.Printf("Payment of %s initiated for %s (reference %s).\n",
		req.FormatAmount(), req.Email, req.Reference)

	if upgradeNoWait || paymentWaiter == nil {
		cmd.Println("Premium will be activated once the payment is confirmed.")
		return nil
	}

	cmd.Println("Waiting for payment confirmation...")
	paymentWaiter.Wait()

	if quotaService != nil && quotaService.ReadState(cmd.Context()).IsPremium {
		cmd.Println("Premium activated. Enjoy unlimited searches.")
		return nil
	}
	cmd.Println("Payment not confirmed yet. Run 'lexai quota' to check later.")
	return nil
}

func runDowngrade(cmd *cobra.Command, _ []string) error {
	if subscriptionService == nil {
		return errors.New("subscription service not configured")
	}

	state := subscriptionService.Downgrade(cmd.Context())
	cmd.Printf("Premium removed. Free plan: %d searches per day.\n", domain.DailyLimit)
	outputQuota(cmd, state)
	return nil
}
