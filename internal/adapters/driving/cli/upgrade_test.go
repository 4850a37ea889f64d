package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

func TestUpgradeCmd_WaitsForConfirmation(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	svc.waiter.onWait = func() { svc.quota.state.IsPremium = true }

	out, _, err := executeCommand(t, "", "upgrade", "--email", "advocate@example.co.za")

	require.NoError(t, err)
	assert.Equal(t, []string{"advocate@example.co.za"}, svc.subscription.emails)
	assert.Contains(t, out, "Payment of R299.99 initiated for advocate@example.co.za (reference ref-1).")
	assert.Contains(t, out, "Waiting for payment confirmation...")
	assert.Contains(t, out, "Premium activated.")
	assert.Equal(t, 1, svc.waiter.calls)
}

func TestUpgradeCmd_NotConfirmed(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := executeCommand(t, "", "upgrade", "-e", "advocate@example.co.za")

	require.NoError(t, err)
	assert.Contains(t, out, "Payment not confirmed yet.")
	assert.False(t, svc.quota.state.IsPremium)
}

func TestUpgradeCmd_NoWait(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := executeCommand(t, "", "upgrade", "--email", "advocate@example.co.za", "--no-wait")

	require.NoError(t, err)
	assert.Contains(t, out, "Premium will be activated once the payment is confirmed.")
	assert.Zero(t, svc.waiter.calls)
}

func TestUpgradeCmd_PromptsForEmail(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := executeCommand(t, "clerk@example.co.za\n", "upgrade", "--no-wait")

	require.NoError(t, err)
	assert.Contains(t, out, "Billing email: ")
	assert.Equal(t, []string{"clerk@example.co.za"}, svc.subscription.emails)
}

func TestUpgradeCmd_AlreadyPremium(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	svc.quota.state.IsPremium = true

	out, _, err := executeCommand(t, "", "upgrade", "--email", "advocate@example.co.za")

	require.NoError(t, err)
	assert.Contains(t, out, "already on Premium")
	assert.Empty(t, svc.subscription.emails)
}

func TestUpgradeCmd_InvalidEmail(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	svc.subscription.err = fmt.Errorf("email %q: %w", "nope", domain.ErrInvalidInput)

	_, _, err := executeCommand(t, "", "upgrade", "--email", "nope")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "upgrade failed")
	assert.Zero(t, svc.waiter.calls)
}

func TestUpgradeCmd_ServiceNotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	subscriptionService = nil

	_, _, err := executeCommand(t, "", "upgrade", "--email", "advocate@example.co.za")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "subscription service not configured")
}

func TestDowngradeCmd(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	svc.quota.state.IsPremium = true

	out, _, err := executeCommand(t, "", "downgrade")

	require.NoError(t, err)
	assert.False(t, svc.quota.state.IsPremium)
	assert.Contains(t, out, "Premium removed. Free plan: 3 searches per day.")
	assert.Contains(t, out, "Plan: Free")
}

func TestUpgradeCmd_LongMentionsPrice(t *testing.T) {
	assert.Contains(t, upgradeCmd.Long, "R299.99 (ZAR)")
}
