package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexai/internal/adapters/driving/tui"
	"github.com/custodia-labs/lexai/internal/core/domain"
)

// mockActionService records case actions.
type mockActionService struct {
	copied []string
}

func (m *mockActionService) CopyCitation(_ context.Context, result *domain.CaseResult) error {
	m.copied = append(m.copied, result.Citation)
	return nil
}

func (m *mockActionService) OpenSource(_ context.Context, _ *domain.CaseResult) error {
	return nil
}

func TestTUICmd_Exists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "tui" {
			found = true
			break
		}
	}
	assert.True(t, found, "tui command should be registered")
}

func TestTUICmd_ShortDescription(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_LongDescription(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "interactive terminal user interface")
	assert.Contains(t, tuiCmd.Long, "Controls:")
}

func TestTUIPorts_FromServices(t *testing.T) {
	svc, cleanup := setupTestServices()
	defer cleanup()
	actions := &mockActionService{}
	actionService = actions

	ports := tuiPorts()

	require.NoError(t, ports.Validate())
	assert.Same(t, svc.search, ports.Search)
	assert.Same(t, svc.quota, ports.Quota)
	assert.Same(t, svc.settings, ports.Settings)
	assert.Same(t, svc.subscription, ports.Subscription)
	assert.Same(t, actions, ports.Actions)
}

func TestTUICmd_RequiresSearchService(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	searchService = nil

	_, _, err := executeCommand(t, "", "tui")

	require.Error(t, err)
	assert.ErrorIs(t, err, tui.ErrMissingSearchService)
	assert.Contains(t, err.Error(), "failed to create TUI")
}

func TestTUICmd_RequiresQuotaService(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	quotaService = nil

	_, _, err := executeCommand(t, "", "tui")

	assert.ErrorIs(t, err, tui.ErrMissingQuotaService)
}
