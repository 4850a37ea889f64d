package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexai/internal/adapters/driving/httpapi"
)

func TestServeCmd_Flags(t *testing.T) {
	port := serveCmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "8080", port.DefValue)

	host := serveCmd.Flags().Lookup("host")
	require.NotNil(t, host)
	assert.Equal(t, "127.0.0.1", host.DefValue)
}

func TestServeCmd_InvalidPort(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := executeCommand(t, "", "serve", "--port", "70000")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port 70000")
}

func TestServeCmd_RequiresServices(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	subscriptionService = nil

	_, _, err := executeCommand(t, "", "serve")

	assert.ErrorIs(t, err, httpapi.ErrMissingService)
}
