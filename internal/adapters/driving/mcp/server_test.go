package mcp

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil search service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Quota: newQuota(0, false)})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Quota: newQuota(0, false)})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name     string
		ports    *Ports
		expected error
	}{
		{"empty", &Ports{}, ErrMissingSearchService},
		{"search only", &Ports{Search: &mockSearchService{}}, ErrMissingQuotaService},
		{"all ports", &Ports{Search: &mockSearchService{}, Quota: newQuota(0, false)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	server, err := NewServer(&Ports{Search: &mockSearchService{}, Quota: newQuota(0, false)})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- server.serve(ctx, ln) }()

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestServer_RunHTTPInvalidAddress(t *testing.T) {
	server, err := NewServer(&Ports{Search: &mockSearchService{}, Quota: newQuota(0, false)})
	require.NoError(t, err)

	err = server.RunHTTP(context.Background(), "not-an-address")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on not-an-address")
}

func TestServer_HandlerRejectsGetWithoutSession(t *testing.T) {
	server, err := NewServer(&Ports{Search: &mockSearchService{}, Quota: newQuota(0, false)})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.GreaterOrEqual(t, rec.Code, 400)
}
