package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

func TestQuotaStore_LoadEmpty(t *testing.T) {
	store := NewQuotaStore()

	_, err := store.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuotaStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := NewQuotaStore()
	now := time.Now()

	require.NoError(t, store.Save(ctx, domain.QuotaState{Count: 2, Date: now}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)
	assert.True(t, got.Date.Equal(now))
	assert.Equal(t, 1, store.Saves())

	// Mutating the returned copy must not change stored state.
	got.Count = 99
	again, _ := store.Load(ctx)
	assert.Equal(t, 2, again.Count)
}

func TestQuotaStore_InjectedErrors(t *testing.T) {
	ctx := context.Background()
	store := NewQuotaStore()
	store.LoadErr = errors.New("corrupt")
	store.SaveErr = errors.New("read-only")

	_, err := store.Load(ctx)
	assert.EqualError(t, err, "corrupt")
	assert.EqualError(t, store.Save(ctx, domain.QuotaState{}), "read-only")
	assert.Equal(t, 0, store.Saves())
}

func TestCredentialStore(t *testing.T) {
	ctx := context.Background()
	store := NewCredentialStore("")

	key, err := store.GetAPIKey(ctx)
	require.NoError(t, err)
	assert.Empty(t, key)

	require.NoError(t, store.SetAPIKey(ctx, "sk-test-123"))
	key, _ = store.GetAPIKey(ctx)
	assert.Equal(t, "sk-test-123", key)

	require.NoError(t, store.ClearAPIKey(ctx))
	require.NoError(t, store.ClearAPIKey(ctx))
	key, _ = store.GetAPIKey(ctx)
	assert.Empty(t, key)
}
