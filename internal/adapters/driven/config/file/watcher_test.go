package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_HandleEvent(t *testing.T) {
	store, dir := newTestStore(t)
	w := &Watcher{store: store}

	tests := []struct {
		name     string
		path     string
		op       fsnotify.Op
		expected bool
	}{
		{"write config", store.Path(), fsnotify.Write, true},
		{"create config", store.Path(), fsnotify.Create, true},
		{"rename config", store.Path(), fsnotify.Rename, true},
		{"remove config", store.Path(), fsnotify.Remove, true},
		{"chmod config", store.Path(), fsnotify.Chmod, false},
		{"write other file", filepath.Join(dir, "other.toml"), fsnotify.Write, false},
		{"editor swap file", store.Path() + ".swp", fsnotify.Create, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.handleEvent(fsnotify.Event{Name: tt.path, Op: tt.op}))
		})
	}
}

func TestWatcher_ReloadsOnExternalEdit(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set("ai.model", "gpt-4o-mini"))

	changed := make(chan struct{}, 8)
	w, err := NewWatcher(store, func() { changed <- struct{}{} })
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(store.Path(), []byte("\"ai.model\" = \"gpt-4o\"\n"), 0600))

	assert.Eventually(t, func() bool {
		select {
		case <-changed:
		default:
		}
		return store.GetString("ai.model") == "gpt-4o"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	store, _ := newTestStore(t)
	w, err := NewWatcher(store, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	store, dir := newTestStore(t)
	require.NoError(t, os.RemoveAll(dir))

	_, err := NewWatcher(store, nil)

	assert.Error(t, err)
}
