package memory

import (
	"maps"
	"sync"

	"github.com/custodia-labs/lexai/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map. Save snapshots the map and Load
// rolls back to the last snapshot, which lets service tests exercise
// reload paths without touching disk.
type ConfigStore struct {
	mu       sync.RWMutex
	values   map[string]any
	snapshot map[string]any
}

// NewConfigStore returns an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		values:   map[string]any{},
		snapshot: map[string]any{},
	}
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *ConfigStore) GetString(key string) string {
	str, _ := typed[string](s, key)
	return str
}

func (s *ConfigStore) GetBool(key string) bool {
	b, _ := typed[bool](s, key)
	return b
}

// GetInt accepts any numeric value; floats are truncated.
func (s *ConfigStore) GetInt(key string) int {
	v, _ := s.Get(key)
	n, ok := number(v)
	if !ok {
		return 0
	}
	return int(n)
}

func (s *ConfigStore) GetFloat(key string) float64 {
	v, _ := s.Get(key)
	n, _ := number(v)
	return n
}

// Set stores value under key and snapshots it, mirroring the file
// store's write-through behaviour.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.snapshot[key] = value
	return nil
}

// Delete removes key. Tests use it to simulate an unset value.
func (s *ConfigStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	delete(s.snapshot, key)
}

func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = maps.Clone(s.values)
	return nil
}

func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = maps.Clone(s.snapshot)
	return nil
}

func (s *ConfigStore) Path() string { return ":memory:" }

func typed[T any](s *ConfigStore, key string) (T, bool) {
	v, _ := s.Get(key)
	t, ok := v.(T)
	return t, ok
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
