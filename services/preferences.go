package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// PreferenceStore is the per-user key/value store for client preferences.
// Get reports a missing key with ok == false and no error.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// SelectedTagsKey is where a user's tag filter is remembered.
func SelectedTagsKey(username string) string {
	return "p_n_select_tags_" + username
}

// GetJSON loads key into dst. A missing key, or a stored value that is not
// valid JSON, falls back to defaultValue, which must itself be valid JSON.
func GetJSON(ctx context.Context, store PreferenceStore, key string, dst interface{}, defaultValue string) error {
	value, ok, err := store.Get(ctx, key)
	if err != nil {
		if uerr := json.Unmarshal([]byte(defaultValue), dst); uerr != nil {
			return fmt.Errorf("invalid default for %s: %w", key, uerr)
		}
		return err
	}
	if ok && json.Unmarshal([]byte(value), dst) == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(defaultValue), dst); err != nil {
		return fmt.Errorf("invalid default for %s: %w", key, err)
	}
	return nil
}

// SetJSON stores v under key as JSON.
func SetJSON(ctx context.Context, store PreferenceStore, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal preference %s: %w", key, err)
	}
	return store.Set(ctx, key, string(data))
}

// MemoryPreferences keeps preferences in process memory.
type MemoryPreferences struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: make(map[string]string)}
}

func (m *MemoryPreferences) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MemoryPreferences) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
