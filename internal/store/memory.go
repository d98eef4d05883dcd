package store

import (
	"context"
	"sync"
)

// MemoryStore keeps encoded values in a map. It goes through the same
// encoding as the persistent backends, so it also exercises corrupt-data
// handling in tests.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Set stores a raw value under key.
func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Get returns the raw value under key.
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Load(_ context.Context) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		ActivePlatform: m.values[KeyActivePlatform],
		History:        decodeHistory([]byte(m.values[KeyHistory])),
	}, nil
}

func (m *MemoryStore) Save(_ context.Context, s Snapshot) error {
	history, err := encodeHistory(s.History)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[KeyActivePlatform] = s.ActivePlatform
	m.values[KeyHistory] = string(history)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
