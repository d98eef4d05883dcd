// Package store persists the client state: the active platform and the
// watch history. Backends keep two keys, "activePlatform" (a plain string)
// and "history" (a JSON array of entries).
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"reelhub/internal/media"
)

// Persisted keys.
const (
	KeyActivePlatform = "activePlatform"
	KeyHistory        = "history"
)

// MaxHistory is the number of entries kept in the watch history.
const MaxHistory = 20

// Snapshot is the whole persisted state. An empty ActivePlatform means none
// was saved yet.
type Snapshot struct {
	ActivePlatform string               `json:"activePlatform"`
	History        []media.HistoryEntry `json:"history"`
}

// Store loads and saves snapshots. Load never fails on corrupt data, only
// on I/O errors.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, s Snapshot) error
	Close() error
}

// Open returns the backend named by kind, rooted at dir.
func Open(kind, dir string) (Store, error) {
	switch strings.ToLower(kind) {
	case "file", "":
		return NewFileStore(dir), nil
	case "sqlite":
		return OpenSQLite(filepath.Join(dir, "state.db"))
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}

// encodeHistory renders entries as a JSON array, "[]" when empty.
func encodeHistory(entries []media.HistoryEntry) ([]byte, error) {
	if entries == nil {
		entries = []media.HistoryEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encoding history: %w", err)
	}
	return data, nil
}

// decodeHistory parses a persisted history. Corrupt data yields an empty
// list; the result is capped at MaxHistory.
func decodeHistory(data []byte) []media.HistoryEntry {
	if len(data) == 0 {
		return []media.HistoryEntry{}
	}

	var entries []media.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil || entries == nil {
		return []media.HistoryEntry{}
	}
	if len(entries) > MaxHistory {
		entries = entries[:MaxHistory]
	}
	return entries
}
