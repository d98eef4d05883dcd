// Package history manages the watch history and the active platform on top
// of a store. The history is a most-recently-played list: replaying a work
// moves it to the front, and only the newest store.MaxHistory works are kept.
package history

import (
	"context"
	"fmt"
	"sync"

	"reelhub/internal/media"
	"reelhub/internal/store"
)

// DefaultPlatform is the active platform when none was saved.
const DefaultPlatform = "dramabox"

// Listener is called with the new state after every change.
type Listener func(store.Snapshot)

// Tracker serialises read-modify-write cycles against a store. Every
// mutation re-reads the store first, so concurrent writers through other
// trackers on the same store are not lost.
type Tracker struct {
	mu              sync.Mutex
	store           store.Store
	defaultPlatform string

	subMu  sync.Mutex
	subs   map[int]Listener
	nextID int
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithDefaultPlatform sets the platform reported when none was saved.
func WithDefaultPlatform(code string) Option {
	return func(t *Tracker) {
		if code != "" {
			t.defaultPlatform = code
		}
	}
}

// New creates a Tracker over s.
func New(s store.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store:           s,
		defaultPlatform: DefaultPlatform,
		subs:            make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load reads the current state. A missing platform reads as the default
// platform.
func (t *Tracker) Load(ctx context.Context) (store.Snapshot, error) {
	snap, err := t.store.Load(ctx)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("loading history: %w", err)
	}
	return t.normalize(snap), nil
}

// Save replaces the whole state and notifies subscribers.
func (t *Tracker) Save(ctx context.Context, snap store.Snapshot) error {
	return t.mutate(ctx, func(cur *store.Snapshot) {
		*cur = t.normalize(snap)
	})
}

// Subscribe registers fn for change notifications. The returned function
// removes it.
func (t *Tracker) Subscribe(fn Listener) (cancel func()) {
	t.subMu.Lock()
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	t.subMu.Unlock()

	return func() {
		t.subMu.Lock()
		delete(t.subs, id)
		t.subMu.Unlock()
	}
}

// Entries returns the history, most recent first.
func (t *Tracker) Entries(ctx context.Context) ([]media.HistoryEntry, error) {
	snap, err := t.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.History, nil
}

// Add records a play of entry.
func (t *Tracker) Add(ctx context.Context, entry media.HistoryEntry) error {
	if entry.Platform == "" || entry.ID == "" {
		return fmt.Errorf("history entry needs a platform and an id")
	}
	return t.mutate(ctx, func(cur *store.Snapshot) {
		cur.History = Push(cur.History, entry)
	})
}

// Remove deletes the entry for (platform, id), if present.
func (t *Tracker) Remove(ctx context.Context, platform, id string) error {
	target := media.HistoryEntry{Platform: platform, ID: id}
	return t.mutate(ctx, func(cur *store.Snapshot) {
		filtered := make([]media.HistoryEntry, 0, len(cur.History))
		for _, e := range cur.History {
			if !e.SameWork(target) {
				filtered = append(filtered, e)
			}
		}
		cur.History = filtered
	})
}

// Clear empties the history. The active platform is kept.
func (t *Tracker) Clear(ctx context.Context) error {
	return t.mutate(ctx, func(cur *store.Snapshot) {
		cur.History = []media.HistoryEntry{}
	})
}

// ActivePlatform returns the saved platform code.
func (t *Tracker) ActivePlatform(ctx context.Context) (string, error) {
	snap, err := t.Load(ctx)
	if err != nil {
		return "", err
	}
	return snap.ActivePlatform, nil
}

// SetActivePlatform saves code as the active platform.
func (t *Tracker) SetActivePlatform(ctx context.Context, code string) error {
	if code == "" {
		return fmt.Errorf("platform code cannot be empty")
	}
	return t.mutate(ctx, func(cur *store.Snapshot) {
		cur.ActivePlatform = code
	})
}

func (t *Tracker) mutate(ctx context.Context, apply func(*store.Snapshot)) error {
	t.mu.Lock()
	snap, err := t.store.Load(ctx)
	if err != nil {
		t.mu.Unlock()
		return fmt.Errorf("loading history: %w", err)
	}
	snap = t.normalize(snap)

	apply(&snap)
	snap = t.normalize(snap)

	if err := t.store.Save(ctx, snap); err != nil {
		t.mu.Unlock()
		return fmt.Errorf("saving history: %w", err)
	}
	t.mu.Unlock()

	t.notify(snap)
	return nil
}

func (t *Tracker) notify(snap store.Snapshot) {
	t.subMu.Lock()
	listeners := make([]Listener, 0, len(t.subs))
	for _, fn := range t.subs {
		listeners = append(listeners, fn)
	}
	t.subMu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

func (t *Tracker) normalize(snap store.Snapshot) store.Snapshot {
	if snap.ActivePlatform == "" {
		snap.ActivePlatform = t.defaultPlatform
	}
	if snap.History == nil {
		snap.History = []media.HistoryEntry{}
	}
	if len(snap.History) > store.MaxHistory {
		snap.History = snap.History[:store.MaxHistory]
	}
	return snap
}

// Push puts entry at the front of entries, dropping any older entry for the
// same work and anything past store.MaxHistory. entries is not modified.
func Push(entries []media.HistoryEntry, entry media.HistoryEntry) []media.HistoryEntry {
	out := make([]media.HistoryEntry, 0, min(len(entries)+1, store.MaxHistory))
	out = append(out, entry)
	for _, e := range entries {
		if len(out) == store.MaxHistory {
			break
		}
		if !e.SameWork(entry) {
			out = append(out, e)
		}
	}
	return out
}

// FormatForDisplay creates display strings for fzf selection from history entries.
func FormatForDisplay(entries []media.HistoryEntry) []string {
	items := make([]string, 0, len(entries))
	for _, e := range entries {
		display := fmt.Sprintf("[%s] %s", e.Platform, e.Title)
		if e.Title == "" {
			display = fmt.Sprintf("[%s] %s", e.Platform, e.ID)
		}
		if e.LastEpisode != "" {
			display += fmt.Sprintf(" (last: %s)", e.LastEpisode)
		}
		items = append(items, display)
	}
	return items
}
