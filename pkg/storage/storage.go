// Package storage is the CRUD facade over the journal's durable slots.
//
// It never returns storage errors to callers. Reads degrade to empty
// collections and failed writes leave the persisted state unchanged; every
// failure is logged and handed to the diagnostic sink instead.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/journal/pkg/core"
)

// Storage reads and writes entries and folders through a core.Store.
// A nil store behaves as an unavailable one.
type Storage struct {
	store   core.Store
	logger  *slog.Logger
	onError func(error)
	now     func() time.Time
	newID   func() string

	// mu serializes read-modify-write cycles.
	mu sync.Mutex

	statsMu   sync.Mutex
	failures  int
	lastError error
}

// Option configures a Storage.
type Option func(*Storage)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Storage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithErrorHandler registers the diagnostic sink that receives every storage
// failure after it has been logged.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Storage) {
		s.onError = fn
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the id source used for new records.
func WithIDGenerator(fn func() string) Option {
	return func(s *Storage) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New creates a Storage on top of store.
func New(store core.Store, opts ...Option) *Storage {
	s := &Storage{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
		newID:  NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID returns a time-ordered unique id (UUIDv7).
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// report logs a failure and forwards it to the diagnostic sink.
func (s *Storage) report(op string, err error) {
	err = fmt.Errorf("%s: %w", op, err)

	s.statsMu.Lock()
	s.failures++
	s.lastError = err
	s.statsMu.Unlock()

	if errors.Is(err, core.ErrUnavailable) {
		s.logger.Warn("storage unavailable", "op", op)
	} else {
		s.logger.Error("storage operation failed", "op", op, "error", err)
	}
	if s.onError != nil {
		s.onError(err)
	}
}

// stamp returns the current time, forced strictly after prev.
func (s *Storage) stamp(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

// NewEntry builds a default-valued entry with a fresh id. It is not
// persisted; pass it to AddEntry.
func (s *Storage) NewEntry() core.Entry {
	now := s.now()
	return core.Entry{
		ID:        s.newID(),
		CreatedAt: now,
		UpdatedAt: now,
		Color:     core.DefaultColor,
	}
}

// Entries returns all entries, newest first. Missing, corrupt or unavailable
// data yields an empty slice.
func (s *Storage) Entries(ctx context.Context) []core.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, _ := s.loadEntries(ctx)
	return entries
}

// loadEntries reads the entries slot. ok is false when the slot exists but
// could not be read or decoded; mutators must not write in that case, or
// they would replace the stored data with an empty collection.
func (s *Storage) loadEntries(ctx context.Context) ([]core.Entry, bool) {
	entries, err := entriesSlot.load(ctx, s.store)
	if err != nil {
		s.report("load entries", err)
		return []core.Entry{}, false
	}
	if entries == nil {
		return []core.Entry{}, true
	}
	return entries, true
}

// SaveEntries overwrites the entries slot with one write.
func (s *Storage) SaveEntries(ctx context.Context, entries []core.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveEntries(ctx, entries)
}

func (s *Storage) saveEntries(ctx context.Context, entries []core.Entry) bool {
	if err := entriesSlot.save(ctx, s.store, entries); err != nil {
		s.report("save entries", err)
		return false
	}
	return true
}

// AddEntry prepends entry to the persisted collection. An entry whose id is
// already taken is rejected.
func (s *Storage) AddEntry(ctx context.Context, entry core.Entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.loadEntries(ctx)
	if !ok {
		return false
	}
	if slices.ContainsFunc(entries, func(e core.Entry) bool { return e.ID == entry.ID }) {
		s.report("add entry", fmt.Errorf("duplicate id %s", entry.ID))
		return false
	}

	entries = slices.Insert(entries, 0, entry.Clone())
	return s.saveEntries(ctx, entries)
}

// ImportEntries merges entries into the collection with one write. Each
// entry is placed by CreatedAt ahead of the first older stored entry, so
// the existing order is kept. Ids already present are skipped. It returns
// how many entries were added.
func (s *Storage) ImportEntries(ctx context.Context, imported []core.Entry) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.loadEntries(ctx)
	if !ok {
		return 0
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		seen[e.ID] = true
	}

	added := 0
	for _, e := range imported {
		if seen[e.ID] {
			s.logger.Debug("import skipped existing entry", "id", e.ID)
			continue
		}
		seen[e.ID] = true
		i := slices.IndexFunc(entries, func(x core.Entry) bool { return x.CreatedAt.Before(e.CreatedAt) })
		if i == -1 {
			i = len(entries)
		}
		entries = slices.Insert(entries, i, e.Clone())
		added++
	}

	if added == 0 || !s.saveEntries(ctx, entries) {
		return 0
	}
	return added
}

// UpdateEntry merges patch into the entry with the given id and stamps
// UpdatedAt. It returns the stored entry, or false when the id is unknown
// (a silent no-op) or the write failed.
func (s *Storage) UpdateEntry(ctx context.Context, id string, patch core.EntryPatch) (core.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutateEntry(ctx, id, func(e *core.Entry) bool {
		patch.Apply(e)
		return true
	})
}

// mutateEntry runs fn on the entry with the given id and persists the
// collection when fn reports a change.
func (s *Storage) mutateEntry(ctx context.Context, id string, fn func(e *core.Entry) bool) (core.Entry, bool) {
	entries, ok := s.loadEntries(ctx)
	if !ok {
		return core.Entry{}, false
	}
	i := slices.IndexFunc(entries, func(e core.Entry) bool { return e.ID == id })
	if i == -1 {
		s.logger.Debug("entry not found", "id", id)
		return core.Entry{}, false
	}

	if !fn(&entries[i]) {
		return core.Entry{}, false
	}
	entries[i].UpdatedAt = s.stamp(entries[i].UpdatedAt)

	if !s.saveEntries(ctx, entries) {
		return core.Entry{}, false
	}
	return entries[i].Clone(), true
}

// DeleteEntry removes the entry and its images. Unknown ids are a no-op.
func (s *Storage) DeleteEntry(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.loadEntries(ctx)
	if !ok {
		return false
	}
	filtered := slices.DeleteFunc(slices.Clone(entries), func(e core.Entry) bool { return e.ID == id })
	if len(filtered) == len(entries) {
		return false
	}
	return s.saveEntries(ctx, filtered)
}

// EntriesByFolder returns the entries that belong to ref. Root selects
// entries without a folder.
func (s *Storage) EntriesByFolder(ctx context.Context, ref core.FolderRef) []core.Entry {
	entries := s.Entries(ctx)
	return slices.DeleteFunc(entries, func(e core.Entry) bool { return e.Folder != ref })
}
