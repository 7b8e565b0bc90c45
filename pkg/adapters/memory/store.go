// Package memory provides an in-memory core.Store. It is the injected backend
// for tests and can simulate an unavailable store or failing writes.
package memory

import (
	"bytes"
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/aretw0/journal/pkg/core"
)

// Store keeps slots in a map.
type Store struct {
	mu          sync.RWMutex
	slots       map[string][]byte
	writes      map[string]int
	writeErr    error
	unavailable bool
	readOnly    bool
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		slots:  make(map[string][]byte),
		writes: make(map[string]int),
	}
}

// Initialize implements core.Store.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.unavailable {
		return core.ErrUnavailable
	}
	return nil
}

// Read implements core.Store.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.unavailable {
		return nil, core.ErrUnavailable
	}
	data, ok := s.slots[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return bytes.Clone(data), nil
}

// Write implements core.Store.
func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.unavailable:
		return core.ErrUnavailable
	case s.readOnly:
		return core.ErrReadOnly
	case s.writeErr != nil:
		return s.writeErr
	}

	s.slots[key] = bytes.Clone(data)
	s.writes[key]++
	return nil
}

// Seed stores raw data without counting it as a write.
func (s *Store) Seed(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = bytes.Clone(data)
}

// Writes returns how many successful writes hit key.
func (s *Store) Writes(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes[key]
}

// FailWrites makes every following Write return err. Nil restores writes.
func (s *Store) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// SetUnavailable toggles the "no durable store" mode.
func (s *Store) SetUnavailable(unavailable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unavailable = unavailable
}

// SetReadOnly toggles read-only mode.
func (s *Store) SetReadOnly(readOnly bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readOnly = readOnly
}

// StoreState is the observable state of an in-memory store.
type StoreState struct {
	Slots       []string `json:"slots"`
	Unavailable bool     `json:"unavailable"`
	ReadOnly    bool     `json:"read_only"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := slices.Sorted(maps.Keys(s.slots))
	return StoreState{
		Slots:       keys,
		Unavailable: s.unavailable,
		ReadOnly:    s.readOnly,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "memory-store"
}

var _ core.Store = (*Store)(nil)
var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
