package storage

import (
	"github.com/aretw0/introspection"
)

// State exposes internal state for observability.
type State struct {
	Backend   string `json:"backend"`
	Available bool   `json:"available"`
	Failures  int    `json:"failures"`
	LastError string `json:"last_error,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	backend := "none"
	if s.store != nil {
		backend = "store"
		if comp, ok := s.store.(introspection.Component); ok {
			backend = comp.ComponentType()
		}
	}

	state := State{
		Backend:   backend,
		Available: s.store != nil,
		Failures:  s.failures,
	}
	if s.lastError != nil {
		state.LastError = s.lastError.Error()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "storage"
}

var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)
