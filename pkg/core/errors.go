package core

import "errors"

// Common errors.
var (
	// ErrNotFound is returned by a Store when a slot was never written.
	ErrNotFound = errors.New("slot not found")
	// ErrUnavailable is returned when there is no durable store to talk to.
	ErrUnavailable = errors.New("store unavailable")
	ErrReadOnly    = errors.New("store is in read-only mode")
)
