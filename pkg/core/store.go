package core

import "context"

// Slot keys of the durable store.
const (
	EntriesKey = "journal-entries"
	FoldersKey = "journal-folders"
)

// Store is the durable key-value store the journal persists to.
// Each slot holds one serialized collection. Adhering to this interface keeps
// the storage module independent of the mechanism (files, SQLite, memory).
type Store interface {
	// Initialize ensures the underlying storage is ready (directories, schema).
	Initialize(ctx context.Context) error

	// Read returns the raw contents of a slot, or ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the contents of a slot in a single step. On failure the
	// previous contents must remain readable.
	Write(ctx context.Context, key string, data []byte) error
}

// Watchable is implemented by stores that can report external changes.
type Watchable interface {
	// Watch emits an Event for every change of a slot matching pattern.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
