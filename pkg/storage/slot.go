package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/journal/pkg/core"
)

// slot is a typed view over one key of the raw store.
type slot[T any] struct {
	key    string
	encode func([]T) ([]byte, error)
	decode func([]byte) ([]T, error)
}

var (
	entriesSlot = slot[core.Entry]{key: core.EntriesKey, encode: MarshalEntries, decode: UnmarshalEntries}
	foldersSlot = slot[core.Folder]{key: core.FoldersKey, encode: MarshalFolders, decode: UnmarshalFolders}
)

// load reads and decodes the slot. A slot that was never written is an
// empty collection, not an error.
func (sl slot[T]) load(ctx context.Context, store core.Store) ([]T, error) {
	if store == nil {
		return nil, core.ErrUnavailable
	}

	data, err := store.Read(ctx, sl.key)
	if errors.Is(err, core.ErrNotFound) || (err == nil && len(data) == 0) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	items, err := sl.decode(data)
	if err != nil {
		return nil, fmt.Errorf("slot %s: %w", sl.key, err)
	}
	return items, nil
}

// save encodes the whole collection and hands it to the store in one write.
func (sl slot[T]) save(ctx context.Context, store core.Store, items []T) error {
	if store == nil {
		return core.ErrUnavailable
	}

	data, err := sl.encode(items)
	if err != nil {
		return fmt.Errorf("failed to encode slot %s: %w", sl.key, err)
	}
	return store.Write(ctx, sl.key, data)
}
