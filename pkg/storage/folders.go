package storage

import (
	"context"
	"slices"

	"github.com/aretw0/journal/pkg/core"
)

// NewFolder builds a folder with a fresh id. It is not persisted.
func (s *Storage) NewFolder(name, color string) core.Folder {
	now := s.now()
	return core.Folder{
		ID:        s.newID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Color:     color,
	}
}

// Folders returns all folders in creation order.
func (s *Storage) Folders(ctx context.Context) []core.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	folders, _ := s.loadFolders(ctx)
	return folders
}

// loadFolders reads the folders slot. See loadEntries for ok.
func (s *Storage) loadFolders(ctx context.Context) ([]core.Folder, bool) {
	folders, err := foldersSlot.load(ctx, s.store)
	if err != nil {
		s.report("load folders", err)
		return []core.Folder{}, false
	}
	if folders == nil {
		return []core.Folder{}, true
	}
	return folders, true
}

// SaveFolders overwrites the folders slot with one write.
func (s *Storage) SaveFolders(ctx context.Context, folders []core.Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveFolders(ctx, folders)
}

func (s *Storage) saveFolders(ctx context.Context, folders []core.Folder) bool {
	if err := foldersSlot.save(ctx, s.store, folders); err != nil {
		s.report("save folders", err)
		return false
	}
	return true
}

// AddFolder appends folder to the persisted collection.
func (s *Storage) AddFolder(ctx context.Context, folder core.Folder) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, ok := s.loadFolders(ctx)
	if !ok {
		return false
	}
	if slices.ContainsFunc(folders, func(f core.Folder) bool { return f.ID == folder.ID }) {
		s.logger.Debug("folder already exists", "id", folder.ID)
		return false
	}
	return s.saveFolders(ctx, append(folders, folder))
}

// UpdateFolder merges patch and stamps UpdatedAt. Unknown ids are a no-op.
func (s *Storage) UpdateFolder(ctx context.Context, id string, patch core.FolderPatch) (core.Folder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, ok := s.loadFolders(ctx)
	if !ok {
		return core.Folder{}, false
	}
	i := slices.IndexFunc(folders, func(f core.Folder) bool { return f.ID == id })
	if i == -1 {
		return core.Folder{}, false
	}

	patch.Apply(&folders[i])
	folders[i].UpdatedAt = s.stamp(folders[i].UpdatedAt)

	if !s.saveFolders(ctx, folders) {
		return core.Folder{}, false
	}
	return folders[i], true
}

// DeleteFolder removes a folder and moves its entries to the root. It
// returns how many entries were moved and whether the folder was removed.
//
// Entries are written first: if the folder write then fails the folder
// survives empty, and no entry is ever left pointing at a missing folder.
func (s *Storage) DeleteFolder(ctx context.Context, id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := core.InFolder(id)
	if ref.IsRoot() {
		return 0, false
	}

	entries, ok := s.loadEntries(ctx)
	if !ok {
		return 0, false
	}
	moved := 0
	for i := range entries {
		if entries[i].Folder == ref {
			entries[i].Folder = core.Root
			entries[i].UpdatedAt = s.stamp(entries[i].UpdatedAt)
			moved++
		}
	}
	if moved > 0 && !s.saveEntries(ctx, entries) {
		return 0, false
	}

	folders, ok := s.loadFolders(ctx)
	if !ok {
		return moved, false
	}
	filtered := slices.DeleteFunc(slices.Clone(folders), func(f core.Folder) bool { return f.ID == id })
	if len(filtered) == len(folders) {
		return moved, false
	}
	if !s.saveFolders(ctx, filtered) {
		return moved, false
	}

	s.logger.Debug("folder deleted", "id", id, "moved_entries", moved)
	return moved, true
}
