package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/journal/pkg/core"
)

func TestFolders_CRUD(t *testing.T) {
	s, _, _ := setupStorage(t)
	ctx := context.Background()

	assert.Empty(t, s.Folders(ctx))

	work := s.NewFolder("Work", "#000000")
	home := s.NewFolder("Home", "")
	require.True(t, s.AddFolder(ctx, work))
	require.True(t, s.AddFolder(ctx, home))
	assert.False(t, s.AddFolder(ctx, work), "duplicate id")

	folders := s.Folders(ctx)
	require.Len(t, folders, 2)
	assert.Equal(t, "Work", folders[0].Name, "folders keep creation order")

	name := "Office"
	updated, ok := s.UpdateFolder(ctx, work.ID, core.FolderPatch{Name: &name})
	require.True(t, ok)
	assert.Equal(t, "Office", updated.Name)
	assert.Equal(t, "#000000", updated.Color)
	assert.True(t, updated.UpdatedAt.After(work.UpdatedAt))

	_, ok = s.UpdateFolder(ctx, "missing", core.FolderPatch{Name: &name})
	assert.False(t, ok)
}

func TestDeleteFolder_Cascade(t *testing.T) {
	s, _, _ := setupStorage(t)
	ctx := context.Background()

	folder := s.NewFolder("Trips", "")
	other := s.NewFolder("Other", "")
	require.True(t, s.AddFolder(ctx, folder))
	require.True(t, s.AddFolder(ctx, other))

	s.SaveEntries(ctx, []core.Entry{
		{ID: "1", Folder: folder.Ref()},
		{ID: "2", Folder: folder.Ref()},
		{ID: "3", Folder: other.Ref()},
		{ID: "4"},
		{ID: "5", Folder: folder.Ref()},
	})

	moved, ok := s.DeleteFolder(ctx, folder.ID)
	require.True(t, ok)
	assert.Equal(t, 3, moved)

	entries := s.Entries(ctx)
	assert.Len(t, entries, 5, "no entry is lost")
	for _, e := range entries {
		assert.NotEqual(t, folder.Ref(), e.Folder)
	}
	assert.Len(t, s.EntriesByFolder(ctx, core.Root), 4)
	assert.Len(t, s.EntriesByFolder(ctx, other.Ref()), 1)

	folders := s.Folders(ctx)
	require.Len(t, folders, 1)
	assert.Equal(t, other.ID, folders[0].ID)

	t.Run("Second Delete Is No-op", func(t *testing.T) {
		moved, ok := s.DeleteFolder(ctx, folder.ID)
		assert.False(t, ok)
		assert.Zero(t, moved)
	})

	t.Run("Root Cannot Be Deleted", func(t *testing.T) {
		_, ok := s.DeleteFolder(ctx, "")
		assert.False(t, ok)
	})
}

func TestDeleteFolder_EntryWriteFailure(t *testing.T) {
	s, store, _ := setupStorage(t)
	ctx := context.Background()

	folder := s.NewFolder("Trips", "")
	require.True(t, s.AddFolder(ctx, folder))
	s.SaveEntries(ctx, []core.Entry{{ID: "1", Folder: folder.Ref()}})

	store.FailWrites(errors.New("disk full"))
	_, ok := s.DeleteFolder(ctx, folder.ID)
	store.FailWrites(nil)

	assert.False(t, ok)
	// Nothing changed: the folder still exists and still owns its entry.
	require.Len(t, s.Folders(ctx), 1)
	assert.Equal(t, folder.Ref(), s.Entries(ctx)[0].Folder)
}
