package controller

import (
	"context"
	"slices"
	"strings"

	"github.com/aretw0/journal/pkg/core"
)

// CreateFolder adds a folder. Empty names are rejected.
func (c *Controller) CreateFolder(ctx context.Context, name, color string) (core.Folder, bool) {
	name = strings.TrimSpace(name)
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded || c.closed || name == "" {
		return core.Folder{}, false
	}
	f := c.storage.NewFolder(name, color)
	c.storage.AddFolder(ctx, f)
	c.folders = append(c.folders, f)
	return f, true
}

// RenameFolder changes a folder's name.
func (c *Controller) RenameFolder(ctx context.Context, id, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	return c.updateFolder(ctx, id, core.FolderPatch{Name: &name})
}

// SetFolderColor changes a folder's color.
func (c *Controller) SetFolderColor(ctx context.Context, id, color string) bool {
	return c.updateFolder(ctx, id, core.FolderPatch{Color: &color})
}

func (c *Controller) updateFolder(ctx context.Context, id string, patch core.FolderPatch) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.folderIndex(core.InFolder(id))
	if !c.loaded || c.closed || i == -1 {
		return false
	}
	if stored, ok := c.storage.UpdateFolder(ctx, id, patch); ok {
		c.folders[i] = stored
		return true
	}
	patch.Apply(&c.folders[i])
	c.folders[i].UpdatedAt = c.stampLocked(c.folders[i].UpdatedAt)
	return true
}

// DeleteFolder removes a folder. Its entries move to the root. If it was
// the active folder the root becomes active.
func (c *Controller) DeleteFolder(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ref := core.InFolder(id)
	i := c.folderIndex(ref)
	if !c.loaded || c.closed || i == -1 {
		return false
	}

	c.storage.DeleteFolder(ctx, id)

	for j := range c.entries {
		if c.entries[j].Folder == ref {
			c.entries[j].Folder = core.Root
			c.entries[j].UpdatedAt = c.stampLocked(c.entries[j].UpdatedAt)
		}
	}
	c.folders = slices.Delete(c.folders, i, i+1)
	if c.filter.Folder == ref {
		c.filter.Folder = core.Root
	}
	return true
}

// OpenFolder makes ref the active folder. New entries are created in it
// and Visible lists only its entries. The selection is not changed.
func (c *Controller) OpenFolder(ref core.FolderRef) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !ref.IsRoot() && c.folderIndex(ref) == -1 {
		return false
	}
	c.filter.Folder = ref
	return true
}

// MoveEntry puts an entry into another folder, or the root.
func (c *Controller) MoveEntry(ctx context.Context, id string, ref core.FolderRef) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.entryIndex(id)
	if !c.loaded || c.closed || i == -1 {
		return false
	}
	if !ref.IsRoot() && c.folderIndex(ref) == -1 {
		return false
	}
	if c.entries[i].Folder == ref {
		return true
	}

	patch := core.EntryPatch{Folder: &ref}
	if stored, ok := c.storage.UpdateEntry(ctx, id, patch); ok {
		c.entries[i] = stored
		return true
	}
	patch.Apply(&c.entries[i])
	c.entries[i].UpdatedAt = c.stampLocked(c.entries[i].UpdatedAt)
	return true
}

// FilterByTag limits Visible to entries carrying tag. An empty tag clears
// the tag filter.
func (c *Controller) FilterByTag(tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter.Tag = strings.TrimSpace(tag)
}

// FilterByCategory limits Visible to one category. An empty category
// clears the category filter.
func (c *Controller) FilterByCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter.Category = category
}

// ClearFilters drops the tag and category filters. The active folder stays.
func (c *Controller) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter.Tag = ""
	c.filter.Category = ""
}
