package controller

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/journal/pkg/core"
	"github.com/aretw0/journal/pkg/render"
	"github.com/aretw0/journal/pkg/storage"
)

// AddImage attaches an inline-encoded image to the selected entry. It is
// persisted immediately.
func (c *Controller) AddImage(ctx context.Context, dataURL, filename string) (core.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.entryIndex(c.selected)
	if !c.loaded || c.closed || i == -1 {
		return core.Image{}, false
	}

	img, ok := c.storage.AddImage(ctx, c.selected, dataURL, filename)
	if !ok {
		img = core.Image{
			ID:         storage.NewID(),
			DataURL:    dataURL,
			Filename:   filename,
			UploadedAt: c.now(),
		}
	}
	e := &c.entries[i]
	e.Images = append(slices.Clone(e.Images), img)
	e.UpdatedAt = c.stampLocked(e.UpdatedAt)
	return img, true
}

// RemoveImage detaches an image from the selected entry.
func (c *Controller) RemoveImage(ctx context.Context, imageID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.entryIndex(c.selected)
	if !c.loaded || c.closed || i == -1 {
		return false
	}
	e := &c.entries[i]
	if !slices.ContainsFunc(e.Images, func(img core.Image) bool { return img.ID == imageID }) {
		return false
	}

	c.storage.RemoveImage(ctx, c.selected, imageID)
	e.Images = slices.DeleteFunc(slices.Clone(e.Images), func(img core.Image) bool { return img.ID == imageID })
	e.UpdatedAt = c.stampLocked(e.UpdatedAt)
	return true
}

// InsertImageReference appends a markdown reference to one of the selected
// entry's images to the draft content.
func (c *Controller) InsertImageReference(imageID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.entryIndex(c.selected)
	if i == -1 {
		return fmt.Errorf("no entry selected: %w", core.ErrNotFound)
	}
	j := slices.IndexFunc(c.entries[i].Images, func(img core.Image) bool { return img.ID == imageID })
	if j == -1 {
		return fmt.Errorf("image %s: %w", imageID, core.ErrNotFound)
	}

	img := c.entries[i].Images[j]
	ref := render.ImageReference(img.Filename, img.DataURL)
	c.editLocked(func(d *Draft) bool {
		d.Content += ref + "\n"
		return true
	})
	return nil
}
