package storage

import (
	"context"
	"slices"

	"github.com/aretw0/journal/pkg/core"
)

// AddImage appends an inline-encoded image to an entry. The payload is
// opaque to storage. Returns false if the entry does not exist.
func (s *Storage) AddImage(ctx context.Context, entryID, dataURL, filename string) (core.Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	img := core.Image{
		ID:         s.newID(),
		DataURL:    dataURL,
		Filename:   filename,
		UploadedAt: s.now(),
	}

	_, ok := s.mutateEntry(ctx, entryID, func(e *core.Entry) bool {
		e.Images = append(e.Images, img)
		return true
	})
	if !ok {
		return core.Image{}, false
	}
	return img, true
}

// RemoveImage deletes one image from an entry. Unknown entry or image ids
// are a no-op.
func (s *Storage) RemoveImage(ctx context.Context, entryID, imageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.mutateEntry(ctx, entryID, func(e *core.Entry) bool {
		n := len(e.Images)
		e.Images = slices.DeleteFunc(e.Images, func(img core.Image) bool { return img.ID == imageID })
		return len(e.Images) != n
	})
	return ok
}
