// Package core holds the journal domain: entries, folders, images and the
// port to the durable key-value store they live in.
package core

import (
	"fmt"
	"slices"
	"time"
)

// DefaultColor is the color given to new entries.
const DefaultColor = "#3b82f6"

// DefaultCategories is the suggested category list. Categories are an open
// domain, any label is accepted.
var DefaultCategories = []string{
	"Personal",
	"Work",
	"Health",
	"Thoughts",
	"Ideas",
	"Travel",
	"Relationships",
	"Learning",
}

// FolderRef is an optional reference to a Folder.
// The zero value is Root: the entry lives outside any folder.
type FolderRef struct {
	id string
}

// Root is the reference to the top level (no folder).
var Root = FolderRef{}

// InFolder returns a reference to the folder with the given id.
// An empty id yields Root.
func InFolder(id string) FolderRef {
	return FolderRef{id: id}
}

// ID returns the folder id and true, or "" and false for Root.
func (r FolderRef) ID() (string, bool) {
	return r.id, r.id != ""
}

// IsRoot reports whether r points at the top level.
func (r FolderRef) IsRoot() bool {
	return r.id == ""
}

func (r FolderRef) String() string {
	if r.id == "" {
		return "root"
	}
	return r.id
}

// Image is an attachment embedded in an Entry as an inline data URL.
type Image struct {
	ID         string
	DataURL    string
	Filename   string
	UploadedAt time.Time
}

// Entry is a single journal note.
type Entry struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Tags      []string
	Category  string
	Color     string
	Folder    FolderRef
	Images    []Image
}

// Clone returns a copy that shares no slices with e.
func (e Entry) Clone() Entry {
	e.Tags = slices.Clone(e.Tags)
	e.Images = slices.Clone(e.Images)
	return e
}

// HasTag reports whether the entry carries tag.
func (e Entry) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// EntryPatch is a partial update. Nil fields are left untouched.
type EntryPatch struct {
	Title    *string
	Content  *string
	Tags     []string
	SetTags  bool // Tags is applied when true, so a patch can clear them.
	Category *string
	Color    *string
	Folder   *FolderRef
}

// Apply merges the patch into e. Timestamps are not touched.
func (p EntryPatch) Apply(e *Entry) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.SetTags {
		e.Tags = slices.Clone(p.Tags)
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	if p.Folder != nil {
		e.Folder = *p.Folder
	}
}

// Folder is a named bucket entries can belong to. Membership is computed
// by filtering entries on their FolderRef.
type Folder struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Color     string
}

// Ref returns the reference entries use to point at f.
func (f Folder) Ref() FolderRef {
	return InFolder(f.ID)
}

// FolderPatch is a partial folder update.
type FolderPatch struct {
	Name  *string
	Color *string
}

// Apply merges the patch into f.
func (p FolderPatch) Apply(f *Folder) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Color != nil {
		f.Color = *p.Color
	}
}

// EventType represents the type of change observed on a store slot.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of a slot in the store.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Key)
}
