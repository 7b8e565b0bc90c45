package controller

import (
	"slices"

	"github.com/aretw0/journal/pkg/core"
)

// Filter selects the entries shown in a list. All axes must match.
type Filter struct {
	// Folder restricts the list to one folder, or to root entries.
	Folder core.FolderRef
	// AnyFolder disables the folder axis.
	AnyFolder bool
	// Tag, when set, keeps entries carrying that tag.
	Tag string
	// Category, when set, keeps entries with that category.
	Category string
}

// Match reports whether e passes every active axis.
func (f Filter) Match(e core.Entry) bool {
	if !f.AnyFolder && e.Folder != f.Folder {
		return false
	}
	if f.Tag != "" && !e.HasTag(f.Tag) {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	return true
}

// Apply returns the matching entries in their original order.
func (f Filter) Apply(entries []core.Entry) []core.Entry {
	out := make([]core.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e.Clone())
		}
	}
	return out
}

// Tags returns every tag in use, in first-seen order.
func Tags(entries []core.Entry) []string {
	var tags []string
	for _, e := range entries {
		for _, t := range e.Tags {
			if !slices.Contains(tags, t) {
				tags = append(tags, t)
			}
		}
	}
	return tags
}
