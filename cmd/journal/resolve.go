package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/journal/pkg/core"
)

// findEntry matches an entry by id or by a unique id prefix.
func findEntry(entries []core.Entry, arg string) (core.Entry, error) {
	var matches []core.Entry
	for _, e := range entries {
		if e.ID == arg {
			return e, nil
		}
		if strings.HasPrefix(e.ID, arg) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return core.Entry{}, fmt.Errorf("entry %q: %w", arg, core.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return core.Entry{}, fmt.Errorf("entry prefix %q is ambiguous (%d matches)", arg, len(matches))
	}
}

// findFolder matches a folder by id or exact name. "root" is the top level.
func findFolder(folders []core.Folder, arg string) (core.FolderRef, error) {
	if arg == "" || arg == "root" {
		return core.Root, nil
	}
	for _, f := range folders {
		if f.ID == arg {
			return f.Ref(), nil
		}
	}
	var found []core.Folder
	for _, f := range folders {
		if f.Name == arg {
			found = append(found, f)
		}
	}
	switch len(found) {
	case 0:
		return core.Root, fmt.Errorf("folder %q: %w", arg, core.ErrNotFound)
	case 1:
		return found[0].Ref(), nil
	default:
		return core.Root, fmt.Errorf("folder name %q is ambiguous, use its id", arg)
	}
}

func folderName(folders []core.Folder, ref core.FolderRef) string {
	id, ok := ref.ID()
	if !ok {
		return ""
	}
	for _, f := range folders {
		if f.ID == id {
			return f.Name
		}
	}
	return id
}
