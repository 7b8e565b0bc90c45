package controller

import (
	"github.com/aretw0/introspection"
)

// State exposes internal state for observability.
type State struct {
	Loaded       bool   `json:"loaded"`
	Closed       bool   `json:"closed"`
	Entries      int    `json:"entries"`
	Folders      int    `json:"folders"`
	Selected     string `json:"selected,omitempty"`
	ActiveFolder string `json:"active_folder"`
	Tag          string `json:"tag,omitempty"`
	Category     string `json:"category,omitempty"`
	Pending      bool   `json:"pending"`
	Flushes      int    `json:"flushes"`
}

// State implements introspection.Introspectable.
func (c *Controller) State() any {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		Loaded:       c.loaded,
		Closed:       c.closed,
		Entries:      len(c.entries),
		Folders:      len(c.folders),
		Selected:     c.selected,
		ActiveFolder: c.filter.Folder.String(),
		Tag:          c.filter.Tag,
		Category:     c.filter.Category,
		Pending:      c.pending != nil,
		Flushes:      c.flushes,
	}
}

// ComponentType implements introspection.Component.
func (c *Controller) ComponentType() string {
	return "controller"
}

var _ introspection.Introspectable = (*Controller)(nil)
var _ introspection.Component = (*Controller)(nil)
