// Package controller keeps the in-memory journal state in sync with storage.
//
// The Controller owns the list of entries and folders, the selected entry
// and its working draft. Draft edits are persisted by a debounced autosave:
// each change restarts a timer and only the final state of a burst of edits
// is written.
//
// Selection policy: switching to another entry (or creating one) first
// writes any pending autosave of the previous entry, synchronously. A
// pending autosave therefore always targets the selected entry.
//
// The Controller never sees storage errors. When a write fails the
// in-memory state still reflects the change; failures are reported by the
// storage diagnostic sink, which must not call back into the Controller.
package controller

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/journal/pkg/core"
	"github.com/aretw0/journal/pkg/storage"
)

// Draft is the editable working copy of the selected entry.
type Draft struct {
	Title    string
	Content  string
	Tags     []string
	Category string
	Color    string
}

func draftOf(e core.Entry) Draft {
	return Draft{
		Title:    e.Title,
		Content:  e.Content,
		Tags:     slices.Clone(e.Tags),
		Category: e.Category,
		Color:    e.Color,
	}
}

func (d Draft) patch() core.EntryPatch {
	return core.EntryPatch{
		Title:    &d.Title,
		Content:  &d.Content,
		Tags:     slices.Clone(d.Tags),
		SetTags:  true,
		Category: &d.Category,
		Color:    &d.Color,
	}
}

// Controller is the application state of one journal session.
type Controller struct {
	storage *storage.Storage
	logger  *slog.Logger
	delay   time.Duration
	sched   Scheduler
	now     func() time.Time

	mu       sync.Mutex
	ctx      context.Context // used by timer-driven flushes
	loaded   bool
	closed   bool
	entries  []core.Entry
	folders  []core.Folder
	selected string
	draft    Draft
	filter   Filter
	pending  *pendingFlush
	flushes  int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDelay sets the autosave quiet period. Defaults to DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithScheduler replaces the timer source, mainly for tests.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithClock overrides the time source used for local timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a Controller. Call Load before using it.
func New(st *storage.Storage, opts ...Option) *Controller {
	c := &Controller{
		storage: st,
		logger:  slog.Default(),
		delay:   DefaultDelay,
		sched:   timeScheduler{},
		now:     time.Now,
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load reads entries and folders once and selects the first visible entry.
// Later calls are no-ops; use Reload to re-read storage.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return
	}
	c.ctx = context.WithoutCancel(ctx)
	c.entries = c.storage.Entries(ctx)
	c.folders = c.storage.Folders(ctx)
	c.loaded = true

	c.selectHeadLocked()
	c.logger.Debug("journal loaded", "entries", len(c.entries), "folders", len(c.folders))
}

// Reload writes pending work and re-reads storage. The selection is kept
// when the entry still exists.
func (c *Controller) Reload(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return
	}
	c.flushLocked(ctx)
	c.entries = c.storage.Entries(ctx)
	c.folders = c.storage.Folders(ctx)

	if c.filter.Folder != core.Root && c.folderIndex(c.filter.Folder) == -1 {
		c.filter.Folder = core.Root
	}
	if i := c.entryIndex(c.selected); i != -1 {
		c.draft = draftOf(c.entries[i])
		return
	}
	c.selectHeadLocked()
}

// Entries returns every entry, newest first.
func (c *Controller) Entries() []core.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Filter{AnyFolder: true}.Apply(c.entries)
}

// Visible returns the entries of the active folder that match the active
// tag and category filters.
func (c *Controller) Visible() []core.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter.Apply(c.entries)
}

// Folders returns every folder in creation order.
func (c *Controller) Folders() []core.Folder {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.folders)
}

// Selected returns the selected entry as last persisted, without the
// unsaved draft.
func (c *Controller) Selected() (core.Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.entryIndex(c.selected)
	if i == -1 {
		return core.Entry{}, false
	}
	return c.entries[i].Clone(), true
}

// Draft returns the working copy of the selected entry.
func (c *Controller) Draft() (Draft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected == "" {
		return Draft{}, false
	}
	d := c.draft
	d.Tags = slices.Clone(d.Tags)
	return d, true
}

// Filter returns the active list filter.
func (c *Controller) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// SetTitle edits the draft title.
func (c *Controller) SetTitle(title string) {
	c.edit(func(d *Draft) bool {
		if d.Title == title {
			return false
		}
		d.Title = title
		return true
	})
}

// SetContent edits the draft content.
func (c *Controller) SetContent(content string) {
	c.edit(func(d *Draft) bool {
		if d.Content == content {
			return false
		}
		d.Content = content
		return true
	})
}

// SetTags replaces the draft tags. Tags are trimmed and de-duplicated.
func (c *Controller) SetTags(tags []string) {
	tags = core.NormalizeTags(tags)
	c.edit(func(d *Draft) bool {
		if slices.Equal(d.Tags, tags) {
			return false
		}
		d.Tags = tags
		return true
	})
}

// AddTag appends one tag to the draft.
func (c *Controller) AddTag(tag string) {
	tag = strings.TrimSpace(tag)
	c.edit(func(d *Draft) bool {
		if tag == "" || slices.Contains(d.Tags, tag) {
			return false
		}
		d.Tags = append(slices.Clone(d.Tags), tag)
		return true
	})
}

// RemoveTag drops one tag from the draft.
func (c *Controller) RemoveTag(tag string) {
	c.edit(func(d *Draft) bool {
		if !slices.Contains(d.Tags, tag) {
			return false
		}
		d.Tags = slices.DeleteFunc(slices.Clone(d.Tags), func(t string) bool { return t == tag })
		if len(d.Tags) == 0 {
			d.Tags = nil
		}
		return true
	})
}

// SetCategory edits the draft category. An empty string clears it.
func (c *Controller) SetCategory(category string) {
	c.edit(func(d *Draft) bool {
		if d.Category == category {
			return false
		}
		d.Category = category
		return true
	})
}

// SetColor edits the draft color.
func (c *Controller) SetColor(color string) {
	c.edit(func(d *Draft) bool {
		if d.Color == color {
			return false
		}
		d.Color = color
		return true
	})
}

// edit applies fn to the draft and restarts the autosave timer when fn
// reports a change. Edits need a loaded session and a selection.
func (c *Controller) edit(fn func(d *Draft) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editLocked(fn)
}

func (c *Controller) editLocked(fn func(d *Draft) bool) {
	if !c.loaded || c.closed || c.selected == "" {
		return
	}
	if fn(&c.draft) {
		c.scheduleLocked()
	}
}

func (c *Controller) scheduleLocked() {
	if c.pending != nil {
		c.pending.timer.Stop()
	}
	p := &pendingFlush{id: c.selected}
	c.pending = p
	p.timer = c.sched.AfterFunc(c.delay, func() { c.fire(p) })
}

// fire runs a timer-driven flush. A timer that was superseded, cancelled
// or flushed early finds a different pending value and does nothing.
func (c *Controller) fire(p *pendingFlush) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != p {
		return
	}
	c.pending = nil
	c.persistDraftLocked(c.ctx, p.id)
}

// Flush writes the pending autosave now, if any.
func (c *Controller) Flush(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushLocked(ctx)
}

func (c *Controller) flushLocked(ctx context.Context) {
	p := c.pending
	if p == nil {
		return
	}
	p.timer.Stop()
	c.pending = nil
	c.persistDraftLocked(ctx, p.id)
}

// cancelLocked drops a pending autosave that targets id.
func (c *Controller) cancelLocked(id string) {
	if c.pending == nil || c.pending.id != id {
		return
	}
	c.pending.timer.Stop()
	c.pending = nil
	c.logger.Debug("autosave cancelled", "id", id)
}

// persistDraftLocked writes the draft to the entry with the given id and
// patches the in-memory entry with the result.
func (c *Controller) persistDraftLocked(ctx context.Context, id string) {
	if id != c.selected {
		c.logger.Warn("dropping autosave for unselected entry", "id", id)
		return
	}
	i := c.entryIndex(id)
	if i == -1 {
		return
	}

	patch := c.draft.patch()
	c.flushes++
	if stored, ok := c.storage.UpdateEntry(ctx, id, patch); ok {
		c.entries[i] = stored
	} else {
		patch.Apply(&c.entries[i])
		c.entries[i].UpdatedAt = c.stampLocked(c.entries[i].UpdatedAt)
	}
	c.logger.Debug("autosave", "id", id)
}

func (c *Controller) stampLocked(prev time.Time) time.Time {
	now := c.now()
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

// NewEntry creates an empty entry in the active folder, persists it at
// once and selects it.
func (c *Controller) NewEntry(ctx context.Context) (core.Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded || c.closed {
		return core.Entry{}, false
	}
	c.flushLocked(ctx)

	e := c.storage.NewEntry()
	e.Folder = c.filter.Folder
	c.storage.AddEntry(ctx, e)

	c.entries = slices.Insert(c.entries, 0, e)
	c.selectLocked(e.ID)
	return e.Clone(), true
}

// Select makes id the selected entry, after writing any pending autosave
// of the previous one. Unknown ids are ignored.
func (c *Controller) Select(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded || c.closed || c.entryIndex(id) == -1 {
		return false
	}
	if id == c.selected {
		return true
	}
	c.flushLocked(ctx)
	c.selectLocked(id)
	return true
}

// selectLocked copies the entry into the draft. It never schedules a flush.
func (c *Controller) selectLocked(id string) {
	i := c.entryIndex(id)
	if i == -1 {
		c.selected = ""
		c.draft = Draft{}
		return
	}
	c.selected = id
	c.draft = draftOf(c.entries[i])
}

func (c *Controller) selectHeadLocked() {
	if visible := c.filter.Apply(c.entries); len(visible) > 0 {
		c.selectLocked(visible[0].ID)
		return
	}
	c.selectLocked("")
}

// Delete removes an entry. A pending autosave for it is cancelled. When the
// selected entry is deleted the head of the visible list is selected.
func (c *Controller) Delete(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.entryIndex(id)
	if !c.loaded || c.closed || i == -1 {
		return false
	}
	c.cancelLocked(id)
	c.storage.DeleteEntry(ctx, id)
	c.entries = slices.Delete(c.entries, i, i+1)

	if c.selected == id {
		c.selectHeadLocked()
	}
	return true
}

// Close writes pending work. Afterwards edits, selection changes and
// deletes are ignored and no timer writes anything.
func (c *Controller) Close(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.flushLocked(ctx)
	c.closed = true
}

func (c *Controller) entryIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(c.entries, func(e core.Entry) bool { return e.ID == id })
}

func (c *Controller) folderIndex(ref core.FolderRef) int {
	id, ok := ref.ID()
	if !ok {
		return -1
	}
	return slices.IndexFunc(c.folders, func(f core.Folder) bool { return f.ID == id })
}
