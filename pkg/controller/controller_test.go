package controller_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/journal/pkg/adapters/memory"
	"github.com/aretw0/journal/pkg/controller"
	"github.com/aretw0/journal/pkg/core"
	"github.com/aretw0/journal/pkg/storage"
)

type fakeTimer struct {
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// Fire runs the callback even if the timer was stopped, like a timer that
// fired just before Stop.
func (t *fakeTimer) Fire() { t.f() }

type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
	delays []time.Duration
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) controller.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{f: f}
	s.timers = append(s.timers, t)
	s.delays = append(s.delays, d)
	return t
}

func (s *fakeScheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// fireActive fires every timer that was not stopped.
func (s *fakeScheduler) fireActive() {
	s.mu.Lock()
	timers := append([]*fakeTimer(nil), s.timers...)
	s.mu.Unlock()
	for _, t := range timers {
		if !t.stopped {
			t.stopped = true
			t.Fire()
		}
	}
}

type fixture struct {
	store *memory.Store
	st    *storage.Storage
	sched *fakeScheduler
	ctrl  *controller.Controller
}

func newFixture(t *testing.T, seed ...core.Entry) *fixture {
	t.Helper()
	store := memory.NewStore()
	st := storage.New(store)
	if len(seed) > 0 {
		st.SaveEntries(context.Background(), seed)
	}
	sched := &fakeScheduler{}
	return &fixture{
		store: store,
		st:    st,
		sched: sched,
		ctrl:  controller.New(st, controller.WithScheduler(sched)),
	}
}

func (f *fixture) writes() int {
	return f.store.Writes(core.EntriesKey)
}

func (f *fixture) stored(t *testing.T, id string) core.Entry {
	t.Helper()
	for _, e := range f.st.Entries(context.Background()) {
		if e.ID == id {
			return e
		}
	}
	t.Fatalf("entry %s not stored", id)
	return core.Entry{}
}

func at(minute int) time.Time {
	return time.Date(2026, 1, 1, 10, minute, 0, 0, time.UTC)
}

func sampleEntries() []core.Entry {
	return []core.Entry{
		{ID: "e1", Title: "First", Content: "one", CreatedAt: at(3), UpdatedAt: at(3), Tags: []string{"work"}, Category: "Health", Color: core.DefaultColor},
		{ID: "e2", Title: "Second", Content: "two", CreatedAt: at(2), UpdatedAt: at(2), Tags: []string{"work"}, Category: "Work"},
		{ID: "e3", Title: "Third", Content: "three", CreatedAt: at(1), UpdatedAt: at(1), Tags: []string{"home"}, Category: "Health"},
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Selects First Entry", func(t *testing.T) {
		f := newFixture(t, sampleEntries()...)
		f.ctrl.Load(ctx)

		sel, ok := f.ctrl.Selected()
		require.True(t, ok)
		assert.Equal(t, "e1", sel.ID)

		d, ok := f.ctrl.Draft()
		require.True(t, ok)
		assert.Equal(t, "First", d.Title)
		assert.Equal(t, "one", d.Content)
		assert.Zero(t, f.sched.count(), "loading never schedules a flush")
	})

	t.Run("Empty Store", func(t *testing.T) {
		f := newFixture(t)
		f.ctrl.Load(ctx)

		_, ok := f.ctrl.Selected()
		assert.False(t, ok)
		assert.Empty(t, f.ctrl.Entries())

		f.ctrl.SetContent("ignored")
		assert.Zero(t, f.sched.count(), "no selection, no flush")
	})

	t.Run("Edits Before Load Are Ignored", func(t *testing.T) {
		f := newFixture(t, sampleEntries()...)
		f.ctrl.SetTitle("early")
		assert.Zero(t, f.sched.count())
	})

	t.Run("Only Once", func(t *testing.T) {
		f := newFixture(t, sampleEntries()...)
		f.ctrl.Load(ctx)
		f.st.SaveEntries(ctx, nil)
		f.ctrl.Load(ctx)
		assert.Len(t, f.ctrl.Entries(), 3)
	})
}

func TestDebounce(t *testing.T) {
	ctx := context.Background()

	t.Run("Burst Produces One Write With Final State", func(t *testing.T) {
		f := newFixture(t, sampleEntries()...)
		f.ctrl.Load(ctx)
		before := f.writes()

		f.ctrl.SetContent("a")
		f.ctrl.SetContent("ab")
		f.ctrl.SetContent("abc")
		assert.Equal(t, before, f.writes(), "edits are in-memory only")
		assert.Equal(t, 3, f.sched.count())
		assert.Equal(t, controller.DefaultDelay, f.sched.delays[0])

		f.sched.fireActive()
		assert.Equal(t, before+1, f.writes())
		assert.Equal(t, "abc", f.stored(t, "e1").Content)

		sel, _ := f.ctrl.Selected()
		assert.Equal(t, "abc", sel.Content)
		assert.True(t, sel.UpdatedAt.After(at(3)))
	})

	t.Run("Stale Timers Do Nothing", func(t *testing.T) {
		f := newFixture(t, sampleEntries()...)
		f.ctrl.Load(ctx)
		before := f.writes()

		f.ctrl.SetContent("a")
		f.ctrl.SetContent("ab")
		// The superseded timer fires late.
		f.sched.timers[0].Fire()
		assert.Equal(t, before, f.writes())

		f.sched.timers[1].Fire()
		f.sched.timers[1].Fire()
		assert.Equal(t, before+1, f.writes())
	})

	t.Run("Unchanged Value Does Not Schedule", func(t *testing.T) {
		f := newFixture(t, sampleEntries()...)
		f.ctrl.Load(ctx)

		f.ctrl.SetTitle("First")
		f.ctrl.SetColor(core.DefaultColor)
		f.ctrl.SetTags([]string{" work "})
		assert.Zero(t, f.sched.count())
	})

	t.Run("Every Tracked Field Is Persisted", func(t *testing.T) {
		f := newFixture(t, sampleEntries()...)
		f.ctrl.Load(ctx)

		f.ctrl.SetTitle("T")
		f.ctrl.AddTag("travel")
		f.ctrl.RemoveTag("work")
		f.ctrl.SetCategory("Travel")
		f.ctrl.SetColor("#ff0000")
		f.ctrl.Flush(ctx)

		got := f.stored(t, "e1")
		assert.Equal(t, "T", got.Title)
		assert.Equal(t, []string{"travel"}, got.Tags)
		assert.Equal(t, "Travel", got.Category)
		assert.Equal(t, "#ff0000", got.Color)
		assert.Equal(t, "one", got.Content)
		assert.True(t, got.CreatedAt.Equal(at(3)))
	})

	t.Run("Real Timer", func(t *testing.T) {
		store := memory.NewStore()
		st := storage.New(store)
		st.SaveEntries(ctx, sampleEntries())
		ctrl := controller.New(st, controller.WithDelay(10*time.Millisecond))
		ctrl.Load(ctx)
		before := store.Writes(core.EntriesKey)

		ctrl.SetContent("x")
		ctrl.SetContent("xy")

		require.Eventually(t, func() bool {
			return store.Writes(core.EntriesKey) == before+1
		}, time.Second, 5*time.Millisecond)
		assert.Equal(t, "xy", st.Entries(ctx)[0].Content)
	})
}

func TestSelect(t *testing.T) {
	ctx := context.Background()

	t.Run("Flushes Pending Edit Of Previous Entry", func(t *testing.T) {
		f := newFixture(t, sampleEntries()...)
		f.ctrl.Load(ctx)

		f.ctrl.SetContent("edited")
		require.True(t, f.ctrl.Select(ctx, "e2"))

		assert.Equal(t, "edited", f.stored(t, "e1").Content)
		assert.Equal(t, "two", f.stored(t, "e2").Content)

		d, _ := f.ctrl.Draft()
		assert.Equal(t, "Second", d.Title)
		assert.Equal(t, "two", d.Content)

		// The old timer fires after the switch: nothing is written.
		before := f.writes()
		f.sched.timers[0].Fire()
		assert.Equal(t, before, f.writes())
		assert.Equal(t, "two", f.stored(t, "e2").Content)
	})

	t.Run("Does Not Schedule", func(t *testing.T) {
		f := newFixture(t, sampleEntries()...)
		f.ctrl.Load(ctx)
		f.ctrl.Select(ctx, "e3")
		f.ctrl.Select(ctx, "e2")
		assert.Zero(t, f.sched.count())
	})

	t.Run("Unknown ID", func(t *testing.T) {
		f := newFixture(t, sampleEntries()...)
		f.ctrl.Load(ctx)
		assert.False(t, f.ctrl.Select(ctx, "nope"))
		sel, _ := f.ctrl.Selected()
		assert.Equal(t, "e1", sel.ID)
	})
}

func TestNewEntry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, sampleEntries()...)
	f.ctrl.Load(ctx)

	f.ctrl.SetTitle("pending")
	before := f.writes()

	e, ok := f.ctrl.NewEntry(ctx)
	require.True(t, ok)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, e.CreatedAt, e.UpdatedAt)
	assert.Equal(t, core.DefaultColor, e.Color)

	// One write for the pending edit, one for the new entry.
	assert.Equal(t, before+2, f.writes())
	assert.Equal(t, "pending", f.stored(t, "e1").Title)

	entries := f.ctrl.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, e.ID, entries[0].ID)
	assert.Equal(t, e.ID, f.st.Entries(ctx)[0].ID)

	sel, _ := f.ctrl.Selected()
	assert.Equal(t, e.ID, sel.ID)
	d, _ := f.ctrl.Draft()
	assert.Empty(t, d.Title)

	t.Run("Ids Are Unique", func(t *testing.T) {
		seen := map[string]bool{}
		for _, e := range f.ctrl.Entries() {
			assert.False(t, seen[e.ID])
			seen[e.ID] = true
		}
		next, _ := f.ctrl.NewEntry(ctx)
		assert.False(t, seen[next.ID])
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Cancels Pending Flush", func(t *testing.T) {
		f := newFixture(t, sampleEntries()...)
		f.ctrl.Load(ctx)

		f.ctrl.SetContent("never saved")
		require.True(t, f.ctrl.Delete(ctx, "e1"))
		before := f.writes()

		f.sched.timers[0].Fire()
		assert.Equal(t, before, f.writes())
		for _, e := range f.st.Entries(ctx) {
			assert.NotEqual(t, "e1", e.ID)
		}
	})

	t.Run("Selects Head Of Visible List", func(t *testing.T) {
		f := newFixture(t, sampleEntries()...)
		f.ctrl.Load(ctx)
		f.ctrl.FilterByTag("home")

		f.ctrl.Delete(ctx, "e1")
		sel, ok := f.ctrl.Selected()
		require.True(t, ok)
		assert.Equal(t, "e3", sel.ID)
	})

	t.Run("Clears Selection When Nothing Is Left", func(t *testing.T) {
		f := newFixture(t, sampleEntries()[:1]...)
		f.ctrl.Load(ctx)

		f.ctrl.Delete(ctx, "e1")
		_, ok := f.ctrl.Selected()
		assert.False(t, ok)
		_, ok = f.ctrl.Draft()
		assert.False(t, ok)
	})

	t.Run("Other Entry Keeps Selection", func(t *testing.T) {
		f := newFixture(t, sampleEntries()...)
		f.ctrl.Load(ctx)
		f.ctrl.SetContent("keep")

		f.ctrl.Delete(ctx, "e3")
		f.sched.fireActive()

		sel, _ := f.ctrl.Selected()
		assert.Equal(t, "e1", sel.ID)
		assert.Equal(t, "keep", f.stored(t, "e1").Content)
	})

	t.Run("Unknown ID", func(t *testing.T) {
		f := newFixture(t, sampleEntries()...)
		f.ctrl.Load(ctx)
		assert.False(t, f.ctrl.Delete(ctx, "nope"))
		assert.Len(t, f.ctrl.Entries(), 3)
	})
}

func TestFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, sampleEntries()...)
	f.ctrl.Load(ctx)

	ids := func() []string {
		var out []string
		for _, e := range f.ctrl.Visible() {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []string{"e1", "e2", "e3"}, ids())

	f.ctrl.FilterByTag("work")
	assert.Equal(t, []string{"e1", "e2"}, ids())

	f.ctrl.FilterByCategory("Health")
	assert.Equal(t, []string{"e1"}, ids(), "tag and category compose with AND")

	f.ctrl.FilterByTag("home")
	f.ctrl.FilterByCategory("Work")
	assert.Empty(t, ids())

	f.ctrl.ClearFilters()
	assert.Len(t, ids(), 3)
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, sampleEntries()...)
	f.ctrl.Load(ctx)

	f.ctrl.SetContent("last words")
	f.ctrl.Close(ctx)
	assert.Equal(t, "last words", f.stored(t, "e1").Content)

	before := f.writes()
	f.ctrl.SetContent("after close")
	f.sched.timers[0].Fire()
	assert.Equal(t, before, f.writes())
	assert.Equal(t, 1, f.sched.count())

	_, ok := f.ctrl.NewEntry(ctx)
	assert.False(t, ok)

	assert.False(t, f.ctrl.Select(ctx, "e2"))
	sel, ok := f.ctrl.Selected()
	require.True(t, ok)
	assert.Equal(t, "e1", sel.ID)

	assert.False(t, f.ctrl.Delete(ctx, "e2"))
	assert.Len(t, f.ctrl.Entries(), 3)
	assert.Equal(t, before, f.writes(), "nothing is written after close")

	state, ok := f.ctrl.State().(controller.State)
	require.True(t, ok)
	assert.True(t, state.Closed)
	assert.False(t, state.Pending)
	assert.Equal(t, 1, state.Flushes)
}

func TestUnavailableStore(t *testing.T) {
	ctx := context.Background()
	var reported []error
	st := storage.New(nil, storage.WithErrorHandler(func(err error) { reported = append(reported, err) }))
	sched := &fakeScheduler{}
	ctrl := controller.New(st, controller.WithScheduler(sched))

	ctrl.Load(ctx)
	assert.Empty(t, ctrl.Entries())

	e, ok := ctrl.NewEntry(ctx)
	require.True(t, ok, "the session keeps working in memory")

	ctrl.SetContent("draft")
	sched.fireActive()

	sel, ok := ctrl.Selected()
	require.True(t, ok)
	assert.Equal(t, e.ID, sel.ID)
	assert.Equal(t, "draft", sel.Content)
	assert.True(t, sel.UpdatedAt.After(sel.CreatedAt))
	assert.NotEmpty(t, reported)
}

func TestReload(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, sampleEntries()...)
	f.ctrl.Load(ctx)
	f.ctrl.SetTitle("mine")

	f.ctrl.Reload(ctx)
	assert.Equal(t, "mine", f.stored(t, "e1").Title)

	// Another writer replaces the collection.
	entries := sampleEntries()
	f.st.SaveEntries(ctx, entries[1:])
	f.ctrl.Reload(ctx)

	assert.Len(t, f.ctrl.Entries(), 2)
	sel, _ := f.ctrl.Selected()
	assert.Equal(t, "e2", sel.ID)
}
