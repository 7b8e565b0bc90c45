package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/journal/pkg/controller"
	"github.com/aretw0/journal/pkg/core"
)

// options holds the internal configuration for a journal.
type options struct {
	store     core.Store
	logger    *slog.Logger
	adapter   string
	debounce  time.Duration
	scheduler controller.Scheduler
	config    map[string]interface{}
}

// Option defines a functional option for configuring a journal.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:  AdapterFS,
		debounce: controller.DefaultDelay,
		config:   make(map[string]interface{}),
	}
}

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
	AdapterMemory = "memory"
)

// WithAdapter selects the storage backend by name: "fs" (default),
// "sqlite" or "memory".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithStore injects a custom store. The adapter setting is ignored.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDebounce sets the autosave quiet period.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithScheduler replaces the autosave timer source.
func WithScheduler(s controller.Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithErrorHandler registers the diagnostic sink for storage failures. The
// fs store also reports watcher failures to it.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["error_handler"] = fn
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithMustExist ensures the store directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Writes are rejected by the store with ErrReadOnly.
// 2. No directory or schema is created.
// 3. Dev Safety Lock (go run temp dir) is BYPASSED (uses real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test`. By default (true) the store is redirected to a temporary
// directory so development runs never touch a real journal.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}
