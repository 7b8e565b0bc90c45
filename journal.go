package journal

import (
	"log/slog"
	"time"

	"github.com/aretw0/journal/internal/platform"
	"github.com/aretw0/journal/pkg/controller"
	"github.com/aretw0/journal/pkg/core"
)

// --- Types ---

// Journal bundles a store, the storage module and a controller.
type Journal = platform.Journal

// Config holds settings read from the environment and journal.yaml.
type Config = platform.Config

// Entry is a single journal note.
type Entry = core.Entry

// Folder is a named group of entries.
type Folder = core.Folder

// --- Configuration ---

// ConfigFile is the optional per-journal configuration file.
const ConfigFile = platform.ConfigFile

// DatabaseFile is the SQLite file name inside the journal directory.
const DatabaseFile = platform.DatabaseFile

// Option defines a functional option for configuring a journal.
type Option = platform.Option

// Adapter names.
const (
	AdapterFS     = platform.AdapterFS
	AdapterSQLite = platform.AdapterSQLite
	AdapterMemory = platform.AdapterMemory
)

// WithAdapter selects the storage backend by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithStore injects a custom store.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithDebounce sets the autosave quiet period.
func WithDebounce(d time.Duration) Option {
	return platform.WithDebounce(d)
}

// WithScheduler replaces the autosave timer source.
func WithScheduler(s controller.Scheduler) Option {
	return platform.WithScheduler(s)
}

// WithErrorHandler registers the diagnostic sink for storage failures.
func WithErrorHandler(fn func(error)) Option {
	return platform.WithErrorHandler(fn)
}

// WithForceTemp forces the use of a temporary directory.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist ensures the store directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the `go run` sandbox.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// New opens the journal at path.
func New(path string, opts ...Option) (*Journal, error) {
	return platform.New(path, opts...)
}

// Init initializes a store explicitly.
func Init(path string, opts ...Option) (core.Store, error) {
	return platform.Init(path, opts...)
}

// LoadConfig resolves the journal directory and settings.
func LoadConfig(dir string) (Config, error) {
	return platform.LoadConfig(dir)
}

// --- Safety & Utils ---

// ResolveStorePath determines the actual store directory based on safety rules.
func ResolveStorePath(userPath string, forceTemp bool) string {
	return platform.ResolveStorePath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards for a journal directory.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
