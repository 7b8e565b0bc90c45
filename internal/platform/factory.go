package platform

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/journal/pkg/adapters/fs"
	"github.com/aretw0/journal/pkg/adapters/memory"
	"github.com/aretw0/journal/pkg/adapters/sqlite"
	"github.com/aretw0/journal/pkg/controller"
	"github.com/aretw0/journal/pkg/core"
	"github.com/aretw0/journal/pkg/storage"
)

// DatabaseFile is the SQLite file name inside the store directory.
const DatabaseFile = "journal.db"

// Journal wires a store, the storage module and a controller together.
type Journal struct {
	Path       string
	Store      core.Store
	Storage    *storage.Storage
	Controller *controller.Controller

	logger *slog.Logger
}

// New opens the journal at uri and builds its components. The controller
// is not loaded yet; call Load.
//
//	j, err := journal.New("./notes", journal.WithAdapter("sqlite"))
func New(uri string, opts ...Option) (*Journal, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	store, path, err := initStore(uri, o)
	if err != nil {
		return nil, err
	}

	onError, _ := o.config["error_handler"].(func(error))
	st := storage.New(store,
		storage.WithLogger(logger),
		storage.WithErrorHandler(onError),
	)

	ctrlOpts := []controller.Option{
		controller.WithLogger(logger),
		controller.WithDelay(o.debounce),
	}
	if o.scheduler != nil {
		ctrlOpts = append(ctrlOpts, controller.WithScheduler(o.scheduler))
	}

	return &Journal{
		Path:       path,
		Store:      store,
		Storage:    st,
		Controller: controller.New(st, ctrlOpts...),
		logger:     logger,
	}, nil
}

// Init creates and initializes only the store for uri.
func Init(uri string, opts ...Option) (core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	store, _, err := initStore(uri, o)
	return store, err
}

// Load reads the journal into the controller.
func (j *Journal) Load(ctx context.Context) {
	j.Controller.Load(ctx)
}

// Watch streams external changes of the store, when it supports it.
func (j *Journal) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	w, ok := j.Store.(core.Watchable)
	if !ok {
		return nil, fmt.Errorf("store %T does not support watching", j.Store)
	}
	return w.Watch(ctx, pattern)
}

// Close writes pending edits and releases the store.
func (j *Journal) Close(ctx context.Context) error {
	j.Controller.Close(ctx)
	if c, ok := j.Store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func initStore(uri string, o *options) (core.Store, string, error) {
	if o.store != nil {
		if err := o.store.Initialize(context.Background()); err != nil {
			return nil, "", err
		}
		return o.store, uri, nil
	}

	var (
		store core.Store
		path  string
		err   error
	)
	switch o.adapter {
	case AdapterFS:
		store, path = initFS(uri, o)
	case AdapterSQLite:
		store, path, err = initSQLite(uri, o)
	case AdapterMemory:
		store = memory.NewStore()
	default:
		return nil, "", fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, "", err
	}

	if err := store.Initialize(context.Background()); err != nil {
		if c, ok := store.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, "", err
	}
	return store, path, nil
}

// resolvePath applies the dev sandbox rules to uri.
func resolvePath(uri string, o *options) (string, bool) {
	tempDir, _ := o.config["temp_dir"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// Read-only runs cannot damage anything.
	bypassSafety := readOnly || !devSafety
	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolved := ResolveStorePath(uri, useTemp)

	if o.logger != nil && IsDevRun() {
		switch {
		case readOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolved)
		case bypassSafety:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		default:
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolved)
		}
	}
	if o.logger != nil && useTemp && resolved != uri {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", uri, "resolved_path", resolved)
	}
	return resolved, readOnly
}

func initFS(uri string, o *options) (core.Store, string) {
	path, readOnly := resolvePath(uri, o)
	mustExist, _ := o.config["must_exist"].(bool)
	errorHandler, _ := o.config["error_handler"].(func(error))

	return fs.NewStore(fs.Config{
		Path:         path,
		MustExist:    mustExist,
		ReadOnly:     readOnly,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	}), path
}

func initSQLite(uri string, o *options) (core.Store, string, error) {
	dir, readOnly := resolvePath(uri, o)
	mustExist, _ := o.config["must_exist"].(bool)

	if !readOnly && !mustExist {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, "", fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	path := filepath.Join(dir, DatabaseFile)
	if readOnly || mustExist {
		if _, err := os.Stat(path); err != nil {
			return nil, "", fmt.Errorf("database not found: %w", err)
		}
	}

	store, err := sqlite.Open(sqlite.Config{Path: path, ReadOnly: readOnly, Logger: o.logger})
	if err != nil {
		return nil, "", err
	}
	return store, dir, nil
}
