package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/journal/pkg/core"
)

// SlotExt is the file extension of slot files.
const SlotExt = ".json"

// Config holds the configuration for the filesystem store.
type Config struct {
	Path         string
	MustExist    bool
	ReadOnly     bool
	Logger       *slog.Logger
	ErrorHandler func(error) // Receives watcher failures.
}

// Store implements core.Store with one file per slot inside a directory.
//
// Layout:
//
//	{Path}/journal-entries.json
//	{Path}/journal-folders.json
type Store struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastWrite     *time.Time
	writes        int
}

// NewStore creates a new filesystem-backed store. No I/O happens until
// Initialize is called.
func NewStore(config Config) *Store {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Store{
		Path:   config.Path,
		config: config,
	}
}

// Initialize makes sure the store directory exists.
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("store path does not exist: %s", s.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat store path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("store path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

// Read returns the contents of the slot file.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	filename, err := s.slotPath(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return data, nil
}

// Write replaces the slot file atomically.
func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}

	filename, err := s.slotPath(key)
	if err != nil {
		return err
	}

	if err := WriteFileAtomic(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}

	s.recordWrite()
	s.config.Logger.Debug("slot written", "key", key, "bytes", len(data))
	return nil
}

func (s *Store) slotPath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(s.Path, key+SlotExt), nil
}

// keyFromPath maps a file path back to its slot key.
func (s *Store) keyFromPath(path string) (string, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, TempFilePrefix) || filepath.Ext(base) != SlotExt {
		return "", false
	}
	return strings.TrimSuffix(base, SlotExt), true
}

func (s *Store) recordWrite() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastWrite = &now
	s.writes++
}

var _ core.Store = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
