package platform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/journal/pkg/controller"
)

// ConfigFile is the optional per-journal configuration file, read from the
// store directory.
const ConfigFile = "journal.yaml"

// Config holds the settings read from the environment and journal.yaml.
type Config struct {
	Dir      string        `yaml:"-"`
	Adapter  string        `yaml:"adapter"`
	Debounce time.Duration `yaml:"debounce"`
	LogLevel string        `yaml:"log_level"`
	ReadOnly bool          `yaml:"read_only"`
}

// LoadConfig resolves the journal directory and its settings.
//
// The directory is dir if set, else $JOURNAL_DIR, else the nearest journal
// root above the working directory, else DefaultDir. Settings come from
// journal.yaml in that directory, then JOURNAL_* environment variables.
// A .env file in the working directory is loaded first; variables already
// set take precedence over it.
func LoadConfig(dir string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Adapter:  AdapterFS,
		Debounce: controller.DefaultDelay,
		LogLevel: "info",
	}

	cfg.Dir = dir
	if cfg.Dir == "" {
		cfg.Dir = os.Getenv("JOURNAL_DIR")
	}
	if cfg.Dir == "" {
		if root, err := FindRoot("."); err == nil {
			cfg.Dir = root
		}
	}
	if cfg.Dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return Config{}, err
		}
		cfg.Dir = d
	}

	if err := cfg.readFile(filepath.Join(cfg.Dir, ConfigFile)); err != nil {
		return Config{}, err
	}

	cfg.Adapter = getEnv("JOURNAL_ADAPTER", cfg.Adapter)
	cfg.LogLevel = getEnv("JOURNAL_LOG_LEVEL", cfg.LogLevel)
	if v := os.Getenv("JOURNAL_DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("JOURNAL_DEBOUNCE must be a duration: %w", err)
		}
		cfg.Debounce = d
	}
	if v := os.Getenv("JOURNAL_READ_ONLY"); v != "" {
		ro, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("JOURNAL_READ_ONLY must be a boolean: %w", err)
		}
		cfg.ReadOnly = ro
	}

	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	return nil
}

// Validate checks the adapter name and debounce delay.
func (c Config) Validate() error {
	switch c.Adapter {
	case AdapterFS, AdapterSQLite, AdapterMemory:
	default:
		return fmt.Errorf("unknown adapter: %s", c.Adapter)
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %s", c.Debounce)
	}
	return nil
}

// Level maps LogLevel to a slog level. Unknown names mean info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Options converts the configuration into journal options.
func (c Config) Options() []Option {
	return []Option{
		WithAdapter(c.Adapter),
		WithDebounce(c.Debounce),
		WithReadOnly(c.ReadOnly),
	}
}

// DefaultDir is the journal directory used when nothing else is configured.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(base, "journal"), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
