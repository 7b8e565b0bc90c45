package platform

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearJournalEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"JOURNAL_DIR", "JOURNAL_ADAPTER", "JOURNAL_DEBOUNCE", "JOURNAL_LOG_LEVEL", "JOURNAL_READ_ONLY"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		clearJournalEnv(t)
		dir := t.TempDir()

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, cfg.Dir)
		assert.Equal(t, AdapterFS, cfg.Adapter)
		assert.Equal(t, 500*time.Millisecond, cfg.Debounce)
		assert.Equal(t, slog.LevelInfo, cfg.Level())
		assert.False(t, cfg.ReadOnly)
	})

	t.Run("Config File", func(t *testing.T) {
		clearJournalEnv(t)
		dir := t.TempDir()
		content := "adapter: sqlite\ndebounce: 2s\nlog_level: debug\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0644))

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, AdapterSQLite, cfg.Adapter)
		assert.Equal(t, 2*time.Second, cfg.Debounce)
		assert.Equal(t, slog.LevelDebug, cfg.Level())
	})

	t.Run("Environment Overrides File", func(t *testing.T) {
		clearJournalEnv(t)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("adapter: sqlite\n"), 0644))
		t.Setenv("JOURNAL_ADAPTER", "memory")
		t.Setenv("JOURNAL_DEBOUNCE", "50ms")
		t.Setenv("JOURNAL_READ_ONLY", "true")

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, AdapterMemory, cfg.Adapter)
		assert.Equal(t, 50*time.Millisecond, cfg.Debounce)
		assert.True(t, cfg.ReadOnly)
	})

	t.Run("Directory From Environment", func(t *testing.T) {
		clearJournalEnv(t)
		dir := t.TempDir()
		t.Setenv("JOURNAL_DIR", dir)

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, dir, cfg.Dir)
	})

	t.Run("Invalid", func(t *testing.T) {
		tests := []struct {
			name string
			file string
			env  map[string]string
		}{
			{name: "Unknown Adapter", file: "adapter: s3\n"},
			{name: "Unknown Field", file: "adaptor: fs\n"},
			{name: "Bad Debounce", env: map[string]string{"JOURNAL_DEBOUNCE": "soon"}},
			{name: "Negative Debounce", file: "debounce: -1s\n"},
			{name: "Bad Read Only", env: map[string]string{"JOURNAL_READ_ONLY": "maybe"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				clearJournalEnv(t)
				dir := t.TempDir()
				if tt.file != "" {
					require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(tt.file), 0644))
				}
				for k, v := range tt.env {
					t.Setenv(k, v)
				}
				_, err := LoadConfig(dir)
				assert.Error(t, err)
			})
		}
	})
}
