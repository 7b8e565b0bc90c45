package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/journal"
)

var (
	verbose     bool
	dirFlag     string
	adapterFlag string

	cfg journal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "A local-first markdown journal",
	Long: `journal keeps dated markdown entries, organized with folders, tags,
categories and colors, in a directory on this machine. Nothing leaves it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		cfg, err = journal.LoadConfig(dirFlag)
		if err != nil {
			fatal("Invalid configuration", err)
		}
		if adapterFlag != "" {
			cfg.Adapter = adapterFlag
		}

		level := cfg.Level()
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", "", "Journal directory (default: $JOURNAL_DIR, nearest journal root or user config dir)")
	rootCmd.PersistentFlags().StringVar(&adapterFlag, "adapter", "", "Storage adapter: fs, sqlite or memory")
}

// openJournal opens and loads the configured journal. Read-only commands
// open an existing journal without write access.
func openJournal(ctx context.Context, readOnly bool) *journal.Journal {
	opts := append(cfg.Options(),
		journal.WithLogger(slog.Default()),
		journal.WithErrorHandler(func(err error) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}),
	)
	if readOnly && journalExists() {
		opts = append(opts, journal.WithReadOnly(true))
	}

	j, err := journal.New(cfg.Dir, opts...)
	if err != nil {
		fatal("Failed to open journal", err)
	}
	j.Load(ctx)
	return j
}

// closeJournal flushes pending edits.
func closeJournal(ctx context.Context, j *journal.Journal) {
	if err := j.Close(ctx); err != nil {
		fatal("Failed to close journal", err)
	}
}

func journalExists() bool {
	path := cfg.Dir
	switch cfg.Adapter {
	case journal.AdapterSQLite:
		path = filepath.Join(cfg.Dir, journal.DatabaseFile)
	case journal.AdapterMemory:
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
