package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/journal"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a journal directory with a journal.yaml",
	Long: `Create a journal in dir (default: current directory). The journal.yaml written
there records the adapter and autosave delay, and marks the directory as a
journal root for commands run below it.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		dir = journal.ResolveStorePath(dir, journal.IsDevRun())

		path := filepath.Join(dir, journal.ConfigFile)
		if _, err := os.Stat(path); err == nil {
			fatal("Refusing to overwrite", fmt.Errorf("%s already exists", path))
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			fatal("Failed to create directory", err)
		}

		data, err := yaml.Marshal(struct {
			Adapter  string `yaml:"adapter"`
			Debounce string `yaml:"debounce"`
		}{
			Adapter:  cfg.Adapter,
			Debounce: cfg.Debounce.Round(time.Millisecond).String(),
		})
		if err != nil {
			fatal("Failed to encode config", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			fatal("Failed to write config", err)
		}

		store, err := journal.Init(dir, journal.WithAdapter(cfg.Adapter), journal.WithDevSafety(false))
		if err != nil {
			fatal("Failed to initialize store", err)
		}
		if c, ok := store.(io.Closer); ok {
			c.Close()
		}
		fmt.Println("Initialized empty journal in", dir)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
