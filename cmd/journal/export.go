package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/journal/pkg/core"
	"github.com/aretw0/journal/pkg/export"
)

var importPattern string

var exportCmd = &cobra.Command{
	Use:   "export [dir]",
	Short: "Write every entry as a markdown file with frontmatter",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		j := openJournal(ctx, true)
		defer closeJournal(ctx, j)

		res, err := export.Write(args[0], j.Controller.Entries(), j.Controller.Folders(), slog.Default())
		if err != nil {
			fatal("Export failed", err)
		}
		fmt.Printf("Exported %d entries to %s\n", res.Count, args[0])
		for _, id := range res.Skipped {
			fmt.Printf("skipped: %s\n", id)
		}
	},
}

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Add entries from exported markdown files",
	Long: `Read markdown files written by export and add the entries whose id is not
in the journal yet. Folder references to unknown folders are dropped.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		entries, res, err := export.Read(args[0], importPattern, slog.Default())
		if err != nil {
			fatal("Import failed", err)
		}

		ctx := context.Background()
		j := openJournal(ctx, false)
		defer closeJournal(ctx, j)

		known := make(map[string]bool)
		for _, f := range j.Storage.Folders(ctx) {
			known[f.ID] = true
		}

		for i, e := range entries {
			if id, ok := e.Folder.ID(); ok && !known[id] {
				entries[i].Folder = core.Root
			}
		}
		added := j.Storage.ImportEntries(ctx, entries)
		j.Controller.Reload(ctx)

		fmt.Printf("Imported %d of %d entries\n", added, res.Count)
		for _, name := range res.Skipped {
			fmt.Printf("skipped: %s\n", name)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	importCmd.Flags().StringVar(&importPattern, "pattern", "", "Glob of files to read (default **/*.md)")
}
