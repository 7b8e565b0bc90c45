package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/journal/pkg/render"
)

var showHTML bool

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show an entry",
	Long:  `Show an entry's metadata and markdown content, or its rendered HTML with --html. The id may be a unique prefix.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		j := openJournal(ctx, true)
		defer closeJournal(ctx, j)

		e, err := findEntry(j.Controller.Entries(), args[0])
		if err != nil {
			fatal("Error reading entry", err)
		}

		if showHTML {
			html, err := render.Markdown(e.Content)
			if err != nil {
				fatal("Error rendering entry", err)
			}
			fmt.Print(html)
			return
		}

		fmt.Printf("# %s\n", render.Title(e.Title))
		fmt.Printf("id:       %s\n", e.ID)
		fmt.Printf("created:  %s\n", render.Timestamp(e.CreatedAt))
		fmt.Printf("updated:  %s\n", render.Timestamp(e.UpdatedAt))
		if name := folderName(j.Controller.Folders(), e.Folder); name != "" {
			fmt.Printf("folder:   %s\n", name)
		}
		if e.Category != "" {
			fmt.Printf("category: %s\n", e.Category)
		}
		if len(e.Tags) > 0 {
			fmt.Printf("tags:     %s\n", strings.Join(e.Tags, ", "))
		}
		fmt.Printf("color:    %s\n", e.Color)
		for _, img := range e.Images {
			fmt.Printf("image:    %s %s (%d bytes inline)\n", img.ID, img.Filename, len(img.DataURL))
		}
		fmt.Println()
		fmt.Println(e.Content)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showHTML, "html", false, "Render the content as HTML")
}
