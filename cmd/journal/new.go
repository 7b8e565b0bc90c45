package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/journal/pkg/core"
)

var (
	newTitle    string
	newContent  string
	newTags     []string
	newCategory string
	newColor    string
	newFolder   string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an entry",
	Long:  `Create an entry and print its id. Fields not given keep their defaults.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		j := openJournal(ctx, false)
		defer closeJournal(ctx, j)
		ctrl := j.Controller

		if newFolder != "" {
			ref, err := findFolder(ctrl.Folders(), newFolder)
			if err != nil {
				fatal("Invalid folder", err)
			}
			ctrl.OpenFolder(ref)
		}

		e, ok := ctrl.NewEntry(ctx)
		if !ok {
			fatal("Failed to create entry", core.ErrUnavailable)
		}

		ctrl.SetTitle(newTitle)
		ctrl.SetContent(newContent)
		ctrl.SetTags(newTags)
		ctrl.SetCategory(newCategory)
		if cmd.Flags().Changed("color") {
			ctrl.SetColor(newColor)
		}

		fmt.Println(e.ID)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newTitle, "title", "t", "", "Entry title")
	newCmd.Flags().StringVarP(&newContent, "content", "c", "", "Markdown content")
	newCmd.Flags().StringSliceVar(&newTags, "tag", nil, "Tag (repeatable)")
	newCmd.Flags().StringVar(&newCategory, "category", "", "Category")
	newCmd.Flags().StringVar(&newColor, "color", core.DefaultColor, "Color")
	newCmd.Flags().StringVarP(&newFolder, "folder", "f", "", "Folder name or id")
}
