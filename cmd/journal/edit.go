package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	editTitle       string
	editContent     string
	editContentFile string
	editTags        []string
	editAddTags     []string
	editRemoveTags  []string
	editCategory    string
	editColor       string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an entry",
	Long: `Edit the fields of an entry. Only the flags given are changed. The edits go
through the autosave and are written once when the command exits.
--content-file - reads the content from stdin.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		j := openJournal(ctx, false)
		defer closeJournal(ctx, j)
		ctrl := j.Controller

		e, err := findEntry(ctrl.Entries(), args[0])
		if err != nil {
			fatal("Error reading entry", err)
		}
		ctrl.Select(ctx, e.ID)

		flags := cmd.Flags()
		if flags.Changed("title") {
			ctrl.SetTitle(editTitle)
		}
		if flags.Changed("content") {
			ctrl.SetContent(editContent)
		}
		if editContentFile != "" {
			content, err := readContent(editContentFile)
			if err != nil {
				fatal("Failed to read content", err)
			}
			ctrl.SetContent(content)
		}
		if flags.Changed("tag") {
			ctrl.SetTags(editTags)
		}
		for _, tag := range editAddTags {
			ctrl.AddTag(tag)
		}
		for _, tag := range editRemoveTags {
			ctrl.RemoveTag(tag)
		}
		if flags.Changed("category") {
			ctrl.SetCategory(editCategory)
		}
		if flags.Changed("color") {
			ctrl.SetColor(editColor)
		}

		fmt.Println(e.ID)
	},
}

func readContent(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New markdown content")
	editCmd.Flags().StringVar(&editContentFile, "content-file", "", "Read the content from a file (- for stdin)")
	editCmd.Flags().StringSliceVar(&editTags, "tag", nil, "Replace all tags (repeatable)")
	editCmd.Flags().StringSliceVar(&editAddTags, "add-tag", nil, "Add a tag (repeatable)")
	editCmd.Flags().StringSliceVar(&editRemoveTags, "rm-tag", nil, "Remove a tag (repeatable)")
	editCmd.Flags().StringVar(&editCategory, "category", "", "Category (empty clears it)")
	editCmd.Flags().StringVar(&editColor, "color", "", "Color")
}
