package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/journal/pkg/media"
)

var imageRef bool

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage images attached to an entry",
	Long: `Images are stored inline in the entry as data URLs, so large files grow the
journal file quickly.`,
}

var imageAddCmd = &cobra.Command{
	Use:   "add [id] [file]",
	Short: "Attach an image file",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		dataURL, filename, err := media.EncodeFile(args[1])
		if err != nil {
			fatal("Failed to read image", err)
		}

		ctx := context.Background()
		j := openJournal(ctx, false)
		defer closeJournal(ctx, j)

		e, err := findEntry(j.Controller.Entries(), args[0])
		if err != nil {
			fatal("Error reading entry", err)
		}
		j.Controller.Select(ctx, e.ID)

		img, ok := j.Controller.AddImage(ctx, dataURL, filename)
		if !ok {
			fatal("Failed to attach image", fmt.Errorf("entry %s", e.ID))
		}
		if imageRef {
			if err := j.Controller.InsertImageReference(img.ID); err != nil {
				fatal("Failed to insert reference", err)
			}
		}
		fmt.Println(img.ID)
	},
}

var imageRemoveCmd = &cobra.Command{
	Use:   "rm [id] [image-id]",
	Short: "Detach an image",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		j := openJournal(ctx, false)
		defer closeJournal(ctx, j)

		e, err := findEntry(j.Controller.Entries(), args[0])
		if err != nil {
			fatal("Error reading entry", err)
		}
		j.Controller.Select(ctx, e.ID)
		if !j.Controller.RemoveImage(ctx, args[1]) {
			fatal("Failed to remove image", fmt.Errorf("image %s not found", args[1]))
		}
	},
}

var imageRefCmd = &cobra.Command{
	Use:   "ref [id] [image-id]",
	Short: "Append a markdown reference to an image to the content",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		j := openJournal(ctx, false)
		defer closeJournal(ctx, j)

		e, err := findEntry(j.Controller.Entries(), args[0])
		if err != nil {
			fatal("Error reading entry", err)
		}
		j.Controller.Select(ctx, e.ID)
		if err := j.Controller.InsertImageReference(args[1]); err != nil {
			fatal("Failed to insert reference", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.AddCommand(imageAddCmd, imageRemoveCmd, imageRefCmd)
	imageAddCmd.Flags().BoolVar(&imageRef, "ref", false, "Also append a markdown reference to the content")
}
