package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move [id] [folder]",
	Short: "Move an entry to a folder",
	Long:  `Move an entry to a folder, given by name or id. Use "root" for the top level.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		j := openJournal(ctx, false)
		defer closeJournal(ctx, j)

		e, err := findEntry(j.Controller.Entries(), args[0])
		if err != nil {
			fatal("Error reading entry", err)
		}
		ref, err := findFolder(j.Controller.Folders(), args[1])
		if err != nil {
			fatal("Invalid folder", err)
		}
		j.Controller.MoveEntry(ctx, e.ID, ref)
		fmt.Printf("Moved %s to %s\n", e.ID, args[1])
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}
