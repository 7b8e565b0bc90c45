package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an entry",
	Long:  `Delete permanently removes an entry and its images.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		j := openJournal(ctx, false)
		defer closeJournal(ctx, j)

		e, err := findEntry(j.Controller.Entries(), args[0])
		if err != nil {
			fatal("Error deleting entry", err)
		}
		j.Controller.Delete(ctx, e.ID)
		fmt.Printf("Deleted %s\n", e.ID)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
