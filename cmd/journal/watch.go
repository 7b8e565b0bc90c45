package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes made to the journal by other processes",
	Long: `Watch the journal directory and print every change to its slots until
interrupted. Only the fs adapter supports watching.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		j := openJournal(ctx, true)
		defer closeJournal(context.Background(), j)

		events, err := j.Watch(ctx, watchPattern)
		if err != nil {
			fatal("Failed to watch journal", err)
		}
		fmt.Printf("Watching %s (%d entries)\n", j.Path, len(j.Controller.Entries()))

		for e := range events {
			j.Controller.Reload(ctx)
			fmt.Printf("%s (%d entries)\n", e, len(j.Controller.Entries()))
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "journal-*", "Slot keys to watch (glob)")
}
