package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/journal"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of journal",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("journal version %s\n", journal.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
