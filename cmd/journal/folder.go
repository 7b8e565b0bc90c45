package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aretw0/journal/pkg/controller"
	"github.com/aretw0/journal/pkg/core"
)

var folderColor string

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage folders",
}

var folderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List folders in creation order",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		j := openJournal(ctx, true)
		defer closeJournal(ctx, j)

		entries := j.Controller.Entries()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCOLOR\tENTRIES")
		fmt.Fprintf(w, "root\t-\t-\t%d\n", len(controller.Filter{Folder: core.Root}.Apply(entries)))
		for _, f := range j.Controller.Folders() {
			n := len(controller.Filter{Folder: f.Ref()}.Apply(entries))
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", f.ID, f.Name, f.Color, n)
		}
		w.Flush()
	},
}

var folderAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		j := openJournal(ctx, false)
		defer closeJournal(ctx, j)

		f, ok := j.Controller.CreateFolder(ctx, args[0], folderColor)
		if !ok {
			fatal("Failed to create folder", fmt.Errorf("invalid name %q", args[0]))
		}
		fmt.Println(f.ID)
	},
}

var folderRenameCmd = &cobra.Command{
	Use:   "rename [folder] [name]",
	Short: "Rename a folder",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		j := openJournal(ctx, false)
		defer closeJournal(ctx, j)

		id := mustFolderID(j.Controller.Folders(), args[0])
		if !j.Controller.RenameFolder(ctx, id, args[1]) {
			fatal("Failed to rename folder", fmt.Errorf("invalid name %q", args[1]))
		}
	},
}

var folderColorCmd = &cobra.Command{
	Use:   "color [folder] [color]",
	Short: "Change a folder's color",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		j := openJournal(ctx, false)
		defer closeJournal(ctx, j)

		id := mustFolderID(j.Controller.Folders(), args[0])
		j.Controller.SetFolderColor(ctx, id, args[1])
	},
}

var folderDeleteCmd = &cobra.Command{
	Use:   "delete [folder]",
	Short: "Delete a folder",
	Long:  `Delete a folder. Its entries are kept and moved to the root.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		j := openJournal(ctx, false)
		defer closeJournal(ctx, j)

		folders := j.Controller.Folders()
		id := mustFolderID(folders, args[0])
		moved := len(controller.Filter{Folder: core.InFolder(id)}.Apply(j.Controller.Entries()))
		j.Controller.DeleteFolder(ctx, id)
		fmt.Printf("Deleted folder %s (%d entries moved to root)\n", id, moved)
	},
}

func mustFolderID(folders []core.Folder, arg string) string {
	ref, err := findFolder(folders, arg)
	if err == nil && ref.IsRoot() {
		err = fmt.Errorf("the root is not a folder")
	}
	if err != nil {
		fatal("Invalid folder", err)
	}
	id, _ := ref.ID()
	return id
}

func init() {
	rootCmd.AddCommand(folderCmd)
	folderCmd.AddCommand(folderListCmd, folderAddCmd, folderRenameCmd, folderColorCmd, folderDeleteCmd)
	folderAddCmd.Flags().StringVar(&folderColor, "color", "", "Folder color")
}
