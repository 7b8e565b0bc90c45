package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aretw0/journal/pkg/controller"
	"github.com/aretw0/journal/pkg/render"
	"github.com/aretw0/journal/pkg/storage"
)

var (
	listJSON     bool
	listTag      string
	listCategory string
	listFolder   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	Long: `List entries. --tag, --category and --folder combine: an entry is shown only
when it matches all of them. Without --folder every folder is listed.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		j := openJournal(ctx, true)
		defer closeJournal(ctx, j)

		folders := j.Controller.Folders()
		filter := controller.Filter{AnyFolder: true, Tag: listTag, Category: listCategory}
		if cmd.Flags().Changed("folder") {
			ref, err := findFolder(folders, listFolder)
			if err != nil {
				fatal("Invalid folder", err)
			}
			filter.Folder, filter.AnyFolder = ref, false
		}
		entries := filter.Apply(j.Controller.Entries())

		if listJSON {
			data, err := storage.MarshalEntries(entries)
			if err != nil {
				fatal("Error encoding JSON", err)
			}
			var out bytes.Buffer
			if err := json.Indent(&out, data, "", "  "); err != nil {
				fatal("Error encoding JSON", err)
			}
			out.WriteByte('\n')
			out.WriteTo(os.Stdout)
			return
		}

		if len(entries) == 0 {
			fmt.Println("No entries.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUPDATED\tTITLE\tFOLDER\tCATEGORY\tTAGS")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				e.ID,
				render.Timestamp(e.UpdatedAt),
				render.Title(e.Title),
				folderName(folders, e.Folder),
				e.Category,
				strings.Join(e.Tags, ","),
			)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Only entries with this tag")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Only entries in this category")
	listCmd.Flags().StringVarP(&listFolder, "folder", "f", "", "Only entries in this folder (name, id or root)")
}
