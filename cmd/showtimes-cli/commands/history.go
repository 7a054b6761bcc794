package commands

import (
	"time"

	"nyc-rep-showtimes/lib/snapshotstore"
	"nyc-rep-showtimes/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

var (
	historyDb    *string
	historyLimit *int
)

func init() {
	historyDb = historyCmd.Flags().String("db", "snapshots.db", "The snapshot database to read from.")
	historyLimit = historyCmd.Flags().Int("limit", 10, "The maximum number of runs to list.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history <source> [--db <path>] [--limit <n>]",
	Short: "Lists archived runs for a source, newest first.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := snapshotstore.Open(*historyDb)
		if err != nil {
			serviceutil.Fatal("failed to open snapshot db", err)
		}
		defer store.Close()

		entries, err := store.Pull(cmd.Context(), args[0], *historyLimit)
		if err != nil {
			serviceutil.Fatal("failed to read snapshots", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"fetched at", "films", "screenings"})
		for _, entry := range entries {
			t.AppendRow(table.Row{
				entry.FetchedAt.Format(time.RFC3339),
				len(entry.Document.Films),
				len(entry.Document.Screenings),
			})
		}
		t.Render()
	},
}
