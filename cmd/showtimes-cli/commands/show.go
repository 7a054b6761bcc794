package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"nyc-rep-showtimes/lib/schedule"
	"nyc-rep-showtimes/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <path/to/schedule.json>",
	Short: "Renders a schedule document as a table.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			serviceutil.Fatal("failed to read document", err)
		}
		var doc schedule.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			serviceutil.Fatal("failed to parse document", err)
		}

		fmt.Printf("%s (%s), fetched %s\n", doc.Theater.Name, doc.Source, doc.FetchedAt)

		t := newTable()
		t.AppendHeader(table.Row{"date", "time", "film", "status", "notes"})
		for _, screening := range doc.Screenings {
			title := ""
			if film, ok := doc.Films[screening.FilmID]; ok {
				title = film.Title
			}
			t.AppendRow(table.Row{
				screening.Date,
				screening.Time,
				title,
				screening.Status,
				screening.Notes,
			})
		}
		t.Render()
	},
}
