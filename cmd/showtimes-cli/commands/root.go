package commands

import (
	"context"
	"fmt"
	"os"

	"nyc-rep-showtimes/lib/scrapers/filmforum"
	"nyc-rep-showtimes/lib/scrapers/metrograph"
	"nyc-rep-showtimes/services/showtimes"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "showtimes-cli",
	Short: "showtimes-cli scrapes and inspects repertory theater schedules.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newScraper(source string) (showtimes.Scraper, error) {
	switch source {
	case metrograph.Source:
		return metrograph.New(metrograph.Options{}), nil
	case filmforum.Source:
		return filmforum.New(filmforum.Options{}), nil
	}
	return nil, fmt.Errorf("unknown source %q, want %q or %q",
		source, metrograph.Source, filmforum.Source)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}
