package commands

import (
	"nyc-rep-showtimes/lib/restyutil"
	"nyc-rep-showtimes/lib/util/serviceutil"
	"nyc-rep-showtimes/services/showtimes"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var (
	fetchOut       *string
	fetchDebugHttp *bool
)

func init() {
	fetchOut = fetchCmd.Flags().String("out", "", "The file to write the schedule to, defaults to <source>.json.")
	fetchDebugHttp = fetchCmd.Flags().Bool("debug-http", false, "Dump raw HTTP exchanges to .dev/resty for inspection.")
	rootCmd.AddCommand(fetchCmd)
}

type clientScraper interface {
	showtimes.Scraper
	Client() *resty.Client
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <source> [--out <path>] [--debug-http]",
	Short: "Scrapes one source and writes its schedule document.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scraper, err := newScraper(args[0])
		if err != nil {
			serviceutil.Fatal("invalid source", err)
		}

		if *fetchDebugHttp {
			if s, ok := scraper.(clientScraper); ok {
				restyutil.NewFilesystemOutput(".dev/resty").Attach(s.Client())
			}
		}

		out := *fetchOut
		if out == "" {
			out = scraper.Source() + ".json"
		}

		pipeline := showtimes.NewPipeline(scraper, out, nil)
		if err := pipeline.Run(cmd.Context()); err != nil {
			serviceutil.Fatal("scrape failed", err)
		}
	},
}
