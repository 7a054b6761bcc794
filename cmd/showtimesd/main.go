package main

import (
	"log/slog"
	"os"

	"nyc-rep-showtimes/lib/configutil"
	"nyc-rep-showtimes/lib/scrapers/filmforum"
	"nyc-rep-showtimes/lib/scrapers/metrograph"
	"nyc-rep-showtimes/lib/snapshotstore"
	"nyc-rep-showtimes/lib/telemetry"
	"nyc-rep-showtimes/lib/util/serviceutil"
	"nyc-rep-showtimes/services/showtimes"
)

type SourceConfig struct {
	// overrides the live showtimes page, mostly for staging runs
	Url string `json:"url"`
	// the path the schedule document is written to
	Output string `json:"output"`
}

type Config struct {
	Metrograph SourceConfig `json:"metrograph"`
	Filmforum  SourceConfig `json:"filmforum"`
	// when set, every successful run is archived here
	SnapshotDb string `json:"snapshot_db"`
}

func (c Config) withDefaults() Config {
	if c.Metrograph.Output == "" {
		c.Metrograph.Output = "docs/metrograph.json"
	}
	if c.Filmforum.Output == "" {
		c.Filmforum.Output = "docs/filmforum.json"
	}
	return c
}

func main() {
	os.Exit(run())
}

// run holds every defer; os.Exit in main would skip any registered there,
// and telemetry only flushes its batched spans/metrics on Shutdown
func run() int {
	ctx := serviceutil.SignalContext()

	telemetry.InitSlog(false)
	tel, err := telemetry.SetupFromEnv(ctx, "showtimesd")
	if err != nil && !os.IsNotExist(err) {
		slog.Error("failed to setup telemetry", "err", err)
		return 1
	}
	defer tel.Shutdown(ctx)

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		slog.Error("failed to read config", "err", err)
		return 1
	}
	config = config.withDefaults()

	var snapshots *snapshotstore.Store
	if config.SnapshotDb != "" {
		store, err := snapshotstore.Open(config.SnapshotDb)
		if err != nil {
			slog.Error("failed to open snapshot db", "err", err)
			return 1
		}
		defer store.Close()
		snapshots = &store
	}

	pipelines := []showtimes.Pipeline{
		showtimes.NewPipeline(
			metrograph.New(metrograph.Options{URL: config.Metrograph.Url}),
			config.Metrograph.Output,
			snapshots,
		),
		showtimes.NewPipeline(
			filmforum.New(filmforum.Options{URL: config.Filmforum.Url}),
			config.Filmforum.Output,
			snapshots,
		),
	}

	exitCode := 0
	for _, pipeline := range pipelines {
		if err := pipeline.Run(ctx); err != nil {
			slog.Error("pipeline failed", "err", err)
			exitCode = 1
		}
	}
	return exitCode
}
