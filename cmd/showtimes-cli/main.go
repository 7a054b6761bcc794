package main

import (
	"context"
	"os"

	"nyc-rep-showtimes/cmd/showtimes-cli/commands"
	"nyc-rep-showtimes/lib/telemetry"
)

func main() {
	telemetry.InitSlog(true)
	_, err := telemetry.SetupFromEnv(context.Background(), "showtimes-cli")
	if err != nil && !os.IsNotExist(err) {
		panic(err)
	}
	commands.ExecuteContext(context.Background())
}
