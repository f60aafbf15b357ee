package main

import (
	"context"
	"fmt"
	"os"

	"bus-tracker/internal/config"
	"bus-tracker/internal/mylogger"
	trackerservice "bus-tracker/internal/tracker-service"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	mylog, err := mylogger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	if err := trackerservice.Execute(context.Background(), mylog, cfg); err != nil {
		mylog.Error("tracker service exited with error", err)
		os.Exit(1)
	}
}
