package main

import (
	"context"
	"fmt"
	"os"

	"insighthub-be/internal/bootstrap"
	"insighthub-be/internal/cli"
	"insighthub-be/internal/config"
	"insighthub-be/internal/pkg/logger"
)

func main() {
	cfg := config.Load()
	// Commands run synchronously; the queue is never consumed here.
	cfg.Tasks.Transport = "gochannel"

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	container, err := bootstrap.NewContainer(context.Background(), cfg, sysLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		os.Exit(1)
	}

	cli.SetServices(&cli.Services{
		Ingestion: container.IngestionService,
		Analytics: container.AnalyticsService,
		Scorecard: container.ScorecardService,
		Search:    container.SearchService,
		Logs:      sysLogger,
	})

	err = cli.Execute()
	container.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
