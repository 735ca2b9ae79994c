package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"insighthub-be/internal/bootstrap"
	"insighthub-be/internal/config"
	"insighthub-be/internal/pkg/logger"
	"insighthub-be/internal/tracer"
)

// The worker consumes tasks published by the API over NATS JetStream.
func main() {
	cfg := config.Load()
	if cfg.Tasks.Transport != "nats" {
		log.Fatalf("worker requires TASK_TRANSPORT=nats, got %q", cfg.Tasks.Transport)
	}

	shutdownTracer := tracer.InitTracer(cfg.Tracing)
	defer shutdownTracer(context.Background())

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := bootstrap.NewContainer(ctx, cfg, sysLogger)
	if err != nil {
		log.Fatalf("Unable to bootstrap: %v", err)
	}
	defer container.Close()

	if err := container.StartConsumer(ctx); err != nil {
		log.Fatalf("Unable to start task consumer: %v", err)
	}
	sysLogger.Info("WORKER", "Worker started", map[string]interface{}{
		"topic": cfg.Tasks.Topic,
		"tasks": container.TaskRouter.Names(),
	})

	<-ctx.Done()
	sysLogger.Info("WORKER", "Worker stopping", nil)
}
