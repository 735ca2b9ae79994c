package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"insighthub-be/internal/bootstrap"
	"insighthub-be/internal/config"
	"insighthub-be/internal/pkg/logger"
	"insighthub-be/internal/server"
	"insighthub-be/internal/tracer"
)

func main() {
	cfg := config.Load()

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

	// In-process tasks are consumed here; NATS tasks are consumed by cmd/worker.
	if cfg.Tasks.Transport == "gochannel" {
		if err := container.StartConsumer(ctx); err != nil {
			log.Fatalf("Unable to start task consumer: %v", err)
		}
	}

	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
