package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"scribe/internal/app/bootstrap"
)

// Worker process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring against the relational store.
// 3) Relay the post outbox and consume post events until SIGINT/SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildWorker()
	if err != nil {
		slog.Error("bootstrap worker failed", "event", "worker_bootstrap_failed", "error", err.Error())
		os.Exit(1)
	}

	runErr := app.Run(ctx)
	if err := app.Close(); err != nil {
		slog.Warn("worker shutdown close failed", "event", "worker_close_failed", "error", err.Error())
	}
	if runErr != nil {
		slog.Error("worker stopped with error", "event", "worker_stopped", "error", runErr.Error())
		os.Exit(1)
	}
}
