package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"scribe/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Serve HTTP until SIGINT/SIGTERM, then shut down gracefully.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildAPI(ctx)
	if err != nil {
		slog.Error("bootstrap api failed", "event", "api_bootstrap_failed", "error", err.Error())
		os.Exit(1)
	}

	runErr := app.Run(ctx)
	if err := app.Close(); err != nil {
		slog.Warn("api shutdown close failed", "event", "api_close_failed", "error", err.Error())
	}
	if runErr != nil {
		slog.Error("api stopped with error", "event", "api_stopped", "error", runErr.Error())
		os.Exit(1)
	}
}
