package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"steward/internal/app/bootstrap"
)

// Worker process entrypoint: near-expiry contract sweeps plus outbox relay.
func main() {
	app, err := bootstrap.BuildWorker()
	if err != nil {
		log.Fatalf("steward worker bootstrap failed: %v", err)
	}
	defer func() {
		_ = app.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("steward worker stopped: %v", err)
	}
}
