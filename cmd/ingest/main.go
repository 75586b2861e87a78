// Command ingest submits and inspects ingestion jobs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/svebrant/product-api-assignment/internal/app"
	"github.com/svebrant/product-api-assignment/internal/config"
	"github.com/svebrant/product-api-assignment/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(openJobService).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// openJobService connects to the configured job store.
func openJobService(ctx context.Context, logLevel string) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	log := logger.Setup(logger.Options{Level: logLevel, Format: "text"})

	// The server owns schema migrations.
	cfg.RunMigrations = false
	a, err := app.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &session{
		jobs:     a.JobService(),
		defaults: cfg.JobDefaults(),
		close: func() {
			_ = a.Close(context.Background())
			_ = logger.Close()
		},
	}, nil
}
