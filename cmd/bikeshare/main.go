// Package main is the entry point for the interactive bikeshare explorer.
// It asks for a city, month and day on stdin, prints the statistics, and
// offers to start over.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkordes/bikeshare/internal/cli"
	"github.com/pkordes/bikeshare/internal/config"
	"github.com/pkordes/bikeshare/internal/repo"
	"github.com/pkordes/bikeshare/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// Logs go to stderr so they never interleave with prompts on stdout.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	trips, closeRepo, err := repo.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open dataset source", "source", cfg.DataSource, "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	session := cli.NewSession(service.NewExploreService(trips), os.Stdin, os.Stdout, logger)
	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("session ended with error", "error", err)
		closeRepo()
		os.Exit(1)
	}
}
