// Package main loads city CSV datasets into Postgres so the explorer and API
// can run with DATA_SOURCE=postgres.
//
// Usage:
//
//	import [-city chicago] [-dir data]
//
// Without -city every supported city whose CSV exists under -dir is imported.
// Each city is replaced atomically; re-running an import is safe.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkordes/bikeshare/internal/config"
	"github.com/pkordes/bikeshare/internal/domain"
	"github.com/pkordes/bikeshare/internal/repo"
)

func main() {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.RequireDatabase()
	}
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	cityFlag := flag.String("city", "", "import only this city (default: all cities)")
	dirFlag := flag.String("dir", cfg.DataDir, "directory containing the city CSV files")
	flag.Parse()

	cities := domain.Cities
	if *cityFlag != "" {
		city, err := domain.ParseCitySlug(*cityFlag)
		if err != nil {
			slog.Error("invalid -city", "error", err)
			os.Exit(2)
		}
		cities = []domain.City{city}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg.DatabaseURL, *dirFlag, cities, *cityFlag != ""); err != nil {
		slog.Error("import failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// run imports each city from dir. A missing file is skipped unless the city
// was asked for explicitly.
func run(ctx context.Context, dsn, dir string, cities []domain.City, explicit bool) error {
	store, closeStore, err := repo.OpenStore(ctx, dsn)
	if err != nil {
		return err
	}
	defer closeStore()

	source := repo.NewCSVTripRepo(dir)
	for _, city := range cities {
		start := time.Now()

		ds, err := source.Load(ctx, city)
		if errors.Is(err, domain.ErrUnknownCity) && !explicit {
			slog.Warn("no CSV for city, skipping", "city", string(city), "dir", dir)
			continue
		}
		if err != nil {
			return fmt.Errorf("load %s: %w", city, err)
		}

		n, err := store.Replace(ctx, ds)
		if err != nil {
			return fmt.Errorf("replace %s: %w", city, err)
		}
		slog.Info("city imported",
			"city", string(city),
			"trips", n,
			"gender", ds.Schema.Gender,
			"birth_year", ds.Schema.BirthYear,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return nil
}
