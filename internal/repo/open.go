package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/bikeshare/internal/config"
	"github.com/pkordes/bikeshare/migrations"
)

// Open returns the TripRepo selected by cfg.DataSource and a function that
// releases its resources. For Postgres the pool is pinged and pending
// migrations are applied before Open returns.
func Open(ctx context.Context, cfg config.Config) (TripRepo, func(), error) {
	switch cfg.DataSource {
	case config.SourceCSV:
		return NewCSVTripRepo(cfg.DataDir), func() {}, nil
	case config.SourcePostgres:
		store, closeFn, err := OpenStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, closeFn, nil
	default:
		return nil, nil, fmt.Errorf("repo.Open: unsupported data source %q", cfg.DataSource)
	}
}

// OpenStore connects to Postgres at dsn, applies pending migrations, and
// returns a TripStore backed by the pool.
func OpenStore(ctx context.Context, dsn string) (TripStore, func(), error) {
	// New() does not open connections immediately; the ping does.
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("repo.OpenStore: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("repo.OpenStore: ping: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	if _, err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		pool.Close()
		return nil, nil, fmt.Errorf("repo.OpenStore: %w", err)
	}

	closeFn := func() {
		_ = db.Close()
		pool.Close()
	}
	return NewTripRepo(pool), closeFn, nil
}
