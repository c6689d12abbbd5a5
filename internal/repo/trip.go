// Package repo loads city datasets from their backing sources.
// Each source has its own file: csv.go reads the provider's CSV files, trip.go
// reads trips previously imported into Postgres. No statistics live here, only
// I/O and mapping into domain types.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/bikeshare/internal/domain"
)

// TripRepo loads the full dataset for a city.
// The service layer depends on this interface, not on a concrete source,
// which allows it to be unit-tested with a mock.
type TripRepo interface {
	// Load returns every trip for city in source order, plus the dataset
	// schema. Returns domain.ErrUnknownCity if the city has no dataset and
	// domain.ErrMalformedRecord if any row cannot be parsed.
	Load(ctx context.Context, city domain.City) (domain.Dataset, error)
}

// TripStore is a TripRepo that can also be written to.
type TripStore interface {
	TripRepo

	// Replace atomically swaps the stored dataset for ds.City with ds and
	// returns the number of trips written.
	Replace(ctx context.Context, ds domain.Dataset) (int64, error)
}

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// pgTripRepo is the Postgres implementation of TripStore.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripStore backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripStore {
	return &pgTripRepo{db: db}
}

// Load reads the dataset schema row, then every trip for the city in import order.
func (r *pgTripRepo) Load(ctx context.Context, city domain.City) (domain.Dataset, error) {
	const schemaQ = `
		SELECT has_gender, has_birth_year
		FROM datasets
		WHERE city = @city`

	ds := domain.Dataset{City: city}
	err := r.db.QueryRow(ctx, schemaQ, pgx.NamedArgs{"city": string(city)}).
		Scan(&ds.Schema.Gender, &ds.Schema.BirthYear)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Dataset{}, fmt.Errorf("repo.TripRepo.Load: %s: %w", city, domain.ErrUnknownCity)
		}
		return domain.Dataset{}, fmt.Errorf("repo.TripRepo.Load: schema: %w", err)
	}

	const tripsQ = `
		SELECT id, start_time, end_time, duration_seconds, start_station,
		       end_station, user_type, gender, birth_year
		FROM trips
		WHERE city = @city
		ORDER BY seq`

	rows, err := r.db.Query(ctx, tripsQ, pgx.NamedArgs{"city": string(city)})
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("repo.TripRepo.Load: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return domain.Dataset{}, fmt.Errorf("repo.TripRepo.Load: scan: %w", err)
		}
		ds.Trips = append(ds.Trips, t)
	}
	if err := rows.Err(); err != nil {
		return domain.Dataset{}, fmt.Errorf("repo.TripRepo.Load: rows: %w", err)
	}

	return ds, nil
}

// tripColumns are written by Replace in this order; id and seq are generated.
var tripColumns = []string{
	"city", "start_time", "end_time", "duration_seconds", "start_station",
	"end_station", "user_type", "gender", "birth_year",
}

// Replace deletes the city's rows, upserts its schema and bulk-loads ds with
// COPY, all in one transaction.
func (r *pgTripRepo) Replace(ctx context.Context, ds domain.Dataset) (int64, error) {
	var n int64
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		city := string(ds.City)

		if _, err := tx.Exec(ctx, `DELETE FROM trips WHERE city = @city`, pgx.NamedArgs{"city": city}); err != nil {
			return fmt.Errorf("delete: %w", err)
		}

		const upsert = `
			INSERT INTO datasets (city, has_gender, has_birth_year)
			VALUES (@city, @has_gender, @has_birth_year)
			ON CONFLICT (city) DO UPDATE
			SET has_gender     = EXCLUDED.has_gender,
			    has_birth_year = EXCLUDED.has_birth_year,
			    imported_at    = now()`
		args := pgx.NamedArgs{
			"city":           city,
			"has_gender":     ds.Schema.Gender,
			"has_birth_year": ds.Schema.BirthYear,
		}
		if _, err := tx.Exec(ctx, upsert, args); err != nil {
			return fmt.Errorf("upsert dataset: %w", err)
		}

		var err error
		n, err = tx.CopyFrom(ctx, pgx.Identifier{"trips"}, tripColumns,
			pgx.CopyFromSlice(len(ds.Trips), func(i int) ([]any, error) {
				t := ds.Trips[i]
				return []any{
					city,
					t.StartTime,
					t.EndTime, // nil becomes NULL
					t.Duration,
					t.StartStation,
					t.EndStation,
					t.UserType,
					nullIfZero(t.Gender),
					nullIfZero(t.BirthYear),
				}, nil
			}))
		if err != nil {
			return fmt.Errorf("copy: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("repo.TripRepo.Replace: %s: %w", ds.City, err)
	}
	return n, nil
}

// nullIfZero maps the "unknown" zero value to SQL NULL.
func nullIfZero[T comparable](v T) any {
	var zero T
	if v == zero {
		return nil
	}
	return v
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID and the nullable end_time, gender and birth_year columns.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t      domain.Trip
		id     pgtype.UUID
		end    pgtype.Timestamp
		gender pgtype.Text
		birth  pgtype.Int4
	)

	err := s.Scan(&id, &t.StartTime, &end, &t.Duration, &t.StartStation,
		&t.EndStation, &t.UserType, &gender, &birth)
	if err != nil {
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	if end.Valid {
		e := end.Time
		t.EndTime = &e
	}
	t.Gender = gender.String
	t.BirthYear = int(birth.Int32)

	return t, nil
}
