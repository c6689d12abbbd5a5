// Package service contains the business logic for the bikeshare explorer.
// Services load datasets through repo interfaces and hand them to the stats
// pipeline. No I/O details live here.
package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/pkordes/bikeshare/internal/domain"
	"github.com/pkordes/bikeshare/internal/repo"
	"github.com/pkordes/bikeshare/internal/stats"
)

// ExploreService answers statistics and listing requests for a FilterSpec.
// It holds no per-request state: every call loads the city dataset afresh.
// Concurrent calls for the same city share a single in-flight load, and the
// resulting Dataset is only ever read.
type ExploreService struct {
	trips repo.TripRepo
	loads singleflight.Group
}

// NewExploreService constructs an ExploreService backed by the provided TripRepo.
func NewExploreService(r repo.TripRepo) *ExploreService {
	return &ExploreService{trips: r}
}

// Cities returns the supported cities in display order.
func (s *ExploreService) Cities() []domain.City {
	return append([]domain.City(nil), domain.Cities...)
}

// Explore loads spec.City, applies the month/day filter and computes every
// statistic group.
// Returns domain.ErrUnknownCity or domain.ErrMalformedRecord from the load, and
// domain.ErrEmptyResultSet when no trip matches the filter.
func (s *ExploreService) Explore(ctx context.Context, spec domain.FilterSpec) (domain.Report, error) {
	ds, err := s.load(ctx, spec.City)
	if err != nil {
		return domain.Report{}, fmt.Errorf("service.ExploreService.Explore: %w", err)
	}

	report, err := stats.Summarize(ds, spec)
	if err != nil {
		return domain.Report{}, fmt.Errorf("service.ExploreService.Explore: %w", err)
	}
	return report, nil
}

// Trips returns the filtered trips for spec in source order.
// Always returns a non-nil slice so callers can safely range over it; an empty
// filter result is not an error here.
func (s *ExploreService) Trips(ctx context.Context, spec domain.FilterSpec) ([]domain.Trip, error) {
	ds, err := s.load(ctx, spec.City)
	if err != nil {
		return nil, fmt.Errorf("service.ExploreService.Trips: %w", err)
	}
	return stats.Filter(ds, spec), nil
}

// load fetches the dataset for city, collapsing concurrent loads of the same
// city into one repo call. The shared load ignores cancellation so one caller
// giving up cannot fail the others; each caller stops waiting when its own
// ctx is done.
func (s *ExploreService) load(ctx context.Context, city domain.City) (domain.Dataset, error) {
	ch := s.loads.DoChan(string(city), func() (any, error) {
		return s.trips.Load(context.WithoutCancel(ctx), city)
	})

	select {
	case <-ctx.Done():
		return domain.Dataset{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Dataset{}, res.Err
		}
		return res.Val.(domain.Dataset), nil
	}
}
