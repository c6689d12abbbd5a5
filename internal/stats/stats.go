package stats

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/pkordes/bikeshare/internal/domain"
)

// Times returns the most common month, weekday and start hour.
func Times(trips []domain.Trip) (domain.TimeStats, error) {
	if len(trips) == 0 {
		return domain.TimeStats{}, fmt.Errorf("stats.Times: %w", domain.ErrEmptyResultSet)
	}
	month, _ := ModeBy(trips, func(t domain.Trip) time.Month { return t.Month() })
	weekday, _ := ModeBy(trips, func(t domain.Trip) time.Weekday { return t.Weekday() })
	hour, _ := ModeBy(trips, func(t domain.Trip) int { return t.Hour() })

	return domain.TimeStats{Month: month, Weekday: weekday, Hour: hour}, nil
}

// Stations returns the most common start station, end station and route.
func Stations(trips []domain.Trip) (domain.StationStats, error) {
	if len(trips) == 0 {
		return domain.StationStats{}, fmt.Errorf("stats.Stations: %w", domain.ErrEmptyResultSet)
	}
	start, _ := ModeBy(trips, func(t domain.Trip) string { return t.StartStation })
	end, _ := ModeBy(trips, func(t domain.Trip) string { return t.EndStation })
	route, _ := ModeBy(trips, domain.Trip.Route)

	return domain.StationStats{Start: start, End: end, Route: route}, nil
}

// Durations returns the total and mean trip duration.
// The mean of zero trips is undefined, so an empty input is an error rather
// than a zero or NaN.
func Durations(trips []domain.Trip) (domain.DurationStats, error) {
	if len(trips) == 0 {
		return domain.DurationStats{}, fmt.Errorf("stats.Durations: %w", domain.ErrEmptyResultSet)
	}
	var total float64
	for _, t := range trips {
		total += t.Duration
	}
	return domain.DurationStats{
		Total: total,
		Mean:  total / float64(len(trips)),
		Count: len(trips),
	}, nil
}

// Users returns user-type counts and, when the schema carries them, gender
// counts and birth-year aggregates. Blank genders and unknown birth years are
// left out of their groups; BirthYears stays nil when no year is known.
func Users(trips []domain.Trip, schema domain.Schema) (domain.UserStats, error) {
	if len(trips) == 0 {
		return domain.UserStats{}, fmt.Errorf("stats.Users: %w", domain.ErrEmptyResultSet)
	}

	out := domain.UserStats{
		UserTypes: Tally(trips, func(t domain.Trip) string { return t.UserType }),
	}

	if schema.Gender {
		known := Apply(trips, func(t domain.Trip) bool { return t.Gender != "" })
		out.Genders = Tally(known, func(t domain.Trip) string { return t.Gender })
	}

	// A rider subset with no known birth year has no birth-year group; that is
	// not a failure of the whole report.
	if schema.BirthYear {
		years, err := BirthYears(trips)
		switch {
		case errors.Is(err, domain.ErrEmptyResultSet):
		case err != nil:
			return domain.UserStats{}, fmt.Errorf("stats.Users: %w", err)
		default:
			out.BirthYears = &years
		}
	}

	return out, nil
}

// BirthYears returns the earliest, latest and most common known birth year.
func BirthYears(trips []domain.Trip) (domain.BirthYearStats, error) {
	var years []int
	for _, t := range trips {
		if t.BirthYear != 0 {
			years = append(years, t.BirthYear)
		}
	}
	if len(years) == 0 {
		return domain.BirthYearStats{}, fmt.Errorf("no birth years recorded: %w", domain.ErrEmptyResultSet)
	}

	common, err := Mode(years)
	if err != nil {
		return domain.BirthYearStats{}, err
	}
	return domain.BirthYearStats{
		Earliest: slices.Min(years),
		Latest:   slices.Max(years),
		Common:   common,
	}, nil
}

// Summarize runs every statistic group over the filtered trips of ds.
// Each group reads the same slice independently; the first error is returned.
func Summarize(ds domain.Dataset, spec domain.FilterSpec) (domain.Report, error) {
	trips := Filter(ds, spec)
	report := domain.Report{Filter: spec, Records: len(trips), Schema: ds.Schema}

	var err error
	if report.Time, err = Times(trips); err != nil {
		return domain.Report{}, err
	}
	if report.Stations, err = Stations(trips); err != nil {
		return domain.Report{}, err
	}
	if report.Durations, err = Durations(trips); err != nil {
		return domain.Report{}, err
	}
	if report.Users, err = Users(trips, ds.Schema); err != nil {
		return domain.Report{}, err
	}
	return report, nil
}
