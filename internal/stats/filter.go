// Package stats implements the filtering and aggregation pipeline over city
// datasets. Everything here is a pure function of its inputs: datasets are
// read, never modified, so one loaded Dataset can serve concurrent callers.
package stats

import (
	"strings"

	"github.com/pkordes/bikeshare/internal/domain"
)

// Predicate reports whether a trip is kept.
type Predicate func(domain.Trip) bool

// MonthIs keeps trips that started in month m (1 = January).
func MonthIs(m domain.Month) Predicate {
	return func(t domain.Trip) bool {
		return int(t.Month()) == int(m)
	}
}

// DayIs keeps trips whose weekday name matches d, ignoring case.
func DayIs(d domain.Day) Predicate {
	name := d.String()
	return func(t domain.Trip) bool {
		return strings.EqualFold(t.Weekday().String(), name)
	}
}

// Predicates translates a FilterSpec into predicates. An "all" month or day
// contributes nothing, so the identity filter yields an empty list.
func Predicates(spec domain.FilterSpec) []Predicate {
	var preds []Predicate
	if !spec.Month.IsAll() {
		preds = append(preds, MonthIs(spec.Month))
	}
	if !spec.Day.IsAll() {
		preds = append(preds, DayIs(spec.Day))
	}
	return preds
}

// Apply returns the trips that satisfy every predicate, in source order.
// The result is always a fresh, non-nil slice; trips is not modified.
func Apply(trips []domain.Trip, preds ...Predicate) []domain.Trip {
	out := make([]domain.Trip, 0, len(trips))
	for _, t := range trips {
		if keep(t, preds) {
			out = append(out, t)
		}
	}
	return out
}

func keep(t domain.Trip, preds []Predicate) bool {
	for _, p := range preds {
		if !p(t) {
			return false
		}
	}
	return true
}

// Filter selects the trips of ds matching spec's month and day.
func Filter(ds domain.Dataset, spec domain.FilterSpec) []domain.Trip {
	return Apply(ds.Trips, Predicates(spec)...)
}
