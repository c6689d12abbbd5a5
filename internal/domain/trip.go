// Package domain contains the core data types for the bikeshare explorer.
// It is imported by every other internal package (repo, stats, service,
// handler, cli) and depends on nothing internal.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a single bicycle rental.
// Trips are read-only once loaded; month, weekday, hour and route are derived
// on every call and never stored.
type Trip struct {
	ID           uuid.UUID  `json:"id,omitzero"` // zero for CSV-backed datasets
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"` // nil when the source has no end column
	Duration     float64    `json:"duration_seconds"`
	StartStation string     `json:"start_station"`
	EndStation   string     `json:"end_station"`
	UserType     string     `json:"user_type"`
	Gender       string     `json:"gender,omitempty"`     // empty when unknown
	BirthYear    int        `json:"birth_year,omitempty"` // 0 when unknown
}

// RouteSeparator joins the start and end station in Route.
const RouteSeparator = " to "

// Month returns the calendar month the trip started in.
func (t Trip) Month() time.Month { return t.StartTime.Month() }

// Weekday returns the weekday the trip started on.
func (t Trip) Weekday() time.Weekday { return t.StartTime.Weekday() }

// Hour returns the hour of day (0-23) the trip started in.
func (t Trip) Hour() int { return t.StartTime.Hour() }

// Route returns "{start station} to {end station}".
func (t Trip) Route() string { return t.StartStation + RouteSeparator + t.EndStation }

// Schema records which optional columns a city dataset carries.
// It is a property of the whole dataset, not of individual trips.
type Schema struct {
	Gender    bool `json:"gender"`
	BirthYear bool `json:"birth_year"`
}

// Dataset is the full, unfiltered collection of trips for one city.
// Trips keep source order. Callers must not modify the slice: a Dataset may be
// shared between concurrent readers.
type Dataset struct {
	City   City
	Schema Schema
	Trips  []Trip
}
