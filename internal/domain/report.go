package domain

import (
	"encoding/json"
	"time"
)

// TimeStats holds the most frequent travel times.
type TimeStats struct {
	Month   time.Month   `json:"month"`
	Weekday time.Weekday `json:"weekday"`
	Hour    int          `json:"hour"`
}

// MarshalJSON writes month and weekday by name alongside the month number.
func (s TimeStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Month       string `json:"month"`
		MonthNumber int    `json:"month_number"`
		Weekday     string `json:"weekday"`
		Hour        int    `json:"hour"`
	}{s.Month.String(), int(s.Month), s.Weekday.String(), s.Hour})
}

// StationStats holds the most popular stations and route.
type StationStats struct {
	Start string `json:"start_station"`
	End   string `json:"end_station"`
	Route string `json:"route"`
}

// DurationStats holds trip duration aggregates, in seconds.
type DurationStats struct {
	Total float64 `json:"total_seconds"`
	Mean  float64 `json:"mean_seconds"`
	Count int     `json:"count"`
}

// Count is one bucket of a grouped count.
type Count struct {
	Value string `json:"value"`
	N     int    `json:"count"`
}

// BirthYearStats holds rider birth-year aggregates.
type BirthYearStats struct {
	Earliest int `json:"earliest"`
	Latest   int `json:"latest"`
	Common   int `json:"most_common"`
}

// UserStats holds rider demographics.
// Genders is nil and BirthYears is nil when the dataset schema lacks the
// column. BirthYears is also nil when no filtered trip has a known birth year.
// Neither is ever filled with placeholders.
type UserStats struct {
	UserTypes  []Count         `json:"user_types"`
	Genders    []Count         `json:"genders,omitempty"`
	BirthYears *BirthYearStats `json:"birth_years,omitempty"`
}

// Report is everything computed for one FilterSpec.
type Report struct {
	Filter    FilterSpec    `json:"filter"`
	Records   int           `json:"records"`
	Schema    Schema        `json:"schema"`
	Time      TimeStats     `json:"time"`
	Stations  StationStats  `json:"stations"`
	Durations DurationStats `json:"durations"`
	Users     UserStats     `json:"users"`
}
