package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Month is a month filter: MonthAll or January..June.
// The datasets only cover the first half of the year, so later months are
// never accepted.
type Month int

// MonthAll disables month filtering.
const MonthAll Month = 0

// Months holds the accepted month names, index+1 is the calendar month.
var Months = []string{"january", "february", "march", "april", "may", "june"}

// ParseMonth accepts "all" or one of Months, case-insensitively.
func ParseMonth(s string) (Month, error) {
	n := normalize(s)
	if n == "all" {
		return MonthAll, nil
	}
	for i, name := range Months {
		if n == name {
			return Month(i + 1), nil
		}
	}
	return MonthAll, &FilterError{Field: FieldMonth, Value: s}
}

// IsAll reports whether the month filter is disabled.
func (m Month) IsAll() bool { return m == MonthAll }

// String returns "all" or the lowercase month name.
func (m Month) String() string {
	if m.IsAll() {
		return "all"
	}
	return Months[m-1]
}

// Day is a weekday filter. The zero value means "all".
type Day struct {
	weekday time.Weekday
	set     bool
}

// DayAll disables day filtering.
var DayAll = Day{}

// ParseDay accepts "all" or an English weekday name, case-insensitively.
func ParseDay(s string) (Day, error) {
	n := normalize(s)
	if n == "all" {
		return DayAll, nil
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if n == strings.ToLower(wd.String()) {
			return Day{weekday: wd, set: true}, nil
		}
	}
	return DayAll, &FilterError{Field: FieldDay, Value: s}
}

// IsAll reports whether the day filter is disabled.
func (d Day) IsAll() bool { return !d.set }

// Weekday returns the filtered weekday. Only meaningful when !IsAll().
func (d Day) Weekday() time.Weekday { return d.weekday }

// String returns "all" or the lowercase weekday name.
func (d Day) String() string {
	if d.IsAll() {
		return "all"
	}
	return strings.ToLower(d.weekday.String())
}

// FilterSpec is a validated (city, month, day) selection.
// Build it with NewFilterSpec; a zero FilterSpec has no city and is not valid.
type FilterSpec struct {
	City  City
	Month Month
	Day   Day
}

// NewFilterSpec validates raw user input and returns a FilterSpec.
// Fields are checked in prompt order (city, month, day) and the first invalid
// one is reported as a *FilterError wrapping ErrInvalidFilter.
func NewFilterSpec(city, month, day string) (FilterSpec, error) {
	c, err := ParseCity(city)
	if err != nil {
		return FilterSpec{}, err
	}
	m, err := ParseMonth(month)
	if err != nil {
		return FilterSpec{}, err
	}
	d, err := ParseDay(day)
	if err != nil {
		return FilterSpec{}, err
	}
	return FilterSpec{City: c, Month: m, Day: d}, nil
}

// filterJSON is the wire form of a FilterSpec.
type filterJSON struct {
	City  string `json:"city"`
	Month string `json:"month"`
	Day   string `json:"day"`
}

// MarshalJSON renders the spec with its user-facing names.
func (f FilterSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(filterJSON{City: string(f.City), Month: f.Month.String(), Day: f.Day.String()})
}
