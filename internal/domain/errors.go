package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidFilter is returned when a user-supplied city, month, or day is not
// one of the supported values. Use errors.As with *FilterError to learn which
// field was rejected.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrInvalidFilter = errors.New("invalid filter")

// ErrUnknownCity is returned by repos when a supported city has no backing
// dataset (missing file, never imported).
// Handlers should map this to HTTP 404.
var ErrUnknownCity = errors.New("unknown city")

// ErrMalformedRecord is returned when a dataset row cannot be parsed. The whole
// load fails; rows are never skipped.
var ErrMalformedRecord = errors.New("malformed record")

// ErrEmptyResultSet is returned when a statistic that needs at least one record
// (mode, mean, min, max) is asked for over zero records.
var ErrEmptyResultSet = errors.New("empty result set")

// FilterField names the part of a filter that failed validation.
type FilterField string

const (
	FieldCity  FilterField = "city"
	FieldMonth FilterField = "month"
	FieldDay   FilterField = "day"
)

// FilterError reports which filter field was rejected and the raw input.
// It matches ErrInvalidFilter under errors.Is.
type FilterError struct {
	Field FilterField
	Value string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("%s: unsupported %s %q", ErrInvalidFilter, e.Field, e.Value)
}

// Unwrap lets errors.Is(err, ErrInvalidFilter) succeed.
func (e *FilterError) Unwrap() error {
	return ErrInvalidFilter
}
