package repo

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/bikeshare/internal/domain"
)

// column is an internal schema field a source column maps onto.
type column int

const (
	colStartTime column = iota
	colEndTime
	colDuration
	colStartStation
	colEndStation
	colUserType
	colGender
	colBirthYear
	numColumns
)

// sourceColumns translates the data provider's header names (lowercased and
// trimmed) into the internal schema. Columns not listed here are ignored,
// including the unnamed index column at position 0.
var sourceColumns = map[string]column{
	"start time":    colStartTime,
	"end time":      colEndTime,
	"trip duration": colDuration,
	"start station": colStartStation,
	"end station":   colEndStation,
	"user type":     colUserType,
	"gender":        colGender,
	"birth year":    colBirthYear,
}

var requiredColumns = []struct {
	col  column
	name string
}{
	{colStartTime, "Start Time"},
	{colDuration, "Trip Duration"},
	{colStartStation, "Start Station"},
	{colEndStation, "End Station"},
	{colUserType, "User Type"},
}

// timeLayouts are the start/end timestamp formats accepted from CSV sources.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// csvTripRepo loads city datasets from "<slug>.csv" files.
type csvTripRepo struct {
	fsys fs.FS
}

// NewCSVTripRepo constructs a TripRepo reading chicago.csv, new_york_city.csv
// and washington.csv from dir.
func NewCSVTripRepo(dir string) TripRepo {
	return &csvTripRepo{fsys: os.DirFS(dir)}
}

// NewCSVTripRepoFS is NewCSVTripRepo over an arbitrary fs.FS (embed.FS,
// fstest.MapFS in tests).
func NewCSVTripRepoFS(fsys fs.FS) TripRepo {
	return &csvTripRepo{fsys: fsys}
}

// Load reads and parses the whole file for city.
// A missing file is domain.ErrUnknownCity; any unparseable row fails the load
// with domain.ErrMalformedRecord.
func (r *csvTripRepo) Load(ctx context.Context, city domain.City) (domain.Dataset, error) {
	f, err := r.fsys.Open(city.Slug() + ".csv")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Dataset{}, fmt.Errorf("repo.csvTripRepo.Load: %s: %w", city, domain.ErrUnknownCity)
		}
		return domain.Dataset{}, fmt.Errorf("repo.csvTripRepo.Load: %w", err)
	}
	defer f.Close()

	ds, err := ParseCSV(ctx, f, city)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("repo.csvTripRepo.Load: %s: %w", city, err)
	}
	return ds, nil
}

// ParseCSV reads a city dataset in the provider's CSV layout.
// The presence of the Gender and Birth Year headers sets the dataset Schema;
// blank cells in those columns become "" and 0.
func ParseCSV(ctx context.Context, src io.Reader, city domain.City) (domain.Dataset, error) {
	reader := csv.NewReader(src)
	reader.ReuseRecord = true

	headers, err := reader.Read()
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: read header: %v", domain.ErrMalformedRecord, err)
	}

	// index[col] is the position of that column in each row, or -1.
	var index [numColumns]int
	for i := range index {
		index[i] = -1
	}
	for i, h := range headers {
		if col, ok := sourceColumns[strings.ToLower(strings.TrimSpace(h))]; ok {
			index[col] = i
		}
	}
	for _, req := range requiredColumns {
		if index[req.col] < 0 {
			return domain.Dataset{}, fmt.Errorf("%w: missing column %q", domain.ErrMalformedRecord, req.name)
		}
	}

	ds := domain.Dataset{
		City: city,
		Schema: domain.Schema{
			Gender:    index[colGender] >= 0,
			BirthYear: index[colBirthYear] >= 0,
		},
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.Dataset{}, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
		}
		if len(ds.Trips)%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return domain.Dataset{}, err
			}
		}

		line, _ := reader.FieldPos(0)
		trip, err := parseRow(row, &index)
		if err != nil {
			return domain.Dataset{}, fmt.Errorf("%w: line %d: %v", domain.ErrMalformedRecord, line, err)
		}
		ds.Trips = append(ds.Trips, trip)
	}

	return ds, nil
}

// parseRow maps one CSV row onto a domain.Trip.
func parseRow(row []string, index *[numColumns]int) (domain.Trip, error) {
	get := func(c column) string {
		if index[c] < 0 {
			return ""
		}
		return strings.TrimSpace(row[index[c]])
	}

	var (
		t   domain.Trip
		err error
	)

	t.StartTime, err = parseTime(get(colStartTime))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("start time: %w", err)
	}
	if v := get(colEndTime); v != "" {
		end, err := parseTime(v)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("end time: %w", err)
		}
		t.EndTime = &end
	}

	t.Duration, err = strconv.ParseFloat(get(colDuration), 64)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("trip duration: %w", err)
	}
	if math.IsNaN(t.Duration) || math.IsInf(t.Duration, 0) {
		return domain.Trip{}, fmt.Errorf("trip duration: not a finite number: %q", get(colDuration))
	}

	t.StartStation = get(colStartStation)
	t.EndStation = get(colEndStation)
	t.UserType = get(colUserType)
	t.Gender = get(colGender)

	if v := get(colBirthYear); v != "" {
		// Sources write birth years as floats ("1992.0").
		year, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("birth year: %w", err)
		}
		t.BirthYear = int(year)
	}

	return t, nil
}

// parseTime tries each accepted layout in turn.
func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}
