package cli_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bikeshare/internal/cli"
	"github.com/pkordes/bikeshare/internal/domain"
)

func filterSpec(t *testing.T, city, month, day string) domain.FilterSpec {
	t.Helper()
	s, err := domain.NewFilterSpec(city, month, day)
	require.NoError(t, err)
	return s
}

func TestWriteReport_WithoutDemographics(t *testing.T) {
	rep := domain.Report{
		Filter:  filterSpec(t, "washington", "all", "all"),
		Records: 3,
		Time:    domain.TimeStats{Month: time.January, Weekday: time.Sunday, Hour: 8},
		Stations: domain.StationStats{
			Start: "StationA", End: "StationB", Route: "StationA to StationB",
		},
		Durations: domain.DurationStats{Total: 1350, Mean: 450, Count: 3},
		Users: domain.UserStats{
			UserTypes: []domain.Count{{Value: "Subscriber", N: 2}, {Value: "Customer", N: 1}},
		},
	}
	var out bytes.Buffer

	cli.WriteReport(&out, rep, 1500*time.Millisecond)

	text := out.String()
	for _, want := range []string{
		"Statistics for Washington (month: all, day: all), 3 trips",
		"Most common month: January",
		"Most common day of week: Sunday",
		"Most common start hour: 8:00",
		"Most common start station: StationA",
		"Most common end station: StationB",
		"Most frequent combination of start and end stations: StationA to StationB",
		"Total travel time: 1350 seconds",
		"Mean travel time: 450 seconds",
		"Counts of user types:\nSubscriber: 2\nCustomer: 1\n",
		"Gender information is not available for this city.",
		"Birth year information is not available for this city.",
		"This took 1.500 seconds.",
	} {
		assert.Contains(t, text, want)
	}
}

func TestWriteReport_WithDemographics(t *testing.T) {
	rep := domain.Report{
		Filter:    filterSpec(t, "new york city", "june", "friday"),
		Records:   4,
		Schema:    domain.Schema{Gender: true, BirthYear: true},
		Time:      domain.TimeStats{Month: time.June, Weekday: time.Friday, Hour: 17},
		Durations: domain.DurationStats{Total: 1000.5, Mean: 250.25, Count: 4},
		Users: domain.UserStats{
			UserTypes:  []domain.Count{{Value: "Subscriber", N: 4}},
			Genders:    []domain.Count{{Value: "Male", N: 3}, {Value: "Female", N: 1}},
			BirthYears: &domain.BirthYearStats{Earliest: 1950, Latest: 1999, Common: 1985},
		},
	}
	var out bytes.Buffer

	cli.WriteReport(&out, rep, 0)

	text := out.String()
	assert.Contains(t, text, "Statistics for New York City (month: june, day: friday), 4 trips")
	assert.Contains(t, text, "Most common start hour: 17:00")
	assert.Contains(t, text, "Total travel time: 1000.50 seconds")
	assert.Contains(t, text, "Mean travel time: 250.25 seconds")
	assert.Contains(t, text, "Counts of gender:\nMale: 3\nFemale: 1\n")
	assert.Contains(t, text, "Earliest birth year: 1950")
	assert.Contains(t, text, "Most recent birth year: 1999")
	assert.Contains(t, text, "Most common birth year: 1985")
	assert.NotContains(t, text, "not available")
}
