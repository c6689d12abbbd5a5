package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pkordes/bikeshare/internal/domain"
)

// WriteReport prints the six report sections followed by how long the
// computation took.
func WriteReport(w io.Writer, rep domain.Report, elapsed time.Duration) {
	fmt.Fprintf(w, "\nStatistics for %s (month: %s, day: %s), %d trips\n",
		rep.Filter.City.Title(), rep.Filter.Month, rep.Filter.Day, rep.Records)

	fmt.Fprint(w, "\nThe Most Frequent Times of Travel\n\n")
	fmt.Fprintf(w, "Most common month: %s\n", rep.Time.Month)
	fmt.Fprintf(w, "Most common day of week: %s\n", rep.Time.Weekday)
	fmt.Fprintf(w, "Most common start hour: %d:00\n", rep.Time.Hour)

	fmt.Fprint(w, "\nThe Most Popular Stations and Trip\n\n")
	fmt.Fprintf(w, "Most common start station: %s\n", rep.Stations.Start)
	fmt.Fprintf(w, "Most common end station: %s\n", rep.Stations.End)
	fmt.Fprintf(w, "Most frequent combination of start and end stations: %s\n", rep.Stations.Route)

	fmt.Fprint(w, "\nTrip Duration\n\n")
	fmt.Fprintf(w, "Total travel time: %s seconds\n", formatSeconds(rep.Durations.Total))
	fmt.Fprintf(w, "Mean travel time: %s seconds\n", formatSeconds(rep.Durations.Mean))

	fmt.Fprint(w, "\nUser Stats\n\n")
	fmt.Fprintln(w, "Counts of user types:")
	writeCounts(w, rep.Users.UserTypes)

	if rep.Schema.Gender {
		fmt.Fprintln(w, "\nCounts of gender:")
		writeCounts(w, rep.Users.Genders)
	} else {
		fmt.Fprintln(w, "\nGender information is not available for this city.")
	}

	if b := rep.Users.BirthYears; rep.Schema.BirthYear && b != nil {
		fmt.Fprintf(w, "\nEarliest birth year: %d\n", b.Earliest)
		fmt.Fprintf(w, "Most recent birth year: %d\n", b.Latest)
		fmt.Fprintf(w, "Most common birth year: %d\n", b.Common)
	} else {
		fmt.Fprintln(w, "\nBirth year information is not available for this city.")
	}

	fmt.Fprintf(w, "\nThis took %.3f seconds.\n", elapsed.Seconds())
	fmt.Fprintln(w, sectionRule)
}

func writeCounts(w io.Writer, counts []domain.Count) {
	for _, c := range counts {
		fmt.Fprintf(w, "%s: %d\n", c.Value, c.N)
	}
}

// formatSeconds prints whole values without a fraction and keeps up to two
// decimals otherwise.
func formatSeconds(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
