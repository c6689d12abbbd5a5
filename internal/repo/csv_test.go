package repo_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bikeshare/internal/domain"
	"github.com/pkordes/bikeshare/internal/repo"
)

func TestCSVTripRepo_Load_WithDemographics(t *testing.T) {
	r := repo.NewCSVTripRepo("testdata")

	ds, err := r.Load(context.Background(), domain.Chicago)

	require.NoError(t, err)
	assert.Equal(t, domain.Chicago, ds.City)
	assert.Equal(t, domain.Schema{Gender: true, BirthYear: true}, ds.Schema)
	require.Len(t, ds.Trips, 5)

	first := ds.Trips[0]
	assert.Equal(t, time.Date(2017, time.June, 23, 15, 9, 32, 0, time.UTC), first.StartTime)
	require.NotNil(t, first.EndTime)
	assert.Equal(t, time.Date(2017, time.June, 23, 15, 14, 53, 0, time.UTC), *first.EndTime)
	assert.InDelta(t, 321.0, first.Duration, 0)
	assert.Equal(t, "Wood St & Hubbard St", first.StartStation)
	assert.Equal(t, "Damen Ave & Chicago Ave", first.EndStation)
	assert.Equal(t, "Subscriber", first.UserType)
	assert.Equal(t, "Male", first.Gender)
	assert.Equal(t, 1992, first.BirthYear)

	// Blank demographic cells stay unknown.
	assert.Equal(t, "", ds.Trips[3].Gender)
	assert.Equal(t, 0, ds.Trips[3].BirthYear)
}

func TestCSVTripRepo_Load_WithoutDemographics(t *testing.T) {
	r := repo.NewCSVTripRepo("testdata")

	ds, err := r.Load(context.Background(), domain.Washington)

	require.NoError(t, err)
	assert.Equal(t, domain.Schema{}, ds.Schema)
	require.Len(t, ds.Trips, 3)
	assert.InDelta(t, 489.066, ds.Trips[0].Duration, 1e-9)
}

func TestCSVTripRepo_Load_MissingFile(t *testing.T) {
	r := repo.NewCSVTripRepo("testdata")

	_, err := r.Load(context.Background(), domain.NewYorkCity)

	require.ErrorIs(t, err, domain.ErrUnknownCity)
}

func TestCSVTripRepo_Load_Malformed(t *testing.T) {
	const header = "Start Time,Trip Duration,Start Station,End Station,User Type\n"

	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{
			name:    "unparseable start time",
			content: header + "2017-01-01 00:07:57,100,A,B,Subscriber\nyesterday,100,A,B,Subscriber\n",
			msg:     "line 3",
		},
		{
			name:    "unparseable duration",
			content: header + "2017-01-01 00:07:57,ten,A,B,Subscriber\n",
			msg:     "trip duration",
		},
		{
			name:    "NaN duration",
			content: header + "2017-01-01 00:07:57,NaN,A,B,Subscriber\n",
			msg:     "not a finite number",
		},
		{
			name:    "infinite duration",
			content: header + "2017-01-01 00:07:57,+Inf,A,B,Subscriber\n",
			msg:     "not a finite number",
		},
		{
			name:    "missing required column",
			content: "Start Time,Trip Duration,Start Station,End Station\n2017-01-01 00:07:57,100,A,B\n",
			msg:     `missing column "User Type"`,
		},
		{
			name:    "ragged row",
			content: header + "2017-01-01 00:07:57,100,A\n",
			msg:     "wrong number of fields",
		},
		{
			name:    "empty file",
			content: "",
			msg:     "read header",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{"chicago.csv": {Data: []byte(tc.content)}}
			r := repo.NewCSVTripRepoFS(fsys)

			_, err := r.Load(context.Background(), domain.Chicago)

			require.ErrorIs(t, err, domain.ErrMalformedRecord)
			assert.ErrorContains(t, err, tc.msg)
		})
	}
}

func TestParseCSV_HeaderNamesAreCaseInsensitive(t *testing.T) {
	src := strings.NewReader(" start time ,TRIP DURATION,start station,end station,user type,GENDER\n" +
		"2017-02-03T07:00:00,60,A,B,Customer,Female\n")

	ds, err := repo.ParseCSV(context.Background(), src, domain.NewYorkCity)

	require.NoError(t, err)
	assert.Equal(t, domain.Schema{Gender: true}, ds.Schema)
	require.Len(t, ds.Trips, 1)
	assert.Nil(t, ds.Trips[0].EndTime, "no End Time column")
	assert.Equal(t, 7, ds.Trips[0].Hour())
	assert.Equal(t, "A to B", ds.Trips[0].Route())
}

func TestParseCSV_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := strings.NewReader("Start Time,Trip Duration,Start Station,End Station,User Type\n" +
		"2017-01-01 00:07:57,100,A,B,Subscriber\n")

	_, err := repo.ParseCSV(ctx, src, domain.Chicago)

	require.ErrorIs(t, err, context.Canceled)
}
