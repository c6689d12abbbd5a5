package domain_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bikeshare/internal/domain"
)

func TestNewFilterSpec_Valid(t *testing.T) {
	spec, err := domain.NewFilterSpec("  New York City ", "MARCH", "Friday")

	require.NoError(t, err)
	assert.Equal(t, domain.NewYorkCity, spec.City)
	assert.Equal(t, domain.Month(3), spec.Month)
	assert.False(t, spec.Day.IsAll())
	assert.Equal(t, time.Friday, spec.Day.Weekday())
}

func TestNewFilterSpec_All(t *testing.T) {
	spec, err := domain.NewFilterSpec("chicago", "all", "ALL")

	require.NoError(t, err)
	assert.True(t, spec.Month.IsAll())
	assert.True(t, spec.Day.IsAll())
}

func TestNewFilterSpec_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		city  string
		month string
		day   string
		field domain.FilterField
	}{
		{name: "unknown city", city: "boston", month: "all", day: "all", field: domain.FieldCity},
		{name: "city cannot be all", city: "all", month: "all", day: "all", field: domain.FieldCity},
		{name: "july is outside the dataset range", city: "chicago", month: "july", day: "all", field: domain.FieldMonth},
		{name: "december", city: "chicago", month: "december", day: "all", field: domain.FieldMonth},
		{name: "month number is not a name", city: "chicago", month: "1", day: "all", field: domain.FieldMonth},
		{name: "abbreviated day", city: "washington", month: "all", day: "mon", field: domain.FieldDay},
		{name: "empty day", city: "washington", month: "may", day: "", field: domain.FieldDay},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.NewFilterSpec(tc.city, tc.month, tc.day)

			require.ErrorIs(t, err, domain.ErrInvalidFilter)
			var fe *domain.FilterError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tc.field, fe.Field)
		})
	}
}

func TestNewFilterSpec_ReportsFirstInvalidField(t *testing.T) {
	_, err := domain.NewFilterSpec("chicago", "july", "someday")

	var fe *domain.FilterError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, domain.FieldMonth, fe.Field)
	assert.Equal(t, "july", fe.Value)
	assert.ErrorContains(t, err, `unsupported month "july"`)
}

func TestParseMonth_IndexIsCalendarMonth(t *testing.T) {
	for i, name := range domain.Months {
		m, err := domain.ParseMonth(name)
		require.NoError(t, err)
		assert.Equal(t, time.Month(i+1), time.Month(m), name)
		assert.Equal(t, name, m.String())
	}
}

func TestCity_TitleAndSlug(t *testing.T) {
	assert.Equal(t, "New York City", domain.NewYorkCity.Title())
	assert.Equal(t, "new_york_city", domain.NewYorkCity.Slug())

	c, err := domain.ParseCitySlug("new_york_city")
	require.NoError(t, err)
	assert.Equal(t, domain.NewYorkCity, c)
}

func TestFilterSpec_MarshalJSON(t *testing.T) {
	spec, err := domain.NewFilterSpec("washington", "february", "sunday")
	require.NoError(t, err)

	b, err := json.Marshal(spec)

	require.NoError(t, err)
	assert.JSONEq(t, `{"city":"washington","month":"february","day":"sunday"}`, string(b))
}
