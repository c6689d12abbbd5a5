package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// City identifies one of the supported bikeshare systems.
// The value is the normalized (lowercase) name a user types.
type City string

const (
	Chicago     City = "chicago"
	NewYorkCity City = "new york city"
	Washington  City = "washington"
)

// Cities lists every supported city in display order.
var Cities = []City{Chicago, NewYorkCity, Washington}

// ParseCity normalizes s and returns the matching City.
// Returns a *FilterError for anything that is not a supported city; "all" is
// not a city.
func ParseCity(s string) (City, error) {
	c := City(normalize(s))
	for _, known := range Cities {
		if c == known {
			return c, nil
		}
	}
	return "", &FilterError{Field: FieldCity, Value: s}
}

// Title returns the display name, e.g. "New York City".
func (c City) Title() string {
	return cases.Title(language.English).String(string(c))
}

// Slug returns the file- and URL-friendly form, e.g. "new_york_city".
func (c City) Slug() string {
	return strings.ReplaceAll(string(c), " ", "_")
}

// ParseCitySlug accepts either the slug or the spoken form.
func ParseCitySlug(s string) (City, error) {
	return ParseCity(strings.ReplaceAll(s, "_", " "))
}

// normalize trims and lowercases user input.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
