package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/bikeshare/internal/domain"
)

// Supported values of the trips ?format= parameter.
const (
	formatJSON = "json"
	formatCSV  = "csv"
)

var errUnsupportedFormat = errors.New(`must be "json" or "csv"`)

// filterFromRequest builds a FilterSpec from the {city} path segment and the
// optional ?month= and ?day= parameters. Missing parameters mean "all".
// The city segment accepts the slug ("new_york_city") or the escaped spoken
// form ("new%20york%20city").
func filterFromRequest(r *http.Request) (domain.FilterSpec, error) {
	q := r.URL.Query()

	month, err := optionalString(q, "month")
	if err != nil {
		return domain.FilterSpec{}, err
	}
	day, err := optionalString(q, "day")
	if err != nil {
		return domain.FilterSpec{}, err
	}

	city, err := domain.ParseCitySlug(chi.URLParam(r, "city"))
	if err != nil {
		return domain.FilterSpec{}, err
	}
	return domain.NewFilterSpec(string(city), valueOr(month, "all"), valueOr(day, "all"))
}

// pageFromRequest binds the optional ?page= and ?limit= parameters.
func pageFromRequest(r *http.Request) (domain.PaginationParams, error) {
	q := r.URL.Query()

	var page, limit *int
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		return domain.PaginationParams{}, &paramError{name: "page", err: err}
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		return domain.PaginationParams{}, &paramError{name: "limit", err: err}
	}
	return domain.NewPaginationParams(page, limit), nil
}

// formatFromRequest binds ?format=, defaulting to JSON.
func formatFromRequest(r *http.Request) (string, error) {
	format, err := optionalString(r.URL.Query(), "format")
	if err != nil {
		return "", err
	}
	switch f := strings.ToLower(valueOr(format, formatJSON)); f {
	case formatJSON, formatCSV:
		return f, nil
	default:
		return "", &paramError{name: "format", err: errUnsupportedFormat}
	}
}

func optionalString(q url.Values, name string) (*string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil {
		return nil, &paramError{name: name, err: err}
	}
	return v, nil
}

func valueOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
