package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"github.com/pkordes/bikeshare/internal/domain"
)

// csvHeaders defines the column names written as the first row of a CSV export.
var csvHeaders = []string{
	"start_time", "end_time", "trip_duration",
	"start_station", "end_station",
	"user_type", "gender", "birth_year",
}

// Pagination describes the page returned by ListTrips.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripPage is the JSON body of GET /cities/{city}/trips.
type TripPage struct {
	Data       []domain.Trip `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// ListTrips handles GET /cities/{city}/trips.
// Accepts the same ?month= and ?day= filter as GetStats plus ?page= and
// ?limit= (defaults: page=1, limit=20, max=100). With ?format=csv every
// filtered trip is returned as CSV and paging is ignored.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	spec, err := filterFromRequest(r)
	if err != nil {
		renderError(w, r, err)
		return
	}
	format, err := formatFromRequest(r)
	if err != nil {
		renderError(w, r, err)
		return
	}
	params, err := pageFromRequest(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	trips, err := s.explore.Trips(r.Context(), spec)
	if err != nil {
		renderError(w, r, err)
		return
	}

	if format == formatCSV {
		writeCSV(w, spec.City, trips)
		return
	}

	start, end := params.Window(len(trips))
	render.JSON(w, r, TripPage{
		Data: trips[start:end],
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: len(trips),
		},
	})
}

// writeCSV encodes trips as CSV and writes them as an attachment named after
// the city, e.g. new_york_city_trips.csv.
func writeCSV(w http.ResponseWriter, city domain.City, trips []domain.Trip) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// bytes.Buffer writes never fail.
	_ = cw.Write(csvHeaders)
	for _, t := range trips {
		_ = cw.Write(tripToCSVRecord(t))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+city.Slug()+`_trips.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// tripToCSVRecord encodes a trip as a flat string slice.
// Unknown end time, gender and birth year are encoded as empty strings.
func tripToCSVRecord(t domain.Trip) []string {
	birthYear := ""
	if t.BirthYear != 0 {
		birthYear = strconv.Itoa(t.BirthYear)
	}
	return []string{
		formatTime(&t.StartTime),
		formatTime(t.EndTime),
		strconv.FormatFloat(t.Duration, 'f', -1, 64),
		t.StartStation,
		t.EndStation,
		t.UserType,
		t.Gender,
		birthYear,
	}
}

// formatTime returns t in the source "2006-01-02 15:04:05" layout, or "" if t
// is nil.
func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateTime)
}
