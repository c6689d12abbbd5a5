package handler

import (
	"net/http"

	"github.com/go-chi/render"
)

// CityResponse describes one supported city.
type CityResponse struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// ListCities handles GET /cities.
func (s *Server) ListCities(w http.ResponseWriter, r *http.Request) {
	cities := s.explore.Cities()
	out := make([]CityResponse, 0, len(cities))
	for _, c := range cities {
		out = append(out, CityResponse{Name: string(c), Slug: c.Slug(), Title: c.Title()})
	}
	render.JSON(w, r, out)
}

// GetStats handles GET /cities/{city}/stats.
// Supports ?month= (all, january..june) and ?day= (all, monday..sunday).
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	spec, err := filterFromRequest(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	report, err := s.explore.Explore(r.Context(), spec)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, report)
}
