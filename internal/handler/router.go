package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/bikeshare/spec"
)

// Routes returns a router with every API endpoint registered.
// Cross-cutting middleware (request id, logging, recovery, CORS, metrics) is
// applied by the caller so tests can exercise the handlers on their own.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/cities", func(r chi.Router) {
		r.Get("/", s.ListCities)
		r.Get("/{city}/stats", s.GetStats)
		r.Get("/{city}/trips", s.ListTrips)
	})

	return r
}

// serveOpenAPI handles GET /openapi.yaml.
func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
