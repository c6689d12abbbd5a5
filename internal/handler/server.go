// Package handler implements the HTTP handlers for the bikeshare explorer API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, stats.go, trips.go) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"

	"github.com/pkordes/bikeshare/internal/domain"
)

// Explorer defines the business operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the filesystem or the database.
type Explorer interface {
	Cities() []domain.City
	Explore(ctx context.Context, spec domain.FilterSpec) (domain.Report, error)
	Trips(ctx context.Context, spec domain.FilterSpec) ([]domain.Trip, error)
}

// Server serves every API endpoint. Wire it in main.go via Routes.
type Server struct {
	explore Explorer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(explore Explorer) *Server {
	return &Server{explore: explore}
}
