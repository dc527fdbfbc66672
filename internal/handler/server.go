// Package handler implements the HTTP handlers for the dispatch API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, departure.go, clock.go, board.go, export.go) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/train-dispatch/internal/domain"
	"github.com/pkordes/train-dispatch/internal/service"
)

// DispatchServicer defines the business operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without a real registry or clock.
type DispatchServicer interface {
	Add(ctx context.Context, in service.NewDeparture) (domain.Departure, error)
	GetByTrainNumber(ctx context.Context, trainNumber string) (domain.Departure, error)
	SearchDestination(ctx context.Context, destination string) ([]domain.Departure, error)
	List(ctx context.Context) ([]domain.Departure, error)
	AssignTrack(ctx context.Context, trainNumber string, track int) (domain.Departure, error)
	SetDelay(ctx context.Context, trainNumber string, delay time.Duration) (domain.Departure, error)
	Remove(ctx context.Context, trainNumber string) error
	Now(ctx context.Context) domain.TimeOfDay
	SetTime(ctx context.Context, t domain.TimeOfDay) (domain.TimeOfDay, error)
	AdvanceTime(ctx context.Context, hours, minutes int) (domain.TimeOfDay, error)
	Board(ctx context.Context) string
}

// Server serves the dispatch API.
type Server struct {
	dispatch DispatchServicer
	openAPI  []byte
}

// NewServer constructs the Server with all its dependencies. openAPI is the
// document served at /openapi.yaml; nil disables the route.
func NewServer(dispatch DispatchServicer, openAPI []byte) *Server {
	return &Server{dispatch: dispatch, openAPI: openAPI}
}

// Routes returns a chi router with every endpoint registered. Middleware is
// applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	if s.openAPI != nil {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}
	r.Get("/board", s.GetBoard)
	r.Get("/export", s.GetExport)

	r.Route("/departures", func(r chi.Router) {
		r.Get("/", s.ListDepartures)
		r.Post("/", s.CreateDeparture)
		r.Route("/{trainNumber}", func(r chi.Router) {
			r.Get("/", s.GetDeparture)
			r.Delete("/", s.DeleteDeparture)
			r.Put("/track", s.AssignTrack)
			r.Put("/delay", s.SetDelay)
		})
	})

	r.Route("/clock", func(r chi.Router) {
		r.Get("/", s.GetClock)
		r.Put("/", s.SetClock)
		r.Post("/advance", s.AdvanceClock)
	})

	return r
}
