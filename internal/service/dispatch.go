// Package service contains the application logic of the dispatch system.
// It wires the registry to the clock, serialises access for concurrent callers
// (the HTTP server) and logs every change. Rules live in the registry and the
// domain types; errors from them are returned unchanged.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pkordes/train-dispatch/internal/clock"
	"github.com/pkordes/train-dispatch/internal/domain"
	"github.com/pkordes/train-dispatch/internal/registry"
)

// NewDeparture carries the fields needed to create a departure.
// Track 0 means the departure has no track yet.
type NewDeparture struct {
	Time        domain.TimeOfDay
	Line        string
	TrainNumber string
	Destination string
	Track       int
}

// DispatchService implements the dispatch operations on top of one registry
// and one clock.
type DispatchService struct {
	mu    sync.Mutex
	reg   *registry.Registry
	clock *clock.Clock
	log   *slog.Logger
}

// NewDispatchService subscribes reg to clk so that advancing the clock expires
// departures, and returns a service over both.
func NewDispatchService(reg *registry.Registry, clk *clock.Clock, log *slog.Logger) *DispatchService {
	clk.Subscribe(reg)
	return &DispatchService{reg: reg, clock: clk, log: log}
}

// Add validates and registers a new departure.
func (s *DispatchService) Add(ctx context.Context, in NewDeparture) (domain.Departure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := build(in)
	if err == nil {
		err = s.reg.Add(d)
	}
	if err != nil {
		s.log.DebugContext(ctx, "departure rejected", "train_number", in.TrainNumber, "error", err)
		return domain.Departure{}, err
	}
	s.log.InfoContext(ctx, "departure added",
		"train_number", d.TrainNumber(),
		"line", d.Line(),
		"time", d.DepartureTime().String(),
		"destination", d.Destination(),
	)
	return d, nil
}

func build(in NewDeparture) (domain.Departure, error) {
	if in.Track == 0 {
		return domain.NewDeparture(in.Time, in.Line, in.TrainNumber, in.Destination)
	}
	return domain.NewDepartureOnTrack(in.Time, in.Line, in.TrainNumber, in.Destination, in.Track)
}

// GetByTrainNumber returns a single departure.
func (s *DispatchService) GetByTrainNumber(_ context.Context, trainNumber string) (domain.Departure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.FindByTrainNumber(trainNumber)
}

// SearchDestination returns the departures to destination in departure order.
func (s *DispatchService) SearchDestination(_ context.Context, destination string) ([]domain.Departure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.FindByDestination(destination)
}

// List returns every departure in departure order. The result is never nil.
func (s *DispatchService) List(_ context.Context) ([]domain.Departure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.SortedByDepartureTime(), nil
}

// AssignTrack moves a departure to another track.
func (s *DispatchService) AssignTrack(ctx context.Context, trainNumber string, track int) (domain.Departure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.reg.AssignTrack(trainNumber, track)
	if err != nil {
		s.log.DebugContext(ctx, "track assignment rejected", "train_number", trainNumber, "track", track, "error", err)
		return domain.Departure{}, err
	}
	s.log.InfoContext(ctx, "track assigned", "train_number", trainNumber, "track", track)
	return d, nil
}

// SetDelay replaces the delay of a departure.
func (s *DispatchService) SetDelay(ctx context.Context, trainNumber string, delay time.Duration) (domain.Departure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.reg.SetDelay(trainNumber, delay)
	if err != nil {
		s.log.DebugContext(ctx, "delay rejected", "train_number", trainNumber, "error", err)
		return domain.Departure{}, err
	}
	s.log.InfoContext(ctx, "delay set",
		"train_number", trainNumber,
		"delay", domain.FormatDelay(delay),
		"eta", d.ActualDepartureTime().String(),
	)
	return d, nil
}

// Remove cancels a departure.
func (s *DispatchService) Remove(ctx context.Context, trainNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reg.Remove(trainNumber); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "departure removed", "train_number", trainNumber)
	return nil
}

// Now returns the current clock time.
func (s *DispatchService) Now(_ context.Context) domain.TimeOfDay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.Now()
}

// SetTime moves the clock forward to t, expiring departures that have left.
func (s *DispatchService) SetTime(ctx context.Context, t domain.TimeOfDay) (domain.TimeOfDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick(ctx, func() error { return s.clock.SetTime(t) })
}

// AdvanceTime moves the clock forward by hours and minutes.
func (s *DispatchService) AdvanceTime(ctx context.Context, hours, minutes int) (domain.TimeOfDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick(ctx, func() error { return s.clock.AddTime(hours, minutes) })
}

// tick runs one clock change and logs its effect. Callers hold s.mu.
func (s *DispatchService) tick(ctx context.Context, change func() error) (domain.TimeOfDay, error) {
	before := s.reg.Len()
	if err := change(); err != nil {
		s.log.DebugContext(ctx, "clock change rejected", "now", s.clock.Now().String(), "error", err)
		return s.clock.Now(), err
	}
	now := s.clock.Now()
	s.log.InfoContext(ctx, "clock advanced", "now", now.String(), "expired", before-s.reg.Len())
	return now, nil
}

// Board returns the clock line followed by the rendered departure board.
func (s *DispatchService) Board(_ context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.String() + "\n" + s.reg.Render()
}
