// Package testutil provides shared fixtures for tests across packages.
// Every helper fails the calling test immediately on bad input, so tests can
// build departures and registries from plain literals.
package testutil

import (
	"testing"

	"github.com/pkordes/train-dispatch/internal/domain"
	"github.com/pkordes/train-dispatch/internal/registry"
)

// Clock parses an "hh:mm" literal, failing the test if it is malformed.
func Clock(t *testing.T, s string) domain.TimeOfDay {
	t.Helper()
	at, err := domain.ParseClock(s)
	if err != nil {
		t.Fatalf("testutil.Clock(%q): %v", s, err)
	}
	return at
}

// Departure builds a departure from literals. A track of 0 leaves it unset.
func Departure(t *testing.T, at, line, trainNumber, destination string, track int) domain.Departure {
	t.Helper()
	var (
		d   domain.Departure
		err error
	)
	if track == 0 {
		d, err = domain.NewDeparture(Clock(t, at), line, trainNumber, destination)
	} else {
		d, err = domain.NewDepartureOnTrack(Clock(t, at), line, trainNumber, destination, track)
	}
	if err != nil {
		t.Fatalf("testutil.Departure(%s %s %s): %v", at, line, trainNumber, err)
	}
	return d
}

// ScenarioDepartures returns the three reference departures:
//
//	12:18 F21 684  Trondheim track 4
//	13:25 F14 608  Drammen   no track
//	15:15 F22 1337 Trondheim track 2
//
// in the order 608, 1337, 684 so that insertion order differs from time order.
func ScenarioDepartures(t *testing.T) []domain.Departure {
	t.Helper()
	return []domain.Departure{
		Departure(t, "13:25", "F14", "608", "Drammen", 0),
		Departure(t, "15:15", "F22", "1337", "Trondheim", 2),
		Departure(t, "12:18", "F21", "684", "Trondheim", 4),
	}
}

// ScenarioRegistry returns a registry holding ScenarioDepartures.
func ScenarioRegistry(t *testing.T, opts ...registry.Option) *registry.Registry {
	t.Helper()
	r := registry.New(opts...)
	for _, d := range ScenarioDepartures(t) {
		if err := r.Add(d); err != nil {
			t.Fatalf("testutil.ScenarioRegistry: add %s: %v", d.TrainNumber(), err)
		}
	}
	return r
}
