// Package registry holds the active departures and enforces the rules that
// keep them consistent: unique train numbers, and no two departures leaving in
// the same minute from the same track or on the same line.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pkordes/train-dispatch/internal/clock"
	"github.com/pkordes/train-dispatch/internal/domain"
)

// entry pairs a held departure with its insertion sequence number, which
// breaks ties between departures scheduled for the same minute.
type entry struct {
	departure domain.Departure
	seq       uint64
}

// Registry owns a set of departures keyed by train number.
// Every read returns copies, so the only way to change a held departure is
// through a Registry method. It is not safe for concurrent use.
type Registry struct {
	departures   map[string]*entry
	nextSeq      uint64
	strictTracks bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithStrictTracks makes a track permanent once assigned: further assignments
// fail with domain.ErrTrackAlreadySet.
func WithStrictTracks() Option {
	return func(r *Registry) { r.strictTracks = true }
}

// New returns an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{departures: make(map[string]*entry)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// compile-time check: the registry purges expired departures on clock ticks.
var _ clock.Listener = (*Registry)(nil)

// Add inserts d. Rules are checked in order and the first failure wins:
// duplicate train number, then track conflict, then line conflict.
func (r *Registry) Add(d domain.Departure) error {
	if _, ok := r.departures[d.TrainNumber()]; ok {
		return fmt.Errorf("%w: the train number %s is already being used", domain.ErrDuplicateTrainNumber, d.TrainNumber())
	}
	for _, e := range r.departures {
		if err := checkConflict(e.departure, d); err != nil {
			return err
		}
	}
	r.departures[d.TrainNumber()] = &entry{departure: d, seq: r.nextSeq}
	r.nextSeq++
	return nil
}

// checkConflict compares a held departure with a candidate.
func checkConflict(held, candidate domain.Departure) error {
	if held.DepartureTime() != candidate.DepartureTime() {
		return nil
	}
	if err := checkTrackConflict(held, candidate); err != nil {
		return err
	}
	if held.Line() == candidate.Line() {
		return fmt.Errorf("%w: there can't be two trains on line %s at %s",
			domain.ErrLineConflict, candidate.Line(), candidate.DepartureTime())
	}
	return nil
}

// checkTrackConflict reports two departures in the same minute on the same
// assigned track. Unset tracks never conflict.
func checkTrackConflict(held, candidate domain.Departure) error {
	if held.DepartureTime() != candidate.DepartureTime() {
		return nil
	}
	if held.HasTrack() && candidate.HasTrack() && held.Track() == candidate.Track() {
		return fmt.Errorf("%w: there can't be two trains on track %d at %s",
			domain.ErrTrackConflict, candidate.Track(), candidate.DepartureTime())
	}
	return nil
}

// FindByTrainNumber returns the departure with the given train number.
// Returns domain.ErrNotFound if there is none.
func (r *Registry) FindByTrainNumber(trainNumber string) (domain.Departure, error) {
	e, ok := r.departures[trainNumber]
	if !ok {
		return domain.Departure{}, notFound(trainNumber)
	}
	return e.departure, nil
}

// FindByDestination returns every departure whose destination matches
// case-insensitively, sorted by scheduled time. Returns domain.ErrNotFound
// when nothing matches.
func (r *Registry) FindByDestination(destination string) ([]domain.Departure, error) {
	want := strings.TrimSpace(destination)
	var matches []*entry
	for _, e := range r.departures {
		if strings.EqualFold(e.departure.Destination(), want) {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no departures going to %s", domain.ErrNotFound, want)
	}
	return sorted(matches), nil
}

// SortedByDepartureTime returns all departures ordered by scheduled time.
// Departures scheduled for the same minute keep their insertion order.
func (r *Registry) SortedByDepartureTime() []domain.Departure {
	all := make([]*entry, 0, len(r.departures))
	for _, e := range r.departures {
		all = append(all, e)
	}
	return sorted(all)
}

func sorted(entries []*entry) []domain.Departure {
	slices.SortFunc(entries, func(a, b *entry) int {
		if c := a.departure.Compare(b.departure); c != 0 {
			return c
		}
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		default:
			return 0
		}
	})
	out := make([]domain.Departure, len(entries))
	for i, e := range entries {
		out[i] = e.departure
	}
	return out
}

// RemoveExpired deletes every departure whose actual departure time is
// strictly before ref and returns them in departure order. Calling it again
// with the same or an earlier ref removes nothing.
func (r *Registry) RemoveExpired(ref domain.TimeOfDay) []domain.Departure {
	var expired []*entry
	for _, e := range r.departures {
		if e.departure.ActualDepartureTime().Before(ref) {
			expired = append(expired, e)
		}
	}
	for _, e := range expired {
		delete(r.departures, e.departure.TrainNumber())
	}
	return sorted(expired)
}

// OnTimeAdvanced implements clock.Listener.
func (r *Registry) OnTimeAdvanced(now domain.TimeOfDay) error {
	r.RemoveExpired(now)
	return nil
}

// AssignTrack gives the departure a new track. The track conflict rule is
// re-checked against every other departure leaving in the same minute.
func (r *Registry) AssignTrack(trainNumber string, track int) (domain.Departure, error) {
	e, ok := r.departures[trainNumber]
	if !ok {
		return domain.Departure{}, notFound(trainNumber)
	}
	if r.strictTracks && e.departure.HasTrack() {
		return domain.Departure{}, fmt.Errorf("%w: the track of train %s has already been set", domain.ErrTrackAlreadySet, trainNumber)
	}
	updated := e.departure
	if err := updated.SetTrack(track); err != nil {
		return domain.Departure{}, err
	}
	for number, other := range r.departures {
		if number == trainNumber {
			continue
		}
		if err := checkTrackConflict(other.departure, updated); err != nil {
			return domain.Departure{}, err
		}
	}
	e.departure = updated
	return updated, nil
}

// SetDelay replaces the delay of a departure.
func (r *Registry) SetDelay(trainNumber string, delay time.Duration) (domain.Departure, error) {
	e, ok := r.departures[trainNumber]
	if !ok {
		return domain.Departure{}, notFound(trainNumber)
	}
	if err := e.departure.SetDelay(delay); err != nil {
		return domain.Departure{}, err
	}
	return e.departure, nil
}

// Remove deletes a departure outright.
func (r *Registry) Remove(trainNumber string) error {
	if _, ok := r.departures[trainNumber]; !ok {
		return notFound(trainNumber)
	}
	delete(r.departures, trainNumber)
	return nil
}

// Len returns the number of held departures.
func (r *Registry) Len() int { return len(r.departures) }

// Render returns the board: header, separator, then one row per departure in
// departure order.
func (r *Registry) Render() string {
	var b strings.Builder
	b.WriteString(domain.BoardHeader)
	b.WriteString("\n")
	b.WriteString(domain.BoardSeparator)
	for _, d := range r.SortedByDepartureTime() {
		b.WriteString("\n")
		b.WriteString(d.String())
	}
	return b.String()
}

func notFound(trainNumber string) error {
	return fmt.Errorf("%w: train number %s is not in the register", domain.ErrNotFound, trainNumber)
}
