// Package seed loads an initial set of departures from a YAML file.
//
// The file looks like:
//
//	clock: "06:00"
//	departures:
//	  - time: "13:25"
//	    line: F14
//	    train_number: "608"
//	    destination: Oslo
//	  - time: "15:15"
//	    line: F15
//	    train_number: "628"
//	    destination: Trondheim
//	    track: 1
//	    delay: "00:29"
//
// Seeding is input only; nothing is ever written back.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/train-dispatch/internal/domain"
	"github.com/pkordes/train-dispatch/internal/service"
)

// File is the decoded seed document.
type File struct {
	// Clock is the optional starting time. Nil leaves the clock alone.
	Clock      *domain.TimeOfDay `yaml:"clock"`
	Departures []Entry           `yaml:"departures"`
}

// Entry is one departure in the seed file.
type Entry struct {
	Time        domain.TimeOfDay `yaml:"time"`
	Line        string           `yaml:"line"`
	TrainNumber string           `yaml:"train_number"`
	Destination string           `yaml:"destination"`
	Track       int              `yaml:"track"`
	Delay       string           `yaml:"delay"`
}

// Dispatcher is the subset of the dispatch service seeding needs.
type Dispatcher interface {
	Add(ctx context.Context, in service.NewDeparture) (domain.Departure, error)
	SetDelay(ctx context.Context, trainNumber string, delay time.Duration) (domain.Departure, error)
	SetTime(ctx context.Context, t domain.TimeOfDay) (domain.TimeOfDay, error)
}

// Decode reads a seed document. Unknown keys are rejected so typos surface.
func Decode(r io.Reader) (File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("seed.Decode: %w", err)
	}
	return f, nil
}

// Load decodes the seed file at path.
func Load(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("seed.Load: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}

// Apply registers every departure in f, sets their delays, and finally moves
// the clock to f.Clock if present. It stops at the first failure and names the
// offending entry.
func Apply(ctx context.Context, d Dispatcher, f File) error {
	for i, e := range f.Departures {
		_, err := d.Add(ctx, service.NewDeparture{
			Time:        e.Time,
			Line:        e.Line,
			TrainNumber: e.TrainNumber,
			Destination: e.Destination,
			Track:       e.Track,
		})
		if err != nil {
			return fmt.Errorf("seed entry %d (train %s): %w", i+1, e.TrainNumber, err)
		}
		if e.Delay == "" {
			continue
		}
		delay, err := domain.ParseDelay(e.Delay)
		if err != nil {
			return fmt.Errorf("seed entry %d (train %s): %w", i+1, e.TrainNumber, err)
		}
		if _, err := d.SetDelay(ctx, e.TrainNumber, delay); err != nil {
			return fmt.Errorf("seed entry %d (train %s): %w", i+1, e.TrainNumber, err)
		}
	}
	if f.Clock != nil {
		if _, err := d.SetTime(ctx, *f.Clock); err != nil {
			return fmt.Errorf("seed clock: %w", err)
		}
	}
	return nil
}
