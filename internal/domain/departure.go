// Package domain contains the core data types of the train dispatch system.
// This package has zero external dependencies and is imported by every other
// internal package (registry, clock, service, handler, console).
package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Departure is one scheduled train service.
// The scheduled time, line, train number and destination are fixed at
// construction; only the track and the delay change afterwards.
type Departure struct {
	departureTime TimeOfDay
	line          string
	trainNumber   string
	destination   string
	track         int
	delay         time.Duration
}

// NewDeparture validates its arguments and returns a departure without a track.
func NewDeparture(departureTime TimeOfDay, line, trainNumber, destination string) (Departure, error) {
	destination = strings.TrimSpace(destination)
	if err := checkLine(line); err != nil {
		return Departure{}, err
	}
	if err := checkTrainNumber(trainNumber); err != nil {
		return Departure{}, err
	}
	if err := checkDestination(destination); err != nil {
		return Departure{}, err
	}
	return Departure{
		departureTime: departureTime,
		line:          line,
		trainNumber:   trainNumber,
		destination:   destination,
		track:         TrackUnset,
	}, nil
}

// NewDepartureOnTrack is NewDeparture with the track assigned up front.
func NewDepartureOnTrack(departureTime TimeOfDay, line, trainNumber, destination string, track int) (Departure, error) {
	d, err := NewDeparture(departureTime, line, trainNumber, destination)
	if err != nil {
		return Departure{}, err
	}
	if err := d.SetTrack(track); err != nil {
		return Departure{}, err
	}
	return d, nil
}

// DepartureTime returns the scheduled departure time.
func (d Departure) DepartureTime() TimeOfDay { return d.departureTime }

// Line returns the line, e.g. "F14".
func (d Departure) Line() string { return d.line }

// TrainNumber returns the train number that identifies the departure.
func (d Departure) TrainNumber() string { return d.trainNumber }

// Destination returns the trimmed destination.
func (d Departure) Destination() string { return d.destination }

// Delay returns the current delay; zero when on time.
func (d Departure) Delay() time.Duration { return d.delay }

// Track returns the assigned track, or TrackUnset.
func (d Departure) Track() int { return d.track }

// HasTrack reports whether a track has been assigned.
func (d Departure) HasTrack() bool { return d.track != TrackUnset }

// SetTrack assigns or re-assigns the track.
func (d *Departure) SetTrack(track int) error {
	if err := checkTrack(track); err != nil {
		return err
	}
	d.track = track
	return nil
}

// SetDelay replaces the delay. A delay may be reduced as well as increased.
func (d *Departure) SetDelay(delay time.Duration) error {
	if err := checkDelay(delay); err != nil {
		return err
	}
	d.delay = delay
	return nil
}

// ActualDepartureTime is the scheduled time plus the delay.
func (d Departure) ActualDepartureTime() TimeOfDay {
	return d.departureTime.Add(d.delay)
}

// Compare orders departures by scheduled departure time only.
func (d Departure) Compare(other Departure) int {
	return d.departureTime.Compare(other.departureTime)
}

// BoardRow is the column data of one departure on the board.
// Delay is blank when there is no delay and Track is blank when unset.
type BoardRow struct {
	Time        string `json:"time"`
	Line        string `json:"line"`
	TrainNumber string `json:"train_number"`
	Destination string `json:"destination"`
	Delay       string `json:"delay"`
	Track       string `json:"track"`
	ETA         string `json:"eta"`
}

// Row returns the board columns for d.
func (d Departure) Row() BoardRow {
	row := BoardRow{
		Time:        d.departureTime.String(),
		Line:        d.line,
		TrainNumber: d.trainNumber,
		Destination: d.destination,
		ETA:         d.ActualDepartureTime().String(),
	}
	if d.delay != 0 {
		row.Delay = FormatDelay(d.delay)
	}
	if d.HasTrack() {
		row.Track = strconv.Itoa(d.track)
	}
	return row
}

// BoardHeader and BoardSeparator head every rendered board.
var (
	BoardHeader    = BoardRow{Time: "Time", Line: "Line", TrainNumber: "Nr.", Destination: "Destination", Delay: "Delay", Track: "Track", ETA: "ETA"}.String()
	BoardSeparator = strings.Repeat("-", 62)
)

// String renders the row in fixed-width columns.
func (r BoardRow) String() string {
	return fmt.Sprintf("%-8s%-6s%-6s%-16s%-10s%-10s%s",
		r.Time, r.Line, r.TrainNumber, r.Destination, r.Delay, r.Track, r.ETA)
}

// String renders d as one board row.
func (d Departure) String() string {
	return d.Row().String()
}
