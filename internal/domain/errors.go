package domain

import "errors"

// Sentinel errors for every rule the dispatch core enforces.
// Failures wrap one of these with a human-readable detail, e.g.
//
//	fmt.Errorf("%w: the track must be a positive integer", ErrInvalidTrack)
//
// Callers test with errors.Is; handlers map them to HTTP status codes and the
// console prints the full message.
var (
	// ErrInvalidFormat is returned when a time, delay or text field is malformed
	// (sub-minute precision, wrong shape, too long).
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidTrack is returned when a track number is not a positive integer.
	ErrInvalidTrack = errors.New("invalid track")

	// ErrTrackAlreadySet is returned by registries with strict track policy when
	// a departure that already has a track is assigned another one.
	ErrTrackAlreadySet = errors.New("track already set")

	// ErrDuplicateTrainNumber is returned when a train number is already registered.
	ErrDuplicateTrainNumber = errors.New("duplicate train number")

	// ErrTrackConflict is returned when two departures would leave from the same
	// track at the same minute.
	ErrTrackConflict = errors.New("track conflict")

	// ErrLineConflict is returned when two departures on the same line would
	// leave at the same minute.
	ErrLineConflict = errors.New("line conflict")

	// ErrNotFound is returned when no departure matches a lookup.
	// Handlers should map this to HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrTimeRegression is returned when the clock is asked to move backwards.
	ErrTimeRegression = errors.New("time regression")

	// ErrOverflow is returned when advancing the clock would exceed one day.
	ErrOverflow = errors.New("overflow")
)
