package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Field limits. They match the column widths of the departure board.
const (
	MaxLineLength        = 5
	MaxTrainNumberLength = 5
	MaxDestinationLength = 15
)

// TrackUnset is the track value of a departure that has no track yet.
const TrackUnset = -1

// Every constructor and setter validates through these functions, so each rule
// is stated exactly once.

func checkMinutePrecision(t time.Time) error {
	if t.Second() != 0 || t.Nanosecond() != 0 {
		return fmt.Errorf("%w: time cannot contain time-units lower than minutes", ErrInvalidFormat)
	}
	return nil
}

func checkDelay(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: delay cannot be negative", ErrInvalidFormat)
	}
	if d%time.Minute != 0 {
		return fmt.Errorf("%w: delay cannot contain time-units lower than minutes", ErrInvalidFormat)
	}
	return nil
}

// checkLine enforces the "F14" shape: a non-digit followed only by digits.
func checkLine(line string) error {
	if line == "" {
		return fmt.Errorf("%w: the line is required", ErrInvalidFormat)
	}
	if utf8.RuneCountInString(line) > MaxLineLength {
		return fmt.Errorf("%w: the line can be at most %d characters", ErrInvalidFormat, MaxLineLength)
	}
	first, size := utf8.DecodeRuneInString(line)
	if first >= '0' && first <= '9' {
		return fmt.Errorf("%w: the first character of the line can't be a number", ErrInvalidFormat)
	}
	if !isDigits(line[size:]) {
		return fmt.Errorf("%w: every character after the first of the line must be a number", ErrInvalidFormat)
	}
	return nil
}

func checkTrainNumber(trainNumber string) error {
	if trainNumber == "" {
		return fmt.Errorf("%w: the train number is required", ErrInvalidFormat)
	}
	if len(trainNumber) > MaxTrainNumberLength {
		return fmt.Errorf("%w: the train number can be at most %d digits", ErrInvalidFormat, MaxTrainNumberLength)
	}
	if !isDigits(trainNumber) {
		return fmt.Errorf("%w: every character in the train number must be a number", ErrInvalidFormat)
	}
	return nil
}

func checkDestination(destination string) error {
	if strings.TrimSpace(destination) == "" {
		return fmt.Errorf("%w: the destination is required", ErrInvalidFormat)
	}
	if utf8.RuneCountInString(destination) > MaxDestinationLength {
		return fmt.Errorf("%w: the destination can be at most %d characters", ErrInvalidFormat, MaxDestinationLength)
	}
	return nil
}

func checkTrack(track int) error {
	if track < 1 {
		return fmt.Errorf("%w: the track must be a positive integer", ErrInvalidTrack)
	}
	return nil
}

// isDigits reports whether s consists only of ASCII digits. The empty string
// counts as digits so a one-character line passes.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
