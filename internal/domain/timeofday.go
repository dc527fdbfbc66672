package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time with minute precision, stored as minutes since
// midnight. Values built by the constructors lie in 00:00–23:59; Add may carry
// past midnight, in which case the value stays greater than every same-day time
// and String renders it modulo one day.
type TimeOfDay struct {
	minutes int
}

// NewTimeOfDay builds a TimeOfDay from an hour (0–23) and minute (0–59).
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %02d:%02d is not a valid time of day", ErrInvalidFormat, hour, minute)
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

// ParseTimeOfDay takes the hour and minute of t. The date and location are
// ignored; any seconds or sub-second component is rejected.
func ParseTimeOfDay(t time.Time) (TimeOfDay, error) {
	if err := checkMinutePrecision(t); err != nil {
		return TimeOfDay{}, err
	}
	return NewTimeOfDay(t.Hour(), t.Minute())
}

// ParseClock parses "hh:mm" (one or two digit hour, two digit minute).
func ParseClock(s string) (TimeOfDay, error) {
	hour, minute, err := splitClock(s)
	if err != nil {
		return TimeOfDay{}, err
	}
	return NewTimeOfDay(hour, minute)
}

// MustClock is ParseClock for fixed literals; it panics on malformed input.
func MustClock(s string) TimeOfDay {
	t, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Hour returns the hour component, 0–23.
func (t TimeOfDay) Hour() int { return (t.minutes % minutesPerDay) / 60 }

// Minute returns the minute component, 0–59.
func (t TimeOfDay) Minute() int { return t.minutes % 60 }

// Add returns t shifted forward by d, truncated to whole minutes.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return TimeOfDay{minutes: t.minutes + int(d/time.Minute)}
}

// Sub returns the duration t-u.
func (t TimeOfDay) Sub(u TimeOfDay) time.Duration {
	return time.Duration(t.minutes-u.minutes) * time.Minute
}

// Before reports whether t is strictly earlier than u.
func (t TimeOfDay) Before(u TimeOfDay) bool { return t.minutes < u.minutes }

// After reports whether t is strictly later than u.
func (t TimeOfDay) After(u TimeOfDay) bool { return t.minutes > u.minutes }

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or after u.
func (t TimeOfDay) Compare(u TimeOfDay) int {
	switch {
	case t.minutes < u.minutes:
		return -1
	case t.minutes > u.minutes:
		return 1
	default:
		return 0
	}
}

// NextDay reports whether Add carried t past midnight.
func (t TimeOfDay) NextDay() bool { return t.minutes >= minutesPerDay }

// String renders t as "hh:mm".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MarshalText implements encoding.TextMarshaler so JSON and YAML carry "hh:mm".
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseDelay parses a delay written as "hh:mm" into a whole-minute duration.
func ParseDelay(s string) (time.Duration, error) {
	hours, minutes, err := splitClock(s)
	if err != nil {
		return 0, err
	}
	if minutes > 59 {
		return 0, fmt.Errorf("%w: %q has more than 59 minutes", ErrInvalidFormat, s)
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
}

// FormatDelay renders a delay as "hh:mm".
func FormatDelay(d time.Duration) string {
	total := int(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// splitClock splits "h:mm" or "hh:mm" into its two non-negative numbers.
// The hour has at most two digits, so a parsed delay stays under 100 hours.
func splitClock(s string) (int, int, error) {
	head, tail, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || head == "" || len(head) > 2 || len(tail) != 2 || !isDigits(head) || !isDigits(tail) {
		return 0, 0, fmt.Errorf("%w: %q is not in the format hh:mm", ErrInvalidFormat, s)
	}
	hours, err := strconv.Atoi(head)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q is not in the format hh:mm", ErrInvalidFormat, s)
	}
	minutes, _ := strconv.Atoi(tail)
	return hours, minutes, nil
}
