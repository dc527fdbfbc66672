// Package clock holds the dispatch system's notion of the current time and
// pushes every change to its subscribed listeners.
package clock

import (
	"fmt"
	"time"

	"github.com/pkordes/train-dispatch/internal/domain"
)

// Listener is notified after every successful change of the clock's time.
// Listeners always observe a non-decreasing sequence of times.
type Listener interface {
	OnTimeAdvanced(now domain.TimeOfDay) error
}

// ListenerFunc adapts an ordinary function to the Listener interface.
type ListenerFunc func(now domain.TimeOfDay) error

// OnTimeAdvanced calls f(now).
func (f ListenerFunc) OnTimeAdvanced(now domain.TimeOfDay) error { return f(now) }

// Clock is a monotonic time-of-day clock. It is not safe for concurrent use.
type Clock struct {
	now       domain.TimeOfDay
	listeners []Listener
}

// New returns a clock set to initial with no listeners.
func New(initial domain.TimeOfDay) *Clock {
	return &Clock{now: initial}
}

// Now returns the current time.
func (c *Clock) Now() domain.TimeOfDay { return c.now }

// Subscribe appends l to the notification list. Listeners are notified in
// subscription order.
func (c *Clock) Subscribe(l Listener) {
	c.listeners = append(c.listeners, l)
}

// SetTime moves the clock to t and notifies every listener in order.
// Moving backwards fails with domain.ErrTimeRegression and notifies nobody.
// Setting the current time again is allowed and still notifies.
//
// Notification stops at the first listener error, which is returned; the new
// time stays in effect.
func (c *Clock) SetTime(t domain.TimeOfDay) error {
	if t.Before(c.now) {
		return fmt.Errorf("%w: cannot set the clock to an earlier time (%s is before %s)", domain.ErrTimeRegression, t, c.now)
	}
	c.now = t
	return c.notify()
}

// AddTime advances the clock by hours and minutes and notifies listeners.
// The step must be non-negative, shorter than a day and must not carry the
// clock past 23:59; otherwise it fails with domain.ErrOverflow.
func (c *Clock) AddTime(hours, minutes int) error {
	if hours < 0 || minutes < 0 {
		return fmt.Errorf("%w: cannot add a negative amount of time", domain.ErrOverflow)
	}
	// Checked as integers so huge inputs cannot wrap the Duration below.
	if hours >= 24 || minutes >= 24*60 || hours*60+minutes >= 24*60 {
		return fmt.Errorf("%w: cannot add 24 hours or more", domain.ErrOverflow)
	}
	step := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	next := c.now.Add(step)
	if next.NextDay() {
		return fmt.Errorf("%w: adding %s to %s passes midnight", domain.ErrOverflow, domain.FormatDelay(step), c.now)
	}
	return c.SetTime(next)
}

func (c *Clock) notify() error {
	for i, l := range c.listeners {
		if err := l.OnTimeAdvanced(c.now); err != nil {
			return fmt.Errorf("clock listener %d at %s: %w", i, c.now, err)
		}
	}
	return nil
}

// String renders the clock the way the console shows it.
func (c *Clock) String() string {
	return "The time is " + c.now.String()
}
