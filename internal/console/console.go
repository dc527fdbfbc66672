// Package console implements the interactive text menu of the dispatch system.
// It reads one answer per line and writes prompts and results as plain text.
// Every failed action prints a single line and the menu is shown again.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/train-dispatch/internal/domain"
	"github.com/pkordes/train-dispatch/internal/service"
)

// Dispatcher is the set of dispatch operations the menu uses.
type Dispatcher interface {
	Add(ctx context.Context, in service.NewDeparture) (domain.Departure, error)
	GetByTrainNumber(ctx context.Context, trainNumber string) (domain.Departure, error)
	SearchDestination(ctx context.Context, destination string) ([]domain.Departure, error)
	AssignTrack(ctx context.Context, trainNumber string, track int) (domain.Departure, error)
	SetDelay(ctx context.Context, trainNumber string, delay time.Duration) (domain.Departure, error)
	SetTime(ctx context.Context, t domain.TimeOfDay) (domain.TimeOfDay, error)
	AdvanceTime(ctx context.Context, hours, minutes int) (domain.TimeOfDay, error)
	Board(ctx context.Context) string
}

const menu = `What do you want to do?
1. Print departures
2. Create new train departure
3. Search departure by destination
4. Search by train number
5. Assign new track to departure
6. Add delay to departure
7. Update clock
8. Advance clock
9. Exit
`

// searchHeading pads the search title to the width of the time, line, number
// and destination columns so the remaining headings line up with the rows.
const searchHeading = "%-36sDelay     Track     ETA\n"

var (
	// errInputNotValid marks answers that are not a number where one is expected.
	errInputNotValid = errors.New("input not valid")
	// errEndOfInput ends the session when the reader is exhausted.
	errEndOfInput = errors.New("end of input")
)

// Console runs the menu loop over a reader and a writer.
type Console struct {
	in       *bufio.Scanner
	out      io.Writer
	dispatch Dispatcher
}

// New returns a Console reading answers from in and writing to out.
func New(in io.Reader, out io.Writer, dispatch Dispatcher) *Console {
	return &Console{in: bufio.NewScanner(in), out: out, dispatch: dispatch}
}

// Run shows the menu until the user picks Exit, the input ends or ctx is
// cancelled. It only returns an error when reading the input fails.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(c.out, menu)

		choice, err := c.askInt()
		if err == nil {
			if choice == 9 {
				return nil
			}
			err = c.dispatchChoice(ctx, choice)
		}

		switch {
		case err == nil:
		case errors.Is(err, errEndOfInput):
			return c.in.Err()
		case errors.Is(err, errInputNotValid):
			fmt.Fprint(c.out, "Input not valid!\n\n")
		default:
			fmt.Fprintf(c.out, "%s\n\n", message(err))
		}
	}
}

func (c *Console) dispatchChoice(ctx context.Context, choice int) error {
	switch choice {
	case 1:
		fmt.Fprintf(c.out, "%s\n\n", c.dispatch.Board(ctx))
		return nil
	case 2:
		return c.create(ctx)
	case 3:
		return c.searchDestination(ctx)
	case 4:
		return c.searchTrainNumber(ctx)
	case 5:
		return c.assignTrack(ctx)
	case 6:
		return c.setDelay(ctx)
	case 7:
		return c.setClock(ctx)
	case 8:
		return c.advanceClock(ctx)
	default:
		fmt.Fprint(c.out, "Please give an integer on the list!\n\n")
		return nil
	}
}

func (c *Console) create(ctx context.Context) error {
	at, err := c.askTime("When is the departure time?")
	if err != nil {
		return err
	}
	line, err := c.ask("What is the line number?")
	if err != nil {
		return err
	}
	trainNumber, err := c.ask("What is the train number?")
	if err != nil {
		return err
	}
	destination, err := c.ask("What is the destination?")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, "What track is it on? (Type 0 or lower if undefined)")
	track, err := c.askInt()
	if err != nil {
		return err
	}
	if track < 0 {
		track = 0
	}

	d, err := c.dispatch.Add(ctx, service.NewDeparture{
		Time:        at,
		Line:        line,
		TrainNumber: trainNumber,
		Destination: destination,
		Track:       track,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Successfully added departure with train number %s!\n\n", d.TrainNumber())
	return nil
}

func (c *Console) searchDestination(ctx context.Context) error {
	destination, err := c.ask("What destination are you searching after?")
	if err != nil {
		return err
	}
	found, err := c.dispatch.SearchDestination(ctx, destination)
	if errors.Is(err, domain.ErrNotFound) {
		fmt.Fprint(c.out, "No departures going to that destination!\n\n")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, searchHeading, "Departures going to "+destination)
	fmt.Fprintln(c.out, domain.BoardSeparator)
	for _, d := range found {
		fmt.Fprintln(c.out, d)
	}
	fmt.Fprintln(c.out)
	return nil
}

func (c *Console) searchTrainNumber(ctx context.Context) error {
	trainNumber, err := c.ask("What train number are you searching after?")
	if err != nil {
		return err
	}
	d, err := c.dispatch.GetByTrainNumber(ctx, trainNumber)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, searchHeading, "Departure with train number "+trainNumber)
	fmt.Fprintln(c.out, domain.BoardSeparator)
	fmt.Fprintf(c.out, "%s\n\n", d)
	return nil
}

func (c *Console) assignTrack(ctx context.Context) error {
	trainNumber, err := c.ask("What train number has the departure you want to switch tracks on?")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, "What track do you want to switch to?")
	track, err := c.askInt()
	if err != nil {
		return err
	}
	if _, err := c.dispatch.AssignTrack(ctx, trainNumber, track); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Successfully swapped departure with train number %s to track %d!\n\n", trainNumber, track)
	return nil
}

func (c *Console) setDelay(ctx context.Context) error {
	trainNumber, err := c.ask("What train number has the departure you want to add delay to?")
	if err != nil {
		return err
	}
	delay, err := c.askDuration("What is the delay?")
	if err != nil {
		return err
	}
	d, err := c.dispatch.SetDelay(ctx, trainNumber, delay)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Successfully set delay of departure with train number %s to %s!\n\n",
		trainNumber, domain.FormatDelay(d.Delay()))
	return nil
}

func (c *Console) setClock(ctx context.Context) error {
	at, err := c.askTime("What do you want to set the time to?")
	if err != nil {
		return err
	}
	now, err := c.dispatch.SetTime(ctx, at)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "The time is %s\n\n", now)
	return nil
}

func (c *Console) advanceClock(ctx context.Context) error {
	step, err := c.askDuration("How much do you want to advance the clock?")
	if err != nil {
		return err
	}
	now, err := c.dispatch.AdvanceTime(ctx, int(step/time.Hour), int(step%time.Hour/time.Minute))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "The time is %s\n\n", now)
	return nil
}

// ---- input -------------------------------------------------------------------

// ask prints prompt and returns the next line with surrounding blanks removed.
func (c *Console) ask(prompt string) (string, error) {
	fmt.Fprintln(c.out, prompt)
	return c.readLine()
}

func (c *Console) askTime(prompt string) (domain.TimeOfDay, error) {
	answer, err := c.ask(prompt + " (Give time in the format hh:mm)")
	if err != nil {
		return domain.TimeOfDay{}, err
	}
	return domain.ParseClock(answer)
}

func (c *Console) askDuration(prompt string) (time.Duration, error) {
	answer, err := c.ask(prompt + " (Give time in the format hh:mm)")
	if err != nil {
		return 0, err
	}
	return domain.ParseDelay(answer)
}

// askInt reads the next line as an integer without printing a prompt.
func (c *Console) askInt() (int, error) {
	answer, err := c.readLine()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, errInputNotValid
	}
	return n, nil
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		return "", errEndOfInput
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// message drops the leading category from a domain error so the user sees
// only the explanation, e.g. "the track must be a positive integer".
func message(err error) string {
	msg := err.Error()
	if _, detail, ok := strings.Cut(msg, ": "); ok && detail != "" {
		return detail
	}
	return msg
}
