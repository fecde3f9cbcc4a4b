// Package availability computes the bookable appointment slots for one
// provider-day from the provider's availability window, an optional break,
// and the appointments already booked for that day. Everything in this
// package is a pure function of its inputs: no I/O, no shared state, and
// identical inputs always produce identical output.
package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultSlotMinutes is the slot length used when a caller does not supply one.
const DefaultSlotMinutes = 30

// Clock is a provider-local wall-clock time expressed as minutes since
// midnight. It carries no date and no timezone; 0 is midnight, 540 is 09:00.
type Clock int

var ErrInvalidClock = errors.New("invalid wall-clock time")

// ParseClock parses a strict "HH:MM" (or "H:MM") wall-clock string.
// Malformed input is a data error and fails fast rather than leaking into
// slot arithmetic.
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock(h*60 + m), nil
}

// String formats the clock as zero-padded "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Add returns the clock advanced by mins minutes. Rollover across hour
// boundaries is inherent to the minute representation.
func (c Clock) Add(mins int) Clock {
	return c + Clock(mins)
}

// Strings formats a slot list as ascending "HH:MM" values for API responses.
func Strings(slots []Clock) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}
