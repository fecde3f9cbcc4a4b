package availability

import "time"

// Break is a sub-interval of the working day during which no slots are
// offered, half-open: a slot starting exactly at Start is excluded, a slot
// starting exactly at End is offered.
type Break struct {
	Start Clock
	End   Clock
}

// Window is a provider's recurring working-hours template for one weekday.
// The invariant Start < End, and when a break is present
// Start <= Break.Start < Break.End <= End, is not enforced at construction;
// a window violating it simply yields no slots.
type Window struct {
	Weekday time.Weekday
	Start   Clock
	End     Clock
	Break   *Break
}

func (w Window) valid() bool {
	if w.Start >= w.End {
		return false
	}
	if w.Break != nil {
		b := *w.Break
		if b.Start >= b.End || b.Start < w.Start || b.End > w.End {
			return false
		}
	}
	return true
}

// Appointment is an existing booking reduced to what conflict detection
// needs. DurationMinutes <= 0 is treated as DefaultSlotMinutes.
type Appointment struct {
	Start           Clock
	DurationMinutes int
}

func (a Appointment) end() Clock {
	d := a.DurationMinutes
	if d <= 0 {
		d = DefaultSlotMinutes
	}
	return a.Start.Add(d)
}

// Grid returns the ordered candidate starts t0, t0+d, t0+2d, ... with each
// start strictly before end. A window too short to hold a single slot yields
// nothing. A slot may start before closing yet nominally run past it; that
// mirrors how the booking flow has always behaved and is relied on by
// callers.
func Grid(start, end Clock, durationMinutes int) []Clock {
	if durationMinutes <= 0 {
		return nil
	}
	if int(end-start) < durationMinutes {
		return nil
	}
	var out []Clock
	for t := start; t < end; t = t.Add(durationMinutes) {
		out = append(out, t)
	}
	return out
}

// ExcludeBreak drops every candidate t with brk.Start <= t < brk.End.
// A nil break is the identity.
func ExcludeBreak(grid []Clock, brk *Break) []Clock {
	if brk == nil {
		return grid
	}
	var out []Clock
	for _, t := range grid {
		if t >= brk.Start && t < brk.End {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Conflicts reports whether the slot [start, start+duration) overlaps any
// booked appointment. Two half-open intervals [s1,e1) and [s2,e2) conflict
// iff s1 < e2 && s2 < e1.
func Conflicts(start Clock, durationMinutes int, booked []Appointment) bool {
	if durationMinutes <= 0 {
		durationMinutes = DefaultSlotMinutes
	}
	end := start.Add(durationMinutes)
	for _, b := range booked {
		if start < b.end() && b.Start < end {
			return true
		}
	}
	return false
}

// Resolve returns the ordered bookable slot starts for one provider-day.
//
// booked must already be scoped to the same provider and date, and filtered
// to active appointments; cancelled bookings passed in here will keep their
// old time blocked. Degenerate configuration (inverted window, break outside
// the window) yields an empty result, never an error: the caller renders
// that as "no availability", while "no window at all for this weekday" is
// the caller's own case to distinguish before calling.
func Resolve(w Window, durationMinutes int, booked []Appointment) []Clock {
	if durationMinutes <= 0 {
		durationMinutes = DefaultSlotMinutes
	}
	if !w.valid() {
		return nil
	}
	var out []Clock
	for _, t := range ExcludeBreak(Grid(w.Start, w.End, durationMinutes), w.Break) {
		if Conflicts(t, durationMinutes, booked) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ResolveForDate is Resolve with a guard that the window actually applies to
// the requested date's weekday.
func ResolveForDate(date time.Time, w Window, durationMinutes int, booked []Appointment) []Clock {
	if w.Weekday != date.Weekday() {
		return nil
	}
	return Resolve(w, durationMinutes, booked)
}
