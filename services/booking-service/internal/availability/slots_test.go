package availability

import (
	"testing"
	"time"
)

func clock(t *testing.T, s string) Clock {
	t.Helper()
	c, err := ParseClock(s)
	if err != nil {
		t.Fatalf("bad clock literal %q: %v", s, err)
	}
	return c
}

func slotStrings(slots []Clock) []string {
	return Strings(slots)
}

func assertSlots(t *testing.T, got []Clock, want []string) {
	t.Helper()
	gotStr := slotStrings(got)
	if len(gotStr) != len(want) {
		t.Fatalf("got %d slots %v, want %d %v", len(gotStr), gotStr, len(want), want)
	}
	for i := range want {
		if gotStr[i] != want[i] {
			t.Fatalf("slot[%d] = %q, want %q (full: %v)", i, gotStr[i], want[i], gotStr)
		}
	}
}

func TestGrid_Basic(t *testing.T) {
	got := Grid(clock(t, "09:00"), clock(t, "11:00"), 30)
	assertSlots(t, got, []string{"09:00", "09:30", "10:00", "10:30"})
}

func TestGrid_WindowShorterThanSlot(t *testing.T) {
	// Scenario 4: 08:00-08:20 cannot hold a 30-minute slot.
	if got := Grid(clock(t, "08:00"), clock(t, "08:20"), 30); len(got) != 0 {
		t.Fatalf("expected empty grid, got %v", slotStrings(got))
	}
}

func TestGrid_LastSlotMayRunPastClose(t *testing.T) {
	// Once the window holds at least one slot, candidates are generated
	// whenever the start precedes closing, even if the service window would
	// nominally extend past it.
	got := Grid(clock(t, "09:00"), clock(t, "10:10"), 30)
	assertSlots(t, got, []string{"09:00", "09:30", "10:00"})
}

func TestGrid_Degenerate(t *testing.T) {
	if got := Grid(clock(t, "09:00"), clock(t, "09:00"), 30); len(got) != 0 {
		t.Fatalf("zero-length window: got %v", slotStrings(got))
	}
	if got := Grid(clock(t, "17:00"), clock(t, "09:00"), 30); len(got) != 0 {
		t.Fatalf("inverted window: got %v", slotStrings(got))
	}
	if got := Grid(clock(t, "09:00"), clock(t, "17:00"), 0); len(got) != 0 {
		t.Fatalf("non-positive duration: got %v", slotStrings(got))
	}
}

func TestExcludeBreak_Boundaries(t *testing.T) {
	grid := Grid(clock(t, "11:00"), clock(t, "14:00"), 30)
	brk := &Break{Start: clock(t, "12:00"), End: clock(t, "13:00")}
	got := ExcludeBreak(grid, brk)
	// 12:00 coincides with break start: excluded. 13:00 coincides with break
	// end: retained.
	assertSlots(t, got, []string{"11:00", "11:30", "13:00", "13:30"})
}

func TestExcludeBreak_NilIsIdentity(t *testing.T) {
	grid := Grid(clock(t, "09:00"), clock(t, "10:00"), 30)
	got := ExcludeBreak(grid, nil)
	if len(got) != len(grid) {
		t.Fatalf("nil break changed the grid: %v -> %v", slotStrings(grid), slotStrings(got))
	}
}

func TestConflicts(t *testing.T) {
	booked := []Appointment{{Start: clock(t, "10:00"), DurationMinutes: 30}}

	cases := []struct {
		start string
		want  bool
	}{
		{"09:00", false},
		{"09:30", false}, // [09:30,10:00) touches but does not overlap
		{"10:00", true},
		{"10:30", false}, // starts exactly at the appointment's end
	}
	for _, tc := range cases {
		if got := Conflicts(clock(t, tc.start), 30, booked); got != tc.want {
			t.Errorf("Conflicts(%s) = %v, want %v", tc.start, got, tc.want)
		}
	}
}

func TestConflicts_DefaultDuration(t *testing.T) {
	// Missing duration on the record defaults to 30 minutes.
	booked := []Appointment{{Start: clock(t, "10:00")}}
	if !Conflicts(clock(t, "10:15"), 30, booked) {
		t.Fatal("expected conflict against default-duration appointment")
	}
	if Conflicts(clock(t, "10:30"), 30, booked) {
		t.Fatal("10:30 should clear a default-duration 10:00 appointment")
	}
}

func workday(t *testing.T) Window {
	return Window{
		Weekday: time.Monday,
		Start:   clock(t, "09:00"),
		End:     clock(t, "17:00"),
		Break:   &Break{Start: clock(t, "12:00"), End: clock(t, "13:00")},
	}
}

func TestResolve_FullDayWithBreak(t *testing.T) {
	// Scenario 1: 09:00-17:00, break 12:00-13:00, 30-minute slots.
	got := Resolve(workday(t), 30, nil)
	want := []string{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30",
		"16:00", "16:30",
	}
	assertSlots(t, got, want)
}

func TestResolve_BookedSlotRemoved(t *testing.T) {
	// Scenario 2: an existing 10:00 booking removes only 10:00.
	booked := []Appointment{{Start: clock(t, "10:00"), DurationMinutes: 30}}
	got := slotStrings(Resolve(workday(t), 30, booked))
	for _, s := range got {
		if s == "10:00" {
			t.Fatal("10:00 should be excluded")
		}
	}
	if !contains(got, "09:30") || !contains(got, "10:30") {
		t.Fatalf("neighbouring slots must survive, got %v", got)
	}
}

func TestResolve_OffGridBookingBlocksBothNeighbours(t *testing.T) {
	// Scenario 3: a 09:45-10:15 booking conflicts with both the 09:30 and
	// 10:00 grid slots.
	booked := []Appointment{{Start: clock(t, "09:45"), DurationMinutes: 30}}
	got := slotStrings(Resolve(workday(t), 30, booked))
	for _, blocked := range []string{"09:30", "10:00"} {
		if contains(got, blocked) {
			t.Errorf("%s should be excluded, got %v", blocked, got)
		}
	}
	for _, free := range []string{"09:00", "10:30"} {
		if !contains(got, free) {
			t.Errorf("%s should remain, got %v", free, got)
		}
	}
}

func TestResolve_SlotsWithinWindowAndOutsideBreak(t *testing.T) {
	w := workday(t)
	for _, s := range Resolve(w, 30, nil) {
		if s < w.Start || s >= w.End {
			t.Errorf("slot %s outside window [%s,%s)", s, w.Start, w.End)
		}
		if s >= w.Break.Start && s < w.Break.End {
			t.Errorf("slot %s inside break [%s,%s)", s, w.Break.Start, w.Break.End)
		}
	}
}

func TestResolve_StrictlyAscendingNoDuplicates(t *testing.T) {
	got := Resolve(workday(t), 30, nil)
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("slots not strictly ascending at %d: %v", i, slotStrings(got))
		}
	}
}

func TestResolve_Idempotent(t *testing.T) {
	w := workday(t)
	booked := []Appointment{
		{Start: clock(t, "10:00"), DurationMinutes: 30},
		{Start: clock(t, "14:15"), DurationMinutes: 45},
	}
	first := slotStrings(Resolve(w, 30, booked))
	second := slotStrings(Resolve(w, 30, booked))
	if len(first) != len(second) {
		t.Fatalf("repeat invocation changed slot count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("repeat invocation changed slot[%d]: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestResolve_DegenerateWindow(t *testing.T) {
	w := Window{Weekday: time.Monday, Start: clock(t, "09:00"), End: clock(t, "09:00")}
	if got := Resolve(w, 30, nil); len(got) != 0 {
		t.Fatalf("start == end: got %v", slotStrings(got))
	}
	w = Window{Weekday: time.Monday, Start: clock(t, "17:00"), End: clock(t, "09:00")}
	if got := Resolve(w, 30, nil); len(got) != 0 {
		t.Fatalf("inverted window: got %v", slotStrings(got))
	}
}

func TestResolve_BreakOutsideWindow(t *testing.T) {
	// Break outside the working window is degenerate configuration: no
	// availability rather than an error.
	w := Window{
		Weekday: time.Monday,
		Start:   clock(t, "09:00"),
		End:     clock(t, "12:00"),
		Break:   &Break{Start: clock(t, "13:00"), End: clock(t, "14:00")},
	}
	if got := Resolve(w, 30, nil); len(got) != 0 {
		t.Fatalf("break outside window: got %v", slotStrings(got))
	}
}

func TestResolve_DefaultDuration(t *testing.T) {
	w := Window{Weekday: time.Monday, Start: clock(t, "09:00"), End: clock(t, "10:00")}
	got := Resolve(w, 0, nil)
	assertSlots(t, got, []string{"09:00", "09:30"})
}

func TestResolveForDate_WeekdayMismatch(t *testing.T) {
	// 2026-02-02 is a Monday.
	monday := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	w := workday(t)
	if got := ResolveForDate(monday, w, 30, nil); len(got) == 0 {
		t.Fatal("matching weekday should produce slots")
	}
	tuesday := monday.AddDate(0, 0, 1)
	if got := ResolveForDate(tuesday, w, 30, nil); len(got) != 0 {
		t.Fatalf("mismatched weekday should produce nothing, got %v", slotStrings(got))
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
