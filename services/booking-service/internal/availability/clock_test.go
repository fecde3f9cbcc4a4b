package availability

import (
	"errors"
	"testing"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want Clock
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"9:00", 540},
		{"12:30", 750},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if err != nil {
			t.Fatalf("ParseClock(%q): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseClock_Malformed(t *testing.T) {
	for _, in := range []string{"", "09", "0900", "24:00", "09:60", "09:-1", "ab:cd", "09:5", "9:5", "109:00", "09:005"} {
		if _, err := ParseClock(in); !errors.Is(err, ErrInvalidClock) {
			t.Errorf("ParseClock(%q): expected ErrInvalidClock, got %v", in, err)
		}
	}
}

func TestClockString(t *testing.T) {
	if got := Clock(540).String(); got != "09:00" {
		t.Errorf("Clock(540).String() = %q, want 09:00", got)
	}
	if got := Clock(5).String(); got != "00:05" {
		t.Errorf("Clock(5).String() = %q, want 00:05", got)
	}
	if got := Clock(1439).String(); got != "23:59" {
		t.Errorf("Clock(1439).String() = %q, want 23:59", got)
	}
}

func TestClockAdd_HourRollover(t *testing.T) {
	c, _ := ParseClock("09:45")
	if got := c.Add(30).String(); got != "10:15" {
		t.Errorf("09:45 + 30m = %q, want 10:15", got)
	}
	c, _ = ParseClock("10:40")
	if got := c.Add(20).String(); got != "11:00" {
		t.Errorf("10:40 + 20m = %q, want 11:00", got)
	}
}
