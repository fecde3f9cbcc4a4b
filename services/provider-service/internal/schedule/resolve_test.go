package schedule

import (
	"testing"
	"time"

	"github.com/mbyo2/healthconnect/services/provider-service/internal/storage"
)

var monday = time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

func weeklyWorkday() storage.WeeklyWindow {
	return storage.WeeklyWindow{
		Weekday:          1,
		IsWorking:        true,
		StartMinute:      540,
		EndMinute:        1020,
		BreakStartMinute: 720,
		BreakEndMinute:   780,
	}
}

func TestResolveDay_WeeklyPattern(t *testing.T) {
	day := ResolveDay(monday, weeklyWorkday(), nil, 0)
	if day.Source != SourceWeekly {
		t.Fatalf("source = %q, want %q", day.Source, SourceWeekly)
	}
	if !day.Working || day.StartMinute != 540 || day.EndMinute != 1020 {
		t.Fatalf("unexpected window: %+v", day)
	}
	if day.BreakStart != 720 || day.BreakEnd != 780 {
		t.Fatalf("unexpected break: %+v", day)
	}
	if day.SlotMinutes != DefaultSlotMinutes {
		t.Fatalf("slot minutes = %d, want default", day.SlotMinutes)
	}
}

func TestResolveDay_OverrideReplacesWeekly(t *testing.T) {
	override := &storage.Override{
		IsWorking:   true,
		StartMinute: 600,
		EndMinute:   840,
	}
	day := ResolveDay(monday, weeklyWorkday(), override, 15)
	if day.Source != SourceOverride {
		t.Fatalf("source = %q, want %q", day.Source, SourceOverride)
	}
	if day.StartMinute != 600 || day.EndMinute != 840 {
		t.Fatalf("override window not applied: %+v", day)
	}
	// Weekly break does not leak into an override without its own break.
	if day.BreakStart != 0 || day.BreakEnd != 0 {
		t.Fatalf("unexpected break: %+v", day)
	}
	if day.SlotMinutes != 15 {
		t.Fatalf("slot minutes = %d, want 15", day.SlotMinutes)
	}
}

func TestResolveDay_OverrideClosesDay(t *testing.T) {
	override := &storage.Override{IsWorking: false}
	day := ResolveDay(monday, weeklyWorkday(), override, 0)
	if day.Working {
		t.Fatalf("closed override should win over weekly pattern: %+v", day)
	}
	if day.StartMinute != 0 || day.EndMinute != 0 {
		t.Fatalf("closed day should zero the window: %+v", day)
	}
}

func TestResolveDay_MissingWindowClosesDay(t *testing.T) {
	// A provider without an availability row for the weekday resolves as
	// closed rather than inheriting a default open window.
	missing := storage.WeeklyWindow{Weekday: 1, IsWorking: false}
	day := ResolveDay(monday, missing, nil, 0)
	if day.Working {
		t.Fatalf("unconfigured weekday should be closed: %+v", day)
	}
	if day.StartMinute != 0 || day.EndMinute != 0 || day.BreakStart != 0 || day.BreakEnd != 0 {
		t.Fatalf("closed day should zero all minutes: %+v", day)
	}
	if day.Source != SourceWeekly {
		t.Fatalf("source = %q, want %q", day.Source, SourceWeekly)
	}
}

func TestResolveDay_InvertedWindowClosesDay(t *testing.T) {
	weekly := weeklyWorkday()
	weekly.StartMinute, weekly.EndMinute = 1020, 540
	day := ResolveDay(monday, weekly, nil, 0)
	if day.Working {
		t.Fatalf("inverted window should close the day: %+v", day)
	}
}

func TestResolveDay_DegenerateBreakDropped(t *testing.T) {
	weekly := weeklyWorkday()
	weekly.BreakStartMinute, weekly.BreakEndMinute = 780, 780
	day := ResolveDay(monday, weekly, nil, 0)
	if !day.Working {
		t.Fatalf("day should stay open: %+v", day)
	}
	if day.BreakStart != 0 || day.BreakEnd != 0 {
		t.Fatalf("zero-length break should be dropped: %+v", day)
	}
}
