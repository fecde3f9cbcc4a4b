// Package schedule resolves a provider's effective working day from the
// weekly pattern and per-date overrides.
package schedule

import (
	"context"
	"time"

	"github.com/mbyo2/healthconnect/services/provider-service/internal/storage"
)

const (
	SourceWeekly   = "weekly"
	SourceOverride = "override"

	DefaultSlotMinutes = 30
)

// Day is the effective schedule for one calendar date. Minutes count from
// midnight; BreakStart == BreakEnd means no break.
type Day struct {
	Date        time.Time
	Working     bool
	StartMinute int
	EndMinute   int
	BreakStart  int
	BreakEnd    int
	SlotMinutes int
	Source      string
}

// Resolver loads schedule data and applies override precedence. The HTTP
// handler and the gRPC server answer from the same resolution.
type Resolver struct {
	repo        *storage.Repository
	slotMinutes int
}

func NewResolver(repo *storage.Repository, slotMinutes int) *Resolver {
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}
	return &Resolver{repo: repo, slotMinutes: slotMinutes}
}

func (r *Resolver) SlotMinutes() int {
	return r.slotMinutes
}

func (r *Resolver) Day(ctx context.Context, providerID string, date time.Time) (Day, error) {
	provider, err := r.repo.GetProvider(ctx, providerID)
	if err != nil {
		return Day{}, err
	}
	if !provider.IsActive {
		return Day{Date: date, SlotMinutes: r.slotMinutes, Source: SourceWeekly}, nil
	}

	weekly, err := r.repo.GetWeeklyWindow(ctx, providerID, int(date.Weekday()))
	if err != nil {
		return Day{}, err
	}

	var override *storage.Override
	if o, ok, err := r.repo.GetOverride(ctx, providerID, date); err != nil {
		return Day{}, err
	} else if ok {
		override = &o
	}

	return ResolveDay(date, weekly, override, r.slotMinutes), nil
}

// ResolveDay applies override precedence: a date override, when present,
// replaces the weekly pattern entirely, including a Working=false override
// that closes an otherwise open day.
func ResolveDay(date time.Time, weekly storage.WeeklyWindow, override *storage.Override, slotMinutes int) Day {
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}
	day := Day{Date: date, SlotMinutes: slotMinutes}

	if override != nil {
		day.Source = SourceOverride
		day.Working = override.IsWorking
		day.StartMinute = override.StartMinute
		day.EndMinute = override.EndMinute
		day.BreakStart = override.BreakStartMinute
		day.BreakEnd = override.BreakEndMinute
	} else {
		day.Source = SourceWeekly
		day.Working = weekly.IsWorking
		day.StartMinute = weekly.StartMinute
		day.EndMinute = weekly.EndMinute
		day.BreakStart = weekly.BreakStartMinute
		day.BreakEnd = weekly.BreakEndMinute
	}

	if day.EndMinute <= day.StartMinute {
		day.Working = false
	}
	if !day.Working {
		day.StartMinute, day.EndMinute = 0, 0
		day.BreakStart, day.BreakEnd = 0, 0
		return day
	}
	if day.BreakEnd <= day.BreakStart {
		day.BreakStart, day.BreakEnd = 0, 0
	}
	return day
}
