//go:build !protogen

package schedule

import (
	"context"
	"time"
)

// DaySchedule is the provider's resolved working configuration for a single
// calendar date. Minutes are counted from midnight; BreakStart == BreakEnd
// means no break. Source tells whether a date override or the weekly pattern
// produced it.
type DaySchedule struct {
	Working     bool
	StartMinute int
	EndMinute   int
	BreakStart  int
	BreakEnd    int
	SlotMinutes int
	Source      string
	StartUTC    time.Time
	EndUTC      time.Time
}

type Client interface {
	GetDaySchedule(ctx context.Context, providerID, date string) (DaySchedule, error)
}

func NewClient(_ string) (Client, error) {
	return nil, nil
}
