//go:build protogen

package schedule

import (
	"context"
	"time"

	"github.com/mbyo2/healthconnect/libs/grpcx"
	providerv1 "github.com/mbyo2/healthconnect/protos/gen/provider/v1"
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

type grpcClient struct {
	client providerv1.ProviderServiceClient
}

func NewClient(addr string) (Client, error) {
	if addr == "" {
		return nil, nil
	}
	conn, err := grpcx.Dial(context.Background(), addr, grpcx.DialOptions{Timeout: 3 * time.Second})
	if err != nil {
		return nil, err
	}
	return &grpcClient{client: providerv1.NewProviderServiceClient(conn)}, nil
}

func (c *grpcClient) GetDaySchedule(ctx context.Context, providerID, date string) (DaySchedule, error) {
	resp, err := c.client.GetDaySchedule(ctx, &providerv1.DayScheduleRequest{
		ProviderId: providerID,
		Date:       date,
	})
	if err != nil {
		return DaySchedule{}, err
	}
	day := DaySchedule{
		Working:     resp.GetWorking(),
		StartMinute: int(resp.GetStartMinute()),
		EndMinute:   int(resp.GetEndMinute()),
		BreakStart:  int(resp.GetBreakStart()),
		BreakEnd:    int(resp.GetBreakEnd()),
		SlotMinutes: int(resp.GetSlotMinutes()),
		Source:      resp.GetSource(),
	}
	if resp.GetStartUtc() != nil {
		day.StartUTC = resp.GetStartUtc().AsTime()
	}
	if resp.GetEndUtc() != nil {
		day.EndUTC = resp.GetEndUtc().AsTime()
	}
	return day, nil
}
