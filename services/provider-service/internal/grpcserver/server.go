//go:build protogen

package grpcserver

import (
	"context"
	"time"

	providerv1 "github.com/mbyo2/healthconnect/protos/gen/provider/v1"
	"github.com/mbyo2/healthconnect/services/provider-service/internal/schedule"
	"github.com/mbyo2/healthconnect/services/provider-service/internal/storage"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type server struct {
	providerv1.UnimplementedProviderServiceServer
	resolver *schedule.Resolver
}

func Register(grpcServer *grpc.Server, resolver *schedule.Resolver) {
	providerv1.RegisterProviderServiceServer(grpcServer, &server{resolver: resolver})
}

func (s *server) GetDaySchedule(ctx context.Context, req *providerv1.DayScheduleRequest) (*providerv1.DayScheduleResponse, error) {
	resp := &providerv1.DayScheduleResponse{
		ProviderId:  req.GetProviderId(),
		Date:        req.GetDate(),
		SlotMinutes: int32(s.resolver.SlotMinutes()),
	}
	if req.GetProviderId() == "" || req.GetDate() == "" {
		return resp, nil
	}

	date, err := time.ParseInLocation("2006-01-02", req.GetDate(), time.UTC)
	if err != nil {
		return resp, nil
	}

	day, err := s.resolver.Day(ctx, req.GetProviderId(), date)
	if err != nil {
		if storage.IsNotFound(err) {
			return resp, nil
		}
		return nil, err
	}

	resp.Working = day.Working
	resp.StartMinute = int32(day.StartMinute)
	resp.EndMinute = int32(day.EndMinute)
	resp.BreakStart = int32(day.BreakStart)
	resp.BreakEnd = int32(day.BreakEnd)
	resp.SlotMinutes = int32(day.SlotMinutes)
	resp.Source = day.Source
	if day.Working {
		resp.StartUtc = timestamppb.New(date.Add(time.Duration(day.StartMinute) * time.Minute))
		resp.EndUtc = timestamppb.New(date.Add(time.Duration(day.EndMinute) * time.Minute))
	}
	return resp, nil
}
