//go:build !protogen

package main

import (
	"context"
	"log/slog"

	"github.com/mbyo2/healthconnect/services/provider-service/internal/schedule"
)

func startGrpcServer(_ context.Context, _ *slog.Logger, _ *schedule.Resolver) error {
	return nil
}
