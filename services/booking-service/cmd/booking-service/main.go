package main

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mbyo2/healthconnect/libs/config"
	"github.com/mbyo2/healthconnect/libs/db"
	"github.com/mbyo2/healthconnect/libs/httpx"
	"github.com/mbyo2/healthconnect/libs/kafkax"
	otelx "github.com/mbyo2/healthconnect/libs/otel"
	"github.com/mbyo2/healthconnect/libs/runtime"
	"github.com/mbyo2/healthconnect/services/booking-service/internal/cache"
	"github.com/mbyo2/healthconnect/services/booking-service/internal/handlers"
	"github.com/mbyo2/healthconnect/services/booking-service/internal/outbox"
	"github.com/mbyo2/healthconnect/services/booking-service/internal/schedule"
	"github.com/mbyo2/healthconnect/services/booking-service/internal/storage"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func parseReminderOffsets(raw string, logger *slog.Logger) []time.Duration {
	var offsets []time.Duration
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		mins, err := strconv.Atoi(part)
		if err != nil || mins <= 0 {
			logger.Warn("invalid reminder offset", "value", part)
			continue
		}
		offsets = append(offsets, time.Duration(mins)*time.Minute)
	}
	if len(offsets) == 0 {
		offsets = []time.Duration{24 * time.Hour}
	}
	return offsets
}

func main() {
	service := config.String("SERVICE_NAME", "booking-service")
	port, err := config.Port("PORT", "8082")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}

	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	repo := storage.NewAppointmentRepository(pool)
	outboxRepo := outbox.NewRepository()
	offsets := parseReminderOffsets(config.String("REMINDER_OFFSETS_MINUTES", "1440,60"), logger)

	scheduleClient, err := schedule.NewClient(config.String("PROVIDER_GRPC_ADDR", ""))
	if err != nil {
		logger.Error("schedule client init failed; using fallback", "err", err)
		scheduleClient = nil
	}

	slotCache, err := cache.NewSlotCache(config.String("REDIS_URL", ""), config.Duration("SLOT_CACHE_TTL", cache.DefaultTTL))
	if err != nil {
		logger.Error("slot cache init failed; running uncached", "err", err)
		slotCache = nil
	}
	defer func() { _ = slotCache.Close() }()

	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	bookingHandler := handlers.NewBookingHandler(repo, outboxRepo, logger, scheduleClient, slotCache, offsets)

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	mux.HandleFunc("/api/v1/public/slots", bookingHandler.Slots)
	mux.HandleFunc("/api/v1/public/book", bookingHandler.Create)
	mux.HandleFunc("/api/v1/appointments", bookingHandler.List)
	mux.HandleFunc("/api/v1/appointments/cancel", bookingHandler.Cancel)
	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "booking")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
