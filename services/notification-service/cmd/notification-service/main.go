package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mbyo2/healthconnect/libs/config"
	"github.com/mbyo2/healthconnect/libs/db"
	"github.com/mbyo2/healthconnect/libs/httpx"
	"github.com/mbyo2/healthconnect/libs/kafkax"
	otelx "github.com/mbyo2/healthconnect/libs/otel"
	"github.com/mbyo2/healthconnect/libs/runtime"
	"github.com/mbyo2/healthconnect/services/notification-service/internal/consumer"
	"github.com/mbyo2/healthconnect/services/notification-service/internal/email"
	"github.com/mbyo2/healthconnect/services/notification-service/internal/inbox"
	"github.com/mbyo2/healthconnect/services/notification-service/internal/jobs"
	"github.com/mbyo2/healthconnect/services/notification-service/internal/sms"
	"github.com/mbyo2/healthconnect/services/notification-service/internal/storage"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type reminderPayload struct {
	AppointmentID string         `json:"appointment_id"`
	ProviderID    string         `json:"provider_id"`
	Channel       string         `json:"channel"`
	Recipient     string         `json:"recipient"`
	RemindAt      string         `json:"remind_at"`
	TemplateData  map[string]any `json:"template_data"`
}

type appointmentPayload struct {
	AppointmentID string `json:"appointment_id"`
	ProviderID    string `json:"provider_id"`
	PatientName   string `json:"patient_name"`
	PatientEmail  string `json:"patient_email"`
	PatientPhone  string `json:"patient_phone"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
}

type app struct {
	pool    *db.Pool
	jobRepo *jobs.Repository
	logger  *slog.Logger
}

func (a *app) insertJob(ctx context.Context, job jobs.Job) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := a.jobRepo.Insert(ctx, tx, job); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (a *app) handleReminderRequested(ctx context.Context, msg kafka.Message) error {
	var payload reminderPayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		a.logger.Error("invalid reminder payload", "err", err)
		return nil
	}
	if payload.AppointmentID == "" || payload.Channel == "" || payload.Recipient == "" || payload.RemindAt == "" {
		a.logger.Error("missing reminder fields")
		return nil
	}
	remindAt, err := time.Parse(time.RFC3339, payload.RemindAt)
	if err != nil {
		a.logger.Error("invalid remind_at", "err", err)
		return nil
	}

	return a.insertJob(ctx, jobs.Job{
		IdempotencyKey: fmt.Sprintf("%s:%s:%s:%s", payload.AppointmentID, jobs.KindReminder, payload.Channel, payload.RemindAt),
		AppointmentID:  payload.AppointmentID,
		ProviderID:     payload.ProviderID,
		Kind:           jobs.KindReminder,
		Channel:        payload.Channel,
		Recipient:      payload.Recipient,
		RemindAt:       remindAt,
		TemplateData:   payload.TemplateData,
	})
}

// notices enqueues immediate confirmation or cancellation sends for every
// channel the patient left a contact for.
func (a *app) notices(ctx context.Context, kind string, payload appointmentPayload) error {
	data := map[string]any{
		"patient_name": payload.PatientName,
		"date":         payload.Date,
		"start_time":   payload.StartTime,
	}
	now := time.Now().UTC()
	for channel, recipient := range map[string]string{
		"email": payload.PatientEmail,
		"sms":   payload.PatientPhone,
	} {
		if strings.TrimSpace(recipient) == "" {
			continue
		}
		if err := a.insertJob(ctx, jobs.Job{
			IdempotencyKey: fmt.Sprintf("%s:%s:%s", payload.AppointmentID, kind, channel),
			AppointmentID:  payload.AppointmentID,
			ProviderID:     payload.ProviderID,
			Kind:           kind,
			Channel:        channel,
			Recipient:      recipient,
			RemindAt:       now,
			TemplateData:   data,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) handleBooked(ctx context.Context, msg kafka.Message) error {
	var payload appointmentPayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		a.logger.Error("invalid booked payload", "err", err)
		return nil
	}
	if payload.AppointmentID == "" {
		a.logger.Error("missing appointment_id in booked event")
		return nil
	}
	return a.notices(ctx, jobs.KindConfirmation, payload)
}

func (a *app) handleCancelled(ctx context.Context, msg kafka.Message) error {
	var payload appointmentPayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		a.logger.Error("invalid cancelled payload", "err", err)
		return nil
	}
	if payload.AppointmentID == "" {
		a.logger.Error("missing appointment_id in cancelled event")
		return nil
	}

	// Undelivered reminders for a cancelled appointment must not go out.
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := a.jobRepo.CancelPending(ctx, tx, payload.AppointmentID); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	return a.notices(ctx, jobs.KindCancellation, payload)
}

func main() {
	service := config.String("SERVICE_NAME", "notification-service")
	port, err := config.Port("PORT", "8084")
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

	inboxRepo := inbox.NewRepository(pool)
	deliveriesRepo := storage.NewRepository(pool)
	jobRepo := jobs.NewRepository()
	a := &app{pool: pool, jobRepo: jobRepo, logger: logger}

	smtpHost := config.String("SMTP_HOST", "mailpit")
	smtpPort := config.String("SMTP_PORT", "1025")
	smtpFrom := config.String("SMTP_FROM", "no-reply@healthconnect.local")
	emailSender := email.NewSMTPSender(smtpHost, smtpPort, smtpFrom)

	smsProvider := strings.ToLower(config.String("SMS_PROVIDER", "noop"))
	smsWebhookURL := config.String("SMS_WEBHOOK_URL", "")
	smsWebhookToken := config.String("SMS_WEBHOOK_TOKEN", "")
	var smsSender sms.Sender
	switch smsProvider {
	case "noop":
		smsSender = sms.NewNoopSender()
	default:
		smsSender = sms.NewWebhookSender(smsWebhookURL, smsWebhookToken)
	}

	brokers := config.String("KAFKA_BROKERS", "")

	dlq := jobs.NewDLQPublisher(brokers)
	defer dlq.Close()

	worker := jobs.NewWorker(pool, jobRepo, deliveriesRepo, emailSender, smsSender, dlq, logger, jobs.WorkerConfig{
		Interval:  config.Duration("WORKER_INTERVAL", 2*time.Second),
		BatchSize: config.Int("WORKER_BATCH_SIZE", 50),
		Backoff:   config.Duration("WORKER_BACKOFF", time.Minute),
	})
	go worker.Run(ctx)

	groupID := config.String("KAFKA_GROUP_ID", "notification-service")
	startConsumer := func(topic string, handler consumer.Handler) {
		if strings.TrimSpace(topic) == "" {
			return
		}
		c := consumer.New(logger, inboxRepo, consumer.Config{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}, handler)
		go c.Run(ctx)
	}
	startConsumer(config.String("KAFKA_TOPIC_REMINDER", "booking.reminder.requested.v1"), a.handleReminderRequested)
	startConsumer(config.String("KAFKA_TOPIC_BOOKED", "booking.appointment.booked.v1"), a.handleBooked)
	startConsumer(config.String("KAFKA_TOPIC_CANCELLED", "booking.appointment.cancelled.v1"), a.handleCancelled)

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)},
	)
	handler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	handler = otelhttp.NewHandler(handler, "notification")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
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
