package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mbyo2/healthconnect/libs/db"
	otelx "github.com/mbyo2/healthconnect/libs/otel"
	"github.com/mbyo2/healthconnect/services/notification-service/internal/email"
	"github.com/mbyo2/healthconnect/services/notification-service/internal/sms"
	"github.com/mbyo2/healthconnect/services/notification-service/internal/storage"
)

type Worker struct {
	pool       *db.Pool
	repo       *Repository
	deliveries *storage.Repository
	email      email.Sender
	sms        sms.Sender
	dlq        *DLQPublisher
	logger     *slog.Logger
	interval   time.Duration
	batchSize  int
	backoff    time.Duration
}

type WorkerConfig struct {
	Interval  time.Duration
	BatchSize int
	Backoff   time.Duration
}

func NewWorker(pool *db.Pool, repo *Repository, deliveries *storage.Repository, emailSender email.Sender, smsSender sms.Sender, dlq *DLQPublisher, logger *slog.Logger, cfg WorkerConfig) *Worker {
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 1 * time.Minute
	}
	return &Worker{
		pool:       pool,
		repo:       repo,
		deliveries: deliveries,
		email:      emailSender,
		sms:        smsSender,
		dlq:        dlq,
		logger:     logger,
		interval:   cfg.Interval,
		batchSize:  cfg.BatchSize,
		backoff:    cfg.Backoff,
	}
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.processBatch(ctx); err != nil {
				w.logger.Error("notification batch failed", "err", err)
			}
		}
	}
}

func (w *Worker) processBatch(ctx context.Context) error {
	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	jobs, err := w.repo.FetchDue(ctx, tx, w.batchSize)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return tx.Commit(ctx)
	}

	var sent []int64
	for _, job := range jobs {
		jobCtx := otelx.ContextWithTraceContext(ctx, job.Traceparent, job.Tracestate)

		sendErr := w.send(jobCtx, job)
		status := "sent"
		reason := ""
		if sendErr != nil {
			status = "failed"
			reason = sendErr.Error()
		}

		if err := w.deliveries.Insert(jobCtx, storage.Delivery{
			AppointmentID: job.AppointmentID,
			ProviderID:    job.ProviderID,
			Channel:       job.Channel,
			Recipient:     job.Recipient,
			Payload:       job.TemplateData,
			Status:        status,
			FailureReason: reason,
		}); err != nil {
			w.logger.Error("failed to persist delivery", "err", err)
		}

		if sendErr == nil {
			sent = append(sent, job.ID)
			continue
		}

		w.logger.Error("send failed", "err", sendErr, "channel", job.Channel, "appointment_id", job.AppointmentID)
		attempts := job.Attempts + 1
		nextRunAt := time.Now().UTC().Add(w.backoff)
		if err := w.repo.MarkFailed(ctx, tx, job.ID, attempts, job.MaxAttempts, nextRunAt, reason); err != nil {
			return err
		}
		if attempts >= job.MaxAttempts {
			w.logger.Error("job exhausted retries", "appointment_id", job.AppointmentID, "channel", job.Channel, "recipient", job.Recipient)
			if err := w.dlq.Publish(jobCtx, job, reason); err != nil {
				w.logger.Error("dlq publish failed", "err", err, "appointment_id", job.AppointmentID)
			}
		}
	}

	if err := w.repo.MarkProcessed(ctx, tx, sent); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (w *Worker) send(ctx context.Context, job Job) error {
	subject, body := composeMessage(job)
	switch strings.ToLower(job.Channel) {
	case "email":
		return w.email.Send(job.Recipient, subject, body)
	case "sms":
		return w.sms.Send(ctx, job.Recipient, body)
	default:
		return fmt.Errorf("unsupported channel: %s", job.Channel)
	}
}

func composeMessage(job Job) (subject, body string) {
	name, _ := job.TemplateData["patient_name"].(string)
	date, _ := job.TemplateData["date"].(string)
	start, _ := job.TemplateData["start_time"].(string)

	when := strings.TrimSpace(date + " " + start)
	switch job.Kind {
	case KindConfirmation:
		subject = "Appointment confirmed"
		body = fmt.Sprintf("Your appointment on %s is confirmed.", when)
	case KindCancellation:
		subject = "Appointment cancelled"
		body = fmt.Sprintf("Your appointment on %s has been cancelled.", when)
	default:
		subject = "Appointment reminder"
		body = fmt.Sprintf("Reminder: you have an appointment on %s.", when)
	}
	if name != "" {
		body = fmt.Sprintf("Hello %s. %s", name, body)
	}
	return subject, body
}
