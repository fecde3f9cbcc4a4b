package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mbyo2/healthconnect/libs/db"
	"github.com/mbyo2/healthconnect/services/booking-service/internal/model"
)

type AppointmentRepository struct {
	pool *db.Pool
}

type IdempotencyRecord struct {
	ProviderID      string
	IdempotencyKey  string
	AppointmentID   string
	StatusCode      int
	ResponsePayload []byte
}

func NewAppointmentRepository(pool *db.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func (r *AppointmentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *AppointmentRepository) LockIdempotencyKey(ctx context.Context, tx pgx.Tx, providerID, key string) (IdempotencyRecord, bool, error) {
	rec, err := r.selectIdempotencyForUpdate(ctx, tx, providerID, key)
	if err == nil {
		return rec, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return IdempotencyRecord{}, false, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO booking_idempotency_keys (provider_id, idempotency_key)
		VALUES ($1, $2)
		ON CONFLICT (provider_id, idempotency_key) DO NOTHING
	`, providerID, key)
	if err != nil {
		return IdempotencyRecord{}, false, err
	}

	rec, err = r.selectIdempotencyForUpdate(ctx, tx, providerID, key)
	if err != nil {
		return IdempotencyRecord{}, false, err
	}
	return rec, false, nil
}

func (r *AppointmentRepository) FinalizeIdempotency(ctx context.Context, tx pgx.Tx, providerID, key, appointmentID string, statusCode int, response []byte) error {
	_, err := tx.Exec(ctx, `
		UPDATE booking_idempotency_keys
		SET appointment_id = $3,
			status_code = $4,
			response_payload = $5,
			updated_at = now()
		WHERE provider_id = $1 AND idempotency_key = $2
	`, providerID, key, uuidOrNil(appointmentID), statusCode, response)
	return err
}

// uuidOrNil maps an absent id to SQL NULL. Rejections finalize their
// idempotency key without an appointment, and pgx cannot encode "" into a
// uuid column.
func uuidOrNil(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func (r *AppointmentRepository) Create(ctx context.Context, tx pgx.Tx, appt *model.Appointment) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO appointments
			(provider_id, patient_name, patient_email, patient_phone, appointment_date, start_minute, duration_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, appt.ProviderID, appt.PatientName, appt.PatientEmail, appt.PatientPhone,
		appt.Date, appt.StartMinute, appt.DurationMinutes, appt.Status).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *AppointmentRepository) GetAppointmentForUpdate(ctx context.Context, tx pgx.Tx, providerID, appointmentID string) (model.Appointment, error) {
	var appt model.Appointment
	var cancelledAt *time.Time
	err := tx.QueryRow(ctx, `
		SELECT id, provider_id, patient_name, patient_email, patient_phone,
			appointment_date, start_minute, duration_minutes, status,
			cancelled_at, COALESCE(cancellation_reason, ''), created_at
		FROM appointments
		WHERE id = $1 AND provider_id = $2
		FOR UPDATE
	`, appointmentID, providerID).Scan(
		&appt.ID,
		&appt.ProviderID,
		&appt.PatientName,
		&appt.PatientEmail,
		&appt.PatientPhone,
		&appt.Date,
		&appt.StartMinute,
		&appt.DurationMinutes,
		&appt.Status,
		&cancelledAt,
		&appt.CancelReason,
		&appt.CreatedAt,
	)
	if err != nil {
		return model.Appointment{}, err
	}
	appt.CancelledAt = cancelledAt
	return appt, nil
}

func (r *AppointmentRepository) CancelAppointment(ctx context.Context, tx pgx.Tx, providerID, appointmentID, reason string) (time.Time, error) {
	var cancelledAt time.Time
	err := tx.QueryRow(ctx, `
		UPDATE appointments
		SET status = 'cancelled',
			cancelled_at = now(),
			cancellation_reason = $3
		WHERE id = $1 AND provider_id = $2
		RETURNING cancelled_at
	`, appointmentID, providerID, reason).Scan(&cancelledAt)
	return cancelledAt, err
}

// ListBookedByProviderDate returns only active bookings. Cancelled rows are
// filtered here so they never block availability.
func (r *AppointmentRepository) ListBookedByProviderDate(ctx context.Context, providerID string, date time.Time) ([]model.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, provider_id, patient_name, patient_email, patient_phone,
			appointment_date, start_minute, duration_minutes, status,
			cancelled_at, COALESCE(cancellation_reason, ''), created_at
		FROM appointments
		WHERE provider_id = $1
			AND appointment_date = $2
			AND status = 'booked'
		ORDER BY start_minute ASC
	`, providerID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func (r *AppointmentRepository) ListByProvider(ctx context.Context, providerID string, limit int) ([]model.Appointment, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, provider_id, patient_name, patient_email, patient_phone,
			appointment_date, start_minute, duration_minutes, status,
			cancelled_at, COALESCE(cancellation_reason, ''), created_at
		FROM appointments
		WHERE provider_id = $1
		ORDER BY appointment_date DESC, start_minute DESC
		LIMIT $2
	`, providerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func scanAppointments(rows pgx.Rows) ([]model.Appointment, error) {
	var appts []model.Appointment
	for rows.Next() {
		var appt model.Appointment
		var cancelledAt *time.Time
		if err := rows.Scan(
			&appt.ID,
			&appt.ProviderID,
			&appt.PatientName,
			&appt.PatientEmail,
			&appt.PatientPhone,
			&appt.Date,
			&appt.StartMinute,
			&appt.DurationMinutes,
			&appt.Status,
			&cancelledAt,
			&appt.CancelReason,
			&appt.CreatedAt,
		); err != nil {
			return nil, err
		}
		appt.CancelledAt = cancelledAt
		appts = append(appts, appt)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return appts, nil
}

// IsConflict reports whether err is the unique-violation raised by the
// partial index guarding double-booking of an active slot.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23P01")
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func (r *AppointmentRepository) selectIdempotencyForUpdate(ctx context.Context, tx pgx.Tx, providerID, key string) (IdempotencyRecord, error) {
	var rec IdempotencyRecord
	var responseText string
	err := tx.QueryRow(ctx, `
		SELECT provider_id::text,
			idempotency_key,
			COALESCE(appointment_id::text, ''),
			COALESCE(status_code, 0),
			COALESCE(response_payload::text, '')
		FROM booking_idempotency_keys
		WHERE provider_id = $1 AND idempotency_key = $2
		FOR UPDATE
	`, providerID, key).Scan(
		&rec.ProviderID,
		&rec.IdempotencyKey,
		&rec.AppointmentID,
		&rec.StatusCode,
		&responseText,
	)
	if err != nil {
		return IdempotencyRecord{}, err
	}
	if responseText != "" {
		rec.ResponsePayload = []byte(responseText)
	}
	return rec, nil
}
