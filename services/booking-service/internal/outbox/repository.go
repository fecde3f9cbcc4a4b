package outbox

import (
	"context"

	"github.com/jackc/pgx/v5"
	otelx "github.com/mbyo2/healthconnect/libs/otel"
)

// Record is an outbox row pending publication. Traceparent and Tracestate
// carry the W3C trace context of the request that produced the event so the
// publisher can continue the trace across the broker.
type Record struct {
	ID            int64
	EventID       string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	Traceparent   string
	Tracestate    string
}

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

// Insert appends the event to the outbox inside the caller's transaction,
// committing atomically with the state change that produced it.
func (r *Repository) Insert(ctx context.Context, tx pgx.Tx, evt Event) error {
	traceparent, tracestate := otelx.TraceContextStrings(ctx)
	_, err := tx.Exec(ctx, `
		INSERT INTO booking_outbox
			(aggregate_type, aggregate_id, event_type, payload, traceparent, tracestate)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, evt.AggregateType, evt.AggregateID, evt.EventType, evt.Payload, traceparent, tracestate)
	return err
}

func (r *Repository) FetchUnpublished(ctx context.Context, tx pgx.Tx, limit int) ([]Record, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, event_id::text, aggregate_type, aggregate_id, event_type, payload,
			COALESCE(traceparent, ''), COALESCE(tracestate, '')
		FROM booking_outbox
		WHERE published_at IS NULL
		ORDER BY id ASC
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID,
			&rec.EventID,
			&rec.AggregateType,
			&rec.AggregateID,
			&rec.EventType,
			&rec.Payload,
			&rec.Traceparent,
			&rec.Tracestate,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return records, nil
}

func (r *Repository) MarkPublished(ctx context.Context, tx pgx.Tx, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
		UPDATE booking_outbox
		SET published_at = now()
		WHERE id = ANY($1)
	`, ids)
	return err
}
