package storage

import (
	"context"
	"encoding/json"

	"github.com/mbyo2/healthconnect/libs/db"
)

// Delivery is one send attempt outcome, kept as an audit log.
type Delivery struct {
	AppointmentID string
	ProviderID    string
	Channel       string
	Recipient     string
	Payload       map[string]any
	Status        string
	FailureReason string
}

type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Insert(ctx context.Context, d Delivery) error {
	payload, err := json.Marshal(d.Payload)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO notification_deliveries
			(appointment_id, provider_id, channel, recipient, payload, status, failure_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, d.AppointmentID, d.ProviderID, d.Channel, d.Recipient, payload, d.Status, d.FailureReason)
	return err
}
