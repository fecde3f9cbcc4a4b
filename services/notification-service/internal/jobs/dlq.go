package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/mbyo2/healthconnect/libs/kafkax"
)

const TopicDeliveryDLQ = "notification.delivery.dlq.v1"

// DLQPublisher emits an event for jobs that exhausted their retries so a
// downstream consumer or operator can pick them up.
type DLQPublisher struct {
	writer *kafka.Writer
}

func NewDLQPublisher(brokers string) *DLQPublisher {
	if brokers == "" {
		return nil
	}
	return &DLQPublisher{
		writer: kafka.NewWriter(kafka.WriterConfig{
			Brokers:  kafkax.SplitBrokers(brokers),
			Topic:    TopicDeliveryDLQ,
			Balancer: &kafka.Hash{},
		}),
	}
}

func (p *DLQPublisher) Publish(ctx context.Context, job Job, reason string) error {
	if p == nil {
		return nil
	}
	payload, err := json.Marshal(map[string]any{
		"appointment_id": job.AppointmentID,
		"provider_id":    job.ProviderID,
		"kind":           job.Kind,
		"channel":        job.Channel,
		"recipient":      job.Recipient,
		"remind_at":      job.RemindAt.UTC().Format(time.RFC3339),
		"template_data":  job.TemplateData,
		"error_reason":   reason,
		"failed_at":      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(job.AppointmentID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(uuid.NewString())},
			{Key: "event_type", Value: []byte(TopicDeliveryDLQ)},
		},
	}
	msg.Headers = kafkax.InjectTraceHeaders(ctx, msg.Headers)
	return p.writer.WriteMessages(ctx, msg)
}

func (p *DLQPublisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
