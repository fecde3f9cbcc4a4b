package outbox

// Event is the domain event envelope written to the outbox table.
// The Kafka topic name equals EventType (production-style: event per topic).
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// Topics emitted by the booking service.
const (
	TopicAppointmentBooked    = "booking.appointment.booked.v1"
	TopicAppointmentCancelled = "booking.appointment.cancelled.v1"
	TopicReminderRequested    = "booking.reminder.requested.v1"
)
