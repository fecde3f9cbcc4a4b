package model

import "time"

const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
)

type Appointment struct {
	ID              string
	ProviderID      string
	PatientName     string
	PatientEmail    string
	PatientPhone    string
	Date            time.Time
	StartMinute     int
	DurationMinutes int
	Status          string
	CancelledAt     *time.Time
	CancelReason    string
	CreatedAt       time.Time
}
