package appointment

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var validStatuses = map[string]bool{
	StatusScheduled: true, StatusCompleted: true, StatusCancelled: true,
}

var validTypes = map[string]bool{
	"consultation": true,
	"follow-up":    true,
	"procedure":    true,
	"emergency":    true,
}

// Appointment keeps date and time-of-day as separate columns; the original
// schema stores a date and a free clock time and the two are never combined
// into one instant.
type Appointment struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	UserID          string     `db:"user_id" json:"-"`
	PatientID       *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	AppointmentDate time.Time  `db:"appointment_date" json:"appointment_date"`
	AppointmentTime string     `db:"appointment_time" json:"appointment_time"`
	AppointmentType string     `db:"appointment_type" json:"appointment_type"`
	Notes           string     `db:"notes" json:"notes,omitempty"`
	Status          string     `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
	PatientName     *string    `db:"patient_name" json:"patient_name,omitempty"`
}
