package call

import (
	"time"

	"github.com/google/uuid"
)

var validCallTypes = map[string]bool{
	"inquiry":                true,
	"consultation":           true,
	"follow_up":              true,
	"emergency":              true,
	"appointment_booking":    true,
	"prescription_follow_up": true,
}

// Call logs a phone interaction. Patient and appointment links are both
// optional; anonymous inquiries are recorded too.
type Call struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	UserID        string     `db:"user_id" json:"-"`
	PatientID     *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	AppointmentID *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	CallType      string     `db:"call_type" json:"call_type"`
	CallDuration  int        `db:"call_duration" json:"call_duration"`
	CallNotes     string     `db:"call_notes" json:"call_notes,omitempty"`
	CallOutcome   string     `db:"call_outcome" json:"call_outcome,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	PatientName   *string    `db:"patient_name" json:"patient_name,omitempty"`
}
