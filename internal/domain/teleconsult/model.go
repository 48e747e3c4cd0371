package teleconsult

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusScheduled = "scheduled"
	StatusActive    = "active"
	StatusEnded     = "ended"
)

var validStatuses = map[string]bool{
	StatusScheduled: true, StatusActive: true, StatusEnded: true,
}

// Meeting stores the join link only; the video transport itself is an
// external service.
type Meeting struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	UserID        string     `db:"user_id" json:"-"`
	PatientID     *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	Title         string     `db:"title" json:"title"`
	ScheduledTime time.Time  `db:"scheduled_time" json:"scheduled_time"`
	Status        string     `db:"status" json:"status"`
	MeetingID     string     `db:"meeting_id" json:"meeting_id"`
	MeetingURL    string     `db:"meeting_url" json:"meeting_url"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	PatientName   *string    `db:"patient_name" json:"patient_name,omitempty"`
}
