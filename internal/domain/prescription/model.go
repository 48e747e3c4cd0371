package prescription

import (
	"time"

	"github.com/google/uuid"
)

// Frequencies a prescription may carry. Free-text frequencies are rejected so
// rendered documents stay unambiguous.
var validFrequencies = map[string]bool{
	"Once daily":        true,
	"Twice daily":       true,
	"Three times daily": true,
	"Four times daily":  true,
	"Every 8 hours":     true,
	"Every 12 hours":    true,
	"As needed":         true,
}

// Frequencies returns the accepted dosing vocabulary in display order.
func Frequencies() []string {
	return []string{
		"Once daily", "Twice daily", "Three times daily", "Four times daily",
		"Every 8 hours", "Every 12 hours", "As needed",
	}
}

type Prescription struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	UserID              string     `db:"user_id" json:"-"`
	PatientID           *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	MedicationName      string     `db:"medication_name" json:"medication_name"`
	Dosage              string     `db:"dosage" json:"dosage"`
	Frequency           string     `db:"frequency" json:"frequency"`
	Duration            string     `db:"duration" json:"duration"`
	SpecialInstructions string     `db:"special_instructions" json:"special_instructions,omitempty"`
	PrescribedDate      time.Time  `db:"prescribed_date" json:"prescribed_date"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
	PatientName         *string    `db:"patient_name" json:"patient_name,omitempty"`
}

func patientName(p *Prescription) string {
	if p.PatientName != nil && *p.PatientName != "" {
		return *p.PatientName
	}
	return "Patient"
}
