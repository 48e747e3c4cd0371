package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table. Clinical fields are free text captured
// from the intake form; all of them are optional except the display name.
type Patient struct {
	ID               uuid.UUID `db:"id" json:"id"`
	UserID           string    `db:"user_id" json:"-"`
	FullName         string    `db:"full_name" json:"full_name"`
	Gender           *string   `db:"gender" json:"gender,omitempty"`
	Phone            *string   `db:"phone" json:"phone,omitempty"`
	Email            *string   `db:"email" json:"email,omitempty"`
	Address          *string   `db:"address" json:"address,omitempty"`
	BloodGroup       *string   `db:"blood_group" json:"blood_group,omitempty"`
	MedicalHistory   *string   `db:"medical_history" json:"medical_history,omitempty"`
	Allergies        *string   `db:"allergies" json:"allergies,omitempty"`
	Diagnosis        *string   `db:"diagnosis" json:"diagnosis,omitempty"`
	EmergencyContact *string   `db:"emergency_contact" json:"emergency_contact,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
