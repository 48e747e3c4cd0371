package settings

import "time"

// Profile is the doctor's letterhead: it feeds rendered invoices,
// prescriptions and reminder emails.
type Profile struct {
	UserID     string    `db:"user_id" json:"-"`
	DoctorName string    `db:"doctor_name" json:"doctor_name"`
	ClinicName string    `db:"clinic_name" json:"clinic_name"`
	Address    string    `db:"address" json:"address"`
	Phone      string    `db:"phone" json:"phone"`
	Email      string    `db:"email" json:"email"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

var validThemeModes = map[string]bool{
	ThemeLight: true, ThemeDark: true, ThemeSystem: true,
}

// DefaultPrimaryColor is the accent used when no appearance row exists or
// the stored color fails to parse.
const DefaultPrimaryColor = "#2563eb"

// Appearance is the stored theme configuration.
type Appearance struct {
	UserID       string    `db:"user_id" json:"-"`
	ThemeMode    string    `db:"theme_mode" json:"theme_mode"`
	PrimaryColor string    `db:"primary_color" json:"primary_color"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func DefaultAppearance() Appearance {
	return Appearance{ThemeMode: ThemeSystem, PrimaryColor: DefaultPrimaryColor}
}
