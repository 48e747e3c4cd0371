package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/doctorconnect/clinic/internal/platform/notification"
)

// PatientSource resolves a patient's display name and email without coupling
// this package to the patient domain.
type PatientSource interface {
	ContactInfo(ctx context.Context, userID string, id uuid.UUID) (name, email string, err error)
}

// ClinicSource names the clinic in outbound reminders. A nil source uses the
// default clinic name.
type ClinicSource interface {
	ClinicName(ctx context.Context, userID string) string
}

const defaultClinicName = "DoctorConnect Healthcare"

type Service struct {
	appointments Repository
	patients     PatientSource
	clinic       ClinicSource
	mail         notification.EmailSender
}

func NewService(appointments Repository, patients PatientSource, clinic ClinicSource, mail notification.EmailSender) *Service {
	return &Service{appointments: appointments, patients: patients, clinic: clinic, mail: mail}
}

func validate(a *Appointment) error {
	if a.PatientID == nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.AppointmentDate.IsZero() {
		return fmt.Errorf("appointment_date is required")
	}
	if a.AppointmentTime == "" {
		return fmt.Errorf("appointment_time is required")
	}
	if !validTypes[a.AppointmentType] {
		return fmt.Errorf("invalid appointment_type %q", a.AppointmentType)
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid status %q", a.Status)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if err := validate(a); err != nil {
		return err
	}
	return s.appointments.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, userID, id)
}

func (s *Service) Update(ctx context.Context, a *Appointment) error {
	if err := validate(a); err != nil {
		return err
	}
	return s.appointments.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.appointments.Delete(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.List(ctx, userID, limit, offset)
}

// SendReminder emails the appointment's patient. It fails when the patient
// is unknown or has no email on file.
func (s *Service) SendReminder(ctx context.Context, userID string, id uuid.UUID) error {
	if s.mail == nil {
		return fmt.Errorf("email delivery is not configured")
	}
	a, err := s.appointments.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if a.PatientID == nil {
		return fmt.Errorf("appointment has no patient")
	}
	name, email, err := s.patients.ContactInfo(ctx, userID, *a.PatientID)
	if err != nil {
		return err
	}
	if email == "" {
		return fmt.Errorf("patient has no email on file")
	}

	clinic := defaultClinicName
	if s.clinic != nil {
		if c := s.clinic.ClinicName(ctx, userID); c != "" {
			clinic = c
		}
	}

	subject, body := notification.AppointmentReminder(
		name, clinic, a.AppointmentDate.Format("January 2, 2006"),
		a.AppointmentTime, a.AppointmentType)
	return s.mail.SendEmail(ctx, email, subject, body)
}
