// Package notification delivers outbound email for the clinic server. The
// transport is the Resend HTTP API; senders are interface-first so services
// and tests can inject fakes.
package notification

import (
	"context"
	"fmt"
	"time"
)

// EmailSender is the interface for sending email messages.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// RetryingSender wraps an EmailSender with bounded retries and a fixed
// backoff between attempts.
type RetryingSender struct {
	Sender   EmailSender
	Attempts int
	Backoff  time.Duration
}

func NewRetryingSender(sender EmailSender) *RetryingSender {
	return &RetryingSender{Sender: sender, Attempts: 3, Backoff: time.Second}
}

func (r *RetryingSender) SendEmail(ctx context.Context, to, subject, body string) error {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.Backoff):
			}
		}
		if err = r.Sender.SendEmail(ctx, to, subject, body); err == nil {
			return nil
		}
	}
	return fmt.Errorf("send email after %d attempts: %w", attempts, err)
}

// AppointmentReminder composes the subject and plain-text body for an
// appointment reminder email.
func AppointmentReminder(patientName, clinicName, date, timeOfDay, appointmentType string) (subject, body string) {
	subject = fmt.Sprintf("Appointment Reminder - %s", date)
	body = fmt.Sprintf(
		"Dear %s,\n\nThis is a reminder of your upcoming %s appointment at %s on %s at %s.\n\nIf you need to reschedule, please contact the clinic.\n\n%s",
		patientName, appointmentType, clinicName, date, timeOfDay, clinicName)
	return subject, body
}
