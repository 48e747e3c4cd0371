package teleconsult

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

const meetingIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

type Service struct {
	meetings Repository
	baseURL  string
	now      func() time.Time
}

// NewService takes the public base URL meeting links are built from, e.g.
// https://meet.doctorconnect.com.
func NewService(meetings Repository, baseURL string) *Service {
	return &Service{
		meetings: meetings,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		now:      time.Now,
	}
}

// newMeetingID mints a short join token. Collisions are guarded by the
// unique index on meeting_id.
func newMeetingID() string {
	b := make([]byte, 9)
	for i := range b {
		b[i] = meetingIDAlphabet[rand.Intn(len(meetingIDAlphabet))]
	}
	return "meet-" + string(b)
}

func (s *Service) mint(m *Meeting) {
	m.MeetingID = newMeetingID()
	m.MeetingURL = fmt.Sprintf("%s/%s", s.baseURL, m.MeetingID)
}

// Schedule creates a future meeting for a patient.
func (s *Service) Schedule(ctx context.Context, m *Meeting) error {
	if m.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if m.PatientID == nil {
		return fmt.Errorf("patient_id is required")
	}
	if m.Title == "" {
		return fmt.Errorf("title is required")
	}
	if m.ScheduledTime.IsZero() {
		return fmt.Errorf("scheduled_time is required")
	}
	m.Status = StatusScheduled
	s.mint(m)
	return s.meetings.Create(ctx, m)
}

// StartInstant creates a meeting that is live immediately, with no patient
// attached yet.
func (s *Service) StartInstant(ctx context.Context, userID, title string) (*Meeting, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if title == "" {
		title = "Instant Meeting"
	}
	m := &Meeting{
		UserID:        userID,
		Title:         title,
		ScheduledTime: s.now(),
		Status:        StatusActive,
	}
	s.mint(m)
	if err := s.meetings.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Meeting, error) {
	return s.meetings.GetByID(ctx, userID, id)
}

func (s *Service) UpdateStatus(ctx context.Context, userID string, id uuid.UUID, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("invalid status %q", status)
	}
	return s.meetings.UpdateStatus(ctx, userID, id, status)
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.meetings.Delete(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]*Meeting, int, error) {
	return s.meetings.List(ctx, userID, limit, offset)
}
