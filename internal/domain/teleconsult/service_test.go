package teleconsult

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	items map[uuid.UUID]*Meeting
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Meeting)}
}

func (m *mockRepo) Create(_ context.Context, meeting *Meeting) error {
	meeting.ID = uuid.New()
	meeting.CreatedAt = time.Now()
	m.items[meeting.ID] = meeting
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, userID string, id uuid.UUID) (*Meeting, error) {
	meeting, ok := m.items[id]
	if !ok || meeting.UserID != userID {
		return nil, fmt.Errorf("not found")
	}
	return meeting, nil
}

func (m *mockRepo) UpdateStatus(_ context.Context, userID string, id uuid.UUID, status string) error {
	meeting, ok := m.items[id]
	if !ok || meeting.UserID != userID {
		return fmt.Errorf("not found")
	}
	meeting.Status = status
	return nil
}

func (m *mockRepo) Delete(_ context.Context, userID string, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, userID string, limit, offset int) ([]*Meeting, int, error) {
	var result []*Meeting
	for _, meeting := range m.items {
		if meeting.UserID == userID {
			result = append(result, meeting)
		}
	}
	return result, len(result), nil
}

const testBaseURL = "https://meet.doctorconnect.com"

var meetingURLRE = regexp.MustCompile(`^https://meet\.doctorconnect\.com/meet-[a-z0-9]{9}$`)

func TestSchedule(t *testing.T) {
	svc := NewService(newMockRepo(), testBaseURL)
	pid := uuid.New()
	m := &Meeting{
		UserID:        "u1",
		PatientID:     &pid,
		Title:         "Follow-up consult",
		ScheduledTime: time.Now().Add(24 * time.Hour),
	}
	if err := svc.Schedule(context.Background(), m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != StatusScheduled {
		t.Errorf("status = %q, want scheduled", m.Status)
	}
	if !meetingURLRE.MatchString(m.MeetingURL) {
		t.Errorf("unexpected meeting url %q", m.MeetingURL)
	}
	if m.MeetingURL != testBaseURL+"/"+m.MeetingID {
		t.Errorf("url %q does not embed meeting id %q", m.MeetingURL, m.MeetingID)
	}
}

func TestSchedule_Validation(t *testing.T) {
	svc := NewService(newMockRepo(), testBaseURL)
	pid := uuid.New()

	cases := map[string]*Meeting{
		"missing patient": {UserID: "u1", Title: "x", ScheduledTime: time.Now()},
		"missing title":   {UserID: "u1", PatientID: &pid, ScheduledTime: time.Now()},
		"missing time":    {UserID: "u1", PatientID: &pid, Title: "x"},
	}
	for name, m := range cases {
		if err := svc.Schedule(context.Background(), m); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestStartInstant(t *testing.T) {
	svc := NewService(newMockRepo(), testBaseURL)
	m, err := svc.StartInstant(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != StatusActive {
		t.Errorf("instant meeting should start active, got %q", m.Status)
	}
	if m.PatientID != nil {
		t.Errorf("instant meeting should have no patient")
	}
	if m.Title != "Instant Meeting" {
		t.Errorf("expected default title, got %q", m.Title)
	}
	if !meetingURLRE.MatchString(m.MeetingURL) {
		t.Errorf("unexpected meeting url %q", m.MeetingURL)
	}
}

func TestMeetingIDsAreUnique(t *testing.T) {
	svc := NewService(newMockRepo(), testBaseURL)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		m, err := svc.StartInstant(context.Background(), "u1", "t")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[m.MeetingID] {
			t.Fatalf("duplicate meeting id %q", m.MeetingID)
		}
		seen[m.MeetingID] = true
	}
}

func TestGetMeeting_OwnerScoped(t *testing.T) {
	svc := NewService(newMockRepo(), testBaseURL)
	m, _ := svc.StartInstant(context.Background(), "u1", "t")

	got, err := svc.Get(context.Background(), "u1", m.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MeetingID != m.MeetingID {
		t.Errorf("got meeting %q, want %q", got.MeetingID, m.MeetingID)
	}
	if _, err := svc.Get(context.Background(), "u2", m.ID); err == nil {
		t.Error("expected other owner's lookup to fail")
	}
}

func TestUpdateStatus(t *testing.T) {
	svc := NewService(newMockRepo(), testBaseURL)
	m, _ := svc.StartInstant(context.Background(), "u1", "t")

	if err := svc.UpdateStatus(context.Background(), "u1", m.ID, StatusEnded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), "u1", m.ID, "paused"); err == nil {
		t.Error("expected error for unknown status")
	}
	if err := svc.UpdateStatus(context.Background(), "u2", m.ID, StatusEnded); err == nil {
		t.Error("expected other owner's update to fail")
	}
}
