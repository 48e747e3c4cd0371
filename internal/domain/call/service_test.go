package call

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	items map[uuid.UUID]*Call
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Call)}
}

func (m *mockRepo) Create(_ context.Context, c *Call) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	stored := *c
	m.items[c.ID] = &stored
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, userID string, id uuid.UUID) (*Call, error) {
	c, ok := m.items[id]
	if !ok || c.UserID != userID {
		return nil, fmt.Errorf("not found")
	}
	return c, nil
}

func (m *mockRepo) Update(_ context.Context, c *Call) error {
	existing, ok := m.items[c.ID]
	if !ok || existing.UserID != c.UserID {
		return fmt.Errorf("not found")
	}
	c.CreatedAt = existing.CreatedAt
	stored := *c
	m.items[c.ID] = &stored
	return nil
}

func (m *mockRepo) Delete(_ context.Context, userID string, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, userID string, limit, offset int) ([]*Call, int, error) {
	var result []*Call
	for _, c := range m.items {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, len(result), nil
}

func TestCreateCall(t *testing.T) {
	svc := NewService(newMockRepo())
	c := &Call{UserID: "u1", CallType: "inquiry", CallDuration: 5}
	if err := svc.Create(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestCreateCall_AnonymousAllowed(t *testing.T) {
	svc := NewService(newMockRepo())
	// No patient or appointment link.
	c := &Call{UserID: "u1", CallType: "appointment_booking"}
	if err := svc.Create(context.Background(), c); err != nil {
		t.Fatalf("anonymous call should be accepted: %v", err)
	}
}

func TestCreateCall_CallTypeVocabulary(t *testing.T) {
	svc := NewService(newMockRepo())
	for _, ct := range []string{
		"inquiry", "consultation", "follow_up", "emergency",
		"appointment_booking", "prescription_follow_up",
	} {
		if err := svc.Create(context.Background(), &Call{UserID: "u1", CallType: ct}); err != nil {
			t.Errorf("call_type %q rejected: %v", ct, err)
		}
	}
	if err := svc.Create(context.Background(), &Call{UserID: "u1", CallType: "spam"}); err == nil {
		t.Error("expected error for unknown call_type")
	}
}

func TestUpdateCall(t *testing.T) {
	svc := NewService(newMockRepo())
	c := &Call{UserID: "u1", CallType: "inquiry", CallDuration: 5}
	if err := svc.Create(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.CallType = "follow_up"
	c.CallNotes = "patient called back"
	if err := svc.Update(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := svc.Get(context.Background(), "u1", c.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CallType != "follow_up" || got.CallNotes != "patient called back" {
		t.Errorf("update not persisted: %+v", got)
	}

	c.CallType = "spam"
	if err := svc.Update(context.Background(), c); err == nil {
		t.Error("expected error for unknown call_type")
	}

	c.CallType = "follow_up"
	c.UserID = "u2"
	if err := svc.Update(context.Background(), c); err == nil {
		t.Error("expected other owner's update to fail")
	}
}

func TestCreateCall_NegativeDuration(t *testing.T) {
	svc := NewService(newMockRepo())
	c := &Call{UserID: "u1", CallType: "inquiry", CallDuration: -1}
	if err := svc.Create(context.Background(), c); err == nil {
		t.Error("expected error for negative duration")
	}
}
