package patient

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	items map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.items[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, userID string, id uuid.UUID) (*Patient, error) {
	p, ok := m.items[id]
	if !ok || p.UserID != userID {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	m.items[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, userID string, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, userID string, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.items {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, len(result), nil
}

func (m *mockRepo) Lookup(_ context.Context, userID string) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string)
	for id, p := range m.items {
		if p.UserID == userID {
			names[id] = p.FullName
		}
	}
	return names, nil
}

func newTestService() *Service {
	return NewService(newMockRepo())
}

// -- Tests --

func TestCreatePatient(t *testing.T) {
	svc := newTestService()
	p := &Patient{UserID: "u1", FullName: "Alice Smith"}
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestCreatePatient_RequiresName(t *testing.T) {
	svc := newTestService()
	if err := svc.Create(context.Background(), &Patient{UserID: "u1"}); err == nil {
		t.Error("expected error for missing full_name")
	}
}

func TestCreatePatient_RequiresOwner(t *testing.T) {
	svc := newTestService()
	if err := svc.Create(context.Background(), &Patient{FullName: "Alice"}); err == nil {
		t.Error("expected error for missing user_id")
	}
}

func TestGetPatient_ScopedToOwner(t *testing.T) {
	svc := newTestService()
	p := &Patient{UserID: "u1", FullName: "Alice Smith"}
	svc.Create(context.Background(), p)

	if _, err := svc.Get(context.Background(), "u1", p.ID); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), "u2", p.ID); err == nil {
		t.Error("expected other owner's lookup to fail")
	}
}

func TestLookup(t *testing.T) {
	svc := newTestService()
	p := &Patient{UserID: "u1", FullName: "Bob Jones"}
	svc.Create(context.Background(), p)
	svc.Create(context.Background(), &Patient{UserID: "u2", FullName: "Carol"})

	names, err := svc.Lookup(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 1 || names[p.ID] != "Bob Jones" {
		t.Errorf("unexpected lookup result: %v", names)
	}
}
