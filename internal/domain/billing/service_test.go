package billing

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	items      map[uuid.UUID]*Invoice
	nextNumber string
	numberErr  error
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Invoice)}
}

func (m *mockRepo) Create(_ context.Context, inv *Invoice) error {
	inv.ID = uuid.New()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now()
	}
	inv.UpdatedAt = inv.CreatedAt
	m.items[inv.ID] = inv
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, userID string, id uuid.UUID) (*Invoice, error) {
	inv, ok := m.items[id]
	if !ok || inv.UserID != userID {
		return nil, fmt.Errorf("not found")
	}
	return inv, nil
}

func (m *mockRepo) Update(_ context.Context, inv *Invoice) error {
	m.items[inv.ID] = inv
	return nil
}

func (m *mockRepo) UpdateStatus(_ context.Context, userID string, id uuid.UUID, status string) error {
	inv, ok := m.items[id]
	if !ok || inv.UserID != userID {
		return fmt.Errorf("not found")
	}
	inv.Status = status
	return nil
}

func (m *mockRepo) Delete(_ context.Context, userID string, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockRepo) ListAll(_ context.Context, userID string) ([]*Invoice, error) {
	var result []*Invoice
	for _, inv := range m.items {
		if inv.UserID == userID {
			result = append(result, inv)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockRepo) GenerateNumber(_ context.Context) (string, error) {
	return m.nextNumber, m.numberErr
}

func newTestService(repo *mockRepo) *Service {
	svc := NewService(repo, nil)
	svc.now = testNow
	return svc
}

// -- Tests --

func TestCreateInvoice_Defaults(t *testing.T) {
	repo := newMockRepo()
	repo.nextNumber = "INV-202506-007"
	svc := newTestService(repo)

	inv := &Invoice{
		UserID:             "u1",
		ServiceDescription: "Consultation",
		Amount:             300,
		DueDate:            testNow().AddDate(0, 1, 0),
	}
	if err := svc.Create(context.Background(), inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Status != StatusPending {
		t.Errorf("status = %q, want pending default", inv.Status)
	}
	if inv.InvoiceNumber != "INV-202506-007" {
		t.Errorf("expected repository-generated number, got %q", inv.InvoiceNumber)
	}
}

func TestCreateInvoice_NumberFallback(t *testing.T) {
	repo := newMockRepo()
	repo.numberErr = fmt.Errorf("function missing")
	svc := newTestService(repo)

	inv := &Invoice{
		UserID:             "u1",
		ServiceDescription: "Consultation",
		Amount:             300,
		DueDate:            testNow().AddDate(0, 1, 0),
	}
	if err := svc.Create(context.Background(), inv); err != nil {
		t.Fatalf("generation failure must not surface: %v", err)
	}
	if !regexp.MustCompile(`^INV-202506-\d{3}$`).MatchString(inv.InvoiceNumber) {
		t.Errorf("fallback number %q does not match INV-YYYYMM-NNN", inv.InvoiceNumber)
	}
}

func TestCreateInvoice_Validation(t *testing.T) {
	svc := newTestService(newMockRepo())
	due := testNow().AddDate(0, 1, 0)

	cases := []struct {
		name string
		inv  Invoice
	}{
		{"missing owner", Invoice{ServiceDescription: "x", Amount: 1, DueDate: due}},
		{"missing description", Invoice{UserID: "u1", Amount: 1, DueDate: due}},
		{"negative amount", Invoice{UserID: "u1", ServiceDescription: "x", Amount: -5, DueDate: due}},
		{"missing due date", Invoice{UserID: "u1", ServiceDescription: "x", Amount: 1}},
		{"bad status", Invoice{UserID: "u1", ServiceDescription: "x", Amount: 1, DueDate: due, Status: "void"}},
	}
	for _, tc := range cases {
		inv := tc.inv
		if err := svc.Create(context.Background(), &inv); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	inv := &Invoice{
		UserID: "u1", ServiceDescription: "x", Amount: 1,
		DueDate: testNow(), Status: StatusPaid,
	}
	svc.Create(context.Background(), inv)

	// Any valid status can replace any other, including paid back to pending.
	for _, status := range []string{StatusOverdue, StatusPending, StatusPaid} {
		if err := svc.UpdateStatus(context.Background(), "u1", inv.ID, status); err != nil {
			t.Errorf("transition to %s: %v", status, err)
		}
	}
	if err := svc.UpdateStatus(context.Background(), "u1", inv.ID, "cancelled"); err == nil {
		t.Error("expected error for unknown status")
	}
	if err := svc.UpdateStatus(context.Background(), "u2", inv.ID, StatusPaid); err == nil {
		t.Error("expected other owner's update to fail")
	}
}

func TestList_FilteredViewWithStableSummary(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	now := testNow()

	pending := &Invoice{
		UserID: "u1", ServiceDescription: "Consultation", Amount: 500,
		DueDate: now, Status: StatusPending, CreatedAt: now.Add(-time.Hour),
	}
	paid := &Invoice{
		UserID: "u1", ServiceDescription: "Surgery", Amount: 2000,
		DueDate: now, Status: StatusPaid, CreatedAt: now.AddDate(0, 0, -10),
	}
	for _, inv := range []*Invoice{pending, paid} {
		repo.items[uuid.New()] = inv
	}

	filtered, summary, err := svc.List(context.Background(), "u1", FilterOptions{Status: StatusPaid})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ServiceDescription != "Surgery" {
		t.Errorf("unexpected filter view: %v", filtered)
	}
	if summary.PendingTotal != 500 || summary.PaidTotal != 2000 {
		t.Errorf("summary must cover the unfiltered set, got %+v", summary)
	}

	// Narrowing to nothing still reports the same totals.
	filtered, summary, _ = svc.List(context.Background(), "u1", FilterOptions{Search: "no-match"})
	if len(filtered) != 0 {
		t.Errorf("expected empty view")
	}
	if summary.PendingTotal != 500 || summary.PaidTotal != 2000 {
		t.Errorf("summary changed under filters: %+v", summary)
	}
}

func TestList_NewestFirst(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	now := testNow()
	for i, age := range []time.Duration{72 * time.Hour, time.Hour, 24 * time.Hour} {
		repo.items[uuid.New()] = &Invoice{
			UserID: "u1", ServiceDescription: fmt.Sprintf("svc-%d", i),
			DueDate: now, Status: StatusPending, CreatedAt: now.Add(-age),
		}
	}
	invoices, _, err := svc.List(context.Background(), "u1", FilterOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(invoices); i++ {
		if invoices[i].CreatedAt.After(invoices[i-1].CreatedAt) {
			t.Fatalf("invoices not sorted newest first")
		}
	}
}

type fixedRenderSource struct{ opts RenderOptions }

func (f fixedRenderSource) RenderOptions(context.Context, string) RenderOptions { return f.opts }

func TestRenderPDFThroughService(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, fixedRenderSource{opts: RenderOptions{
		Doctor: DoctorInfo{Name: "Dr. Patel", Clinic: "Citycare", Address: "1 Main St",
			Phone: "555-0000", Email: "dr@citycare.example"},
		Accent: [3]int{37, 99, 235},
	}})
	svc.now = testNow

	inv := renderableInvoice()
	inv.UserID = "u1"
	repo.items[uuid.New()] = inv
	var id uuid.UUID
	for k := range repo.items {
		id = k
	}

	data, filename, err := svc.RenderPDF(context.Background(), "u1", id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected PDF bytes")
	}
	if filename != "Invoice_INV-202506-042_Alice_Smith_2025-06-15.pdf" {
		t.Errorf("unexpected filename %q", filename)
	}

	if _, _, err := svc.RenderPDF(context.Background(), "u2", id); err == nil {
		t.Error("expected other owner's render to fail")
	}
}

func TestExportCSVThroughService(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	inv := renderableInvoice()
	inv.UserID = "u1"
	repo.items[uuid.New()] = inv

	data, filename, err := svc.ExportCSV(context.Background(), "u1", FilterOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filename != "invoices_2025-06-15.csv" {
		t.Errorf("unexpected filename %q", filename)
	}
	if want := "INV-202506-042,Alice Smith"; len(data) == 0 || !regexp.MustCompile(want).MatchString(data) {
		t.Errorf("expected exported row containing %q, got %q", want, data)
	}
}
