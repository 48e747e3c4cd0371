package billing

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// RenderSource supplies per-user letterhead and accent color for rendered
// invoices. A nil source leaves the built-in defaults in place.
type RenderSource interface {
	RenderOptions(ctx context.Context, userID string) RenderOptions
}

type Service struct {
	invoices Repository
	renderer RenderSource
	now      func() time.Time
}

func NewService(invoices Repository, renderer RenderSource) *Service {
	return &Service{invoices: invoices, renderer: renderer, now: time.Now}
}

func (s *Service) Create(ctx context.Context, inv *Invoice) error {
	if inv.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if inv.ServiceDescription == "" {
		return fmt.Errorf("service_description is required")
	}
	if inv.Amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	if inv.DueDate.IsZero() {
		return fmt.Errorf("due_date is required")
	}
	if inv.Status == "" {
		inv.Status = StatusPending
	}
	if !validStatuses[inv.Status] {
		return fmt.Errorf("invalid status %q", inv.Status)
	}
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = s.nextNumber(ctx)
	}
	return s.invoices.Create(ctx, inv)
}

// nextNumber asks the database sequence first and falls back to a
// client-side number when that fails. The fallback is never surfaced.
func (s *Service) nextNumber(ctx context.Context) string {
	if number, err := s.invoices.GenerateNumber(ctx); err == nil && number != "" {
		return number
	}
	now := s.now()
	return fmt.Sprintf("INV-%d%02d-%03d", now.Year(), int(now.Month()), rand.Intn(1000))
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Invoice, error) {
	return s.invoices.GetByID(ctx, userID, id)
}

// List returns the filtered view plus summary totals computed over the
// owner's full collection, so the totals do not move as filters change.
func (s *Service) List(ctx context.Context, userID string, opts FilterOptions) ([]*Invoice, Summary, error) {
	all, err := s.invoices.ListAll(ctx, userID)
	if err != nil {
		return nil, Summary{}, err
	}
	return ApplyFilters(all, opts, s.now()), Summarize(all), nil
}

func (s *Service) Update(ctx context.Context, inv *Invoice) error {
	if inv.ServiceDescription == "" {
		return fmt.Errorf("service_description is required")
	}
	if inv.Amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	if !validStatuses[inv.Status] {
		return fmt.Errorf("invalid status %q", inv.Status)
	}
	return s.invoices.Update(ctx, inv)
}

// UpdateStatus accepts any valid status in any order; there is no state
// machine over pending, paid and overdue.
func (s *Service) UpdateStatus(ctx context.Context, userID string, id uuid.UUID, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("invalid status %q", status)
	}
	return s.invoices.UpdateStatus(ctx, userID, id, status)
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.invoices.Delete(ctx, userID, id)
}

// RenderPDF loads the invoice and renders it with the user's letterhead.
func (s *Service) RenderPDF(ctx context.Context, userID string, id uuid.UUID) ([]byte, string, error) {
	inv, err := s.invoices.GetByID(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}
	var opts RenderOptions
	if s.renderer != nil {
		opts = s.renderer.RenderOptions(ctx, userID)
	}
	opts.Now = s.now
	data, err := RenderPDF(inv, opts)
	if err != nil {
		return nil, "", err
	}
	return data, PDFFilename(inv), nil
}

// ExportCSV renders the current filter view as CSV.
func (s *Service) ExportCSV(ctx context.Context, userID string, opts FilterOptions) (string, string, error) {
	filtered, _, err := s.List(ctx, userID, opts)
	if err != nil {
		return "", "", err
	}
	return ExportCSV(filtered), ExportFilename(s.now()), nil
}
