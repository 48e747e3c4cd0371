package prescription

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// RenderSource supplies the prescribing doctor's display name and clinic. A
// nil source leaves the built-in defaults in place.
type RenderSource interface {
	RenderOptions(ctx context.Context, userID string) RenderOptions
}

type Service struct {
	prescriptions Repository
	renderer      RenderSource
}

func NewService(prescriptions Repository, renderer RenderSource) *Service {
	return &Service{prescriptions: prescriptions, renderer: renderer}
}

func validate(p *Prescription) error {
	if p.MedicationName == "" {
		return fmt.Errorf("medication_name is required")
	}
	if p.Dosage == "" {
		return fmt.Errorf("dosage is required")
	}
	if !validFrequencies[p.Frequency] {
		return fmt.Errorf("invalid frequency %q", p.Frequency)
	}
	if p.Duration == "" {
		return fmt.Errorf("duration is required")
	}
	if p.PrescribedDate.IsZero() {
		return fmt.Errorf("prescribed_date is required")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p *Prescription) error {
	if p.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if err := validate(p); err != nil {
		return err
	}
	return s.prescriptions.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Prescription, error) {
	return s.prescriptions.GetByID(ctx, userID, id)
}

func (s *Service) Update(ctx context.Context, p *Prescription) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.prescriptions.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.prescriptions.Delete(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]*Prescription, int, error) {
	return s.prescriptions.List(ctx, userID, limit, offset)
}

// RenderPDF loads the prescription and renders it with the user's letterhead.
func (s *Service) RenderPDF(ctx context.Context, userID string, id uuid.UUID) ([]byte, string, error) {
	p, err := s.prescriptions.GetByID(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}
	var opts RenderOptions
	if s.renderer != nil {
		opts = s.renderer.RenderOptions(ctx, userID)
	}
	data, err := RenderPDF(p, opts)
	if err != nil {
		return nil, "", err
	}
	return data, PDFFilename(p), nil
}
