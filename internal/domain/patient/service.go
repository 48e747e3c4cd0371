package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if p.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, userID, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.patients.Delete(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, userID, limit, offset)
}

func (s *Service) Lookup(ctx context.Context, userID string) (map[uuid.UUID]string, error) {
	return s.patients.Lookup(ctx, userID)
}
