package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, userID string, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	List(ctx context.Context, userID string, limit, offset int) ([]*Patient, int, error)
	// Lookup returns an id -> full_name map for the owner's patients.
	Lookup(ctx context.Context, userID string) (map[uuid.UUID]string, error)
}
