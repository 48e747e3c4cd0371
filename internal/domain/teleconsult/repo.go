package teleconsult

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, m *Meeting) error
	GetByID(ctx context.Context, userID string, id uuid.UUID) (*Meeting, error)
	UpdateStatus(ctx context.Context, userID string, id uuid.UUID, status string) error
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	List(ctx context.Context, userID string, limit, offset int) ([]*Meeting, int, error)
}
