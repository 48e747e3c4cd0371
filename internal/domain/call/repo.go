package call

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, c *Call) error
	GetByID(ctx context.Context, userID string, id uuid.UUID) (*Call, error)
	Update(ctx context.Context, c *Call) error
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	List(ctx context.Context, userID string, limit, offset int) ([]*Call, int, error)
}
