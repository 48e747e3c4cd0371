package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, userID string, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	List(ctx context.Context, userID string, limit, offset int) ([]*Appointment, int, error)
	CountAll(ctx context.Context, userID string) (int, error)
	CountOnDate(ctx context.Context, userID string, date time.Time) (int, error)
}
