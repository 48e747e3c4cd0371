package billing

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists invoices. ListAll returns the owner's full collection
// newest-created-first with patient names joined in; filtering and
// aggregation happen in the service so summary totals always see the
// unfiltered set.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, userID string, id uuid.UUID) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	UpdateStatus(ctx context.Context, userID string, id uuid.UUID, status string) error
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	ListAll(ctx context.Context, userID string) ([]*Invoice, error)
	GenerateNumber(ctx context.Context) (string, error)
}
