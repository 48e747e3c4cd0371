package call

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	calls Repository
}

func NewService(calls Repository) *Service {
	return &Service{calls: calls}
}

func (s *Service) Create(ctx context.Context, c *Call) error {
	if c.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if !validCallTypes[c.CallType] {
		return fmt.Errorf("invalid call_type %q", c.CallType)
	}
	if c.CallDuration < 0 {
		return fmt.Errorf("call_duration must not be negative")
	}
	return s.calls.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, c *Call) error {
	if !validCallTypes[c.CallType] {
		return fmt.Errorf("invalid call_type %q", c.CallType)
	}
	if c.CallDuration < 0 {
		return fmt.Errorf("call_duration must not be negative")
	}
	return s.calls.Update(ctx, c)
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Call, error) {
	return s.calls.GetByID(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.calls.Delete(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]*Call, int, error) {
	return s.calls.List(ctx, userID, limit, offset)
}
