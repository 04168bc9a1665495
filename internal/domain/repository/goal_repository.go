package repository

import (
	"context"

	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
)

// GoalRepository scopes every read and write by the owning user. A goal that exists but
// belongs to someone else is reported as ErrNotFound.
type GoalRepository interface {
	Create(ctx context.Context, g *entity.Goal) error
	// ListByUser returns the user's goals newest first.
	ListByUser(ctx context.Context, userID string) ([]entity.Goal, error)
	// Toggle flips the completed flag atomically and returns the updated goal.
	Toggle(ctx context.Context, id, userID string) (*entity.Goal, error)
	// Delete removes the goal and returns the deleted record.
	Delete(ctx context.Context, id, userID string) (*entity.Goal, error)
}
