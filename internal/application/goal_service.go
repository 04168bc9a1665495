package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
	repo "github.com/oksasatya/climate-action-backend/internal/domain/repository"
)

// GoalService never distinguishes a missing goal from someone else's goal.
type GoalService struct {
	Goals  repo.GoalRepository
	Logger *logrus.Logger
}

func NewGoalService(goals repo.GoalRepository, logger *logrus.Logger) *GoalService {
	return &GoalService{Goals: goals, Logger: logger}
}

type GoalInput struct {
	Goal      string
	Category  entity.GoalCategory
	Completed bool
}

func (s *GoalService) Create(ctx context.Context, userID string, in GoalInput) (*entity.Goal, error) {
	g := &entity.Goal{
		UserID:    userID,
		Goal:      strings.TrimSpace(in.Goal),
		Category:  in.Category,
		Completed: in.Completed,
	}
	if err := s.Goals.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	goalsCreated.Add(1)
	return g, nil
}

func (s *GoalService) List(ctx context.Context, userID string) ([]entity.Goal, error) {
	goals, err := s.Goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (s *GoalService) Toggle(ctx context.Context, userID, id string) (*entity.Goal, error) {
	g, err := s.Goals.Toggle(ctx, id, userID)
	return g, goalError("toggle goal", err)
}

func (s *GoalService) Delete(ctx context.Context, userID, id string) (*entity.Goal, error) {
	g, err := s.Goals.Delete(ctx, id, userID)
	return g, goalError("delete goal", err)
}

func goalError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return ErrGoalNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
