package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
	"github.com/oksasatya/climate-action-backend/internal/domain/repository"
)

type goalRow struct {
	goal entity.Goal
	seq  int64
}

type GoalRepository struct {
	s *Store
}

func NewGoalRepository(s *Store) *GoalRepository {
	return &GoalRepository{s: s}
}

func (r *GoalRepository) Create(_ context.Context, g *entity.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var seq int64
	g.ID, seq = r.s.nextID()
	g.CreatedAt = r.s.now()
	g.UpdatedAt = g.CreatedAt
	r.s.goals[g.ID] = &goalRow{goal: *g, seq: seq}
	return nil
}

func (r *GoalRepository) ListByUser(_ context.Context, userID string) ([]entity.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := make([]*goalRow, 0)
	for _, row := range r.s.goals {
		if row.goal.UserID == userID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	goals := make([]entity.Goal, 0, len(rows))
	for _, row := range rows {
		goals = append(goals, row.goal)
	}
	return goals, nil
}

// owned must be called with the lock held.
func (r *GoalRepository) owned(id, userID string) (*goalRow, bool) {
	row, ok := r.s.goals[id]
	if !ok || row.goal.UserID != userID {
		return nil, false
	}
	return row, true
}

func (r *GoalRepository) Toggle(_ context.Context, id, userID string) (*entity.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.owned(id, userID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	row.goal.Completed = !row.goal.Completed
	row.goal.UpdatedAt = r.s.now()
	g := row.goal
	return &g, nil
}

func (r *GoalRepository) Delete(_ context.Context, id, userID string) (*entity.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.owned(id, userID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.s.goals, id)
	g := row.goal
	return &g, nil
}

var _ repository.GoalRepository = (*GoalRepository)(nil)
