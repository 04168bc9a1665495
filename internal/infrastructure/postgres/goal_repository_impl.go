package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
	"github.com/oksasatya/climate-action-backend/internal/domain/repository"
)

type GoalRepository struct {
	pool *pgxpool.Pool
}

func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

const goalColumns = `id, user_id, goal, category, completed, created_at, updated_at`

func scanGoal(row pgx.Row) (*entity.Goal, error) {
	g := &entity.Goal{}
	if err := row.Scan(&g.ID, &g.UserID, &g.Goal, &g.Category, &g.Completed, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

// validIDs reports whether every id is a UUID; anything else cannot match a row.
func validIDs(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}

func (r *GoalRepository) Create(ctx context.Context, g *entity.Goal) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO goals (user_id, goal, category, completed)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, g.UserID, g.Goal, g.Category, g.Completed)
	if err := row.Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID string) ([]entity.Goal, error) {
	goals := []entity.Goal{}
	if !validIDs(userID) {
		return goals, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+goalColumns+`
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

func (r *GoalRepository) Toggle(ctx context.Context, id, userID string) (*entity.Goal, error) {
	if !validIDs(id, userID) {
		return nil, repository.ErrNotFound
	}
	return scanGoal(r.pool.QueryRow(ctx, `
		UPDATE goals
		SET completed = NOT completed, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+goalColumns, id, userID))
}

func (r *GoalRepository) Delete(ctx context.Context, id, userID string) (*entity.Goal, error) {
	if !validIDs(id, userID) {
		return nil, repository.ErrNotFound
	}
	return scanGoal(r.pool.QueryRow(ctx, `
		DELETE FROM goals
		WHERE id = $1 AND user_id = $2
		RETURNING `+goalColumns, id, userID))
}

var _ repository.GoalRepository = (*GoalRepository)(nil)
