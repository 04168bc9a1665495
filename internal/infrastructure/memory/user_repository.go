package memory

import (
	"context"

	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
	"github.com/oksasatya/climate-action-backend/internal/domain/repository"
)

type userRow struct {
	user entity.User
}

type UserRepository struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email := entity.NormalizeEmail(u.Email)
	for _, row := range r.s.users {
		if entity.NormalizeEmail(row.user.Email) == email {
			return repository.ErrDuplicate
		}
	}
	u.ID, _ = r.s.nextID()
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = &userRow{user: *u}
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := row.user
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = entity.NormalizeEmail(email)
	for _, row := range r.s.users {
		if entity.NormalizeEmail(row.user.Email) == email {
			u := row.user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

var _ repository.UserRepository = (*UserRepository)(nil)
