package postgres

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
	"github.com/oksasatya/climate-action-backend/internal/domain/repository"
	"github.com/oksasatya/climate-action-backend/pkg/helpers"
)

// testPool connects to TEST_DATABASE_URL, migrates it and truncates every table.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, dsn, 4, 1, time.Hour)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(dsn, "../../../db/migrations", helpers.NewNopLogger()))
	_, err = pool.Exec(ctx, `TRUNCATE posts, goals, users`)
	require.NoError(t, err)
	return pool
}

func createUser(t *testing.T, repo *UserRepository, email string) *entity.User {
	t.Helper()
	u := &entity.User{FullName: "Test", Email: email, PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository_Integration(t *testing.T) {
	pool := testPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	u := createUser(t, repo, "a@x.com")
	assert.NotEmpty(t, u.ID)

	err := repo.Create(ctx, &entity.User{FullName: "Dup", Email: "A@X.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := repo.GetByEmail(ctx, "A@x.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGoalRepository_Integration(t *testing.T) {
	pool := testPool(t)
	users := NewUserRepository(pool)
	goals := NewGoalRepository(pool)
	ctx := context.Background()

	alice := createUser(t, users, "alice@x.com")
	bob := createUser(t, users, "bob@x.com")

	first := &entity.Goal{UserID: alice.ID, Goal: "bike to work", Category: entity.GoalPersonal}
	require.NoError(t, goals.Create(ctx, first))
	second := &entity.Goal{UserID: alice.ID, Goal: "solar panels", Category: entity.GoalHome}
	require.NoError(t, goals.Create(ctx, second))

	list, err := goals.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	list, err = goals.ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = goals.Toggle(ctx, first.ID, bob.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// an even number of concurrent toggles leaves the flag unchanged
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := goals.Toggle(ctx, first.ID, alice.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	g, err := goals.Toggle(ctx, first.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, g.Completed)

	_, err = goals.Delete(ctx, first.ID, bob.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	deleted, err := goals.Delete(ctx, first.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "bike to work", deleted.Goal)
	_, err = goals.Delete(ctx, first.ID, alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostRepository_Integration(t *testing.T) {
	pool := testPool(t)
	users := NewUserRepository(pool)
	posts := NewPostRepository(pool)
	ctx := context.Background()

	author := createUser(t, users, "writer@x.com")
	titles := []string{"Planting trees downtown", "Teaching kids about recycling", "Carbon tax explained"}
	created := make([]*entity.Post, 0, len(titles))
	for _, title := range titles {
		p := &entity.Post{
			Title:    title,
			Text:     "A story about " + title,
			Category: entity.PostEducation,
			Author:   entity.Author{UserID: author.ID, Username: author.Email},
		}
		require.NoError(t, posts.Create(ctx, p))
		created = append(created, p)
	}

	page, total, err := posts.List(ctx, repository.PostQuery{Offset: 0, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, created[2].ID, page[0].ID)

	page, total, err = posts.List(ctx, repository.PostQuery{Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page, 1)

	page, total, err = posts.List(ctx, repository.PostQuery{Search: "trees", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, page, 1)
	assert.Equal(t, created[0].ID, page[0].ID)

	byIDs, err := posts.GetByIDs(ctx, []string{created[1].ID, "bogus", created[0].ID})
	require.NoError(t, err)
	require.Len(t, byIDs, 2)
	assert.Equal(t, created[1].ID, byIDs[0].ID)
	assert.Equal(t, created[0].ID, byIDs[1].ID)

	p := created[0]
	before := p.UpdatedAt
	p.Title = "Planting more trees"
	require.NoError(t, posts.Update(ctx, p))
	assert.False(t, p.UpdatedAt.Before(before))

	got, err := posts.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Planting more trees", got.Title)
	assert.Equal(t, author.Email, got.Author.Username)

	other := *p
	other.Author.UserID = uuid.NewString()
	assert.ErrorIs(t, posts.Update(ctx, &other), repository.ErrNotFound)
}
