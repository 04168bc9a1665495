package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
	"github.com/oksasatya/climate-action-backend/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

const postColumns = `id, title, body, category, author_id, author_username, cover_url, created_at, updated_at`

func scanPost(row pgx.Row) (*entity.Post, error) {
	p := &entity.Post{}
	err := row.Scan(&p.ID, &p.Title, &p.Text, &p.Category, &p.Author.UserID, &p.Author.Username,
		&p.CoverURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func collectPosts(rows pgx.Rows) ([]entity.Post, error) {
	defer rows.Close()
	posts := []entity.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (title, body, category, author_id, author_username, cover_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Text, p.Category, p.Author.UserID, p.Author.Username, p.CoverURL)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	if !validIDs(id) {
		return nil, repository.ErrNotFound
	}
	return scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
}

func (r *PostRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Post, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validIDs(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []entity.Post{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE id = ANY($1::uuid[])
		ORDER BY array_position($1::uuid[], id)
	`, valid)
	if err != nil {
		return nil, fmt.Errorf("get posts by ids: %w", err)
	}
	return collectPosts(rows)
}

func (r *PostRepository) List(ctx context.Context, q repository.PostQuery) ([]entity.Post, int64, error) {
	where := ""
	args := []any{}
	if s := strings.TrimSpace(q.Search); s != "" {
		where = `WHERE search_vector @@ websearch_to_tsquery('english', $1)`
		args = append(args, s)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}
	if total == 0 || int64(q.Offset) >= total {
		return []entity.Post{}, total, nil
	}

	n := len(args)
	args = append(args, q.Limit, q.Offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM posts
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, postColumns, where, n+1, n+2), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	posts, err := collectPosts(rows)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	if !validIDs(p.ID) {
		return repository.ErrNotFound
	}
	err := r.pool.QueryRow(ctx, `
		UPDATE posts
		SET title = $1, body = $2, category = $3, cover_url = $4, updated_at = now()
		WHERE id = $5 AND author_id = $6
		RETURNING updated_at
	`, p.Title, p.Text, p.Category, p.CoverURL, p.ID, p.Author.UserID).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
