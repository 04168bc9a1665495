package repository

import (
	"context"

	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
)

// PostQuery selects a newest-first page of posts. An empty Search matches every post.
type PostQuery struct {
	Search string
	Offset int
	Limit  int
}

type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	// GetByIDs returns the posts that exist, in the order of ids.
	GetByIDs(ctx context.Context, ids []string) ([]entity.Post, error)
	List(ctx context.Context, q PostQuery) ([]entity.Post, int64, error)
	// Update persists title, text, category and cover of a post owned by p.Author.UserID
	// and refreshes p.UpdatedAt.
	Update(ctx context.Context, p *entity.Post) error
}

// PostSearchIndex is a full-text index kept next to the primary store.
type PostSearchIndex interface {
	Index(ctx context.Context, p *entity.Post) error
	// Search returns one page of matching post ids, newest first, and the total hit count.
	Search(ctx context.Context, query string, offset, limit int) ([]string, int64, error)
}

// PostCache is a read-through cache for single posts.
type PostCache interface {
	Get(ctx context.Context, id string) (*entity.Post, bool, error)
	Set(ctx context.Context, p *entity.Post) error
	Invalidate(ctx context.Context, id string) error
}
