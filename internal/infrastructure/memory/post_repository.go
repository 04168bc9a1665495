package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
	"github.com/oksasatya/climate-action-backend/internal/domain/repository"
)

type postRow struct {
	post entity.Post
	seq  int64
}

type PostRepository struct {
	s *Store
}

func NewPostRepository(s *Store) *PostRepository {
	return &PostRepository{s: s}
}

func (r *PostRepository) Create(_ context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var seq int64
	p.ID, seq = r.s.nextID()
	p.CreatedAt = r.s.now()
	p.UpdatedAt = p.CreatedAt
	r.s.posts[p.ID] = &postRow{post: *p, seq: seq}
	return nil
}

func (r *PostRepository) GetByID(_ context.Context, id string) (*entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := row.post
	return &p, nil
}

func (r *PostRepository) GetByIDs(_ context.Context, ids []string) ([]entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	posts := make([]entity.Post, 0, len(ids))
	for _, id := range ids {
		if row, ok := r.s.posts[id]; ok {
			posts = append(posts, row.post)
		}
	}
	return posts, nil
}

// matches reports whether every search term occurs in the title or text, ignoring case.
func matches(p *entity.Post, terms []string) bool {
	haystack := strings.ToLower(p.Title + " " + p.Text)
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

func (r *PostRepository) List(_ context.Context, q repository.PostQuery) ([]entity.Post, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	terms := strings.Fields(strings.ToLower(q.Search))
	rows := make([]*postRow, 0, len(r.s.posts))
	for _, row := range r.s.posts {
		if matches(&row.post, terms) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	total := int64(len(rows))
	posts := []entity.Post{}
	if q.Offset >= len(rows) {
		return posts, total, nil
	}
	end := len(rows)
	if q.Limit > 0 && q.Limit < end-q.Offset {
		end = q.Offset + q.Limit
	}
	for _, row := range rows[q.Offset:end] {
		posts = append(posts, row.post)
	}
	return posts, total, nil
}

func (r *PostRepository) Update(_ context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.posts[p.ID]
	if !ok || row.post.Author.UserID != p.Author.UserID {
		return repository.ErrNotFound
	}
	row.post.Title = p.Title
	row.post.Text = p.Text
	row.post.Category = p.Category
	row.post.CoverURL = p.CoverURL
	row.post.UpdatedAt = r.s.now()
	p.UpdatedAt = row.post.UpdatedAt
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
