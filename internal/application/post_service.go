package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
	repo "github.com/oksasatya/climate-action-backend/internal/domain/repository"
)

const (
	DefaultPageLimit = 10
	reindexBatch     = 200
)

// CoverStore keeps uploaded cover images and returns their public URL.
type CoverStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// PostService owns story CRUD. Index, Cache, Covers and Notifier are optional.
type PostService struct {
	Posts    repo.PostRepository
	Index    repo.PostSearchIndex
	Cache    repo.PostCache
	Covers   CoverStore
	Notifier *Notifier
	Logger   *logrus.Logger

	// missedWrites counts post writes the index did not receive since the last full
	// Reindex. Searches skip the index while it is non-zero.
	missedWrites atomic.Int64
}

func NewPostService(posts repo.PostRepository, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Logger: logger}
}

type PostInput struct {
	Title    string
	Text     string
	Category entity.PostCategory
}

// PostPatch carries only the fields present in a partial update.
type PostPatch struct {
	Title    *string
	Text     *string
	Category *entity.PostCategory
}

type ListParams struct {
	Search string
	Page   int
	Limit  int
}

type PostPage struct {
	Posts []entity.Post
	Total int64
	Page  int
	Limit int
	Pages int
}

// NormalizePage raises page to at least 1 and replaces a non-positive limit with
// DefaultPageLimit. Larger limits are kept as requested.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	return page, limit
}

// pageOffset saturates instead of overflowing for huge page numbers.
func pageOffset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

func pageCount(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total-1)/int64(limit)) + 1
}

func (s *PostService) Create(ctx context.Context, author entity.Author, in PostInput) (*entity.Post, error) {
	p := &entity.Post{
		Title:    strings.TrimSpace(in.Title),
		Text:     strings.TrimSpace(in.Text),
		Category: in.Category,
		Author:   author,
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.index(ctx, p)
	postsCreated.Add(1)
	s.Notifier.StoryPublished(ctx, p)
	return p, nil
}

// List returns one newest-first page. Searches go to the index when one is configured and
// in step with the store, and fall back to the primary store otherwise.
func (s *PostService) List(ctx context.Context, params ListParams) (*PostPage, error) {
	page, limit := NormalizePage(params.Page, params.Limit)
	offset := pageOffset(page, limit)
	search := strings.TrimSpace(params.Search)

	var (
		posts []entity.Post
		total int64
		err   error
	)
	if search != "" && s.Index != nil && s.missedWrites.Load() == 0 {
		posts, total, err = s.searchIndex(ctx, search, offset, limit)
		if err != nil {
			s.warn(err, "post index search failed, falling back to store", logrus.Fields{"search": search})
		}
	}
	if posts == nil {
		posts, total, err = s.Posts.List(ctx, repo.PostQuery{Search: search, Offset: offset, Limit: limit})
		if err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
	}
	return &PostPage{Posts: posts, Total: total, Page: page, Limit: limit, Pages: pageCount(total, limit)}, nil
}

func (s *PostService) searchIndex(ctx context.Context, search string, offset, limit int) ([]entity.Post, int64, error) {
	ids, total, err := s.Index.Search(ctx, search, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	posts, err := s.Posts.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Get reads through the cache.
func (s *PostService) Get(ctx context.Context, id string) (*entity.Post, error) {
	if !validPostID(id) {
		return nil, ErrInvalidPostID
	}
	if s.Cache != nil {
		p, ok, err := s.Cache.Get(ctx, id)
		if err != nil {
			s.warn(err, "post cache read failed", logrus.Fields{"post_id": id})
		}
		if ok {
			return p, nil
		}
	}
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, p); err != nil {
			s.warn(err, "post cache write failed", logrus.Fields{"post_id": id})
		}
	}
	return p, nil
}

// GetForEdit loads a post bypassing the cache and checks that userID wrote it.
func (s *PostService) GetForEdit(ctx context.Context, id, userID string) (*entity.Post, error) {
	if !validPostID(id) {
		return nil, ErrInvalidPostID
	}
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsAuthoredBy(userID) {
		return nil, ErrNotAuthor
	}
	return p, nil
}

// Replace overwrites title, text and category of a post returned by GetForEdit.
func (s *PostService) Replace(ctx context.Context, p *entity.Post, in PostInput) (*entity.Post, error) {
	p.Title = strings.TrimSpace(in.Title)
	p.Text = strings.TrimSpace(in.Text)
	p.Category = in.Category
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Patch applies the present fields of a partial update to a post returned by GetForEdit.
func (s *PostService) Patch(ctx context.Context, p *entity.Post, in PostPatch) (*entity.Post, error) {
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Text != nil {
		p.Text = strings.TrimSpace(*in.Text)
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UploadCover stores the image under covers/<postId>/ and records its URL on the post.
func (s *PostService) UploadCover(ctx context.Context, p *entity.Post, r io.Reader, filename, contentType string) (*entity.Post, error) {
	if s.Covers == nil {
		return nil, ErrStorageUnavailable
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := path.Join("covers", p.ID, uuid.NewString()+ext)
	url, err := s.Covers.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("upload cover: %w", err)
	}
	p.CoverURL = url
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) load(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

func (s *PostService) save(ctx context.Context, p *entity.Post) error {
	if err := s.Posts.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("update post: %w", err)
	}
	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, p.ID); err != nil {
			s.warn(err, "post cache invalidate failed", logrus.Fields{"post_id": p.ID})
		}
	}
	s.index(ctx, p)
	return nil
}

func (s *PostService) index(ctx context.Context, p *entity.Post) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, p); err != nil {
		s.missedWrites.Add(1)
		s.warn(err, "post index failed, searching the primary store until the next reindex", logrus.Fields{"post_id": p.ID})
	}
}

// MarkIndexStale keeps searches on the primary store until the next successful Reindex.
func (s *PostService) MarkIndexStale() {
	s.missedWrites.Add(1)
}

// Reindex copies every stored post into the index. Searches use the index again only if no
// write was missed while it ran.
func (s *PostService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	missed := s.missedWrites.Load()
	n := 0
	for offset := 0; ; offset += reindexBatch {
		posts, _, err := s.Posts.List(ctx, repo.PostQuery{Offset: offset, Limit: reindexBatch})
		if err != nil {
			return n, fmt.Errorf("list posts: %w", err)
		}
		for i := range posts {
			if err := s.Index.Index(ctx, &posts[i]); err != nil {
				return n, fmt.Errorf("index post %s: %w", posts[i].ID, err)
			}
			n++
		}
		if len(posts) < reindexBatch {
			break
		}
	}
	s.missedWrites.CompareAndSwap(missed, 0)
	return n, nil
}

func (s *PostService) warn(err error, msg string, fields logrus.Fields) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithFields(fields).Warn(msg)
	}
}

func validPostID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
