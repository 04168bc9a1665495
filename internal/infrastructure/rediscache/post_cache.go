package rediscache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
	"github.com/oksasatya/climate-action-backend/internal/domain/repository"
	"github.com/oksasatya/climate-action-backend/pkg/helpers"
)

// PostCache stores single posts as JSON under post:<id>.
type PostCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewPostCache(rdb redis.Cmdable, ttl time.Duration) *PostCache {
	return &PostCache{rdb: rdb, ttl: ttl}
}

func postKey(id string) string {
	return "post:" + id
}

func (c *PostCache) Get(ctx context.Context, id string) (*entity.Post, bool, error) {
	var p entity.Post
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, postKey(id), &p)
	if err != nil || !ok {
		return nil, false, err
	}
	return &p, true, nil
}

func (c *PostCache) Set(ctx context.Context, p *entity.Post) error {
	return helpers.RedisSetJSON(ctx, c.rdb, postKey(p.ID), p, c.ttl)
}

func (c *PostCache) Invalidate(ctx context.Context, id string) error {
	return helpers.RedisDel(ctx, c.rdb, postKey(id))
}

var _ repository.PostCache = (*PostCache)(nil)
