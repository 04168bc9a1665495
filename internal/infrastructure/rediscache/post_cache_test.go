package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
)

func newTestCache(t *testing.T) (*PostCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewPostCache(rdb, time.Minute), mr
}

func TestPostCache_RoundTrip(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)

	p := &entity.Post{ID: "p1", Title: "Trees", Category: entity.PostEducation, Author: entity.Author{UserID: "u1", Username: "a@x.com"}}
	require.NoError(t, cache.Set(ctx, p))
	assert.True(t, mr.Exists("post:p1"))
	assert.Equal(t, time.Minute, mr.TTL("post:p1"))

	got, ok, err := cache.Get(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Trees", got.Title)
	assert.Equal(t, "a@x.com", got.Author.Username)

	require.NoError(t, cache.Invalidate(ctx, "p1"))
	_, ok, err = cache.Get(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostCache_Expiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, &entity.Post{ID: "p2"}))
	mr.FastForward(2 * time.Minute)
	_, ok, err := cache.Get(ctx, "p2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostCache_CorruptEntry(t *testing.T) {
	cache, mr := newTestCache(t)
	require.NoError(t, mr.Set("post:p3", "{not json"))
	_, ok, err := cache.Get(context.Background(), "p3")
	assert.Error(t, err)
	assert.False(t, ok)
}
