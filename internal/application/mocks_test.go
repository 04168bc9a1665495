package application

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, body any) error {
	args := m.Called(ctx, body)
	return args.Error(0)
}

type MockIndex struct {
	mock.Mock
}

func (m *MockIndex) Index(ctx context.Context, p *entity.Post) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockIndex) Search(ctx context.Context, query string, offset, limit int) ([]string, int64, error) {
	args := m.Called(ctx, query, offset, limit)
	ids, _ := args.Get(0).([]string)
	return ids, args.Get(1).(int64), args.Error(2)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, id string) (*entity.Post, bool, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Post)
	return p, args.Bool(1), args.Error(2)
}

func (m *MockCache) Set(ctx context.Context, p *entity.Post) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCovers struct {
	mock.Mock
}

func (m *MockCovers) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, objectPath, contentType, r)
	return args.String(0), args.Error(1)
}
