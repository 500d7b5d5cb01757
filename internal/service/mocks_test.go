package service_test

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockTaskStore mocks the store.TaskStore interface
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *MockTaskStore) FindAll(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskStore) FindByID(ctx context.Context, id int64) (domain.Task, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Bool(1), args.Error(2)
}

func (m *MockTaskStore) Replace(
	ctx context.Context,
	id int64,
	task domain.Task,
) (domain.Task, bool, error) {
	args := m.Called(ctx, id, task)
	return args.Get(0).(domain.Task), args.Bool(1), args.Error(2)
}

func (m *MockTaskStore) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
