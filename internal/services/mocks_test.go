package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yukikurage/join-board-api/internal/models"
	"github.com/yukikurage/join-board-api/internal/repository"
)

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

var _ repository.TaskRepository = (*MockTaskRepository)(nil)

func (m *MockTaskRepository) Create(ctx context.Context, task *models.Task, contactIDs []uint64) error {
	args := m.Called(ctx, task, contactIDs)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]models.Task, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *models.Task, changes repository.TaskChanges) error {
	args := m.Called(ctx, task, changes)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, id uint64, status models.TaskStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTaskRepository) ToggleSubtask(ctx context.Context, taskID, subtaskID uint64) error {
	args := m.Called(ctx, taskID, subtaskID)
	return args.Error(0)
}

// MockTokenCache is a mock implementation of cache.TokenCache.
type MockTokenCache struct {
	mock.Mock
}

func (m *MockTokenCache) StoreUserID(ctx context.Context, key string, userID uint64) error {
	args := m.Called(ctx, key, userID)
	return args.Error(0)
}

func (m *MockTokenCache) LookupUserID(ctx context.Context, key string) (uint64, bool) {
	args := m.Called(ctx, key)
	return args.Get(0).(uint64), args.Bool(1)
}

func (m *MockTokenCache) Forget(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
