package db

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"todobackend/models"
)

// MockTodosRepository is a mock implementation of the TodosRepository interface
type MockTodosRepository struct {
	mock.Mock
}

func (m *MockTodosRepository) CreateTodo(ctx context.Context, userID, title string) (*models.Todo, error) {
	args := m.Called(ctx, userID, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Todo), args.Error(1)
}

func (m *MockTodosRepository) GetTodoByID(ctx context.Context, id string) (mo.Option[*models.Todo], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.Todo]), args.Error(1)
}

func (m *MockTodosRepository) ListTodosByUserID(
	ctx context.Context,
	userID, search string,
	limit, offset int,
) ([]*models.Todo, error) {
	args := m.Called(ctx, userID, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Todo), args.Error(1)
}

func (m *MockTodosRepository) CountTodosByUserID(ctx context.Context, userID, search string) (int, error) {
	args := m.Called(ctx, userID, search)
	return args.Int(0), args.Error(1)
}

func (m *MockTodosRepository) DeleteTodoByID(ctx context.Context, id, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}
