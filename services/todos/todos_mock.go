package todos

import (
	"context"

	"github.com/stretchr/testify/mock"

	"todobackend/models"
)

// MockTodosService is a mock implementation of the TodosService interface
type MockTodosService struct {
	mock.Mock
}

func (m *MockTodosService) ListTodos(ctx context.Context, userID string, page int, search string) (*models.TodoPage, error) {
	args := m.Called(ctx, userID, page, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TodoPage), args.Error(1)
}

func (m *MockTodosService) CreateTodo(ctx context.Context, userID, title string) (*models.Todo, error) {
	args := m.Called(ctx, userID, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Todo), args.Error(1)
}

func (m *MockTodosService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	args := m.Called(ctx, userID, todoID)
	return args.Error(0)
}
