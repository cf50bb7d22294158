package services

import (
	"context"

	"github.com/samber/mo"

	"todobackend/models"
)

// UsersService defines the interface for user-related operations
type UsersService interface {
	GetOrCreateUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (mo.Option[*models.User], error)
}

// TodosService defines the interface for todo-related operations.
// Every method is scoped to the calling user.
type TodosService interface {
	ListTodos(ctx context.Context, userID string, page int, search string) (*models.TodoPage, error)
	CreateTodo(ctx context.Context, userID, title string) (*models.Todo, error)
	DeleteTodo(ctx context.Context, userID, todoID string) error
}

// SubscriptionsService defines the interface for subscription operations
type SubscriptionsService interface {
	ActivateSubscription(ctx context.Context, userID string) (*models.User, error)
	GetSubscriptionStatus(ctx context.Context, userID string) (*models.SubscriptionStatus, error)
	ExpireSubscriptions(ctx context.Context) (int64, error)
}

// TransactionManager runs work inside a database transaction carried by the context
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	BeginTransaction(ctx context.Context) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
}
