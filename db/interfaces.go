package db

import (
	"context"
	"time"

	"github.com/samber/mo"

	"todobackend/models"
)

// UsersRepository is the persistence contract for users, implemented by
// PostgresUsersRepository and mocked in service tests.
type UsersRepository interface {
	GetUserByID(ctx context.Context, id string, forUpdate bool) (mo.Option[*models.User], error)
	CreateUserIfNotExists(ctx context.Context, id string) error
	ActivateSubscription(ctx context.Context, id string, subscriptionEnd time.Time) (mo.Option[*models.User], error)
	ClearExpiredSubscription(ctx context.Context, id string, now time.Time) (bool, error)
	ClearAllExpiredSubscriptions(ctx context.Context, now time.Time) (int64, error)
}

// TodosRepository is the persistence contract for todos
type TodosRepository interface {
	CreateTodo(ctx context.Context, userID, title string) (*models.Todo, error)
	GetTodoByID(ctx context.Context, id string) (mo.Option[*models.Todo], error)
	ListTodosByUserID(ctx context.Context, userID, search string, limit, offset int) ([]*models.Todo, error)
	CountTodosByUserID(ctx context.Context, userID, search string) (int, error)
	DeleteTodoByID(ctx context.Context, id, userID string) (bool, error)
}
