package db

import (
	"context"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"todobackend/models"
)

// MockUsersRepository is a mock implementation of the UsersRepository interface
type MockUsersRepository struct {
	mock.Mock
}

func (m *MockUsersRepository) GetUserByID(
	ctx context.Context,
	id string,
	forUpdate bool,
) (mo.Option[*models.User], error) {
	args := m.Called(ctx, id, forUpdate)
	return args.Get(0).(mo.Option[*models.User]), args.Error(1)
}

func (m *MockUsersRepository) CreateUserIfNotExists(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUsersRepository) ActivateSubscription(
	ctx context.Context,
	id string,
	subscriptionEnd time.Time,
) (mo.Option[*models.User], error) {
	args := m.Called(ctx, id, subscriptionEnd)
	return args.Get(0).(mo.Option[*models.User]), args.Error(1)
}

func (m *MockUsersRepository) ClearExpiredSubscription(ctx context.Context, id string, now time.Time) (bool, error) {
	args := m.Called(ctx, id, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsersRepository) ClearAllExpiredSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
