package subscriptions

import (
	"context"

	"github.com/stretchr/testify/mock"

	"todobackend/models"
)

// MockSubscriptionsService is a mock implementation of the SubscriptionsService interface
type MockSubscriptionsService struct {
	mock.Mock
}

func (m *MockSubscriptionsService) ActivateSubscription(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockSubscriptionsService) GetSubscriptionStatus(
	ctx context.Context,
	userID string,
) (*models.SubscriptionStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionStatus), args.Error(1)
}

func (m *MockSubscriptionsService) ExpireSubscriptions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
