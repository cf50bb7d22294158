package identity

import (
	"context"

	"github.com/stretchr/testify/mock"

	"todobackend/models"
)

// MockProvider is a mock implementation of the Provider interface
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Identity), args.Error(1)
}

func (m *MockProvider) ResolveRole(ctx context.Context, identity *models.Identity) (models.Role, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(models.Role), args.Error(1)
}
