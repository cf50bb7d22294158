package users

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"todobackend/core"
	"todobackend/db"
	"todobackend/models"
)

func TestUsersService_GetOrCreateUser(t *testing.T) {
	existing := &models.User{ID: "user_2abc"}

	tests := []struct {
		name          string
		userID        string
		mockSetup     func(*db.MockUsersRepository)
		expectedUser  *models.User
		expectedError error
	}{
		{
			name:   "creates then returns user",
			userID: "user_2abc",
			mockSetup: func(m *db.MockUsersRepository) {
				m.On("CreateUserIfNotExists", mock.Anything, "user_2abc").Return(nil)
				m.On("GetUserByID", mock.Anything, "user_2abc", false).Return(mo.Some(existing), nil)
			},
			expectedUser: existing,
		},
		{
			name:          "rejects empty id",
			userID:        "",
			mockSetup:     func(m *db.MockUsersRepository) {},
			expectedError: core.ErrInvalidInput,
		},
		{
			name:   "row vanished after insert",
			userID: "user_2abc",
			mockSetup: func(m *db.MockUsersRepository) {
				m.On("CreateUserIfNotExists", mock.Anything, "user_2abc").Return(nil)
				m.On("GetUserByID", mock.Anything, "user_2abc", false).Return(mo.None[*models.User](), nil)
			},
			expectedError: core.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &db.MockUsersRepository{}
			tt.mockSetup(repo)
			service := NewUsersService(repo)

			user, err := service.GetOrCreateUser(context.Background(), tt.userID)
			if tt.expectedError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError))
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedUser, user)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestUsersService_GetOrCreateUser_RepositoryError(t *testing.T) {
	repo := &db.MockUsersRepository{}
	repo.On("CreateUserIfNotExists", mock.Anything, "user_2abc").Return(errors.New("connection refused"))
	service := NewUsersService(repo)

	_, err := service.GetOrCreateUser(context.Background(), "user_2abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	repo.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestUsersService_GetUserByID(t *testing.T) {
	repo := &db.MockUsersRepository{}
	repo.On("GetUserByID", mock.Anything, "user_missing", false).Return(mo.None[*models.User](), nil)
	service := NewUsersService(repo)

	maybeUser, err := service.GetUserByID(context.Background(), "user_missing")
	require.NoError(t, err)
	assert.False(t, maybeUser.IsPresent())
}
