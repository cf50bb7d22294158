package users

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"todobackend/core"
	"todobackend/db"
	"todobackend/models"
)

type UsersService struct {
	usersRepo db.UsersRepository
}

func NewUsersService(repo db.UsersRepository) *UsersService {
	return &UsersService{usersRepo: repo}
}

// GetOrCreateUser makes sure a users row exists for the identity provider's subject.
// The frontend calls it right after sign-in.
func (s *UsersService) GetOrCreateUser(ctx context.Context, userID string) (*models.User, error) {
	log.Printf("📋 Starting to get or create user: %s", userID)

	if userID == "" {
		return nil, fmt.Errorf("user_id cannot be empty: %w", core.ErrInvalidInput)
	}

	if err := s.usersRepo.CreateUserIfNotExists(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	maybeUser, err := s.usersRepo.GetUserByID(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user, ok := maybeUser.Get()
	if !ok {
		// only reachable if the row was deleted between the insert and the read
		return nil, fmt.Errorf("user %s disappeared after creation: %w", userID, core.ErrNotFound)
	}

	log.Printf("📋 Completed successfully - retrieved/created user with ID: %s", user.ID)
	return user, nil
}

func (s *UsersService) GetUserByID(ctx context.Context, userID string) (mo.Option[*models.User], error) {
	if userID == "" {
		return mo.None[*models.User](), fmt.Errorf("user_id cannot be empty: %w", core.ErrInvalidInput)
	}

	maybeUser, err := s.usersRepo.GetUserByID(ctx, userID, false)
	if err != nil {
		return mo.None[*models.User](), fmt.Errorf("failed to get user: %w", err)
	}

	return maybeUser, nil
}
