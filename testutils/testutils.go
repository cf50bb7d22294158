package testutils

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"todobackend/appctx"
	"todobackend/config"
	"todobackend/db"
	"todobackend/models"
)

// LoadTestConfig loads database configuration for integration tests
func LoadTestConfig() (*config.AppConfig, error) {
	// Try to load environment variables from various possible locations
	_ = godotenv.Load("../.env.test")    // From package directories
	_ = godotenv.Load("../../.env.test") // From nested packages
	_ = godotenv.Load(".env.test")       // From root directory

	databaseURL := os.Getenv("DB_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DB_URL is not set")
	}

	databaseSchema := os.Getenv("DB_SCHEMA")
	if databaseSchema == "" {
		databaseSchema = "todo_test"
	}

	return &config.AppConfig{
		DatabaseURL:    databaseURL,
		DatabaseSchema: databaseSchema,
	}, nil
}

// OpenTestDB connects to the integration database and migrates it, skipping the
// test when no database is configured. The connection is closed on cleanup.
func OpenTestDB(t *testing.T) (*sqlx.DB, *config.AppConfig) {
	t.Helper()

	cfg, err := LoadTestConfig()
	if err != nil {
		t.Skipf("⚠️ Skipping database test: %v", err)
	}

	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	require.NoError(t, err, "Failed to connect to test database")
	t.Cleanup(func() { _ = dbConn.Close() })

	require.NoError(t, db.RunMigrations(dbConn, cfg.DatabaseURL, cfg.DatabaseSchema), "Failed to migrate test database")
	return dbConn, cfg
}

// NewTestUserID returns a unique identity-provider style user id
func NewTestUserID() string {
	return "user_test_" + uuid.NewString()
}

// CreateTestUser creates a test user with a unique ID and removes it, with its todos,
// when the test finishes.
func CreateTestUser(t *testing.T, usersRepo *db.PostgresUsersRepository) *models.User {
	t.Helper()

	userID := NewTestUserID()
	require.NoError(t, usersRepo.CreateUserIfNotExists(context.Background(), userID), "Failed to create test user")
	t.Cleanup(func() {
		if err := usersRepo.DeleteUser(context.Background(), userID); err != nil {
			t.Logf("⚠️ Failed to cleanup test user %s: %v", userID, err)
		}
	})

	maybeUser, err := usersRepo.GetUserByID(context.Background(), userID, false)
	require.NoError(t, err)
	user, ok := maybeUser.Get()
	require.True(t, ok, "Created test user should exist")
	return user
}

// CreateTestContext creates a context carrying the given caller
func CreateTestContext(userID string) context.Context {
	return appctx.SetIdentity(context.Background(), &models.Identity{UserID: userID, Provider: "test"})
}
