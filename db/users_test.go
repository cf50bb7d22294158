package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todobackend/db"
	"todobackend/testutils"
)

func TestPostgresUsersRepository_CreateAndGet(t *testing.T) {
	dbConn, cfg := testutils.OpenTestDB(t)
	repo := db.NewPostgresUsersRepository(dbConn, cfg.DatabaseSchema)
	ctx := context.Background()

	user := testutils.CreateTestUser(t, repo)
	assert.False(t, user.IsSubscribed)
	assert.Nil(t, user.SubscriptionEnd)

	// creating again is a no-op
	require.NoError(t, repo.CreateUserIfNotExists(ctx, user.ID))

	maybeUser, err := repo.GetUserByID(ctx, user.ID, false)
	require.NoError(t, err)
	assert.True(t, maybeUser.IsPresent())
	assert.Equal(t, user.CreatedAt.Unix(), maybeUser.MustGet().CreatedAt.Unix())

	missing, err := repo.GetUserByID(ctx, testutils.NewTestUserID(), false)
	require.NoError(t, err)
	assert.False(t, missing.IsPresent())
}

func TestPostgresUsersRepository_SubscriptionLifecycle(t *testing.T) {
	dbConn, cfg := testutils.OpenTestDB(t)
	repo := db.NewPostgresUsersRepository(dbConn, cfg.DatabaseSchema)
	ctx := context.Background()

	user := testutils.CreateTestUser(t, repo)
	now := time.Now().UTC()

	t.Run("activate sets flag and end", func(t *testing.T) {
		end := now.AddDate(0, 1, 0)
		maybeUser, err := repo.ActivateSubscription(ctx, user.ID, end)
		require.NoError(t, err)
		updated := maybeUser.MustGet()
		assert.True(t, updated.IsSubscribed)
		require.NotNil(t, updated.SubscriptionEnd)
		assert.WithinDuration(t, end, *updated.SubscriptionEnd, time.Millisecond)
	})

	t.Run("clear is a no-op while window is open", func(t *testing.T) {
		cleared, err := repo.ClearExpiredSubscription(ctx, user.ID, now)
		require.NoError(t, err)
		assert.False(t, cleared)
	})

	t.Run("clear resets once window has elapsed", func(t *testing.T) {
		_, err := repo.ActivateSubscription(ctx, user.ID, now.Add(-time.Hour))
		require.NoError(t, err)

		cleared, err := repo.ClearExpiredSubscription(ctx, user.ID, now)
		require.NoError(t, err)
		assert.True(t, cleared)

		reloaded, err := repo.GetUserByID(ctx, user.ID, false)
		require.NoError(t, err)
		assert.False(t, reloaded.MustGet().IsSubscribed)
		assert.Nil(t, reloaded.MustGet().SubscriptionEnd)

		clearedAgain, err := repo.ClearExpiredSubscription(ctx, user.ID, now)
		require.NoError(t, err)
		assert.False(t, clearedAgain)
	})

	t.Run("bulk clear only touches elapsed windows", func(t *testing.T) {
		other := testutils.CreateTestUser(t, repo)
		_, err := repo.ActivateSubscription(ctx, user.ID, now.Add(-time.Minute))
		require.NoError(t, err)
		_, err = repo.ActivateSubscription(ctx, other.ID, now.Add(time.Hour))
		require.NoError(t, err)

		count, err := repo.ClearAllExpiredSubscriptions(ctx, now)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, count, int64(1))

		stillActive, err := repo.GetUserByID(ctx, other.ID, false)
		require.NoError(t, err)
		assert.True(t, stillActive.MustGet().IsSubscribed)
	})

	t.Run("activate unknown user returns none", func(t *testing.T) {
		maybeUser, err := repo.ActivateSubscription(ctx, testutils.NewTestUserID(), now)
		require.NoError(t, err)
		assert.False(t, maybeUser.IsPresent())
	})
}
