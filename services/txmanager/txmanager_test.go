package txmanager_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todobackend/db"
	dbtx "todobackend/db/tx"
	"todobackend/services/txmanager"
	"todobackend/testutils"
)

func TestTransactionManager_WithTransaction(t *testing.T) {
	dbConn, cfg := testutils.OpenTestDB(t)
	usersRepo := db.NewPostgresUsersRepository(dbConn, cfg.DatabaseSchema)
	todosRepo := db.NewPostgresTodosRepository(dbConn, cfg.DatabaseSchema)
	txManager := txmanager.NewTransactionManager(dbConn)
	ctx := context.Background()

	user := testutils.CreateTestUser(t, usersRepo)

	t.Run("commit persists work", func(t *testing.T) {
		err := txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			_, err := todosRepo.CreateTodo(txCtx, user.ID, "committed")
			return err
		})
		require.NoError(t, err)

		count, err := todosRepo.CountTodosByUserID(ctx, user.ID, "committed")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("error rolls back work", func(t *testing.T) {
		boom := errors.New("boom")
		err := txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			if _, err := todosRepo.CreateTodo(txCtx, user.ID, "rolled back"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		count, err := todosRepo.CountTodosByUserID(ctx, user.ID, "rolled back")
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("nested call joins outer transaction", func(t *testing.T) {
		err := txManager.WithTransaction(ctx, func(outer context.Context) error {
			outerTx, _ := dbtx.TransactionFromContext(outer)
			return txManager.WithTransaction(outer, func(inner context.Context) error {
				innerTx, ok := dbtx.TransactionFromContext(inner)
				assert.True(t, ok)
				assert.Same(t, outerTx, innerTx)
				return nil
			})
		})
		require.NoError(t, err)
	})

	t.Run("panic rolls back and re-panics", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = txManager.WithTransaction(ctx, func(txCtx context.Context) error {
				_, _ = todosRepo.CreateTodo(txCtx, user.ID, "panicked")
				panic("unexpected")
			})
		})

		count, err := todosRepo.CountTodosByUserID(ctx, user.ID, "panicked")
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestTransactionManager_CommitWithoutTransaction(t *testing.T) {
	txManager := txmanager.NewTransactionManager(nil)

	assert.Error(t, txManager.CommitTransaction(context.Background()))
	assert.Error(t, txManager.RollbackTransaction(context.Background()))
}
