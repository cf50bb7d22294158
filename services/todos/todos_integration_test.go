package todos_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todobackend/core"
	"todobackend/db"
	"todobackend/models"
	"todobackend/services/todos"
	"todobackend/services/txmanager"
	"todobackend/testutils"
)

func TestTodosService_ConcurrentCreatesRespectQuota(t *testing.T) {
	dbConn, cfg := testutils.OpenTestDB(t)

	usersRepo := db.NewPostgresUsersRepository(dbConn, cfg.DatabaseSchema)
	todosRepo := db.NewPostgresTodosRepository(dbConn, cfg.DatabaseSchema)
	service := todos.NewTodosService(todosRepo, usersRepo, txmanager.NewTransactionManager(dbConn), nil)
	user := testutils.CreateTestUser(t, usersRepo)

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		rejected  int
		otherErrs []error
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.CreateTodo(context.Background(), user.ID, "concurrent todo")

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, core.ErrQuotaExceeded):
				rejected++
			default:
				otherErrs = append(otherErrs, err)
			}
		}()
	}
	wg.Wait()

	require.Empty(t, otherErrs)
	assert.Equal(t, models.FreeTodoLimit, created)
	assert.Equal(t, attempts-models.FreeTodoLimit, rejected)

	count, err := todosRepo.CountTodosByUserID(context.Background(), user.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.FreeTodoLimit, count)
}

func TestTodosService_ListAndDelete(t *testing.T) {
	dbConn, cfg := testutils.OpenTestDB(t)

	usersRepo := db.NewPostgresUsersRepository(dbConn, cfg.DatabaseSchema)
	todosRepo := db.NewPostgresTodosRepository(dbConn, cfg.DatabaseSchema)
	service := todos.NewTodosService(todosRepo, usersRepo, txmanager.NewTransactionManager(dbConn), nil)
	owner := testutils.CreateTestUser(t, usersRepo)
	other := testutils.CreateTestUser(t, usersRepo)
	ctx := context.Background()

	first, err := service.CreateTodo(ctx, owner.ID, "Buy milk")
	require.NoError(t, err)
	second, err := service.CreateTodo(ctx, owner.ID, "Walk dog")
	require.NoError(t, err)

	page, err := service.ListTodos(ctx, owner.ID, 1, "")
	require.NoError(t, err)
	require.Len(t, page.Todos, 2)
	assert.Equal(t, second.ID, page.Todos[0].ID)
	assert.Equal(t, 1, page.TotalPages)

	again, err := service.ListTodos(ctx, owner.ID, 1, "")
	require.NoError(t, err)
	assert.Equal(t, page, again)

	err = service.DeleteTodo(ctx, other.ID, first.ID)
	assert.True(t, errors.Is(err, core.ErrForbidden))

	require.NoError(t, service.DeleteTodo(ctx, owner.ID, first.ID))
	err = service.DeleteTodo(ctx, owner.ID, first.ID)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}
