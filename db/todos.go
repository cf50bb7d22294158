package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/mo"

	"todobackend/core"
	dbtx "todobackend/db/tx"
	"todobackend/models"
)

// foreignKeyViolation is the Postgres SQLSTATE raised when todos.user_id has no user row
const foreignKeyViolation = "23503"

type PostgresTodosRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for todos table
var todosColumns = []string{
	"id",
	"title",
	"user_id",
	"created_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func NewPostgresTodosRepository(db *sqlx.DB, schema string) *PostgresTodosRepository {
	return &PostgresTodosRepository{db: db, schema: pq.QuoteIdentifier(schema)}
}

func (r *PostgresTodosRepository) CreateTodo(ctx context.Context, userID, title string) (*models.Todo, error) {
	db := dbtx.GetQueryer(ctx, r.db)

	todoID := core.NewID(models.TodoIDPrefix)
	returningStr := strings.Join(todosColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.todos (id, title, user_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING %s`, r.schema, returningStr)

	todo := &models.Todo{}
	if err := db.QueryRowxContext(ctx, query, todoID, title, userID).StructScan(todo); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return nil, fmt.Errorf("user %s: %w", userID, core.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

func (r *PostgresTodosRepository) GetTodoByID(ctx context.Context, id string) (mo.Option[*models.Todo], error) {
	db := dbtx.GetQueryer(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.todos
		WHERE id = $1`, strings.Join(todosColumns, ", "), r.schema)

	todo := &models.Todo{}
	if err := db.GetContext(ctx, todo, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.Todo](), nil
		}
		return mo.None[*models.Todo](), fmt.Errorf("failed to get todo by id: %w", err)
	}

	return mo.Some(todo), nil
}

// ListTodosByUserID returns one page of the user's todos whose title contains search,
// case-insensitively, newest first.
func (r *PostgresTodosRepository) ListTodosByUserID(
	ctx context.Context,
	userID, search string,
	limit, offset int,
) ([]*models.Todo, error) {
	db := dbtx.GetQueryer(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.todos
		WHERE user_id = $1 AND title ILIKE $2 ESCAPE '\'
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`, strings.Join(todosColumns, ", "), r.schema)

	todos := []*models.Todo{}
	if err := db.SelectContext(ctx, &todos, query, userID, containsPattern(search), limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	return todos, nil
}

// CountTodosByUserID counts the user's todos matching search with the same filter
// ListTodosByUserID applies. An empty search counts all of the user's todos.
func (r *PostgresTodosRepository) CountTodosByUserID(ctx context.Context, userID, search string) (int, error) {
	db := dbtx.GetQueryer(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s.todos
		WHERE user_id = $1 AND title ILIKE $2 ESCAPE '\'`, r.schema)

	var count int
	if err := db.GetContext(ctx, &count, query, userID, containsPattern(search)); err != nil {
		return 0, fmt.Errorf("failed to count todos: %w", err)
	}

	return count, nil
}

// DeleteTodoByID deletes the todo only if it belongs to userID. It reports whether a
// row was removed.
func (r *PostgresTodosRepository) DeleteTodoByID(ctx context.Context, id, userID string) (bool, error) {
	db := dbtx.GetQueryer(ctx, r.db)

	query := fmt.Sprintf(`DELETE FROM %s.todos WHERE id = $1 AND user_id = $2`, r.schema)

	result, err := db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}
