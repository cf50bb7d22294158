package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/mo"

	dbtx "todobackend/db/tx"
	"todobackend/models"
)

type PostgresUsersRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for users table
var usersColumns = []string{
	"id",
	"is_subscribed",
	"subscription_end",
	"created_at",
	"updated_at",
}

func NewPostgresUsersRepository(db *sqlx.DB, schema string) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db, schema: pq.QuoteIdentifier(schema)}
}

func (r *PostgresUsersRepository) GetUserByID(
	ctx context.Context,
	id string,
	forUpdate bool,
) (mo.Option[*models.User], error) {
	db := dbtx.GetQueryer(ctx, r.db)

	columnsStr := strings.Join(usersColumns, ", ")
	forUpdateClause := ""
	if forUpdate {
		forUpdateClause = " FOR UPDATE"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.users
		WHERE id = $1%s`,
		columnsStr, r.schema, forUpdateClause)

	user := &models.User{}
	if err := db.GetContext(ctx, user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.User](), nil
		}
		return mo.None[*models.User](), fmt.Errorf("failed to get user by id: %w", err)
	}

	return mo.Some(user), nil
}

// CreateUserIfNotExists inserts a user row keyed by the identity provider's subject.
// Calling it for an existing user is a no-op.
func (r *PostgresUsersRepository) CreateUserIfNotExists(ctx context.Context, id string) error {
	db := dbtx.GetQueryer(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO %s.users (id, is_subscribed, subscription_end, created_at, updated_at)
		VALUES ($1, FALSE, NULL, NOW(), NOW())
		ON CONFLICT (id) DO NOTHING`, r.schema)

	if _, err := db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *PostgresUsersRepository) ActivateSubscription(
	ctx context.Context,
	id string,
	subscriptionEnd time.Time,
) (mo.Option[*models.User], error) {
	db := dbtx.GetQueryer(ctx, r.db)

	returningStr := strings.Join(usersColumns, ", ")
	query := fmt.Sprintf(`
		UPDATE %s.users
		SET is_subscribed = TRUE, subscription_end = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, r.schema, returningStr)

	user := &models.User{}
	if err := db.QueryRowxContext(ctx, query, id, subscriptionEnd).StructScan(user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.User](), nil
		}
		return mo.None[*models.User](), fmt.Errorf("failed to activate subscription: %w", err)
	}

	return mo.Some(user), nil
}

// ClearExpiredSubscription resets the subscription of a single user, but only if its
// window has elapsed at now. Concurrent callers converge on the same cleared state.
func (r *PostgresUsersRepository) ClearExpiredSubscription(
	ctx context.Context,
	id string,
	now time.Time,
) (bool, error) {
	db := dbtx.GetQueryer(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s.users
		SET is_subscribed = FALSE, subscription_end = NULL, updated_at = NOW()
		WHERE id = $1 AND subscription_end IS NOT NULL AND subscription_end < $2`, r.schema)

	result, err := db.ExecContext(ctx, query, id, now)
	if err != nil {
		return false, fmt.Errorf("failed to clear expired subscription: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *PostgresUsersRepository) ClearAllExpiredSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	db := dbtx.GetQueryer(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s.users
		SET is_subscribed = FALSE, subscription_end = NULL, updated_at = NOW()
		WHERE subscription_end IS NOT NULL AND subscription_end < $1`, r.schema)

	result, err := db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired subscriptions: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// DeleteUser removes a user and, through the foreign key, all of their todos
func (r *PostgresUsersRepository) DeleteUser(ctx context.Context, id string) error {
	db := dbtx.GetQueryer(ctx, r.db)

	query := fmt.Sprintf(`DELETE FROM %s.users WHERE id = $1`, r.schema)
	if _, err := db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
