// Package tx lets the todo and user repositories join a transaction opened by the
// transaction manager, which is how the quota check and the insert of a new todo
// share one row lock.
package tx

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

type contextKey string

const txContextKey contextKey = "todobackend_tx"

// Queryer is what a repository needs to run its SQL, satisfied by both the pooled
// *sqlx.DB and an open *sqlx.Tx.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row
}

// WithTransaction returns ctx carrying tx. Only the transaction manager calls this.
func WithTransaction(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txContextKey, tx)
}

// TransactionFromContext reports the open transaction on ctx, if any. A nil *sqlx.Tx
// stored on the context counts as none.
func TransactionFromContext(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txContextKey).(*sqlx.Tx)
	return tx, ok && tx != nil
}

// GetQueryer picks where a repository query runs: inside the transaction on ctx
// (e.g. the FOR UPDATE user lookup during todo creation) or on the pool otherwise.
func GetQueryer(ctx context.Context, pool *sqlx.DB) Queryer {
	if tx, ok := TransactionFromContext(ctx); ok {
		return tx
	}
	return pool
}
