package repository

import (
	"context"
	"database/sql"
)

// DBTX is the subset of sqlx operations the repositories need. Both *sqlx.DB
// and *sqlx.Tx satisfy it, so repository methods run unchanged inside a
// transaction started by the TransactionManagerAdapter.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}
