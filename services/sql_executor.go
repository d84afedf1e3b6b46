package services

import (
	"context"
	"database/sql"
)

// SQLExecutor is the subset of *sql.DB the content services need. Every
// write is a single statement, so transactions are not part of it.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewSQLExecutor wraps a database handle for the service layer.
func NewSQLExecutor(db *sql.DB) SQLExecutor {
	return db
}
