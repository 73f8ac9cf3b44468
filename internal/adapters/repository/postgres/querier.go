package postgres

import (
	"context"
	"database/sql"
)

// SQLQuerier is satisfied by both *sql.DB and *sql.Tx
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ SQLQuerier = (*sql.DB)(nil)
	_ SQLQuerier = (*sql.Tx)(nil)
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)
