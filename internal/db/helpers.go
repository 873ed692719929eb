package db

import (
	"context"
	"database/sql"
)

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// NullIfEmpty stores optional strings as NULL.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// NullFloat stores an optional number as NULL.
func NullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

// HasTable reports whether table exists in the current schema. Any error,
// including a bad connection, reads as "no".
func HasTable(ctx context.Context, q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// EnsureTable runs ddl unless table already exists.
func EnsureTable[Q interface {
	QueryRower
	Execer
}](ctx context.Context, q Q, table, ddl string) error {
	if HasTable(ctx, q, table) {
		return nil
	}
	_, err := q.ExecContext(ctx, ddl)
	return err
}
