// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx,
// and a decorator that logs every statement it forwards.
package dbx

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/expensekeeper/internal/logging"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// LoggedDB forwards to an underlying DBTX and records the query text and
// duration of each call. Failures are logged at error level, successes at
// debug level. Argument values are never logged.
type LoggedDB struct {
	db     DBTX
	logger logging.Logger
}

// NewLoggedDB wraps db so that every statement is logged through logger.
func NewLoggedDB(db DBTX, logger logging.Logger) *LoggedDB {
	return &LoggedDB{db: db, logger: logger.With("module", "dbx")}
}

func (l *LoggedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := l.db.ExecContext(ctx, query, args...)
	if err != nil {
		l.failed(ctx, query, start, err)
		return nil, err
	}

	var rows int64 = -1
	if n, rerr := res.RowsAffected(); rerr == nil {
		rows = n
	}
	l.logger.Debug(ctx, "Executed query", "query", query, "duration", time.Since(start), "rows", rows)
	return res, nil
}

func (l *LoggedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.failed(ctx, query, start, err)
		return nil, err
	}
	l.logger.Debug(ctx, "Executed query", "query", query, "duration", time.Since(start))
	return rows, nil
}

// QueryRowContext logs a failed statement through Row.Err; the same error
// still surfaces from Scan. sql.ErrNoRows only appears at Scan time and is
// never logged as a failure.
func (l *LoggedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := l.db.QueryRowContext(ctx, query, args...)
	if err := row.Err(); err != nil {
		l.failed(ctx, query, start, err)
		return row
	}
	l.logger.Debug(ctx, "Executed query", "query", query, "duration", time.Since(start))
	return row
}

func (l *LoggedDB) failed(ctx context.Context, query string, start time.Time, err error) {
	l.logger.Error(ctx, "Database error", "query", query, "duration", time.Since(start), "error", err)
}
