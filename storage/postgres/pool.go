package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"queryforge/queryforge_go_query_compiler_service/pkg/logger"
)

// tracedDB wraps the pgx pool so every statement is visible at debug
// level together with its execution time.
type tracedDB struct {
	db  *pgxpool.Pool
	log logger.LoggerI
}

func newTracedDB(db *pgxpool.Pool, log logger.LoggerI) *tracedDB {
	return &tracedDB{db: db, log: log}
}

func (t *tracedDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	started := time.Now()
	rows, err := t.db.Query(ctx, sql, args...)

	t.log.Debug("pgx.Query",
		logger.String("sql", sql),
		logger.Any("args", args),
		logger.String("took", time.Since(started).String()))

	return rows, err
}

func (t *tracedDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	started := time.Now()
	row := t.db.QueryRow(ctx, sql, args...)

	t.log.Debug("pgx.QueryRow",
		logger.String("sql", sql),
		logger.Any("args", args),
		logger.String("took", time.Since(started).String()))

	return row
}
