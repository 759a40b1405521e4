package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"queryforge/queryforge_go_query_compiler_service/models"
	"queryforge/queryforge_go_query_compiler_service/pkg/logger"
	"queryforge/queryforge_go_query_compiler_service/querybuilder"
	"queryforge/queryforge_go_query_compiler_service/storage"
)

type recordRepo struct {
	db       *tracedDB
	registry *models.Registry
	dialect  querybuilder.Dialect
	log      logger.LoggerI
}

func NewRecordRepo(db *pgxpool.Pool, registry *models.Registry, dialect querybuilder.Dialect, log logger.LoggerI) storage.RecordRepoI {
	return &recordRepo{
		db:       newTracedDB(db, log),
		registry: registry,
		dialect:  dialect,
		log:      log,
	}
}

func (r *recordRepo) GetList(ctx context.Context, entity string, opts models.QueryOptions) ([]map[string]any, error) {
	builder, err := r.builderFor(entity)
	if err != nil {
		return nil, err
	}

	qb, err := builder.Build(opts)
	if err != nil {
		return nil, err
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error while composing select query")
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

func (r *recordRepo) GetCount(ctx context.Context, entity string, opts models.QueryOptions) (int64, error) {
	builder, err := r.builderFor(entity)
	if err != nil {
		return 0, err
	}

	qb, err := builder.BuildCount(opts)
	if err != nil {
		return 0, err
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "error while composing count query")
	}

	var count int64
	err = r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *recordRepo) GetListAndCount(ctx context.Context, entity string, opts models.QueryOptions) ([]map[string]any, int64, error) {
	list, err := r.GetList(ctx, entity, opts)
	if err != nil {
		return nil, 0, err
	}

	count, err := r.GetCount(ctx, entity, opts)
	if err != nil {
		return nil, 0, err
	}

	return list, count, nil
}

func (r *recordRepo) builderFor(entity string) (*querybuilder.Builder, error) {
	meta, ok := r.registry.Get(entity)
	if !ok {
		return nil, errors.Errorf("entity %q is not registered", entity)
	}

	// A fresh builder per call keeps the alias cache request-scoped.
	return querybuilder.NewBuilder(meta, r.dialect, r.log), nil
}

func scanRows(rows pgx.Rows) ([]map[string]any, error) {
	fields := rows.FieldDescriptions()

	records := make([]map[string]any, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, errors.Wrap(err, "error while reading row values")
		}

		record := make(map[string]any, len(fields))
		for i, field := range fields {
			record[field.Name] = values[i]
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
