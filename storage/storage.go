package storage

import (
	"context"

	"queryforge/queryforge_go_query_compiler_service/models"
)

type StorageI interface {
	CloseDB()
	Record() RecordRepoI
}

// RecordRepoI executes compiled queries against the registered entities.
// Rows come back as plain column -> value maps keyed by the projected
// alias_column names.
type RecordRepoI interface {
	GetList(ctx context.Context, entity string, opts models.QueryOptions) ([]map[string]any, error)
	GetCount(ctx context.Context, entity string, opts models.QueryOptions) (int64, error)
	GetListAndCount(ctx context.Context, entity string, opts models.QueryOptions) ([]map[string]any, int64, error)
}
