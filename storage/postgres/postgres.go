package postgres

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	"queryforge/queryforge_go_query_compiler_service/config"
	"queryforge/queryforge_go_query_compiler_service/models"
	"queryforge/queryforge_go_query_compiler_service/pkg/logger"
	"queryforge/queryforge_go_query_compiler_service/querybuilder"
	"queryforge/queryforge_go_query_compiler_service/storage"
)

type Store struct {
	db       *pgxpool.Pool
	registry *models.Registry
	dialect  querybuilder.Dialect
	log      logger.LoggerI
	record   storage.RecordRepoI
}

func NewPostgres(ctx context.Context, cfg config.Config, registry *models.Registry, log logger.LoggerI) (storage.StorageI, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL(cfg))
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = cfg.PostgresMaxConnections

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:       pool,
		registry: registry,
		dialect:  querybuilder.ParseDialect(cfg.SQLDialect),
		log:      log,
	}, nil
}

// RunMigrations applies the demo-schema migrations.
func RunMigrations(cfg config.Config) error {
	m, err := migrate.New(cfg.MigrationsPath, databaseURL(cfg))
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

func databaseURL(cfg config.Config) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.PostgresHost,
		cfg.PostgresPort,
		cfg.PostgresDatabase,
	)
}

func (s *Store) CloseDB() {
	s.db.Close()
}

func (s *Store) Record() storage.RecordRepoI {
	if s.record == nil {
		s.record = NewRecordRepo(s.db, s.registry, s.dialect, s.log)
	}

	return s.record
}
