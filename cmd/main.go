package main

import (
	"context"

	"github.com/gin-gonic/gin"

	"queryforge/queryforge_go_query_compiler_service/api"
	"queryforge/queryforge_go_query_compiler_service/config"
	"queryforge/queryforge_go_query_compiler_service/models"
	"queryforge/queryforge_go_query_compiler_service/pkg/logger"
	"queryforge/queryforge_go_query_compiler_service/storage/postgres"
)

func main() {
	cfg := config.Load()

	loggerLevel := logger.LevelDebug

	switch cfg.Environment {
	case config.DebugMode:
		loggerLevel = logger.LevelDebug
		gin.SetMode(gin.DebugMode)
	case config.TestMode:
		loggerLevel = logger.LevelDebug
		gin.SetMode(gin.TestMode)
	default:
		loggerLevel = logger.LevelInfo
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.QueryDebug {
		loggerLevel = logger.LevelDebug
	}

	log := logger.NewLogger(cfg.ServiceName, loggerLevel)
	defer func() {
		_ = logger.Cleanup(log)
	}()
	log.Info("Service env", logger.Any("cfg", cfg))

	if err := postgres.RunMigrations(cfg); err != nil {
		log.Panic("postgres.RunMigrations", logger.Error(err))
	}

	registry := models.DefaultRegistry()

	pgStore, err := postgres.NewPostgres(context.Background(), cfg, registry, log)
	if err != nil {
		log.Panic("postgres.NewPostgres", logger.Error(err))
	}
	defer pgStore.CloseDB()

	router := api.SetUpRouter(cfg, log, pgStore)

	log.Info("HTTP: Server being started...", logger.String("port", cfg.HTTPPort))

	if err := router.Run(cfg.HTTPPort); err != nil {
		log.Panic("router.Run", logger.Error(err))
	}
}
