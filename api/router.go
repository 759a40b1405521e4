package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"queryforge/queryforge_go_query_compiler_service/api/handlers"
	"queryforge/queryforge_go_query_compiler_service/config"
	"queryforge/queryforge_go_query_compiler_service/pkg/logger"
	"queryforge/queryforge_go_query_compiler_service/storage"
)

// SetUpRouter wires the HTTP surface: a health probe and the query
// endpoint. The router is a thin adapter; all query semantics live in the
// querybuilder package.
func SetUpRouter(cfg config.Config, log logger.LoggerI, strg storage.StorageI) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	h := handlers.New(cfg, log, strg)

	router.GET("/health", h.Health)

	v1 := router.Group("/v1")
	{
		v1.POST("/query/:entity", h.Query)
		v1.POST("/query/:entity/count", h.Count)
	}

	return router
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}
