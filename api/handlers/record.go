package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"queryforge/queryforge_go_query_compiler_service/config"
	"queryforge/queryforge_go_query_compiler_service/models"
	"queryforge/queryforge_go_query_compiler_service/pkg/helper"
	"queryforge/queryforge_go_query_compiler_service/pkg/logger"
	"queryforge/queryforge_go_query_compiler_service/storage"
)

type Handler struct {
	cfg  config.Config
	log  logger.LoggerI
	strg storage.StorageI
}

func New(cfg config.Config, log logger.LoggerI, strg storage.StorageI) *Handler {
	return &Handler{
		cfg:  cfg,
		log:  log,
		strg: strg,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": h.cfg.ServiceName,
		"version": h.cfg.Version,
	})
}

// Query runs a declarative query against one entity. The request body is
// a QueryOptions object; the response carries the matched rows and the
// total count ignoring pagination.
func (h *Handler) Query(c *gin.Context) {
	entity := c.Param("entity")

	var opts models.QueryOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if opts.Take > config.MaxTake {
		opts.Take = config.MaxTake
	}

	countOpts := opts
	countOpts.Skip = 0
	countOpts.Take = 0

	data, err := h.strg.Record().GetList(c.Request.Context(), entity, opts)
	if err != nil {
		status, msg := helper.HandleQueryError(err, h.log, "record.GetList")
		c.JSON(status, gin.H{"error": msg})
		return
	}

	count, err := h.strg.Record().GetCount(c.Request.Context(), entity, countOpts)
	if err != nil {
		status, msg := helper.HandleQueryError(err, h.log, "record.GetCount")
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  data,
		"count": count,
	})
}

// Count runs only the count query for an entity and filter.
func (h *Handler) Count(c *gin.Context) {
	entity := c.Param("entity")

	var opts models.QueryOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.strg.Record().GetCount(c.Request.Context(), entity, opts)
	if err != nil {
		status, msg := helper.HandleQueryError(err, h.log, "record.GetCount")
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
