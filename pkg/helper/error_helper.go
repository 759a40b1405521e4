package helper

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"queryforge/queryforge_go_query_compiler_service/pkg/logger"
	"queryforge/queryforge_go_query_compiler_service/querybuilder"
)

// HandleQueryError maps an error from the query pipeline to an HTTP
// status. Compilation failures caused by caller input come back as 400,
// database-level failures keep the teacher-style pg error mapping.
func HandleQueryError(err error, log logger.LoggerI, message string) (int, string) {
	if err == nil {
		return http.StatusOK, ""
	}

	if querybuilder.IsClientError(err) {
		return http.StatusBadRequest, err.Error()
	}

	if err == pgx.ErrNoRows {
		return http.StatusNotFound, "not found"
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		log.Error(message+": "+err.Error(), logger.String("column", pgErr.ColumnName))

		switch pgErr.Code {
		case "23505":
			// Unique violation
			return http.StatusConflict, pgErr.Message
		case "23503":
			// Foreign key violation
			return http.StatusPreconditionFailed, pgErr.Message
		case "42703":
			// Undefined column
			return http.StatusBadRequest, pgErr.Message
		case "42P01":
			// Undefined table
			return http.StatusNotFound, pgErr.Message
		case "08006":
			// Connection failure
			return http.StatusServiceUnavailable, pgErr.Message
		default:
			return http.StatusInternalServerError, pgErr.Message
		}
	}

	log.Error(message, logger.Error(err))

	// Unknown relation names and unregistered entities are caller/config
	// mistakes surfaced before anything executes.
	return http.StatusBadRequest, err.Error()
}
