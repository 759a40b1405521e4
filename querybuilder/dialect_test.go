package querybuilder_test

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"

	"queryforge/queryforge_go_query_compiler_service/querybuilder"
)

func TestParseDialect(t *testing.T) {
	assert.Equal(t, querybuilder.DialectPostgres, querybuilder.ParseDialect(" Postgres "))
	assert.Equal(t, querybuilder.DialectMariaDB, querybuilder.ParseDialect("MARIADB"))
	assert.Equal(t, querybuilder.Dialect("cockroach"), querybuilder.ParseDialect("cockroach"))
}

func TestDialectQuoting(t *testing.T) {
	assert.Equal(t, `"users"`, querybuilder.DialectPostgres.Quote("users"))
	assert.Equal(t, "`users`", querybuilder.DialectMySQL.Quote("users"))
	assert.Equal(t, "`users`", querybuilder.DialectMariaDB.Quote("users"))
	assert.Equal(t, `"users"`, querybuilder.DialectSQLServer.Quote("users"))
}

func TestDialectPlaceholderFormat(t *testing.T) {
	assert.Equal(t, squirrel.Dollar, querybuilder.DialectPostgres.PlaceholderFormat())
	assert.Equal(t, squirrel.Colon, querybuilder.DialectOracle.PlaceholderFormat())
	assert.Equal(t, squirrel.AtP, querybuilder.DialectSQLServer.PlaceholderFormat())
	assert.Equal(t, squirrel.Question, querybuilder.DialectSQLite.PlaceholderFormat())
}

func TestDialectArraySupport(t *testing.T) {
	assert.True(t, querybuilder.DialectPostgres.SupportsArrayOperators())
	assert.False(t, querybuilder.DialectMySQL.SupportsArrayOperators())
	assert.False(t, querybuilder.DialectSQLite.SupportsArrayOperators())
}
