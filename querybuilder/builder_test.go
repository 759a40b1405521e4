package querybuilder_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"queryforge/queryforge_go_query_compiler_service/models"
	"queryforge/queryforge_go_query_compiler_service/querybuilder"
)

func newBuilder(dialect querybuilder.Dialect) *querybuilder.Builder {
	return querybuilder.NewBuilder(userEntity(), dialect, log)
}

func TestBuildFullQuery(t *testing.T) {
	b := newBuilder(querybuilder.DialectPostgres)

	qb, err := b.Build(models.QueryOptions{
		Select:    []string{"name"},
		Relations: models.RelationSpec{"profile": {}},
		Where:     models.Filter{"status": "active"},
		Order:     models.OrderSpec{{Field: "profile.age", Direction: "ASC"}},
		Skip:      5,
		Take:      10,
	})
	require.NoError(t, err)

	sql, args, err := qb.ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT "user"."id" AS "user_id", "user"."name" AS "user_name", `+
			`"profile"."id" AS "profile_id", "profile"."user_id" AS "profile_user_id", `+
			`"profile"."age" AS "profile_age", "profile"."bio" AS "profile_bio" `+
			`FROM "users" AS "user" `+
			`LEFT JOIN "profiles" AS "profile" ON "user"."id" = "profile"."user_id" `+
			`WHERE "user"."deleted_at" IS NULL AND "user"."status" = $1 `+
			`ORDER BY "profile"."age" ASC LIMIT 10 OFFSET 5`,
		sql)
	assert.Equal(t, []any{"active"}, args)
}

func TestBuildDefaultsToAllBaseColumns(t *testing.T) {
	b := newBuilder(querybuilder.DialectPostgres)

	qb, err := b.Build(models.QueryOptions{})
	require.NoError(t, err)

	sql, _, err := qb.ToSql()
	require.NoError(t, err)

	for _, col := range userEntity().Columns {
		assert.Contains(t, sql, `"user"."`+col+`" AS "user_`+col+`"`)
	}
}

func TestBuildForcesPrimaryKeyIntoSelection(t *testing.T) {
	b := newBuilder(querybuilder.DialectPostgres)

	qb, err := b.Build(models.QueryOptions{Select: []string{"email"}})
	require.NoError(t, err)

	sql, _, err := qb.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, `"user"."id" AS "user_id"`)
	assert.Contains(t, sql, `"user"."email" AS "user_email"`)
	assert.NotContains(t, sql, `"user"."status"`)
}

func TestBuildSoftDeleteVariants(t *testing.T) {
	cases := []struct {
		name string
		opts models.QueryOptions
		want string
		skip string
	}{
		{
			name: "default hides deleted rows",
			opts: models.QueryOptions{},
			want: `"user"."deleted_at" IS NULL`,
		},
		{
			name: "withDeleted drops the marker predicate",
			opts: models.QueryOptions{WithDeleted: true},
			skip: `"user"."deleted_at"`,
		},
		{
			name: "onlyDeleted inverts the marker predicate",
			opts: models.QueryOptions{OnlyDeleted: true},
			want: `"user"."deleted_at" IS NOT NULL`,
		},
		{
			name: "onlyDeleted wins over withDeleted",
			opts: models.QueryOptions{WithDeleted: true, OnlyDeleted: true},
			want: `"user"."deleted_at" IS NOT NULL`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newBuilder(querybuilder.DialectPostgres)

			qb, err := b.Build(tc.opts)
			require.NoError(t, err)

			sql, _, err := qb.ToSql()
			require.NoError(t, err)

			if tc.want != "" {
				assert.Contains(t, sql, tc.want)
			}
			if tc.skip != "" {
				assert.NotContains(t, sql, tc.skip)
			}
		})
	}
}

func TestBuildOrderReusesPlannedJoin(t *testing.T) {
	b := newBuilder(querybuilder.DialectPostgres)

	qb, err := b.Build(models.QueryOptions{
		Relations: models.RelationSpec{"profile": {}},
		Order:     models.OrderSpec{{Field: "profile.age", Direction: "desc"}},
	})
	require.NoError(t, err)

	sql, _, err := qb.ToSql()
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(sql, `JOIN "profiles"`))
	assert.Contains(t, sql, `ORDER BY "profile"."age" DESC`)
}

func TestBuildOrderFallsBackToRawField(t *testing.T) {
	b := newBuilder(querybuilder.DialectPostgres)

	qb, err := b.Build(models.QueryOptions{
		Order: models.OrderSpec{{Field: "computed_rank"}},
	})
	require.NoError(t, err)

	sql, _, err := qb.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "ORDER BY computed_rank ASC")
}

func TestBuildInvalidOrderDirection(t *testing.T) {
	b := newBuilder(querybuilder.DialectPostgres)

	_, err := b.Build(models.QueryOptions{
		Order: models.OrderSpec{{Field: "name", Direction: "sideways"}},
	})
	require.Error(t, err)
	assert.True(t, querybuilder.IsClientError(err))
}

func TestBuildUnknownRelationFails(t *testing.T) {
	b := newBuilder(querybuilder.DialectPostgres)

	_, err := b.Build(models.QueryOptions{
		Relations: models.RelationSpec{"orders": {}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `relation "orders" not found`)
}

func TestBuildCountWithRelations(t *testing.T) {
	b := newBuilder(querybuilder.DialectPostgres)

	qb, err := b.BuildCount(models.QueryOptions{
		Relations: models.RelationSpec{"profile": {}},
		Where:     models.Filter{"status": "active"},
		Order:     models.OrderSpec{{Field: "name"}},
		Skip:      5,
		Take:      10,
	})
	require.NoError(t, err)

	sql, args, err := qb.ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT COUNT(DISTINCT "user"."id") FROM "users" AS "user" `+
			`LEFT JOIN "profiles" AS "profile" ON "user"."id" = "profile"."user_id" `+
			`WHERE "user"."deleted_at" IS NULL AND "user"."status" = $1`,
		sql)
	assert.Equal(t, []any{"active"}, args)
}

func TestBuildCountWithoutRelations(t *testing.T) {
	b := newBuilder(querybuilder.DialectPostgres)

	qb, err := b.BuildCount(models.QueryOptions{})
	require.NoError(t, err)

	sql, _, err := qb.ToSql()
	require.NoError(t, err)

	assert.Equal(t, `SELECT COUNT(*) FROM "users" AS "user" WHERE "user"."deleted_at" IS NULL`, sql)
}

func TestBuildMySQLPlaceholdersAndQuoting(t *testing.T) {
	b := newBuilder(querybuilder.DialectMySQL)

	qb, err := b.Build(models.QueryOptions{
		Where: models.Filter{"status": "active"},
	})
	require.NoError(t, err)

	sql, args, err := qb.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "`users` AS `user`")
	assert.Contains(t, sql, "`user`.`status` = ?")
	assert.Equal(t, []any{"active"}, args)
}
