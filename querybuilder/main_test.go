package querybuilder_test

import (
	"queryforge/queryforge_go_query_compiler_service/models"
	"queryforge/queryforge_go_query_compiler_service/pkg/logger"
	"queryforge/queryforge_go_query_compiler_service/querybuilder"
)

var log = logger.NewNop()

// userEntity builds the user -> profile -> addresses -> country metadata
// chain used across the package tests.
func userEntity() *models.Entity {
	country := &models.Entity{
		Name:        "country",
		Table:       "countries",
		Columns:     []string{"id", "code", "name"},
		PrimaryKeys: []string{"id"},
	}

	address := &models.Entity{
		Name:        "address",
		Table:       "addresses",
		Columns:     []string{"id", "profile_id", "country_id", "city"},
		PrimaryKeys: []string{"id"},
		Relations: map[string]*models.Relation{
			"country": {
				Name:             "country",
				Kind:             models.ManyToOne,
				Target:           country,
				JoinColumn:       "country_id",
				ReferencedColumn: "id",
			},
		},
	}

	profile := &models.Entity{
		Name:        "profile",
		Table:       "profiles",
		Columns:     []string{"id", "user_id", "age", "bio"},
		PrimaryKeys: []string{"id"},
		Relations: map[string]*models.Relation{
			"addresses": {
				Name:             "addresses",
				Kind:             models.OneToMany,
				Target:           address,
				JoinColumn:       "id",
				ReferencedColumn: "profile_id",
			},
		},
	}

	return &models.Entity{
		Name:            "user",
		Table:           "users",
		Columns:         []string{"id", "name", "email", "status", "age", "tags", "is_active", "deleted_at"},
		PrimaryKeys:     []string{"id"},
		DeletedAtColumn: "deleted_at",
		Relations: map[string]*models.Relation{
			"profile": {
				Name:             "profile",
				Kind:             models.OneToOne,
				Target:           profile,
				JoinColumn:       "id",
				ReferencedColumn: "user_id",
			},
		},
	}
}

func newResolver(dialect querybuilder.Dialect) *querybuilder.Resolver {
	return querybuilder.NewResolver(userEntity(), dialect, log)
}

func newCompiler(dialect querybuilder.Dialect) *querybuilder.PredicateCompiler {
	return querybuilder.NewPredicateCompiler(newResolver(dialect), dialect, log)
}
