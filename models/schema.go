package models

// DefaultRegistry describes the demo schema the service ships with. The
// tables are created by the migrations under migrations/.
func DefaultRegistry() *Registry {
	country := &Entity{
		Name:        "country",
		Table:       "countries",
		Columns:     []string{"id", "code", "name"},
		PrimaryKeys: []string{"id"},
	}

	address := &Entity{
		Name:        "address",
		Table:       "addresses",
		Columns:     []string{"id", "profile_id", "country_id", "city", "street", "zip"},
		PrimaryKeys: []string{"id"},
		Relations: map[string]*Relation{
			"country": {
				Name:             "country",
				Kind:             ManyToOne,
				Target:           country,
				JoinColumn:       "country_id",
				ReferencedColumn: "id",
			},
		},
	}

	profile := &Entity{
		Name:        "profile",
		Table:       "profiles",
		Columns:     []string{"id", "user_id", "age", "bio"},
		PrimaryKeys: []string{"id"},
		Relations: map[string]*Relation{
			"addresses": {
				Name:             "addresses",
				Kind:             OneToMany,
				Target:           address,
				JoinColumn:       "id",
				ReferencedColumn: "profile_id",
			},
		},
	}

	user := &Entity{
		Name:            "user",
		Table:           "users",
		Columns:         []string{"id", "name", "email", "status", "is_active", "created_at", "deleted_at"},
		PrimaryKeys:     []string{"id"},
		DeletedAtColumn: "deleted_at",
		Relations: map[string]*Relation{
			"profile": {
				Name:             "profile",
				Kind:             OneToOne,
				Target:           profile,
				JoinColumn:       "id",
				ReferencedColumn: "user_id",
			},
		},
	}

	return NewRegistry(user, profile, address, country)
}
