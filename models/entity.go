package models

// RelationKind describes how a relation joins its target entity.
type RelationKind string

const (
	OneToOne  RelationKind = "one-to-one"
	OneToMany RelationKind = "one-to-many"
	ManyToOne RelationKind = "many-to-one"
)

// Relation describes a named relation from one entity to another.
// JoinColumn is the column on the owning (parent) side of the join and
// ReferencedColumn the column on the target side, so a join clause is
// always parent.JoinColumn = target.ReferencedColumn regardless of kind.
type Relation struct {
	Name             string       `json:"name"`
	Kind             RelationKind `json:"kind"`
	Target           *Entity      `json:"-"`
	JoinColumn       string       `json:"join_column"`
	ReferencedColumn string       `json:"referenced_column"`
}

// Entity is the read-only metadata the compiler consults: table name,
// logical columns, primary keys, the soft-delete marker column (empty when
// soft delete is disabled) and the relation descriptors.
type Entity struct {
	Name            string               `json:"name"`
	Table           string               `json:"table"`
	Columns         []string             `json:"columns"`
	PrimaryKeys     []string             `json:"primary_keys"`
	DeletedAtColumn string               `json:"deleted_at_column,omitempty"`
	Relations       map[string]*Relation `json:"-"`
}

// HasColumn reports whether name is a declared column of the entity.
func (e *Entity) HasColumn(name string) bool {
	for _, col := range e.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// Relation returns the relation descriptor for name, nil when absent.
func (e *Entity) Relation(name string) *Relation {
	if e.Relations == nil {
		return nil
	}
	return e.Relations[name]
}

// Registry maps entity names to their metadata.
type Registry struct {
	entities map[string]*Entity
}

func NewRegistry(entities ...*Entity) *Registry {
	r := &Registry{entities: make(map[string]*Entity, len(entities))}
	for _, e := range entities {
		r.entities[e.Name] = e
	}
	return r
}

func (r *Registry) Get(name string) (*Entity, bool) {
	e, ok := r.entities[name]
	return e, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entities))
	for name := range r.entities {
		names = append(names, name)
	}
	return names
}
