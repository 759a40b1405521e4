package querybuilder

import (
	"fmt"
	"strings"

	"queryforge/queryforge_go_query_compiler_service/models"
	"queryforge/queryforge_go_query_compiler_service/pkg/logger"
)

// RelationInfo is the resolved metadata for one dotted relation path.
type RelationInfo struct {
	// Path is the dotted path the info was resolved for.
	Path string
	// Alias is the deterministic join alias: the path with "." replaced
	// by "_". A relation name that itself contains an underscore can
	// collide with another path's flattened form; this is a documented
	// limitation of the alias scheme, not something the resolver guards.
	Alias string
	// ParentAlias is the already-resolved alias of the path's parent
	// (the base entity alias for root-level relations).
	ParentAlias string
	// SourcePath is parentAlias.relationName, the logical join source.
	SourcePath string
	// Entity is the relation's target entity metadata.
	Entity *models.Entity
	// Relation is the descriptor on the parent entity.
	Relation *models.Relation
	// JoinTable is the quoted target table with its quoted alias.
	JoinTable string
	// JoinOn is the quoted equality between the parent's join column and
	// the target's referenced column.
	JoinOn string
}

// Resolver maps logical field paths to quoted, alias-qualified SQL column
// references and relation paths to cached RelationInfo. One resolver is
// bound to one base entity, one dialect and one query build; its memo cache
// must never be shared across builds.
type Resolver struct {
	entity  *models.Entity
	dialect Dialect
	log     logger.LoggerI

	// relations memoizes ResolveRelation per path. A nil entry records a
	// path already known to be unresolvable.
	relations map[string]*RelationInfo
}

func NewResolver(entity *models.Entity, dialect Dialect, log logger.LoggerI) *Resolver {
	return &Resolver{
		entity:    entity,
		dialect:   dialect,
		log:       log,
		relations: make(map[string]*RelationInfo),
	}
}

// BaseAlias is the alias of the query's root entity.
func (r *Resolver) BaseAlias() string {
	return r.entity.Name
}

// ResolveColumn resolves a logical field path to a quoted alias-qualified
// column reference. Single-segment paths resolve against the base entity,
// dotted paths against the join alias of their relation prefix. An
// unresolvable path yields "" and the caller decides whether that is fatal.
func (r *Resolver) ResolveColumn(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		if !r.entity.HasColumn(path) {
			return ""
		}
		return fmt.Sprintf("%s.%s", r.dialect.Quote(r.BaseAlias()), r.dialect.Quote(path))
	}

	prefix, column := path[:idx], path[idx+1:]

	info := r.ResolveRelation(prefix)
	if info == nil {
		return ""
	}
	if !info.Entity.HasColumn(column) {
		return ""
	}

	return fmt.Sprintf("%s.%s", r.dialect.Quote(info.Alias), r.dialect.Quote(column))
}

// ResolveRelation resolves a dotted relation path, memoized per path.
// Parents are resolved (and cached) before their children so the child's
// join condition reuses the parent's alias. Returns nil for a path that
// names a relation the metadata does not have.
func (r *Resolver) ResolveRelation(path string) *RelationInfo {
	if info, ok := r.relations[path]; ok {
		return info
	}

	var (
		parentAlias  = r.BaseAlias()
		parentEntity = r.entity
		name         = path
	)

	if idx := strings.LastIndex(path, "."); idx >= 0 {
		parent := r.ResolveRelation(path[:idx])
		if parent == nil {
			r.relations[path] = nil
			return nil
		}
		parentAlias = parent.Alias
		parentEntity = parent.Entity
		name = path[idx+1:]
	}

	rel := parentEntity.Relation(name)
	if rel == nil || rel.Target == nil {
		r.relations[path] = nil
		return nil
	}

	alias := strings.ReplaceAll(path, ".", "_")

	info := &RelationInfo{
		Path:        path,
		Alias:       alias,
		ParentAlias: parentAlias,
		SourcePath:  parentAlias + "." + name,
		Entity:      rel.Target,
		Relation:    rel,
		JoinTable: fmt.Sprintf("%s AS %s",
			r.dialect.Quote(rel.Target.Table), r.dialect.Quote(alias)),
		JoinOn: fmt.Sprintf("%s.%s = %s.%s",
			r.dialect.Quote(parentAlias), r.dialect.Quote(rel.JoinColumn),
			r.dialect.Quote(alias), r.dialect.Quote(rel.ReferencedColumn)),
	}

	r.relations[path] = info

	r.log.Debug("resolved relation",
		logger.String("path", path),
		logger.String("alias", alias),
		logger.String("source", info.SourcePath))

	return info
}
