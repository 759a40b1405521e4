package querybuilder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"queryforge/queryforge_go_query_compiler_service/models"
	"queryforge/queryforge_go_query_compiler_service/pkg/logger"
)

// JoinPlanner turns a relation specification into the joins of one query
// and registers the columns each joined relation projects. Planning a path
// twice is a no-op.
type JoinPlanner struct {
	resolver  *Resolver
	compiler  *PredicateCompiler
	dialect   Dialect
	log       logger.LoggerI
	selection *columnSet
	planned   map[string]bool
}

func NewJoinPlanner(resolver *Resolver, compiler *PredicateCompiler, dialect Dialect, log logger.LoggerI) *JoinPlanner {
	return &JoinPlanner{
		resolver:  resolver,
		compiler:  compiler,
		dialect:   dialect,
		log:       log,
		selection: newColumnSet(),
		planned:   make(map[string]bool),
	}
}

// Columns returns the aliased projection list registered by planned joins.
func (p *JoinPlanner) Columns() []string {
	return p.selection.list()
}

// Plan joins every relation in spec plus the implicit ancestors of each
// dotted path, parents before children.
func (p *JoinPlanner) Plan(qb squirrel.SelectBuilder, spec models.RelationSpec) (squirrel.SelectBuilder, error) {
	if len(spec) == 0 {
		return qb, nil
	}

	closure := relationClosure(spec)

	paths := make([]string, 0, len(closure))
	for path := range closure {
		paths = append(paths, path)
	}
	sort.Slice(paths, func(i, j int) bool {
		di, dj := pathDepth(paths[i]), pathDepth(paths[j])
		if di != dj {
			return di < dj
		}
		return paths[i] < paths[j]
	})

	var err error
	for _, path := range paths {
		qb, err = p.planPath(qb, path, closure[path])
		if err != nil {
			return qb, err
		}
	}

	return qb, nil
}

func (p *JoinPlanner) planPath(qb squirrel.SelectBuilder, path string, cfg models.RelationConfig) (squirrel.SelectBuilder, error) {
	if p.planned[path] {
		return qb, nil
	}

	info := p.resolver.ResolveRelation(path)
	if info == nil {
		return qb, errors.Errorf("relation %q not found", path)
	}

	on := info.JoinOn
	var args []any

	if len(cfg.Where) > 0 {
		pred, err := p.compiler.Compile(scopeFilter(path, cfg.Where))
		if err != nil {
			return qb, errors.Wrapf(err, "relation %q where", path)
		}
		if !pred.Empty() {
			condSQL, condArgs := pred.Positional()
			on += " AND " + condSQL
			args = condArgs
		}
	}

	join := info.JoinTable + " ON " + on

	switch strings.ToLower(cfg.JoinType) {
	case models.JoinInner:
		qb = qb.InnerJoin(join, args...)
	default:
		qb = qb.LeftJoin(join, args...)
	}

	p.registerColumns(info, cfg.Select)
	p.planned[path] = true

	p.log.Debug("planned join",
		logger.String("path", path),
		logger.String("alias", info.Alias),
		logger.String("type", cfg.JoinType))

	return qb, nil
}

// registerColumns projects the relation's columns under its alias. An
// explicit select list is intersected with the entity's columns; the
// primary keys are always projected because entity hydration needs them.
func (p *JoinPlanner) registerColumns(info *RelationInfo, selected []string) {
	wanted := make(map[string]bool, len(selected))
	for _, col := range selected {
		wanted[col] = true
	}
	for _, pk := range info.Entity.PrimaryKeys {
		wanted[pk] = true
	}

	for _, col := range info.Entity.Columns {
		if len(selected) > 0 && !wanted[col] {
			continue
		}
		p.selection.add(fmt.Sprintf("%s.%s AS %s",
			p.dialect.Quote(info.Alias),
			p.dialect.Quote(col),
			p.dialect.Quote(info.Alias+"_"+col)))
	}
}

// relationClosure adds every strict prefix of each listed path with a
// default configuration, keeping the caller's explicit configuration when
// one was given for an ancestor.
func relationClosure(spec models.RelationSpec) map[string]models.RelationConfig {
	closure := make(map[string]models.RelationConfig, len(spec))
	for path, cfg := range spec {
		closure[path] = cfg
	}

	for path := range spec {
		segments := strings.Split(path, ".")
		for i := 1; i < len(segments); i++ {
			prefix := strings.Join(segments[:i], ".")
			if _, ok := closure[prefix]; !ok {
				closure[prefix] = models.RelationConfig{}
			}
		}
	}

	return closure
}

func pathDepth(path string) int {
	return strings.Count(path, ".") + 1
}

// scopeFilter prefixes the field paths of a relation-scoped filter with
// the relation path, leaving group markers and operator maps untouched.
func scopeFilter(path string, filter models.Filter) models.Filter {
	scoped := make(models.Filter, len(filter))
	for key, value := range filter {
		switch key {
		case GroupAnd, GroupOr:
			if elems, ok := toSlice(value); ok {
				nested := make([]any, 0, len(elems))
				for _, elem := range elems {
					if m, ok := asOperatorMap(elem); ok {
						nested = append(nested, map[string]any(scopeFilter(path, m)))
					} else {
						nested = append(nested, elem)
					}
				}
				scoped[key] = nested
				continue
			}
			scoped[key] = value
		default:
			scoped[path+"."+key] = value
		}
	}
	return scoped
}
