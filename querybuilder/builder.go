package querybuilder

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"queryforge/queryforge_go_query_compiler_service/models"
	"queryforge/queryforge_go_query_compiler_service/pkg/logger"
)

// Builder sequences the resolver, the join planner and the predicate
// compiler into one executable SELECT. One builder serves one request: its
// alias cache and registered-column set live exactly as long as the build.
type Builder struct {
	entity   *models.Entity
	dialect  Dialect
	log      logger.LoggerI
	resolver *Resolver
	compiler *PredicateCompiler
}

func NewBuilder(entity *models.Entity, dialect Dialect, log logger.LoggerI) *Builder {
	resolver := NewResolver(entity, dialect, log)
	return &Builder{
		entity:   entity,
		dialect:  dialect,
		log:      log,
		resolver: resolver,
		compiler: NewPredicateCompiler(resolver, dialect, log),
	}
}

// Build composes the row query for opts.
func (b *Builder) Build(opts models.QueryOptions) (squirrel.SelectBuilder, error) {
	return b.build(opts, false)
}

// BuildCount composes the count query for opts: same joins and predicate,
// no ordering, no pagination, a single aggregate column.
func (b *Builder) BuildCount(opts models.QueryOptions) (squirrel.SelectBuilder, error) {
	return b.build(opts, true)
}

// The sequencing below is load-bearing: joins must be planned before the
// predicate is compiled so relation-qualified field paths resolve against
// cached aliases, and ordering reuses those same joins without creating
// new ones.
func (b *Builder) build(opts models.QueryOptions, counting bool) (squirrel.SelectBuilder, error) {
	baseAlias := b.resolver.BaseAlias()
	selection := newColumnSet()
	planner := NewJoinPlanner(b.resolver, b.compiler, b.dialect, b.log)

	qb := squirrel.StatementBuilder.
		PlaceholderFormat(b.dialect.PlaceholderFormat()).
		Select().
		From(fmt.Sprintf("%s AS %s", b.dialect.Quote(b.entity.Table), b.dialect.Quote(baseAlias)))

	if !counting {
		if opts.Take > 0 {
			qb = qb.Limit(opts.Take)
		}
		if opts.Skip > 0 {
			qb = qb.Offset(opts.Skip)
		}
	}

	if marker := b.entity.DeletedAtColumn; marker != "" {
		ref := fmt.Sprintf("%s.%s", b.dialect.Quote(baseAlias), b.dialect.Quote(marker))
		switch {
		case opts.OnlyDeleted:
			qb = qb.Where(ref + " IS NOT NULL")
		case !opts.WithDeleted:
			qb = qb.Where(ref + " IS NULL")
		}
	}

	b.registerBaseColumns(selection, opts.Select)

	qb, err := planner.Plan(qb, opts.Relations)
	if err != nil {
		return qb, err
	}

	pred, err := b.compiler.Compile(opts.Where)
	if err != nil {
		return qb, err
	}
	if !pred.Empty() {
		condSQL, args := pred.Positional()
		qb = qb.Where(squirrel.Expr(condSQL, args...))
	}

	if !counting {
		for _, order := range opts.Order {
			column := b.resolver.ResolveColumn(order.Field)
			if column == "" {
				column = order.Field
			}

			direction := strings.ToUpper(order.Direction)
			switch direction {
			case "":
				direction = "ASC"
			case "ASC", "DESC":
			default:
				return qb, clientErrorf("invalid order direction %q for %q", order.Direction, order.Field)
			}

			qb = qb.OrderBy(column + " " + direction)
		}
	}

	if counting {
		qb = qb.Column(b.countColumn(opts, baseAlias))
	} else {
		for _, col := range planner.Columns() {
			selection.add(col)
		}
		qb = qb.Columns(selection.list()...)
	}

	return qb, nil
}

// countColumn counts distinct base rows when joins are present, since a
// one-to-many join fans the base rows out.
func (b *Builder) countColumn(opts models.QueryOptions, baseAlias string) string {
	if len(opts.Relations) > 0 && len(b.entity.PrimaryKeys) > 0 {
		return fmt.Sprintf("COUNT(DISTINCT %s.%s)",
			b.dialect.Quote(baseAlias), b.dialect.Quote(b.entity.PrimaryKeys[0]))
	}
	return "COUNT(*)"
}

// registerBaseColumns projects the base entity's columns. Only bare field
// names participate; relation-qualified select entries are carried by the
// relation spec instead. Primary keys are always projected.
func (b *Builder) registerBaseColumns(selection *columnSet, selected []string) {
	wanted := make(map[string]bool, len(selected))
	bare := 0
	for _, field := range selected {
		if !strings.Contains(field, ".") {
			wanted[field] = true
			bare++
		}
	}
	for _, pk := range b.entity.PrimaryKeys {
		wanted[pk] = true
	}

	baseAlias := b.resolver.BaseAlias()
	for _, col := range b.entity.Columns {
		if bare > 0 && !wanted[col] {
			continue
		}
		selection.add(fmt.Sprintf("%s.%s AS %s",
			b.dialect.Quote(baseAlias),
			b.dialect.Quote(col),
			b.dialect.Quote(baseAlias+"_"+col)))
	}
}

// columnSet is an ordered, deduplicated projection list.
type columnSet struct {
	seen map[string]bool
	cols []string
}

func newColumnSet() *columnSet {
	return &columnSet{seen: make(map[string]bool)}
}

func (s *columnSet) add(column string) {
	if s.seen[column] {
		return
	}
	s.seen[column] = true
	s.cols = append(s.cols, column)
}

func (s *columnSet) list() []string {
	return s.cols
}
