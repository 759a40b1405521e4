package querybuilder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"queryforge/queryforge_go_query_compiler_service/models"
	"queryforge/queryforge_go_query_compiler_service/pkg/logger"
)

// Filter group markers and operator keys. The vocabulary is a stable wire
// contract with the callers of the query API.
const (
	GroupAnd = "$and"
	GroupOr  = "$or"

	OpEq  = "$eq"
	OpNe  = "$ne"
	OpGt  = "$gt"
	OpGte = "$gte"
	OpLt  = "$lt"
	OpLte = "$lte"

	OpIn     = "$in"
	OpNotIn  = "$notIn"
	OpIIn    = "$iIn"
	OpNotIIn = "$notIIn"

	OpLike     = "$like"
	OpNotLike  = "$notLike"
	OpILike    = "$iLike"
	OpNotILike = "$notILike"

	OpStartsWith  = "$startsWith"
	OpIStartsWith = "$iStartsWith"
	OpEndsWith    = "$endsWith"
	OpIEndsWith   = "$iEndsWith"

	OpBetween    = "$between"
	OpNotBetween = "$notBetween"

	OpIsNull    = "$isNull"
	OpIsNotNull = "$isNotNull"
	OpIsTrue    = "$isTrue"
	OpIsFalse   = "$isFalse"

	OpArrayContains = "$arrayContains"
	OpArrayOverlap  = "$arrayOverlap"
)

// maxFilterDepth bounds the nesting of logical groups so pathological
// input fails with a client error instead of exhausting the stack.
const maxFilterDepth = 32

// Predicate is a compiled boolean SQL expression with named parameters.
// SQL uses :param_N tokens (:...param_N spreads an array element-wise);
// Positional rewrites them for the query builder.
type Predicate struct {
	SQL    string
	Params map[string]any
}

// Empty reports whether the predicate compiled to "no filter".
func (p Predicate) Empty() bool {
	return p.SQL == ""
}

// Positional expands the named parameters to ? placeholders in order of
// appearance, spreading array-valued spread tokens.
func (p Predicate) Positional() (string, []any) {
	return expandNamed(p.SQL, p.Params)
}

// PredicateCompiler compiles a filter expression tree into one Predicate.
// One compiler is bound to one resolver/dialect/build; parameter names are
// unique within one Compile invocation.
type PredicateCompiler struct {
	resolver *Resolver
	dialect  Dialect
	log      logger.LoggerI
	paramSeq int
}

func NewPredicateCompiler(resolver *Resolver, dialect Dialect, log logger.LoggerI) *PredicateCompiler {
	return &PredicateCompiler{
		resolver: resolver,
		dialect:  dialect,
		log:      log,
	}
}

// Compile compiles filter into a parameterized SQL boolean expression.
// nil, empty maps and empty arrays compile to the empty predicate.
func (c *PredicateCompiler) Compile(filter any) (Predicate, error) {
	c.paramSeq = 0
	params := make(map[string]any)

	sql, err := c.compileNode(filter, params, 0)
	if err != nil {
		return Predicate{}, err
	}

	c.log.Debug("compiled filter",
		logger.String("sql", sql),
		logger.Any("params", params))

	return Predicate{SQL: sql, Params: params}, nil
}

func (c *PredicateCompiler) compileNode(node any, params map[string]any, depth int) (string, error) {
	if depth > maxFilterDepth {
		return "", clientErrorf("filter nesting exceeds %d levels", maxFilterDepth)
	}

	switch v := node.(type) {
	case nil:
		return "", nil
	case models.Filter:
		return c.compileMap(v, params, depth)
	case map[string]any:
		return c.compileMap(v, params, depth)
	case []any:
		// A bare array is an implicit AND group.
		return c.compileGroup(" AND ", v, params, depth)
	case []models.Filter:
		elems := make([]any, len(v))
		for i := range v {
			elems[i] = v[i]
		}
		return c.compileGroup(" AND ", elems, params, depth)
	default:
		return "", clientErrorf("filter must be an object or an array, got %T", node)
	}
}

func (c *PredicateCompiler) compileMap(expr map[string]any, params map[string]any, depth int) (string, error) {
	if len(expr) == 0 {
		return "", nil
	}

	// Map iteration order is randomized; keys are sorted so the same
	// filter always compiles to the same SQL.
	keys := make([]string, 0, len(expr))
	for key := range expr {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var fragments []string
	for _, key := range keys {
		value := expr[key]

		switch key {
		case GroupAnd, GroupOr:
			connective := " AND "
			if key == GroupOr {
				connective = " OR "
			}

			elems, ok := toSlice(value)
			if !ok {
				return "", clientErrorf("%s expects an array of filters", key)
			}

			c.log.Debug("entering filter group", logger.String("group", key))
			frag, err := c.compileGroup(connective, elems, params, depth+1)
			if err != nil {
				return "", err
			}
			c.log.Debug("leaving filter group",
				logger.String("group", key),
				logger.String("sql", frag))

			if frag != "" {
				fragments = append(fragments, frag)
			}
		default:
			column := c.resolver.ResolveColumn(key)
			if column == "" {
				// Unresolvable paths are kept verbatim so computed and
				// virtual columns stay expressible.
				column = key
			}

			opMap, ok := asOperatorMap(value)
			if !ok {
				opMap = map[string]any{OpEq: value}
			}

			ops := make([]string, 0, len(opMap))
			for op := range opMap {
				ops = append(ops, op)
			}
			sort.Strings(ops)

			for _, op := range ops {
				frag, err := c.compileOperator(column, op, opMap[op], params)
				if err != nil {
					return "", err
				}
				fragments = append(fragments, frag)
			}
		}
	}

	// Siblings at one nesting level are implicitly ANDed.
	return strings.Join(fragments, " AND "), nil
}

func (c *PredicateCompiler) compileGroup(connective string, elems []any, params map[string]any, depth int) (string, error) {
	var fragments []string
	for _, elem := range elems {
		frag, err := c.compileNode(elem, params, depth+1)
		if err != nil {
			return "", err
		}
		if frag != "" {
			fragments = append(fragments, frag)
		}
	}

	switch len(fragments) {
	case 0:
		return "", nil
	case 1:
		return fragments[0], nil
	default:
		return "(" + strings.Join(fragments, connective) + ")", nil
	}
}

func (c *PredicateCompiler) compileOperator(column, op string, value any, params map[string]any) (string, error) {
	c.log.Debug("emitting operator",
		logger.String("column", column),
		logger.String("op", op))

	switch op {
	case OpEq:
		return c.comparison(column, "=", value, params), nil
	case OpNe:
		return c.comparison(column, "!=", value, params), nil
	case OpGt:
		return c.comparison(column, ">", value, params), nil
	case OpGte:
		return c.comparison(column, ">=", value, params), nil
	case OpLt:
		return c.comparison(column, "<", value, params), nil
	case OpLte:
		return c.comparison(column, "<=", value, params), nil

	case OpLike:
		return c.like(column, value, false, false, params), nil
	case OpNotLike:
		return c.like(column, value, true, false, params), nil
	case OpILike:
		return c.like(column, value, false, true, params), nil
	case OpNotILike, "$notIlike":
		return c.like(column, value, true, true, params), nil

	case OpStartsWith:
		return c.like(column, cast.ToString(value)+"%", false, false, params), nil
	case OpIStartsWith:
		return c.like(column, cast.ToString(value)+"%", false, true, params), nil
	case OpEndsWith:
		return c.like(column, "%"+cast.ToString(value), false, false, params), nil
	case OpIEndsWith:
		return c.like(column, "%"+cast.ToString(value), false, true, params), nil

	case OpIn, OpNotIn:
		elems, ok := toSlice(value)
		if !ok {
			return "", clientErrorf("%s expects an array value", op)
		}
		if op == OpIn && len(elems) == 0 {
			// Empty membership list matches nothing instead of producing
			// invalid SQL. NOT IN has no such guard and surfaces as a
			// SQL error.
			return "1 = 0", nil
		}
		name := c.nextParam()
		params[name] = elems
		if op == OpNotIn {
			return fmt.Sprintf("%s NOT IN (:...%s)", column, name), nil
		}
		return fmt.Sprintf("%s IN (:...%s)", column, name), nil

	case OpIIn, OpNotIIn:
		elems, ok := toSlice(value)
		if !ok {
			return "", clientErrorf("%s expects an array value", op)
		}
		if op == OpIIn && len(elems) == 0 {
			return "1 = 0", nil
		}
		lowered := make([]any, len(elems))
		for i, e := range elems {
			lowered[i] = strings.ToLower(cast.ToString(e))
		}
		name := c.nextParam()
		params[name] = lowered
		cmp := "IN"
		if op == OpNotIIn {
			cmp = "NOT IN"
		}
		return fmt.Sprintf("LOWER(%s) %s (:...%s)", c.dialect.TextCast(column), cmp, name), nil

	case OpArrayContains, OpArrayOverlap:
		if !c.dialect.SupportsArrayOperators() {
			return "", clientErrorf("%s is only supported on the postgres dialect", op)
		}
		elems, ok := toSlice(value)
		if !ok {
			return "", clientErrorf("%s expects an array value", op)
		}
		if len(elems) == 0 {
			return "1 = 0", nil
		}
		name := c.nextParam()
		params[name] = elems
		if op == OpArrayContains {
			return fmt.Sprintf("%s @> :%s", column, name), nil
		}
		return fmt.Sprintf("%s && :%s", column, name), nil

	case OpBetween, OpNotBetween:
		elems, ok := toSlice(value)
		if !ok || len(elems) != 2 {
			return "", clientErrorf("%s expects an array of exactly two values", op)
		}
		name := c.nextParam()
		params[name+"_0"] = elems[0]
		params[name+"_1"] = elems[1]
		if op == OpNotBetween {
			return fmt.Sprintf("%s NOT BETWEEN :%s_0 AND :%s_1", column, name, name), nil
		}
		return fmt.Sprintf("%s BETWEEN :%s_0 AND :%s_1", column, name, name), nil

	case OpIsNull:
		return column + " IS NULL", nil
	case OpIsNotNull:
		return column + " IS NOT NULL", nil
	case OpIsTrue:
		return column + " IS TRUE", nil
	case OpIsFalse:
		return column + " IS FALSE", nil

	default:
		return "", clientErrorf("unsupported operator %q", op)
	}
}

func (c *PredicateCompiler) comparison(column, cmp string, value any, params map[string]any) string {
	name := c.nextParam()
	params[name] = value
	return fmt.Sprintf("%s %s :%s", column, cmp, name)
}

func (c *PredicateCompiler) like(column string, value any, negated, caseInsensitive bool, params map[string]any) string {
	name := c.nextParam()
	params[name] = cast.ToString(value)

	cmp := "LIKE"
	if negated {
		cmp = "NOT LIKE"
	}

	if caseInsensitive {
		return fmt.Sprintf("LOWER(%s) %s LOWER(:%s)", c.dialect.TextCast(column), cmp, name)
	}
	return fmt.Sprintf("%s %s :%s", c.dialect.TextCast(column), cmp, name)
}

func (c *PredicateCompiler) nextParam() string {
	name := fmt.Sprintf("param_%d", c.paramSeq)
	c.paramSeq++
	return name
}

// asOperatorMap reports whether value is an operator map rather than a
// literal. Any map-typed value is treated as one; unknown keys surface as
// unsupported-operator errors downstream.
func asOperatorMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case models.Filter:
		return v, true
	default:
		return nil, false
	}
}
