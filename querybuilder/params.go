package querybuilder

import (
	"reflect"
	"regexp"
	"strings"
)

// namedParamPattern matches only compiler-generated parameter tokens
// (:param_N, :param_N_M and the spread form :...param_N). Restricting the
// name shape keeps dialect syntax like the postgres ::text cast intact.
var namedParamPattern = regexp.MustCompile(`:(\.\.\.)?(param_[0-9]+(?:_[0-9]+)?)`)

// expandNamed rewrites named parameter tokens to ? placeholders and
// returns the argument list in order of appearance. Spread tokens expand
// array values element-wise; a spread over an empty array expands to
// nothing, which is how an unguarded empty NOT IN list surfaces as a SQL
// error instead of silently matching.
func expandNamed(sql string, params map[string]any) (string, []any) {
	var args []any

	out := namedParamPattern.ReplaceAllStringFunc(sql, func(match string) string {
		groups := namedParamPattern.FindStringSubmatch(match)
		spread, name := groups[1] == "...", groups[2]

		value, ok := params[name]
		if !ok {
			return match
		}

		if spread {
			elems, _ := toSlice(value)
			placeholders := make([]string, len(elems))
			for i, elem := range elems {
				placeholders[i] = "?"
				args = append(args, elem)
			}
			return strings.Join(placeholders, ", ")
		}

		args = append(args, value)
		return "?"
	})

	return out, args
}

// toSlice converts any slice or array value to []any.
func toSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out, true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
