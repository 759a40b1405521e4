package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Filter is a nested filter expression tree: field path -> literal
// (implicit equality), field path -> operator map, or a "$and"/"$or" key
// holding an array of nested filters.
type Filter map[string]any

// JoinType values accepted in a RelationConfig.
const (
	JoinLeft  = "left"
	JoinInner = "inner"
)

// RelationConfig is the per-relation configuration of a relation spec entry.
type RelationConfig struct {
	Select   []string `json:"select,omitempty"`
	Where    Filter   `json:"where,omitempty"`
	JoinType string   `json:"joinType,omitempty"`
}

// RelationSpec maps a dotted relation path to its configuration. On the
// wire it also accepts a bare relation name, an array of names, or a map
// whose values are booleans (plain left join).
type RelationSpec map[string]RelationConfig

func (s *RelationSpec) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = nil
		return nil
	}

	switch trimmed[0] {
	case '"':
		var single string
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		*s = RelationSpec{single: {}}
		return nil
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		spec := make(RelationSpec, len(list))
		for _, path := range list {
			spec[path] = RelationConfig{}
		}
		*s = spec
		return nil
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		spec := make(RelationSpec, len(raw))
		for path, value := range raw {
			value = bytes.TrimSpace(value)
			if len(value) > 0 && value[0] == '{' {
				var cfg RelationConfig
				if err := json.Unmarshal(value, &cfg); err != nil {
					return errors.Wrapf(err, "relation %q", path)
				}
				spec[path] = cfg
				continue
			}

			var enabled bool
			if err := json.Unmarshal(value, &enabled); err != nil {
				return errors.Wrapf(err, "relation %q", path)
			}
			if enabled {
				spec[path] = RelationConfig{}
			}
		}
		*s = spec
		return nil
	}

	return errors.New("relations must be a string, an array of strings or an object")
}

// OrderBy is one ordering clause.
type OrderBy struct {
	Field     string
	Direction string
}

// OrderSpec is the ordered list of ordering clauses. The wire shape is a
// JSON object from field path to "ASC"/"DESC"; document order is preserved
// by walking the raw tokens, since clauses compose left to right in
// priority order.
type OrderSpec []OrderBy

func (o *OrderSpec) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("order must be an object of field -> direction")
	}

	var spec OrderSpec
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		field, _ := keyTok.(string)

		var direction string
		if err := dec.Decode(&direction); err != nil {
			return errors.Wrapf(err, "order %q", field)
		}

		spec = append(spec, OrderBy{Field: field, Direction: strings.ToUpper(direction)})
	}

	*o = spec
	return nil
}

// QueryOptions is the single options object one query build consumes.
type QueryOptions struct {
	Select      []string     `json:"select,omitempty"`
	Relations   RelationSpec `json:"relations,omitempty"`
	Where       Filter       `json:"where,omitempty"`
	Order       OrderSpec    `json:"order,omitempty"`
	Skip        uint64       `json:"skip,omitempty"`
	Take        uint64       `json:"take,omitempty"`
	WithDeleted bool         `json:"withDeleted,omitempty"`
	OnlyDeleted bool         `json:"onlyDeleted,omitempty"`
}
