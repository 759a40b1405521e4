package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"queryforge/queryforge_go_query_compiler_service/models"
)

func TestRelationSpecUnmarshalShapes(t *testing.T) {
	cases := []struct {
		name string
		json string
		want models.RelationSpec
	}{
		{
			name: "bare string",
			json: `"profile"`,
			want: models.RelationSpec{"profile": {}},
		},
		{
			name: "array of paths",
			json: `["profile", "profile.addresses"]`,
			want: models.RelationSpec{"profile": {}, "profile.addresses": {}},
		},
		{
			name: "object of booleans",
			json: `{"profile": true, "audit": false}`,
			want: models.RelationSpec{"profile": {}},
		},
		{
			name: "object of configs",
			json: `{"profile": {"select": ["age"], "joinType": "inner", "where": {"age": {"$gt": 18}}}}`,
			want: models.RelationSpec{"profile": {
				Select:   []string{"age"},
				JoinType: models.JoinInner,
				Where:    models.Filter{"age": map[string]any{"$gt": float64(18)}},
			}},
		},
		{
			name: "mixed booleans and configs",
			json: `{"profile": true, "profile.addresses": {"select": ["city"]}}`,
			want: models.RelationSpec{
				"profile":           {},
				"profile.addresses": {Select: []string{"city"}},
			},
		},
		{
			name: "null",
			json: `null`,
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var spec models.RelationSpec
			require.NoError(t, json.Unmarshal([]byte(tc.json), &spec))
			assert.Equal(t, tc.want, spec)
		})
	}
}

func TestRelationSpecUnmarshalRejectsOtherShapes(t *testing.T) {
	var spec models.RelationSpec
	assert.Error(t, json.Unmarshal([]byte(`42`), &spec))
	assert.Error(t, json.Unmarshal([]byte(`{"profile": "yes"}`), &spec))
}

func TestOrderSpecPreservesDocumentOrder(t *testing.T) {
	var order models.OrderSpec
	require.NoError(t, json.Unmarshal([]byte(`{"b": "desc", "a": "asc", "c": "DESC"}`), &order))

	assert.Equal(t, models.OrderSpec{
		{Field: "b", Direction: "DESC"},
		{Field: "a", Direction: "ASC"},
		{Field: "c", Direction: "DESC"},
	}, order)
}

func TestOrderSpecRejectsNonObject(t *testing.T) {
	var order models.OrderSpec
	assert.Error(t, json.Unmarshal([]byte(`["name"]`), &order))
	assert.Error(t, json.Unmarshal([]byte(`{"name": 1}`), &order))
}

func TestQueryOptionsUnmarshal(t *testing.T) {
	payload := `{
		"select": ["name", "email"],
		"relations": {"profile": {"select": ["age"]}},
		"where": {"status": "active"},
		"order": {"created_at": "desc"},
		"skip": 20,
		"take": 10,
		"withDeleted": true
	}`

	var opts models.QueryOptions
	require.NoError(t, json.Unmarshal([]byte(payload), &opts))

	assert.Equal(t, []string{"name", "email"}, opts.Select)
	assert.Equal(t, models.RelationSpec{"profile": {Select: []string{"age"}}}, opts.Relations)
	assert.Equal(t, models.Filter{"status": "active"}, opts.Where)
	assert.Equal(t, models.OrderSpec{{Field: "created_at", Direction: "DESC"}}, opts.Order)
	assert.Equal(t, uint64(20), opts.Skip)
	assert.Equal(t, uint64(10), opts.Take)
	assert.True(t, opts.WithDeleted)
	assert.False(t, opts.OnlyDeleted)
}
