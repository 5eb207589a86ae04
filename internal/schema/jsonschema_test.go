package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/object"
)

func TestToJSONSchemaPrimitives(t *testing.T) {
	env := object.NewEnvironment()
	cases := map[string]string{"Int": "integer", "Num": "number", "Str": "string", "Bool": "boolean", "Null": "null"}
	for name, want := range cases {
		doc, err := ToJSONSchema(&ast.TypeTerminal{Name: name}, env)
		require.NoError(t, err)
		require.Equal(t, want, doc["type"])
	}
}

func TestToJSONSchemaMap(t *testing.T) {
	env := object.NewEnvironment()
	point := &ast.TypeMap{
		Keys:     []string{"x", "y"},
		Entries:  map[string]ast.Type{"x": &ast.TypeTerminal{Name: "Int"}, "y": &ast.TypeTerminal{Name: "Int"}},
		Required: map[string]bool{"x": true, "y": true},
	}
	doc, err := ToJSONSchema(point, env)
	require.NoError(t, err)
	require.Equal(t, "object", doc["type"])
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	require.Len(t, props, 2)
	required, ok := doc["required"].([]string)
	require.True(t, ok)
	require.ElementsMatch(t, []string{"x", "y"}, required)
}

func TestToJSONSchemaArrayAndNullable(t *testing.T) {
	env := object.NewEnvironment()
	nums := &ast.TypeArray{Element: &ast.TypeUnary{Inner: &ast.TypeTerminal{Name: "Int"}}}
	doc, err := ToJSONSchema(nums, env)
	require.NoError(t, err)
	require.Equal(t, "array", doc["type"])
	items, ok := doc["items"].(map[string]any)
	require.True(t, ok)
	_, hasAnyOf := items["anyOf"]
	require.True(t, hasAnyOf)
}

func TestToJSONSchemaResolvesAlias(t *testing.T) {
	env := object.NewEnvironment()
	env.Define("Age", &object.TypeValue{Def: &ast.TypeTerminal{Name: "Int"}, Env: env})
	doc, err := ToJSONSchema(&ast.TypeTerminal{Name: "Age"}, env)
	require.NoError(t, err)
	require.Equal(t, "integer", doc["type"])
}

func TestToJSONSchemaSelfReferentialAliasTerminates(t *testing.T) {
	env := object.NewEnvironment()
	listType := &ast.TypeMap{
		Keys: []string{"head", "tail"},
		Entries: map[string]ast.Type{
			"head": &ast.TypeTerminal{Name: "Int"},
			"tail": &ast.TypeUnary{Inner: &ast.TypeTerminal{Name: "List"}},
		},
		Required: map[string]bool{"head": true, "tail": false},
	}
	env.Define("List", &object.TypeValue{Def: listType, Env: env})

	doc, err := ToJSONSchema(listType, env)
	require.NoError(t, err)
	require.Equal(t, "object", doc["type"])
}
