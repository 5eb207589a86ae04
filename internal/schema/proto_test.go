package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/object"
)

func TestToProtoDescriptorFlatMap(t *testing.T) {
	env := object.NewEnvironment()
	point := &ast.TypeMap{
		Keys:     []string{"x", "y"},
		Entries:  map[string]ast.Type{"x": &ast.TypeTerminal{Name: "Int"}, "y": &ast.TypeTerminal{Name: "Int"}},
		Required: map[string]bool{"x": true, "y": true},
	}

	md, err := ToProtoDescriptor(point, env, "Point")
	require.NoError(t, err)
	require.Equal(t, "Point", md.GetName())
	require.Len(t, md.GetFields(), 2)
}

func TestToProtoDescriptorRejectsNonMap(t *testing.T) {
	env := object.NewEnvironment()
	_, err := ToProtoDescriptor(&ast.TypeTerminal{Name: "Int"}, env, "NotAMessage")
	require.Error(t, err)
}

func TestNewDynamicMessagePopulatesFields(t *testing.T) {
	env := object.NewEnvironment()
	point := &ast.TypeMap{
		Keys:     []string{"x", "y"},
		Entries:  map[string]ast.Type{"x": &ast.TypeTerminal{Name: "Int"}, "y": &ast.TypeTerminal{Name: "Int"}},
		Required: map[string]bool{"x": true, "y": true},
	}
	v := object.NewMap([]string{"x", "y"}, map[string]object.Value{
		"x": &object.Integer{Value: 3},
		"y": &object.Integer{Value: 4},
	})

	msg, err := NewDynamicMessage(point, env, "Point", v)
	require.NoError(t, err)
	require.NotNil(t, msg)
}
