package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/lexer"
)

func parseType(t *testing.T, src string) ast.Type {
	t.Helper()
	p := New(lexer.New(src))
	got := p.ParseTypeExpression()
	require.Empty(t, p.Errors(), "parse errors for %q", src)
	return got
}

func TestParseAtomicTypes(t *testing.T) {
	typ := parseType(t, "Int")
	term, ok := typ.(*ast.TypeTerminal)
	require.True(t, ok)
	require.Equal(t, "Int", term.Name)
}

func TestParseArrayType(t *testing.T) {
	typ := parseType(t, "[Int]")
	arr, ok := typ.(*ast.TypeArray)
	require.True(t, ok)
	require.Equal(t, "Int", arr.Element.(*ast.TypeTerminal).Name)
}

func TestParseNullableType(t *testing.T) {
	typ := parseType(t, "Int?")
	u, ok := typ.(*ast.TypeUnary)
	require.True(t, ok)
	require.Equal(t, "Int", u.Inner.(*ast.TypeTerminal).Name)
}

func TestParseMapType(t *testing.T) {
	typ := parseType(t, "{x: Int, y?: Str}")
	m, ok := typ.(*ast.TypeMap)
	require.True(t, ok)
	require.True(t, m.HasKey("x"))
	require.True(t, m.HasKey("y"))
	require.ElementsMatch(t, []string{"x"}, requiredKeys(m))
}

func requiredKeys(m *ast.TypeMap) []string {
	var keys []string
	for k, required := range m.Required {
		if required {
			keys = append(keys, k)
		}
	}
	return keys
}

func TestParseFunctionType(t *testing.T) {
	typ := parseType(t, "function(x: Int) -> Str")
	fn, ok := typ.(*ast.TypeBinary)
	require.True(t, ok)
	require.Equal(t, "Int", fn.Left.(*ast.TypeTerminal).Name)
	require.Equal(t, "Str", fn.Right.(*ast.TypeTerminal).Name)
}

func TestParseFunctionTypeWithoutParamName(t *testing.T) {
	typ := parseType(t, "function(Int) -> Str")
	fn, ok := typ.(*ast.TypeBinary)
	require.True(t, ok)
	require.Equal(t, "Int", fn.Left.(*ast.TypeTerminal).Name)
}

func TestParseEnumType(t *testing.T) {
	typ := parseType(t, `Str :: ("a", "b")`)
	e, ok := typ.(*ast.TypeEnum)
	require.True(t, ok)
	require.Len(t, e.Values, 2)
}

func TestParseGroupingType(t *testing.T) {
	typ := parseType(t, "(Int)")
	g, ok := typ.(*ast.TypeGrouping)
	require.True(t, ok)
	require.Equal(t, "Int", g.Inner.(*ast.TypeTerminal).Name)
}

func TestParseProgramLetAndExpression(t *testing.T) {
	p := New(lexer.New("let x = 1\nx + 2"))
	program := p.ParseProgram()
	require.Empty(t, p.Errors())
	require.Len(t, program.Statements, 2)
	_, ok := program.Statements[0].(*ast.LetStatement)
	require.True(t, ok)
	_, ok = program.Statements[1].(*ast.ExpressionStatement)
	require.True(t, ok)
}

func TestParseTypeDeclarationStatement(t *testing.T) {
	p := New(lexer.New("type Id = Int"))
	program := p.ParseProgram()
	require.Empty(t, p.Errors())
	require.Len(t, program.Statements, 1)
	decl, ok := program.Statements[0].(*ast.TypeDeclarationStatement)
	require.True(t, ok)
	require.Equal(t, "Id", decl.Name.Value)
}

func TestParseNestedBlocksTerminateIndependently(t *testing.T) {
	src := "do\n" +
		"  let f = function(x: Int) -> Int do\n" +
		"    x + 1\n" +
		"  end\n" +
		"  f(1)\n" +
		"end"
	p := New(lexer.New(src))
	program := p.ParseProgram()
	require.Empty(t, p.Errors())
	require.Len(t, program.Statements, 1)
}

func TestParseReportsErrorOnIncompleteLet(t *testing.T) {
	p := New(lexer.New("let = 1"))
	p.ParseProgram()
	require.NotEmpty(t, p.Errors())
}
