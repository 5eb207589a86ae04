package evaluator

import (
	"testing"

	"github.com/mindscript-lang/mindscript/internal/lexer"
	"github.com/mindscript-lang/mindscript/internal/object"
	"github.com/mindscript-lang/mindscript/internal/parser"
)

func run(t *testing.T, input string) object.Value {
	t.Helper()
	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors for %q: %v", input, errs)
	}
	e := New()
	v, err := e.Eval(program, e.Global)
	if err != nil {
		t.Fatalf("eval error for %q: %v", input, err)
	}
	return v
}

func TestEvalArithmetic(t *testing.T) {
	cases := []struct {
		input string
		want  int64
	}{
		{"1 + 2", 3},
		{"10 - 4", 6},
		{"3 * 4", 12},
		{"10 / 3", 3},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
	}
	for _, c := range cases {
		v := run(t, c.input)
		i, ok := v.(*object.Integer)
		if !ok || i.Value != c.want {
			t.Errorf("%q = %v, want Integer %d", c.input, v, c.want)
		}
	}
}

func TestEvalLetAndIdentifier(t *testing.T) {
	v := run(t, "let x = 5\nx + 1")
	i, ok := v.(*object.Integer)
	if !ok || i.Value != 6 {
		t.Errorf("got %v, want Integer 6", v)
	}
}

func TestEvalIfExpression(t *testing.T) {
	v := run(t, "if 1 < 2 do 10 end else do 20 end")
	i, ok := v.(*object.Integer)
	if !ok || i.Value != 10 {
		t.Errorf("got %v, want Integer 10", v)
	}
}

func TestEvalListAndIndex(t *testing.T) {
	v := run(t, "let xs = [1, 2, 3]\nxs[1]")
	i, ok := v.(*object.Integer)
	if !ok || i.Value != 2 {
		t.Errorf("got %v, want Integer 2", v)
	}
}

func TestEvalMapAndIndex(t *testing.T) {
	v := run(t, `let m = {name: "ada", age: 36}
m["name"]`)
	s, ok := v.(*object.String)
	if !ok || s.Value != "ada" {
		t.Errorf("got %v, want Str \"ada\"", v)
	}
}

func TestEvalFunctionCallEnforcesTypes(t *testing.T) {
	v := run(t, `let double = function(n: Int) -> Int do n * 2 end
double(21)`)
	i, ok := v.(*object.Integer)
	if !ok || i.Value != 42 {
		t.Errorf("got %v, want Integer 42", v)
	}
}

func TestEvalFunctionCallRejectsWrongInputType(t *testing.T) {
	l := lexer.New(`let double = function(n: Int) -> Int do n * 2 end
double("x")`)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors: %v", errs)
	}
	e := New()
	_, err := e.Eval(program, e.Global)
	if err == nil {
		t.Fatal("expected a type mismatch error calling double(\"x\")")
	}
}

func TestEvalTypeDeclarationAndAssert(t *testing.T) {
	v := run(t, `type Age = Int
assert(30, typeof(30))
assert(30, Age)`)
	i, ok := v.(*object.Integer)
	if !ok || i.Value != 30 {
		t.Errorf("got %v, want Integer 30", v)
	}
}

func TestEvalSelfReferentialTypeAlias(t *testing.T) {
	v := run(t, `type List = {head: Int, tail: List?}
let xs = {head: 1, tail: {head: 2, tail: null}}
checktype(xs, List)`)
	b, ok := v.(*object.Boolean)
	if !ok || !b.Value {
		t.Errorf("got %v, want Boolean true", v)
	}
}

func TestEvalIssubtype(t *testing.T) {
	v := run(t, `issubtype(Int, Any)`)
	b, ok := v.(*object.Boolean)
	if !ok || !b.Value {
		t.Errorf("got %v, want Boolean true", v)
	}
}

func TestEvalClosure(t *testing.T) {
	v := run(t, `let makeAdder = function(x: Int) -> function(y: Int) -> Int do
  function(y: Int) -> Int do x + y end
end
let addFive = makeAdder(5)
addFive(7)`)
	i, ok := v.(*object.Integer)
	if !ok || i.Value != 12 {
		t.Errorf("got %v, want Integer 12", v)
	}
}

func TestEvalTypeOfListJoinRoundTrip(t *testing.T) {
	v := run(t, `let xs = [1, null, 2]
checktype(xs, typeof(xs))`)
	b, ok := v.(*object.Boolean)
	if !ok || !b.Value {
		t.Errorf("got %v, want Boolean true", v)
	}
}

func TestEvalUndefinedNameErrors(t *testing.T) {
	l := lexer.New("doesNotExist")
	p := parser.New(l)
	program := p.ParseProgram()
	e := New()
	_, err := e.Eval(program, e.Global)
	if err == nil {
		t.Fatal("expected an undefined-name error")
	}
}
