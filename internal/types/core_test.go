package types

import (
	"testing"

	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/object"
)

func term(name string) *ast.TypeTerminal { return &ast.TypeTerminal{Name: name} }

func tmap(keys []string, entries map[string]ast.Type, required ...string) *ast.TypeMap {
	req := map[string]bool{}
	for _, k := range required {
		req[k] = true
	}
	return &ast.TypeMap{Keys: keys, Entries: entries, Required: req}
}

var env = object.NewEnvironment()

func TestSubtypeReflexivity(t *testing.T) {
	types := []ast.Type{
		term("Int"), term("Str"), term("Any"), term("Null"),
		&ast.TypeArray{Element: term("Int")},
		tmap([]string{"a"}, map[string]ast.Type{"a": term("Int")}, "a"),
		&ast.TypeUnary{Inner: term("Int")},
		&ast.TypeBinary{Left: term("Int"), Right: term("Str")},
	}
	for _, ty := range types {
		ok, err := Subtype(ty, ty, env, env)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Errorf("expected %#v ⊑ itself", ty)
		}
	}
}

func TestSubtypeTop(t *testing.T) {
	ok, err := Subtype(term("Int"), term("Any"), env, env)
	if err != nil || !ok {
		t.Errorf("expected Int ⊑ Any, got %v, %v", ok, err)
	}
}

func TestNullableWidening(t *testing.T) {
	unary := &ast.TypeUnary{Inner: term("Int")}
	ok, _ := Subtype(term("Int"), unary, env, env)
	if !ok {
		t.Error("expected Int ⊑ Int?")
	}
	ok, _ = Subtype(term("Null"), unary, env, env)
	if !ok {
		t.Error("expected Null ⊑ Int?")
	}
}

func TestArrayContainerWidening(t *testing.T) {
	arr := &ast.TypeArray{Element: term("Int")}
	ok, _ := Subtype(arr, term("Array"), env, env)
	if !ok {
		t.Error("expected [Int] ⊑ Array")
	}
}

func TestMapContainerWidening(t *testing.T) {
	m := tmap([]string{"a"}, map[string]ast.Type{"a": term("Int")}, "a")
	ok, _ := Subtype(m, term("Object"), env, env)
	if !ok {
		t.Error("expected map ⊑ Object")
	}
}

func TestIntNumDisjoint(t *testing.T) {
	ok, err := ValueOf(&object.Integer{Value: 3}, term("Num"), env)
	if err != nil || ok {
		t.Errorf("expected Integer not to satisfy Num, got %v, %v", ok, err)
	}
	ok, err = ValueOf(&object.Float{Value: 3.0}, term("Int"), env)
	if err != nil || ok {
		t.Errorf("expected Float not to satisfy Int, got %v, %v", ok, err)
	}
}

func TestStrictClosedMap(t *testing.T) {
	target := tmap([]string{"a"}, map[string]ast.Type{"a": term("Int")}, "a")
	v := object.NewMap([]string{"a", "b"}, map[string]object.Value{
		"a": &object.Integer{Value: 1},
		"b": &object.Integer{Value: 2},
	})
	ok, err := ValueOf(v, target, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected {a: 1, b: 2} not to satisfy {a: Int}")
	}
}

func TestValueOfRequiredMap(t *testing.T) {
	target := tmap([]string{"name", "age"},
		map[string]ast.Type{"name": term("Str"), "age": term("Int")},
		"name", "age")
	v := object.NewMap([]string{"name", "age"}, map[string]object.Value{
		"name": &object.String{Value: "x"},
		"age":  &object.Integer{Value: 3},
	})
	ok, err := ValueOf(v, target, env)
	if err != nil || !ok {
		t.Errorf("expected required map to satisfy, got %v, %v", ok, err)
	}
}

func TestRequiredSetEqualityBlocksWidth(t *testing.T) {
	// {a: Int, b?: Str} is not a subtype of {a: Int}: both required sets
	// are {a}, but key b is not declared in {a: Int}, so the width check
	// rejects it.
	wide := tmap([]string{"a", "b"}, map[string]ast.Type{"a": term("Int"), "b": term("Str")}, "a")
	narrow := tmap([]string{"a"}, map[string]ast.Type{"a": term("Int")}, "a")
	ok, _ := Subtype(wide, narrow, env, env)
	if ok {
		t.Error("expected {a: Int, b?: Str} not ⊑ {a: Int} (b is not declared in {a: Int})")
	}

	// {a: Int} is not a subtype of {a?: Int, b?: Str}: width (keys subset)
	// holds, but the required sets differ ({a} vs {}).
	other := tmap([]string{"a", "b"}, map[string]ast.Type{"a": term("Int"), "b": term("Str")})
	ok, _ = Subtype(narrow, other, env, env)
	if ok {
		t.Error("expected {a: Int} not ⊑ {a?: Int, b?: Str} (required sets differ: {a} vs {})")
	}
}

func TestSelfReferentialAliasTerminates(t *testing.T) {
	// type List = {head: Int, tail: List?}
	listEnv := object.NewEnvironment()
	listMap := tmap([]string{"head", "tail"}, map[string]ast.Type{
		"head": term("Int"),
		"tail": &ast.TypeUnary{Inner: term("List")},
	}, "head", "tail")
	listEnv.Define("List", &object.TypeValue{Def: listMap, Env: listEnv})

	listTerm := term("List")
	ok, err := Subtype(listTerm, listTerm, listEnv, listEnv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected List ⊑ List to terminate and succeed")
	}

	inner := object.NewMap([]string{"head", "tail"}, map[string]object.Value{
		"head": &object.Integer{Value: 2},
		"tail": &object.Null{},
	})
	outer := object.NewMap([]string{"head", "tail"}, map[string]object.Value{
		"head": &object.Integer{Value: 1},
		"tail": inner,
	})
	listAlias := &object.TypeValue{Def: listTerm, Env: listEnv}
	if !CheckType(outer, listAlias) {
		t.Error("expected nested list value to satisfy self-referential List alias")
	}

	bad := object.NewMap([]string{"head", "tail"}, map[string]object.Value{
		"head": &object.Integer{Value: 1},
		"tail": &object.String{Value: "x"},
	})
	if CheckType(bad, listAlias) {
		t.Error("expected {head: 1, tail: \"x\"} to be rejected by List alias")
	}
}

func TestTypeOfConsistency(t *testing.T) {
	values := []object.Value{
		&object.Null{},
		&object.Boolean{Value: true},
		&object.Integer{Value: 7},
		&object.Float{Value: 1.5},
		&object.String{Value: "hi"},
		&object.List{Elements: []object.Value{&object.Integer{Value: 1}, &object.Integer{Value: 2}}},
		object.NewMap([]string{"a"}, map[string]object.Value{"a": &object.Integer{Value: 1}}),
	}
	for _, v := range values {
		inferred := TypeOf(v)
		ok, err := ValueOf(v, inferred, env)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Errorf("expected valueOf(%v) ⊑ typeOf(%v)", v, v)
		}
	}
}

func TestTypeOfListJoin(t *testing.T) {
	list := func(vs ...object.Value) *object.List { return &object.List{Elements: vs} }

	cases := []struct {
		name string
		v    *object.List
		want ast.Type
	}{
		{"ints", list(&object.Integer{Value: 1}, &object.Integer{Value: 2}, &object.Integer{Value: 3}),
			&ast.TypeArray{Element: term("Int")}},
		{"nullable ints", list(&object.Integer{Value: 1}, &object.Null{}, &object.Integer{Value: 2}),
			&ast.TypeArray{Element: &ast.TypeUnary{Inner: term("Int")}}},
		{"mixed", list(&object.Integer{Value: 1}, &object.String{Value: "x"}),
			&ast.TypeArray{Element: term("Any")}},
		{"empty", list(), term("Array")},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := TypeOf(c.v)
			ok, err := Subtype(got, c.want, env, env)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ok {
				t.Errorf("typeOf(%s) = %#v, want something ⊑ %#v", c.name, got, c.want)
			}
			ok, err = Subtype(c.want, got, env, env)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ok {
				t.Errorf("typeOf(%s) = %#v, want something ⊒ %#v", c.name, got, c.want)
			}
		})
	}
}

func TestEnforceCallTypeMismatch(t *testing.T) {
	fn := &object.NativeFunction{
		Name:  "double",
		Types: &ast.TypeBinary{Left: term("Num"), Right: term("Num")},
		Env:   env,
		Fn: func(arg object.Value) (object.Value, error) {
			return &object.Float{Value: arg.(*object.Float).Value * 2}, nil
		},
	}

	_, err := EnforceCall(fn, &object.Integer{Value: 3}, fn.Fn)
	if err == nil {
		t.Fatal("expected TypeMismatchError passing an Int where Num is declared")
	}
	mismatch, ok := err.(*MismatchError)
	if !ok {
		t.Fatalf("expected *MismatchError, got %T", err)
	}
	if mismatch.Side != MismatchInput {
		t.Errorf("expected input-side mismatch, got %s", mismatch.Side)
	}

	result, err := EnforceCall(fn, &object.Float{Value: 3}, fn.Fn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(*object.Float).Value != 6 {
		t.Errorf("expected 6, got %v", result)
	}
}

func TestResolveUnknownAlias(t *testing.T) {
	_, _, err := Resolve(term("DoesNotExist"), object.NewEnvironment())
	if err == nil {
		t.Fatal("expected ResolutionError for unknown alias")
	}
	if _, ok := err.(*ResolutionError); !ok {
		t.Fatalf("expected *ResolutionError, got %T", err)
	}
}

func TestIsSubtypeRejectsNonTypeValues(t *testing.T) {
	tv := &object.TypeValue{Def: term("Int"), Env: env}
	if IsSubtype(&object.Integer{Value: 1}, tv) {
		t.Error("expected IsSubtype to reject a non-TypeValue left operand")
	}
	if IsSubtype(tv, &object.Integer{Value: 1}) {
		t.Error("expected IsSubtype to reject a non-TypeValue right operand")
	}
}
