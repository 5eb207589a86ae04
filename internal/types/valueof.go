package types

import (
	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/object"
)

// ValueOf decides valueOf(v) ⊑ T (spec core component C5): whether v
// satisfies the target type t, resolved in env. It never returns an error
// for a well-formed t; a malformed alias reference surfaces as an error so
// the caller (an assertion or a call boundary) can report it as a
// ResolutionError instead of silently failing the check.
func ValueOf(v object.Value, t ast.Type, env *object.Environment) (bool, error) {
	rt, renv, err := Resolve(t, env)
	if err != nil {
		return false, err
	}

	if term, ok := rt.(*ast.TypeTerminal); ok && term.Name == "Any" {
		return true, nil
	}

	if _, ok := v.(*object.TypeValue); ok {
		if term, ok := rt.(*ast.TypeTerminal); ok && term.Name == "Type" {
			return true, nil
		}
	}

	if callable, ok := v.(object.Callable); ok {
		return Subtype(callable.Arrow(), rt, callable.DefEnv(), renv)
	}

	switch target := rt.(type) {
	case *ast.TypeTerminal:
		return valueOfTerminal(v, target.Name), nil
	case *ast.TypeArray:
		list, ok := v.(*object.List)
		if !ok {
			return false, nil
		}
		for _, el := range list.Elements {
			ok, err := ValueOf(el, target.Element, renv)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case *ast.TypeMap:
		m, ok := v.(*object.Map)
		if !ok {
			return false, nil
		}
		// Strict-closed: every present key must be declared.
		for _, k := range m.Keys {
			if !target.HasKey(k) {
				return false, nil
			}
		}
		for key, fieldType := range target.Entries {
			fv, present := m.Get(key)
			if !present {
				if target.Required[key] {
					return false, nil
				}
				continue
			}
			ok, err := ValueOf(fv, fieldType, renv)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case *ast.TypeEnum:
		return literalEquals(v, target.Values), nil
	case *ast.TypeUnary:
		if _, isNull := v.(*object.Null); isNull {
			return true, nil
		}
		return ValueOf(v, target.Inner, renv)
	default:
		return false, nil
	}
}

func valueOfTerminal(v object.Value, name string) bool {
	switch name {
	case "Null":
		_, ok := v.(*object.Null)
		return ok
	case "Bool":
		_, ok := v.(*object.Boolean)
		return ok
	case "Int":
		_, ok := v.(*object.Integer)
		return ok
	case "Num":
		_, ok := v.(*object.Float)
		return ok
	case "Str":
		_, ok := v.(*object.String)
		return ok
	case "Array":
		_, ok := v.(*object.List)
		return ok
	case "Object":
		_, ok := v.(*object.Map)
		return ok
	default:
		return false
	}
}

// literalEquals reports whether v deep-equals any of the enum's literal
// values.
func literalEquals(v object.Value, values []ast.Literal) bool {
	for _, lit := range values {
		if oneLiteralEquals(v, lit) {
			return true
		}
	}
	return false
}

func oneLiteralEquals(v object.Value, lit ast.Literal) bool {
	switch o := v.(type) {
	case *object.Null:
		return lit.Kind == ast.LitNull
	case *object.Boolean:
		return lit.Kind == ast.LitBool && o.Value == lit.Bool
	case *object.Integer:
		return lit.Kind == ast.LitInt && o.Value == lit.Int
	case *object.Float:
		return lit.Kind == ast.LitFloat && o.Value == lit.Float
	case *object.String:
		return lit.Kind == ast.LitStr && o.Value == lit.Str
	default:
		return false
	}
}
