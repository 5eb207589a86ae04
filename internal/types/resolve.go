package types

import (
	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/object"
	"github.com/mindscript-lang/mindscript/internal/token"
)

// Resolve canonicalizes a type expression and the environment in which its
// embedded references should be interpreted (spec core component C4).
//
// It strips transparent TypeAnnotation/TypeGrouping wrappers and
// dereferences named aliases through env, repeating until a constructor
// node (terminal primitive, array, map, unary, enum, binary) remains.
// Resolve does not itself guard against alias cycles — a self-referential
// alias loops forever here unless the caller already holds a cycle guard.
// Subtype (C6) is the only caller that resolves inside such a loop; every
// other caller in this package resolves a type exactly once and therefore
// never needs the guard itself.
func Resolve(t ast.Type, env *object.Environment) (ast.Type, *object.Environment, error) {
	for {
		switch n := t.(type) {
		case *ast.TypeAnnotation:
			t = n.Inner
		case *ast.TypeGrouping:
			t = n.Inner
		case *ast.TypeTerminal:
			if token.IsPrimitiveTypeName(n.Name) {
				return t, env, nil
			}
			bound, ok := env.Get(n.Name)
			if !ok {
				return nil, nil, NewResolutionError(n.Name)
			}
			tv, ok := bound.(*object.TypeValue)
			if !ok {
				return nil, nil, NewResolutionError(n.Name)
			}
			t = tv.Def
			env = tv.Env
		default:
			return t, env, nil
		}
	}
}
