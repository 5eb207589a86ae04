// Package schema serializes a mindscript type expression into two external
// schema formats: a plain JSON Schema document and a protobuf
// FileDescriptor/dynamicpb.Message pair (proto.go). Both defer alias
// resolution to internal/types.Resolve, matching the original
// interpreter's `schema` builtin (ms/native.py Schema), which only ever
// serializes a type against the environment it was declared or looked up
// in.
package schema

import (
	"fmt"

	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/object"
	"github.com/mindscript-lang/mindscript/internal/types"
)

// ToJSONSchema renders t as a JSON Schema (draft 2020-12) document,
// represented as a plain Go value ready for encoding/json.Marshal.
func ToJSONSchema(t ast.Type, env *object.Environment) (map[string]any, error) {
	return toJSONSchema(t, env, map[ast.Type]bool{})
}

func toJSONSchema(t ast.Type, env *object.Environment, visiting map[ast.Type]bool) (map[string]any, error) {
	resolved, rEnv, err := types.Resolve(t, env)
	if err != nil {
		return nil, err
	}
	t, env = resolved, rEnv

	if visiting[t] {
		// A cyclic alias (e.g. a linked-list shape) can't be fully inlined
		// into a JSON Schema document without $ref support; report it as an
		// open object rather than recursing forever.
		return map[string]any{"type": "object"}, nil
	}

	switch n := t.(type) {
	case *ast.TypeTerminal:
		return terminalSchema(n.Name)
	case *ast.TypeArray:
		visiting[t] = true
		defer delete(visiting, t)
		items, err := toJSONSchema(n.Element, env, visiting)
		if err != nil {
			return nil, err
		}
		return map[string]any{"type": "array", "items": items}, nil
	case *ast.TypeMap:
		visiting[t] = true
		defer delete(visiting, t)
		props := map[string]any{}
		var required []string
		for _, key := range n.Keys {
			fieldSchema, err := toJSONSchema(n.Entries[key], env, visiting)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", key, err)
			}
			props[key] = fieldSchema
			if n.Required[key] {
				required = append(required, key)
			}
		}
		doc := map[string]any{
			"type":                 "object",
			"properties":           props,
			"additionalProperties": false,
		}
		if len(required) > 0 {
			doc["required"] = required
		}
		return doc, nil
	case *ast.TypeUnary:
		inner, err := toJSONSchema(n.Inner, env, visiting)
		if err != nil {
			return nil, err
		}
		// `T?` — nullable widening (spec C6) becomes a two-branch union.
		return map[string]any{"anyOf": []any{inner, map[string]any{"type": "null"}}}, nil
	case *ast.TypeEnum:
		values := make([]any, len(n.Values))
		for i, v := range n.Values {
			values[i] = literalValue(v)
		}
		return map[string]any{"enum": values}, nil
	case *ast.TypeGrouping:
		return toJSONSchema(n.Inner, env, visiting)
	case *ast.TypeBinary:
		// Arrow (function) types have no JSON Schema analogue; describe the
		// shape for documentation purposes only, not for validation.
		return map[string]any{"type": "string", "description": "function value, not JSON-representable"}, nil
	default:
		return nil, fmt.Errorf("schema: unsupported type node %T", t)
	}
}

func terminalSchema(name string) (map[string]any, error) {
	switch name {
	case "Null":
		return map[string]any{"type": "null"}, nil
	case "Bool":
		return map[string]any{"type": "boolean"}, nil
	case "Int":
		return map[string]any{"type": "integer"}, nil
	case "Num":
		return map[string]any{"type": "number"}, nil
	case "Str":
		return map[string]any{"type": "string"}, nil
	case "Any":
		return map[string]any{}, nil
	case "Array":
		return map[string]any{"type": "array"}, nil
	case "Object":
		return map[string]any{"type": "object"}, nil
	case "Type":
		return map[string]any{"type": "string", "description": "type value"}, nil
	default:
		// types.Resolve already dereferences named aliases, so a
		// TypeTerminal surviving to here can only be an unrecognized
		// primitive name — not possible given token.IsPrimitiveTypeName,
		// but guarded rather than assumed.
		return nil, fmt.Errorf("schema: unsupported primitive %q", name)
	}
}

func literalValue(lit ast.Literal) any {
	switch lit.Kind {
	case ast.LitNull:
		return nil
	case ast.LitBool:
		return lit.Bool
	case ast.LitInt:
		return lit.Int
	case ast.LitFloat:
		return lit.Float
	case ast.LitStr:
		return lit.Str
	default:
		return nil
	}
}
