// Package typesvc exposes the five external interfaces of spec.md §6
// (typeOf, checkType, isSubtype, resolve, enforceCall) as a gRPC service,
// so a non-Go caller — or a Go process that would rather not embed the
// interpreter — can drive mindscript's type discipline remotely.
//
// There is no fixed .proto schema to compile ahead of time: the shapes
// exchanged are themselves mindscript values and type expressions, whose
// structure is only known once a script declares them at runtime. Rather
// than hand-maintain a lowest-common-denominator .proto message for "any
// mindscript value", the service registers a custom grpc/encoding codec
// (codec.go) that marshals plain Go request/response structs with
// encoding/json over the ordinary gRPC/HTTP2 transport, and wires up a
// grpc.ServiceDesc by hand instead of from protoc-gen-go output.
package typesvc

import (
	"fmt"

	"github.com/mindscript-lang/mindscript/internal/object"
)

// TypeOfRequest carries a JSON-shaped value to compute the minimal type of.
type TypeOfRequest struct {
	Value any `json:"value"`
}

// TypeOfResponse carries the printed surface syntax of the result type.
type TypeOfResponse struct {
	Type string `json:"type"`
}

// CheckTypeRequest asks whether Value satisfies the type named by Type,
// printed in surface syntax and resolved against the server's session
// environment (SaveAlias/internal/store).
type CheckTypeRequest struct {
	Value   any    `json:"value"`
	Type    string `json:"type"`
	Session string `json:"session,omitempty"`
}

type CheckTypeResponse struct {
	Ok bool `json:"ok"`
}

// IsSubtypeRequest asks whether A ⊑ B, both printed in surface syntax.
type IsSubtypeRequest struct {
	A       string `json:"a"`
	B       string `json:"b"`
	Session string `json:"session,omitempty"`
}

type IsSubtypeResponse struct {
	Ok bool `json:"ok"`
}

// ResolveRequest asks the server to dereference a named alias down to its
// underlying constructor shape.
type ResolveRequest struct {
	Type    string `json:"type"`
	Session string `json:"session,omitempty"`
}

type ResolveResponse struct {
	Type string `json:"type"`
}

// EnforceCallRequest asks the server to run spec §4.7's call-boundary
// protocol: check Arg against the callable's declared input, invoke it,
// then check the result against its declared output. A live object.Callable
// has no JSON wire shape (see valueToJSON's doc comment), so Func instead
// carries mindscript source text for a single function-literal expression,
// e.g. `function(x: Int) -> Int do x + 1 end`; the server parses and
// evaluates it in the session environment to obtain the Callable.
type EnforceCallRequest struct {
	Func    string `json:"func"`
	Arg     any    `json:"arg"`
	Session string `json:"session,omitempty"`
}

type EnforceCallResponse struct {
	Result any `json:"result"`
}

// valueToJSON renders a runtime value as a plain JSON-marshalable Go
// value. Callables have no JSON shape (same limitation internal/schema
// documents for function types) and are rejected.
func valueToJSON(v object.Value) (any, error) {
	switch n := v.(type) {
	case *object.Null, nil:
		return nil, nil
	case *object.Boolean:
		return n.Value, nil
	case *object.Integer:
		return n.Value, nil
	case *object.Float:
		return n.Value, nil
	case *object.String:
		return n.Value, nil
	case *object.List:
		out := make([]any, len(n.Elements))
		for i, e := range n.Elements {
			jv, err := valueToJSON(e)
			if err != nil {
				return nil, err
			}
			out[i] = jv
		}
		return out, nil
	case *object.Map:
		out := make(map[string]any, len(n.Keys))
		for _, k := range n.Keys {
			ev, _ := n.Get(k)
			jv, err := valueToJSON(ev)
			if err != nil {
				return nil, err
			}
			out[k] = jv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("typesvc: value of type %T has no JSON wire representation", v)
	}
}

// jsonToValue is valueToJSON's inverse, decoding the plain Go values
// encoding/json produces for a JSON document (nil, bool, float64, string,
// []any, map[string]any) back into runtime Values.
func jsonToValue(j any) (object.Value, error) {
	switch n := j.(type) {
	case nil:
		return &object.Null{}, nil
	case bool:
		return &object.Boolean{Value: n}, nil
	case float64:
		if n == float64(int64(n)) {
			return &object.Integer{Value: int64(n)}, nil
		}
		return &object.Float{Value: n}, nil
	case string:
		return &object.String{Value: n}, nil
	case []any:
		elems := make([]object.Value, len(n))
		for i, e := range n {
			v, err := jsonToValue(e)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &object.List{Elements: elems}, nil
	case map[string]any:
		keys := make([]string, 0, len(n))
		entries := make(map[string]object.Value, len(n))
		for k, e := range n {
			v, err := jsonToValue(e)
			if err != nil {
				return nil, err
			}
			keys = append(keys, k)
			entries[k] = v
		}
		return object.NewMap(keys, entries), nil
	default:
		return nil, fmt.Errorf("typesvc: cannot decode JSON value of type %T", j)
	}
}
