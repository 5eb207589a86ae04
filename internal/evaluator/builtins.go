package evaluator

import (
	"fmt"
	"math"
	"strings"

	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/object"
	"github.com/mindscript-lang/mindscript/internal/printer"
	"github.com/mindscript-lang/mindscript/internal/types"
)

func anyArrow() *ast.TypeBinary {
	any := &ast.TypeTerminal{Name: "Any"}
	return &ast.TypeBinary{Left: any, Right: any}
}

func native(env *object.Environment, name string, arrow *ast.TypeBinary, fn func(object.Value) (object.Value, error)) *object.NativeFunction {
	return &object.NativeFunction{Name: name, Types: arrow, Fn: fn, Env: env}
}

// curried2 builds a two-argument builtin as a native function returning a
// native function, matching the single-argument Callable convention every
// call boundary (spec §4.7) enforces against.
func curried2(env *object.Environment, name string, fn func(a, b object.Value) (object.Value, error)) *object.NativeFunction {
	arrow := anyArrow()
	return native(env, name, arrow, func(a object.Value) (object.Value, error) {
		inner := native(env, name+"(…)", arrow, func(b object.Value) (object.Value, error) {
			return fn(a, b)
		})
		return inner, nil
	})
}

// registerBuiltins binds the standard library into env, grounded on the
// original implementation's startup.py preamble: type introspection
// (typeof, issubtype, checktype), printing (print, str), assertion, and a
// small numeric/string/list toolkit.
func (e *Evaluator) registerBuiltins(env *object.Environment) {
	env.Define("typeof", native(env, "typeof", anyArrow(), func(v object.Value) (object.Value, error) {
		// A Callable's arrow (types.TypeOf's result for it) may reference
		// aliases bound only in the callable's own closure, e.g. a
		// `type Local = Int` declared inside the enclosing function body —
		// the TypeValue must carry that definition-site environment, not
		// the environment typeof itself was registered in, or resolving
		// such an alias later raises a spurious ResolutionError.
		defEnv := env
		if c, ok := v.(object.Callable); ok {
			defEnv = c.DefEnv()
		}
		return &object.TypeValue{Def: types.TypeOf(v), Env: defEnv}, nil
	}))

	env.Define("issubtype", curried2(env, "issubtype", func(a, b object.Value) (object.Value, error) {
		ta, ok := a.(*object.TypeValue)
		if !ok {
			return nil, fmt.Errorf("issubtype: first argument must be a Type, got %s", printer.PrintType(types.TypeOf(a)))
		}
		tb, ok := b.(*object.TypeValue)
		if !ok {
			return nil, fmt.Errorf("issubtype: second argument must be a Type, got %s", printer.PrintType(types.TypeOf(b)))
		}
		return &object.Boolean{Value: types.IsSubtype(ta, tb)}, nil
	}))

	env.Define("checktype", curried2(env, "checktype", func(v, t object.Value) (object.Value, error) {
		tv, ok := t.(*object.TypeValue)
		if !ok {
			return nil, fmt.Errorf("checktype: second argument must be a Type, got %s", printer.PrintType(types.TypeOf(t)))
		}
		return &object.Boolean{Value: types.CheckType(v, tv)}, nil
	}))

	env.Define("assert", curried2(env, "assert", func(v, t object.Value) (object.Value, error) {
		tv, ok := t.(*object.TypeValue)
		if !ok {
			return nil, fmt.Errorf("assert: second argument must be a Type, got %s", printer.PrintType(types.TypeOf(t)))
		}
		ok, err := types.ValueOf(v, tv.Def, tv.Env)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, types.NewMismatchError("", types.MismatchInput, printer.PrintType(tv.Def), printer.PrintType(types.TypeOf(v)))
		}
		return v, nil
	}))

	env.Define("str", native(env, "str", anyArrow(), func(v object.Value) (object.Value, error) {
		return &object.String{Value: printer.PrintValue(v)}, nil
	}))

	env.Define("print", native(env, "print", anyArrow(), func(v object.Value) (object.Value, error) {
		fmt.Fprintln(e.Out(), printer.PrintValue(v))
		return v, nil
	}))

	env.Define("len", native(env, "len", anyArrow(), func(v object.Value) (object.Value, error) {
		switch c := v.(type) {
		case *object.List:
			return &object.Integer{Value: int64(len(c.Elements))}, nil
		case *object.Map:
			return &object.Integer{Value: int64(len(c.Keys))}, nil
		case *object.String:
			return &object.Integer{Value: int64(len(c.Value))}, nil
		default:
			return nil, fmt.Errorf("len: unsupported argument type %s", printer.PrintType(types.TypeOf(v)))
		}
	}))

	e.registerMathBuiltins(env)
	e.registerStringBuiltins(env)
	e.registerListBuiltins(env)
}

// Out returns the writer print() writes to. Overridden by pkg/cli to route
// REPL and script output; defaults to nothing written here since the
// zero-value Evaluator has no io.Writer configured — pkg/cli always
// constructs one with SetOut before running user code.
func (e *Evaluator) Out() writer {
	if e.out == nil {
		return discard{}
	}
	return e.out
}

// SetOut installs the writer print() sends rendered values to.
func (e *Evaluator) SetOut(w writer) { e.out = w }

type writer interface {
	Write(p []byte) (int, error)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func (e *Evaluator) registerMathBuiltins(env *object.Environment) {
	env.Define("PI", &object.Float{Value: math.Pi})
	env.Define("E", &object.Float{Value: math.E})

	unary := func(name string, fn func(float64) float64) *object.NativeFunction {
		return native(env, name, anyArrow(), func(v object.Value) (object.Value, error) {
			f, ok := asFloat(v)
			if !ok {
				return nil, fmt.Errorf("%s: argument must be Int or Num", name)
			}
			return &object.Float{Value: fn(f)}, nil
		})
	}
	env.Define("sin", unary("sin", math.Sin))
	env.Define("cos", unary("cos", math.Cos))
	env.Define("tan", unary("tan", math.Tan))
	env.Define("sqrt", unary("sqrt", math.Sqrt))
	env.Define("log", unary("log", math.Log))

	env.Define("pow", curried2(env, "pow", func(a, b object.Value) (object.Value, error) {
		af, aok := asFloat(a)
		bf, bok := asFloat(b)
		if !aok || !bok {
			return nil, fmt.Errorf("pow: both arguments must be Int or Num")
		}
		return &object.Float{Value: math.Pow(af, bf)}, nil
	}))
}

func (e *Evaluator) registerStringBuiltins(env *object.Environment) {
	str := func(v object.Value) (*object.String, error) {
		s, ok := v.(*object.String)
		if !ok {
			return nil, fmt.Errorf("expected Str, got %s", printer.PrintType(types.TypeOf(v)))
		}
		return s, nil
	}

	env.Define("tolower", native(env, "tolower", anyArrow(), func(v object.Value) (object.Value, error) {
		s, err := str(v)
		if err != nil {
			return nil, err
		}
		return &object.String{Value: strings.ToLower(s.Value)}, nil
	}))
	env.Define("toupper", native(env, "toupper", anyArrow(), func(v object.Value) (object.Value, error) {
		s, err := str(v)
		if err != nil {
			return nil, err
		}
		return &object.String{Value: strings.ToUpper(s.Value)}, nil
	}))
	env.Define("strip", native(env, "strip", anyArrow(), func(v object.Value) (object.Value, error) {
		s, err := str(v)
		if err != nil {
			return nil, err
		}
		return &object.String{Value: strings.TrimSpace(s.Value)}, nil
	}))

	env.Define("split", curried2(env, "split", func(a, b object.Value) (object.Value, error) {
		s, err := str(a)
		if err != nil {
			return nil, err
		}
		sep, err := str(b)
		if err != nil {
			return nil, err
		}
		parts := strings.Split(s.Value, sep.Value)
		elems := make([]object.Value, len(parts))
		for i, p := range parts {
			elems[i] = &object.String{Value: p}
		}
		return &object.List{Elements: elems}, nil
	}))

	env.Define("replace", native(env, "replace", anyArrow(), func(v object.Value) (object.Value, error) {
		s, err := str(v)
		if err != nil {
			return nil, err
		}
		return native(env, "replace(…)", anyArrow(), func(from object.Value) (object.Value, error) {
			f, err := str(from)
			if err != nil {
				return nil, err
			}
			return native(env, "replace(…)(…)", anyArrow(), func(to object.Value) (object.Value, error) {
				t, err := str(to)
				if err != nil {
					return nil, err
				}
				return &object.String{Value: strings.ReplaceAll(s.Value, f.Value, t.Value)}, nil
			}), nil
		}), nil
	}))
}

func (e *Evaluator) registerListBuiltins(env *object.Environment) {
	list := func(v object.Value) (*object.List, error) {
		l, ok := v.(*object.List)
		if !ok {
			return nil, fmt.Errorf("expected a list, got %s", printer.PrintType(types.TypeOf(v)))
		}
		return l, nil
	}

	env.Define("push", curried2(env, "push", func(l, v object.Value) (object.Value, error) {
		xs, err := list(l)
		if err != nil {
			return nil, err
		}
		next := append(append([]object.Value(nil), xs.Elements...), v)
		return &object.List{Elements: next}, nil
	}))

	env.Define("pop", native(env, "pop", anyArrow(), func(v object.Value) (object.Value, error) {
		xs, err := list(v)
		if err != nil {
			return nil, err
		}
		if len(xs.Elements) == 0 {
			return nil, fmt.Errorf("pop: list is empty")
		}
		return &object.List{Elements: append([]object.Value(nil), xs.Elements[:len(xs.Elements)-1]...)}, nil
	}))

	env.Define("shift", native(env, "shift", anyArrow(), func(v object.Value) (object.Value, error) {
		xs, err := list(v)
		if err != nil {
			return nil, err
		}
		if len(xs.Elements) == 0 {
			return nil, fmt.Errorf("shift: list is empty")
		}
		return &object.List{Elements: append([]object.Value(nil), xs.Elements[1:]...)}, nil
	}))
}
