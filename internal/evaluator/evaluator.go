// Package evaluator tree-walks the ambient expression/statement AST,
// calling into internal/types at every call boundary and assertion
// (spec C4-C7, §4.7) to enforce mindscript's structural type discipline.
package evaluator

import (
	"fmt"

	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/object"
	"github.com/mindscript-lang/mindscript/internal/printer"
	"github.com/mindscript-lang/mindscript/internal/types"
)

// Evaluator walks a parsed Program against a root Environment. It holds no
// per-call mutable state of its own; everything call-scoped lives on the
// Environment chain, mirroring the teacher's closure-capture discipline.
type Evaluator struct {
	Global *object.Environment
	out    writer
}

// New builds an Evaluator with a fresh global environment seeded with the
// primitive type names and the standard builtins (builtins.go).
func New() *Evaluator {
	env := object.NewEnvironment()
	bootstrapPrimitiveTypes(env)
	e := &Evaluator{Global: env}
	e.registerBuiltins(env)
	return e
}

// bootstrapPrimitiveTypes binds every primitive type name to a TypeValue in
// the global environment, so that a bare `Int` in expression position
// resolves through the ordinary identifier path (object.Environment.Get)
// exactly like any user-defined alias — the parser never special-cases
// TYPEID tokens as anything but identifiers (see internal/parser's design
// note on `type` as the sole compound-type-literal entry point).
func bootstrapPrimitiveTypes(env *object.Environment) {
	for _, name := range []string{"Null", "Bool", "Int", "Num", "Str", "Any", "Array", "Object", "Type"} {
		env.Define(name, &object.TypeValue{Def: &ast.TypeTerminal{Name: name}, Env: env})
	}
}

// Eval dispatches on the concrete AST node type and returns the resulting
// runtime value, or an error if evaluation failed.
func (e *Evaluator) Eval(node ast.Node, env *object.Environment) (object.Value, error) {
	switch n := node.(type) {
	case *ast.Program:
		return e.evalStatements(n.Statements, env)
	case *ast.BlockExpression:
		child := object.NewEnclosedEnvironment(env)
		return e.evalStatements(n.Statements, child)

	case *ast.LetStatement:
		val, err := e.Eval(n.Value, env)
		if err != nil {
			return nil, err
		}
		env.Define(n.Name.Value, val)
		return val, nil

	case *ast.TypeDeclarationStatement:
		tv := &object.TypeValue{Def: n.Expr, Env: env}
		env.Define(n.Name.Value, tv)
		return tv, nil

	case *ast.ExpressionStatement:
		return e.Eval(n.Expression, env)

	case *ast.NullLiteral:
		return &object.Null{}, nil
	case *ast.BoolLiteral:
		return &object.Boolean{Value: n.Value}, nil
	case *ast.IntegerLiteral:
		return &object.Integer{Value: n.Value}, nil
	case *ast.FloatLiteral:
		return &object.Float{Value: n.Value}, nil
	case *ast.StringLiteral:
		return &object.String{Value: n.Value}, nil

	case *ast.Identifier:
		val, ok := env.Get(n.Value)
		if !ok {
			return nil, fmt.Errorf("%d:%d: undefined name %q", n.Tok.Line, n.Tok.Column, n.Value)
		}
		return val, nil

	case *ast.TypeLiteral:
		return &object.TypeValue{Def: n.Expr, Env: env}, nil

	case *ast.ListLiteral:
		elems := make([]object.Value, len(n.Elements))
		for i, elExpr := range n.Elements {
			v, err := e.Eval(elExpr, env)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &object.List{Elements: elems}, nil

	case *ast.MapLiteral:
		entries := make(map[string]object.Value, len(n.Keys))
		for _, k := range n.Keys {
			v, err := e.Eval(n.Values[k], env)
			if err != nil {
				return nil, err
			}
			entries[k] = v
		}
		return object.NewMap(append([]string(nil), n.Keys...), entries), nil

	case *ast.FunctionLiteral:
		param := ""
		if n.Param != nil {
			param = n.Param.Value
		}
		return &object.Function{Param: param, Types: n.Types, Body: n.Body, Closure: env}, nil

	case *ast.IfExpression:
		return e.evalIf(n, env)

	case *ast.IndexExpression:
		return e.evalIndex(n, env)

	case *ast.InfixExpression:
		return e.evalInfix(n, env)

	case *ast.CallExpression:
		return e.evalCall(n, env)

	default:
		return nil, fmt.Errorf("evaluator: unsupported node %T", node)
	}
}

// evalStatements runs a statement sequence in env, returning the value of
// the last one — the block-value semantics every BlockExpression and the
// top-level Program share.
func (e *Evaluator) evalStatements(stmts []ast.Statement, env *object.Environment) (object.Value, error) {
	var result object.Value = &object.Null{}
	for _, stmt := range stmts {
		v, err := e.Eval(stmt, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func (e *Evaluator) evalIf(n *ast.IfExpression, env *object.Environment) (object.Value, error) {
	cond, err := e.Eval(n.Condition, env)
	if err != nil {
		return nil, err
	}
	b, ok := cond.(*object.Boolean)
	if !ok {
		return nil, fmt.Errorf("%d:%d: if condition must be Bool", n.Tok.Line, n.Tok.Column)
	}
	if b.Value {
		return e.Eval(n.Consequence, env)
	}
	if n.Alternative != nil {
		return e.Eval(n.Alternative, env)
	}
	return &object.Null{}, nil
}

func (e *Evaluator) evalIndex(n *ast.IndexExpression, env *object.Environment) (object.Value, error) {
	coll, err := e.Eval(n.Collection, env)
	if err != nil {
		return nil, err
	}
	idx, err := e.Eval(n.Index, env)
	if err != nil {
		return nil, err
	}
	switch c := coll.(type) {
	case *object.List:
		i, ok := idx.(*object.Integer)
		if !ok {
			return nil, fmt.Errorf("%d:%d: list index must be Int", n.Tok.Line, n.Tok.Column)
		}
		if i.Value < 0 || int(i.Value) >= len(c.Elements) {
			return nil, fmt.Errorf("%d:%d: list index %d out of range", n.Tok.Line, n.Tok.Column, i.Value)
		}
		return c.Elements[i.Value], nil
	case *object.Map:
		s, ok := idx.(*object.String)
		if !ok {
			return nil, fmt.Errorf("%d:%d: map index must be Str", n.Tok.Line, n.Tok.Column)
		}
		v, ok := c.Get(s.Value)
		if !ok {
			return nil, fmt.Errorf("%d:%d: map has no key %q", n.Tok.Line, n.Tok.Column, s.Value)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%d:%d: cannot index a value of type %s", n.Tok.Line, n.Tok.Column, printTypeOf(coll))
	}
}

func (e *Evaluator) evalCall(n *ast.CallExpression, env *object.Environment) (object.Value, error) {
	fnVal, err := e.Eval(n.Function, env)
	if err != nil {
		return nil, err
	}
	callable, ok := fnVal.(object.Callable)
	if !ok {
		return nil, fmt.Errorf("%d:%d: value of type %s is not callable", n.Tok.Line, n.Tok.Column, printTypeOf(fnVal))
	}

	var arg object.Value = &object.Null{}
	if n.Argument != nil {
		arg, err = e.Eval(n.Argument, env)
		if err != nil {
			return nil, err
		}
	}

	return e.EnforceCall(callable, arg)
}

// EnforceCall runs spec §4.7's call-boundary protocol (types.EnforceCall)
// around apply, invoking callable's body or native function. Exported so
// a caller outside the evaluator package — internal/typesvc's remote
// EnforceCall RPC, in particular — can drive the same boundary checks a
// local call expression gets.
func (e *Evaluator) EnforceCall(callable object.Callable, arg object.Value) (object.Value, error) {
	return types.EnforceCall(callable, arg, func(a object.Value) (object.Value, error) {
		return e.apply(callable, a)
	})
}

// apply invokes callable's body (user-defined) or native Go function,
// entirely unaware of the type checks EnforceCall wraps around it.
func (e *Evaluator) apply(callable object.Callable, arg object.Value) (object.Value, error) {
	switch fn := callable.(type) {
	case *object.Function:
		child := object.NewEnclosedEnvironment(fn.Closure)
		if fn.Param != "" {
			child.Define(fn.Param, arg)
		}
		return e.Eval(fn.Body, child)
	case *object.NativeFunction:
		return fn.Fn(arg)
	default:
		return nil, fmt.Errorf("apply: unsupported callable %T", callable)
	}
}

func printTypeOf(v object.Value) string {
	return printer.PrintType(types.TypeOf(v))
}
