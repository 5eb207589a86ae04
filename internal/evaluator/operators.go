package evaluator

import (
	"fmt"

	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/object"
)

// evalInfix evaluates both binary operators and the unary forms the parser
// represents as an InfixExpression with a nil Left (`-x`, `not x`), as
// built by the parser's parsePrefixExpression.
func (e *Evaluator) evalInfix(n *ast.InfixExpression, env *object.Environment) (object.Value, error) {
	if n.Left == nil {
		right, err := e.Eval(n.Right, env)
		if err != nil {
			return nil, err
		}
		return evalPrefix(n.Operator, right, n)
	}

	if n.Operator == "and" || n.Operator == "or" {
		return e.evalShortCircuit(n, env)
	}

	left, err := e.Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	return evalBinary(n.Operator, left, right, n)
}

func (e *Evaluator) evalShortCircuit(n *ast.InfixExpression, env *object.Environment) (object.Value, error) {
	left, err := e.Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	lb, ok := left.(*object.Boolean)
	if !ok {
		return nil, fmt.Errorf("%d:%d: operand of %q must be Bool", n.Tok.Line, n.Tok.Column, n.Operator)
	}
	if n.Operator == "and" && !lb.Value {
		return lb, nil
	}
	if n.Operator == "or" && lb.Value {
		return lb, nil
	}
	right, err := e.Eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	if _, ok := right.(*object.Boolean); !ok {
		return nil, fmt.Errorf("%d:%d: operand of %q must be Bool", n.Tok.Line, n.Tok.Column, n.Operator)
	}
	return right, nil
}

func evalPrefix(op string, right object.Value, n *ast.InfixExpression) (object.Value, error) {
	switch op {
	case "not":
		b, ok := right.(*object.Boolean)
		if !ok {
			return nil, fmt.Errorf("%d:%d: operand of 'not' must be Bool", n.Tok.Line, n.Tok.Column)
		}
		return &object.Boolean{Value: !b.Value}, nil
	case "-":
		switch v := right.(type) {
		case *object.Integer:
			return &object.Integer{Value: -v.Value}, nil
		case *object.Float:
			return &object.Float{Value: -v.Value}, nil
		}
		return nil, fmt.Errorf("%d:%d: unary '-' requires Int or Num", n.Tok.Line, n.Tok.Column)
	default:
		return nil, fmt.Errorf("%d:%d: unsupported prefix operator %q", n.Tok.Line, n.Tok.Column, op)
	}
}

func evalBinary(op string, left, right object.Value, n *ast.InfixExpression) (object.Value, error) {
	switch op {
	case "+", "-", "*", "/":
		return evalArithmetic(op, left, right, n)
	case "==":
		return &object.Boolean{Value: valuesEqual(left, right)}, nil
	case "!=":
		return &object.Boolean{Value: !valuesEqual(left, right)}, nil
	case "<", ">", "<=", ">=":
		return evalComparison(op, left, right, n)
	}
	return nil, fmt.Errorf("%d:%d: unsupported operator %q", n.Tok.Line, n.Tok.Column, op)
}

func evalArithmetic(op string, left, right object.Value, n *ast.InfixExpression) (object.Value, error) {
	li, lIsInt := left.(*object.Integer)
	ri, rIsInt := right.(*object.Integer)
	if lIsInt && rIsInt {
		switch op {
		case "+":
			return &object.Integer{Value: li.Value + ri.Value}, nil
		case "-":
			return &object.Integer{Value: li.Value - ri.Value}, nil
		case "*":
			return &object.Integer{Value: li.Value * ri.Value}, nil
		case "/":
			if ri.Value == 0 {
				return nil, fmt.Errorf("%d:%d: division by zero", n.Tok.Line, n.Tok.Column)
			}
			return &object.Integer{Value: li.Value / ri.Value}, nil
		}
	}

	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, fmt.Errorf("%d:%d: operator %q requires Int or Num operands, got %s and %s",
			n.Tok.Line, n.Tok.Column, op, printTypeOf(left), printTypeOf(right))
	}
	switch op {
	case "+":
		return &object.Float{Value: lf + rf}, nil
	case "-":
		return &object.Float{Value: lf - rf}, nil
	case "*":
		return &object.Float{Value: lf * rf}, nil
	case "/":
		if rf == 0 {
			return nil, fmt.Errorf("%d:%d: division by zero", n.Tok.Line, n.Tok.Column)
		}
		return &object.Float{Value: lf / rf}, nil
	}
	return nil, fmt.Errorf("%d:%d: unsupported operator %q", n.Tok.Line, n.Tok.Column, op)
}

func evalComparison(op string, left, right object.Value, n *ast.InfixExpression) (object.Value, error) {
	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if lok && rok {
		return &object.Boolean{Value: compareFloat(op, lf, rf)}, nil
	}
	ls, lIsStr := left.(*object.String)
	rs, rIsStr := right.(*object.String)
	if lIsStr && rIsStr {
		return &object.Boolean{Value: compareString(op, ls.Value, rs.Value)}, nil
	}
	return nil, fmt.Errorf("%d:%d: operator %q requires two Int/Num or two Str operands", n.Tok.Line, n.Tok.Column, op)
}

func compareFloat(op string, l, r float64) bool {
	switch op {
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	case ">=":
		return l >= r
	}
	return false
}

func compareString(op string, l, r string) bool {
	switch op {
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	case ">=":
		return l >= r
	}
	return false
}

func asFloat(v object.Value) (float64, bool) {
	switch n := v.(type) {
	case *object.Integer:
		return float64(n.Value), true
	case *object.Float:
		return n.Value, true
	default:
		return 0, false
	}
}

func valuesEqual(a, b object.Value) bool {
	switch av := a.(type) {
	case *object.Null:
		_, ok := b.(*object.Null)
		return ok
	case *object.Boolean:
		bv, ok := b.(*object.Boolean)
		return ok && av.Value == bv.Value
	case *object.Integer:
		if bv, ok := b.(*object.Integer); ok {
			return av.Value == bv.Value
		}
		if bv, ok := b.(*object.Float); ok {
			return float64(av.Value) == bv.Value
		}
		return false
	case *object.Float:
		if bv, ok := b.(*object.Float); ok {
			return av.Value == bv.Value
		}
		if bv, ok := b.(*object.Integer); ok {
			return av.Value == float64(bv.Value)
		}
		return false
	case *object.String:
		bv, ok := b.(*object.String)
		return ok && av.Value == bv.Value
	case *object.List:
		bv, ok := b.(*object.List)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !valuesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *object.Map:
		bv, ok := b.(*object.Map)
		if !ok || len(av.Keys) != len(bv.Keys) {
			return false
		}
		for _, k := range av.Keys {
			other, ok := bv.Get(k)
			if !ok || !valuesEqual(av.Entries[k], other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
