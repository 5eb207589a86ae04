package types

import (
	"github.com/mindscript-lang/mindscript/internal/object"
	"github.com/mindscript-lang/mindscript/internal/printer"
)

// EnforceCall runs spec §4.7's call-boundary protocol: check the argument
// against the callable's declared input type, invoke it, then check the
// result against its declared output type — both checks against the
// callable's definition-site environment, not the caller's.
func EnforceCall(c object.Callable, arg object.Value, invoke func(object.Value) (object.Value, error)) (object.Value, error) {
	name := callableName(c)
	arrow := c.Arrow()
	env := c.DefEnv()

	ok, err := ValueOf(arg, arrow.Left, env)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewMismatchError(name, MismatchInput, printer.PrintType(arrow.Left), printer.PrintType(TypeOf(arg)))
	}

	result, err := invoke(arg)
	if err != nil {
		return nil, err
	}

	ok, err = ValueOf(result, arrow.Right, env)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewMismatchError(name, MismatchOutput, printer.PrintType(arrow.Right), printer.PrintType(TypeOf(result)))
	}

	return result, nil
}

func callableName(c object.Callable) string {
	switch fn := c.(type) {
	case *object.NativeFunction:
		return fn.Name
	case *object.Function:
		if fn.Param != "" {
			return "function(" + fn.Param + ")"
		}
		return "function"
	default:
		return ""
	}
}
