// Package object implements mindscript's runtime value model (spec core
// component C2) and its lexically-scoped Environment (C3).
package object

import "github.com/mindscript-lang/mindscript/internal/ast"

// Value is the tagged-sum interface for every runtime value. As with
// ast.Type, behavior that differs per variant (printing, typing) is a
// function doing a type switch in the owning package (internal/printer,
// internal/types), not a method living here.
type Value interface {
	valueNode()
}

// Null is mindscript's single null value.
type Null struct{}

func (*Null) valueNode() {}

// Boolean wraps a bool.
type Boolean struct{ Value bool }

func (*Boolean) valueNode() {}

// Integer wraps a 64-bit integer. Int is a distinct primitive from Num —
// an Integer never satisfies TypeTerminal("Num").
type Integer struct{ Value int64 }

func (*Integer) valueNode() {}

// Float wraps a 64-bit floating point number.
type Float struct{ Value float64 }

func (*Float) valueNode() {}

// String wraps a string.
type String struct{ Value string }

func (*String) valueNode() {}

// List is an ordered, homogeneous-by-convention (but not enforced at
// construction) list of values.
type List struct{ Elements []Value }

func (*List) valueNode() {}

// Map is an ordered string-keyed map of values. Keys preserves insertion
// order for printing and for deterministic schema emission.
type Map struct {
	Keys    []string
	Entries map[string]Value
}

func (*Map) valueNode() {}

// Get returns the value bound to key and whether it was present.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.Entries[key]
	return v, ok
}

// NewMap builds a Map from keys in the given order, all of which must
// exist in entries.
func NewMap(keys []string, entries map[string]Value) *Map {
	return &Map{Keys: keys, Entries: entries}
}

// TypeValue is a first-class type: a resolved or unresolved TypeExpr
// together with the environment active at its definition site, so that
// named references embedded in Def resolve in the scope where the type
// was declared rather than where it is later used.
type TypeValue struct {
	Def Type
	Env *Environment
}

func (*TypeValue) valueNode() {}

// Type is a local alias for ast.Type, spelled out so call sites in this
// package read as domain vocabulary rather than a cross-package type name.
type Type = ast.Type

// Callable is implemented by both user-defined and native functions: any
// value that can be applied to a single argument and whose declared arrow
// type gates both ends of the call (spec §4.7).
type Callable interface {
	Value
	Arrow() *ast.TypeBinary
	DefEnv() *Environment
}

// Function is a user-defined callable: a parameter name, a declared
// arrow, a body expression, and the closure environment captured at
// definition time.
type Function struct {
	Param   string
	Types   *ast.TypeBinary
	Body    ast.Expression
	Closure *Environment
}

func (*Function) valueNode()               {}
func (f *Function) Arrow() *ast.TypeBinary { return f.Types }
func (f *Function) DefEnv() *Environment   { return f.Closure }

// NativeFunction is a builtin callable implemented in Go. Name is used in
// TypeMismatchError messages so a failure reads "typeof: wrong input
// type" rather than just "wrong input type".
type NativeFunction struct {
	Name  string
	Types *ast.TypeBinary
	Fn    func(arg Value) (Value, error)
	Env   *Environment
}

func (*NativeFunction) valueNode()               {}
func (n *NativeFunction) Arrow() *ast.TypeBinary { return n.Types }
func (n *NativeFunction) DefEnv() *Environment   { return n.Env }
