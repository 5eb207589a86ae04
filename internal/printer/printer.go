// Package printer renders type expressions and runtime values back into
// mindscript surface syntax (spec's C11 "pretty-printer", listed as an
// external collaborator of the type core but needed to report errors and
// drive the REPL).
package printer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/object"
)

// PrintType renders a type expression in its declared (unresolved) form —
// named aliases print as their bare identifier, not their expansion, so
// error messages read the way the user wrote them.
func PrintType(t ast.Type) string {
	var b strings.Builder
	writeType(&b, t)
	return b.String()
}

func writeType(b *strings.Builder, t ast.Type) {
	switch n := t.(type) {
	case *ast.TypeTerminal:
		b.WriteString(n.Name)
	case *ast.TypeArray:
		b.WriteByte('[')
		writeType(b, n.Element)
		b.WriteByte(']')
	case *ast.TypeMap:
		b.WriteByte('{')
		for i, k := range n.Keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			if !n.Required[k] {
				b.WriteByte('?')
			}
			b.WriteString(": ")
			writeType(b, n.Entries[k])
		}
		b.WriteByte('}')
	case *ast.TypeUnary:
		writeType(b, n.Inner)
		b.WriteByte('?')
	case *ast.TypeEnum:
		writeType(b, n.Of)
		b.WriteString(" :: (")
		for i, v := range n.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(printLiteral(v))
		}
		b.WriteByte(')')
	case *ast.TypeBinary:
		b.WriteString("function(")
		writeType(b, n.Left)
		b.WriteString(") -> ")
		writeType(b, n.Right)
	case *ast.TypeGrouping:
		b.WriteByte('(')
		writeType(b, n.Inner)
		b.WriteByte(')')
	case *ast.TypeAnnotation:
		writeType(b, n.Inner)
	default:
		b.WriteString("<?>")
	}
}

func printLiteral(l ast.Literal) string {
	switch l.Kind {
	case ast.LitNull:
		return "null"
	case ast.LitBool:
		return strconv.FormatBool(l.Bool)
	case ast.LitInt:
		return strconv.FormatInt(l.Int, 10)
	case ast.LitFloat:
		return strconv.FormatFloat(l.Float, 'g', -1, 64)
	case ast.LitStr:
		return strconv.Quote(l.Str)
	default:
		return "<?>"
	}
}

// PrintValue renders a runtime value the way `print`/`str` do.
func PrintValue(v object.Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v object.Value) {
	switch o := v.(type) {
	case *object.Null:
		b.WriteString("null")
	case *object.Boolean:
		b.WriteString(strconv.FormatBool(o.Value))
	case *object.Integer:
		b.WriteString(strconv.FormatInt(o.Value, 10))
	case *object.Float:
		b.WriteString(strconv.FormatFloat(o.Value, 'g', -1, 64))
	case *object.String:
		b.WriteString(strconv.Quote(o.Value))
	case *object.List:
		b.WriteByte('[')
		for i, el := range o.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, el)
		}
		b.WriteByte(']')
	case *object.Map:
		b.WriteByte('{')
		for i, k := range o.Keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s: ", k)
			writeValue(b, o.Entries[k])
		}
		b.WriteByte('}')
	case *object.TypeValue:
		writeType(b, o.Def)
	case object.Callable:
		b.WriteString(PrintType(o.Arrow()))
	default:
		b.WriteString("<?>")
	}
}

// SortedKeys returns the keys of m in ascending order, a deterministic
// field order for when a TypeMap's declared Keys slice is unavailable
// (e.g. a map assembled programmatically rather than parsed).
func SortedKeys(m map[string]ast.Type) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
