package ast

import "github.com/mindscript-lang/mindscript/internal/token"

// Type is the tagged-sum interface for type-expression nodes (spec core
// component C1). Concrete variants are pointer types so that two Type
// values can be compared by identity — internal/types keys its cycle-safe
// subtype visited-set on exactly that pointer identity, not on structural
// equality.
//
// Shared behavior across variants (printing, resolution, subtyping) lives
// in internal/printer and internal/types as plain functions doing a type
// switch, not as methods here: a tagged sum dispatched by the caller, per
// the variants below, rather than a class hierarchy with virtual methods.
type Type interface {
	Node
	typeNode()
}

// LiteralKind tags the primitive shape of a Literal.
type LiteralKind int

const (
	LitNull LiteralKind = iota
	LitBool
	LitInt
	LitFloat
	LitStr
)

// Literal is a constant value appearing in type syntax, currently only as
// an element of TypeEnum.Values. It is a small closed value shape (not the
// full runtime object.Value) so that internal/ast has no dependency on
// internal/object; internal/types reconciles the two when it compares a
// runtime value against an enum.
type Literal struct {
	Kind  LiteralKind
	Bool  bool
	Int   int64
	Float float64
	Str   string
}

// TypeTerminal is a primitive type name (Null, Bool, Int, Num, Str, Array,
// Object, Type, Any) or, for any other identifier, a reference to a named
// alias resolved through the environment active at the reference site.
type TypeTerminal struct {
	Tok  token.Token
	Name string
}

func (t *TypeTerminal) TokenLiteral() string { return t.Tok.Lexeme }
func (t *TypeTerminal) typeNode()            {}

// TypeArray is a homogeneous array type `[Element]`.
type TypeArray struct {
	Tok     token.Token
	Element Type
}

func (t *TypeArray) TokenLiteral() string { return t.Tok.Lexeme }
func (t *TypeArray) typeNode()            {}

// TypeMap is a width-subtypable object type `{k: T, k?: T, ...}`.
// Keys preserves declaration order for printing; Entries and Required are
// keyed by the same field names.
type TypeMap struct {
	Tok      token.Token
	Keys     []string
	Entries  map[string]Type
	Required map[string]bool
}

func (t *TypeMap) TokenLiteral() string { return t.Tok.Lexeme }
func (t *TypeMap) typeNode()            {}

// HasKey reports whether name is a declared field of the map.
func (t *TypeMap) HasKey(name string) bool {
	_, ok := t.Entries[name]
	return ok
}

// TypeUnary is a nullable wrapper `T?`, admitting Inner or Null.
type TypeUnary struct {
	Tok   token.Token
	Inner Type
}

func (t *TypeUnary) TokenLiteral() string { return t.Tok.Lexeme }
func (t *TypeUnary) typeNode()            {}

// TypeEnum is a singleton-value set `Of :: (v1, v2, ...)`.
type TypeEnum struct {
	Tok    token.Token
	Of     Type
	Values []Literal
}

func (t *TypeEnum) TokenLiteral() string { return t.Tok.Lexeme }
func (t *TypeEnum) typeNode()            {}

// TypeBinary is a function arrow `Left -> Right`.
type TypeBinary struct {
	Tok   token.Token
	Left  Type
	Right Type
}

func (t *TypeBinary) TokenLiteral() string { return t.Tok.Lexeme }
func (t *TypeBinary) typeNode()            {}

// TypeGrouping is a transparent parenthesized wrapper, stripped by the
// resolver.
type TypeGrouping struct {
	Tok   token.Token
	Inner Type
}

func (t *TypeGrouping) TokenLiteral() string { return t.Tok.Lexeme }
func (t *TypeGrouping) typeNode()            {}

// TypeAnnotation is a transparent wrapper carrying a doc note, stripped by
// the resolver. The parser does not produce it; a TypeAnnotation exists
// only where code constructs one directly.
type TypeAnnotation struct {
	Tok   token.Token
	Inner Type
	Note  string
}

func (t *TypeAnnotation) TokenLiteral() string { return t.Tok.Lexeme }
func (t *TypeAnnotation) typeNode()            {}
