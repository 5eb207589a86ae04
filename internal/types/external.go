package types

import "github.com/mindscript-lang/mindscript/internal/object"

// CheckType implements the external `checkType(v, TypeValue{def, env}) ->
// bool` interface (spec §6). It never fails: a malformed alias inside t
// is treated as the check failing rather than propagating, since an
// assertion or call site expects a boolean, not an error, from this
// entry point specifically.
func CheckType(v object.Value, t *object.TypeValue) bool {
	ok, err := ValueOf(v, t.Def, t.Env)
	if err != nil {
		return false
	}
	return ok
}

// IsSubtype implements the external `isSubtype(a, b) -> bool` interface
// (spec §6): false if either argument is not a type value.
func IsSubtype(a, b object.Value) bool {
	ta, ok := a.(*object.TypeValue)
	if !ok {
		return false
	}
	tb, ok := b.(*object.TypeValue)
	if !ok {
		return false
	}
	ok, err := Subtype(ta.Def, tb.Def, ta.Env, tb.Env)
	if err != nil {
		return false
	}
	return ok
}
