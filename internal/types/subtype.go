package types

import (
	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/object"
)

// nodePair keys the cycle-detection visited set by the identity of the two
// resolved type nodes being compared. ast.Type variants are always pointer
// types, so two nodePair values compare equal exactly when both sides are
// the very same AST nodes, never merely structurally equal ones — which is
// what lets Subtype admit a self-referential alias co-inductively instead
// of recursing forever.
type nodePair struct {
	a, b ast.Type
}

// Subtype decides T1 ⊑ T2 (spec core component C6): whether t1 is
// admissible wherever t2 is expected. Both sides are resolved through
// Resolve before comparison. The relation is co-inductive: a pair of
// nodes revisited during the same call is optimistically admitted,
// which is what makes comparing two recursively self-referential
// aliases terminate.
func Subtype(t1, t2 ast.Type, env1, env2 *object.Environment) (bool, error) {
	return subtype(t1, t2, env1, env2, make(map[nodePair]bool))
}

func subtype(t1, t2 ast.Type, env1, env2 *object.Environment, visited map[nodePair]bool) (bool, error) {
	t1, env1, err := Resolve(t1, env1)
	if err != nil {
		return false, err
	}
	t2, env2, err = Resolve(t2, env2)
	if err != nil {
		return false, err
	}

	key := nodePair{t1, t2}
	if visited[key] {
		return true, nil
	}
	visited[key] = true

	// Rule 1: Any is top.
	if term, ok := t2.(*ast.TypeTerminal); ok && term.Name == "Any" {
		return true, nil
	}

	// Rule 2: identical terminals.
	if a, ok := t1.(*ast.TypeTerminal); ok {
		if b, ok := t2.(*ast.TypeTerminal); ok {
			return a.Name == b.Name, nil
		}
	}

	// Rules 3-4: arrays.
	if arr1, ok := t1.(*ast.TypeArray); ok {
		if term, ok := t2.(*ast.TypeTerminal); ok && term.Name == "Array" {
			return true, nil
		}
		if arr2, ok := t2.(*ast.TypeArray); ok {
			return subtype(arr1.Element, arr2.Element, env1, env2, visited)
		}
	}

	// Rules 5-6: maps.
	if m1, ok := t1.(*ast.TypeMap); ok {
		if term, ok := t2.(*ast.TypeTerminal); ok && term.Name == "Object" {
			return true, nil
		}
		if m2, ok := t2.(*ast.TypeMap); ok {
			return subtypeMap(m1, m2, env1, env2, visited)
		}
	}

	// Rule 7: enum delegates to its base type on the subtype side.
	if e1, ok := t1.(*ast.TypeEnum); ok {
		if _, ok := t2.(*ast.TypeEnum); !ok {
			return subtype(e1.Of, t2, env1, env2, visited)
		}
	}

	// Rule 8: nullable widening on the supertype side.
	if u2, ok := t2.(*ast.TypeUnary); ok {
		if u1, ok := t1.(*ast.TypeUnary); ok {
			return subtype(u1.Inner, u2.Inner, env1, env2, visited)
		}
		if term, ok := t1.(*ast.TypeTerminal); ok && term.Name == "Null" {
			return true, nil
		}
		return subtype(t1, u2.Inner, env1, env2, visited)
	}

	// Rule 9: arrows, covariant in both positions (preserved from the
	// source; see DESIGN.md Open Question 2).
	if b1, ok := t1.(*ast.TypeBinary); ok {
		if b2, ok := t2.(*ast.TypeBinary); ok {
			left, err := subtype(b1.Left, b2.Left, env1, env2, visited)
			if err != nil || !left {
				return false, err
			}
			return subtype(b1.Right, b2.Right, env1, env2, visited)
		}
	}

	return false, nil
}

func subtypeMap(m1, m2 *ast.TypeMap, env1, env2 *object.Environment, visited map[nodePair]bool) (bool, error) {
	for _, k := range m1.Keys {
		if !m2.HasKey(k) {
			return false, nil
		}
	}

	n1, n2 := 0, 0
	for k, req := range m1.Required {
		if !req {
			continue
		}
		n1++
		if !m2.Required[k] {
			return false, nil
		}
	}
	for _, req := range m2.Required {
		if req {
			n2++
		}
	}
	if n1 != n2 {
		return false, nil
	}

	for _, k := range m1.Keys {
		if !m2.HasKey(k) {
			continue
		}
		ok, err := subtype(m1.Entries[k], m2.Entries[k], env1, env2, visited)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	// Open Question 3: the source falls through without an explicit
	// return when the width check passes but no keys are shared between
	// the two maps. Fixed here to return true explicitly, matching
	// spec.md's stated choice rather than reproducing that fallthrough.
	return true, nil
}
