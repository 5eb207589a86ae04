// Package ast defines mindscript's syntax trees: the type-expression AST
// (the core's C1, see internal/types) and the expression/statement AST the
// parser and evaluator exchange around it.
package ast

// Node is the base interface implemented by every syntax tree node.
type Node interface {
	TokenLiteral() string
}

// Statement is a Node that appears at statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that appears at expression position.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root of a parsed source file or REPL entry.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) == 0 {
		return ""
	}
	return p.Statements[0].TokenLiteral()
}
