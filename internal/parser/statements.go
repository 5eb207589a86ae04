package parser

import (
	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		return p.parseLetStatement()
	case token.TYPE:
		if p.peekTokenIs(token.TYPEID) {
			return p.parseTypeDeclarationStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Tok: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Tok: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	return stmt
}

// parseTypeDeclarationStatement parses `type Name = TypeExpr`, binding Name
// to the TypeExpr under the environment active at the declaration so the
// type may refer to itself (spec §5).
func (p *Parser) parseTypeDeclarationStatement() ast.Statement {
	stmt := &ast.TypeDeclarationStatement{Tok: p.curToken}
	p.nextToken() // TYPEID
	stmt.Name = &ast.Identifier{Tok: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Expr = p.parseType()
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Tok: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	return stmt
}
