package parser

import (
	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/token"
)

// parseType parses a type expression (spec C1) starting at p.curToken,
// leaving p.curToken on the type expression's last token. This is a
// separate grammar from parseExpression: it is entered only from explicit
// type slots — a `type Name = ...` declaration, a function parameter or
// return annotation, or the `type` prefix operator — never by guessing
// from an ambiguous expression prefix.
func (p *Parser) parseType() ast.Type {
	t := p.parseAtomicType()
	if t == nil {
		return nil
	}

	for {
		switch {
		case p.peekTokenIs(token.QUESTION):
			p.nextToken()
			t = &ast.TypeUnary{Tok: p.curToken, Inner: t}
		case p.peekTokenIs(token.COLONCOLON):
			p.nextToken()
			enumTok := p.curToken
			if !p.expectPeek(token.LPAREN) {
				return nil
			}
			values := p.parseEnumValues()
			if values == nil {
				return nil
			}
			t = &ast.TypeEnum{Tok: enumTok, Of: t, Values: values}
		default:
			return t
		}
	}
}

func (p *Parser) parseAtomicType() ast.Type {
	switch p.curToken.Type {
	case token.TYPEID:
		return &ast.TypeTerminal{Tok: p.curToken, Name: p.curToken.Lexeme}
	case token.LBRACKET:
		tok := p.curToken
		p.nextToken()
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return &ast.TypeArray{Tok: tok, Element: elem}
	case token.LBRACE:
		return p.parseMapType()
	case token.LPAREN:
		tok := p.curToken
		p.nextToken()
		inner := p.parseType()
		if inner == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return &ast.TypeGrouping{Tok: tok, Inner: inner}
	case token.FUNCTION:
		tok := p.curToken
		if !p.expectPeek(token.LPAREN) {
			return nil
		}
		p.nextToken()
		// Surface syntax allows an optional, purely documentary parameter
		// name before the colon, `function(name: T) -> U`; the name is
		// discarded here since a TypeBinary records only the two sides of
		// the arrow.
		if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
		}
		param := p.parseType()
		if param == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		if !p.expectPeek(token.ARROW) {
			return nil
		}
		p.nextToken()
		ret := p.parseType()
		if ret == nil {
			return nil
		}
		return &ast.TypeBinary{Tok: tok, Left: param, Right: ret}
	default:
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
}

func (p *Parser) parseMapType() ast.Type {
	tok := p.curToken
	entries := map[string]ast.Type{}
	required := map[string]bool{}
	var keys []string

	p.nextToken()
	p.skipNewlines()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if !p.curTokenIs(token.IDENT) && !p.curTokenIs(token.TYPEID) {
			p.errors = append(p.errors, "expected field name in map type")
			return nil
		}
		key := p.curToken.Lexeme
		isRequired := true
		if p.peekTokenIs(token.QUESTION) {
			p.nextToken()
			isRequired = false
		}
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		fieldType := p.parseType()
		if fieldType == nil {
			return nil
		}

		keys = append(keys, key)
		entries[key] = fieldType
		required[key] = isRequired

		p.nextToken()
		p.skipNewlines()
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			p.skipNewlines()
		}
	}
	if !p.curTokenIs(token.RBRACE) {
		p.errors = append(p.errors, "unterminated map type, expected '}'")
		return nil
	}
	return &ast.TypeMap{Tok: tok, Keys: keys, Entries: entries, Required: required}
}

func (p *Parser) parseEnumValues() []ast.Literal {
	var values []ast.Literal
	p.nextToken()
	for !p.curTokenIs(token.RPAREN) && !p.curTokenIs(token.EOF) {
		lit, ok := p.parseEnumLiteral()
		if !ok {
			return nil
		}
		values = append(values, lit)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
		p.nextToken()
	}
	if !p.curTokenIs(token.RPAREN) {
		p.errors = append(p.errors, "unterminated enum value list, expected ')'")
		return nil
	}
	return values
}

func (p *Parser) parseEnumLiteral() (ast.Literal, bool) {
	switch p.curToken.Type {
	case token.NULL:
		return ast.Literal{Kind: ast.LitNull}, true
	case token.BOOL:
		return ast.Literal{Kind: ast.LitBool, Bool: p.curToken.Literal.(bool)}, true
	case token.INT:
		return ast.Literal{Kind: ast.LitInt, Int: p.curToken.Literal.(int64)}, true
	case token.FLOAT:
		return ast.Literal{Kind: ast.LitFloat, Float: p.curToken.Literal.(float64)}, true
	case token.STRING:
		return ast.Literal{Kind: ast.LitStr, Str: p.curToken.Literal.(string)}, true
	case token.MINUS:
		p.nextToken()
		switch p.curToken.Type {
		case token.INT:
			return ast.Literal{Kind: ast.LitInt, Int: -p.curToken.Literal.(int64)}, true
		case token.FLOAT:
			return ast.Literal{Kind: ast.LitFloat, Float: -p.curToken.Literal.(float64)}, true
		}
	}
	p.errors = append(p.errors, "expected a literal value in enum, got "+string(p.curToken.Type))
	return ast.Literal{}, false
}
