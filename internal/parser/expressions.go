package parser

import (
	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.NEWLINE) && !p.peekTokenIs(token.EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Tok: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	return &ast.IntegerLiteral{Tok: p.curToken, Value: p.curToken.Literal.(int64)}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	return &ast.FloatLiteral{Tok: p.curToken, Value: p.curToken.Literal.(float64)}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Tok: p.curToken, Value: p.curToken.Literal.(string)}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Tok: p.curToken}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return &ast.BoolLiteral{Tok: p.curToken, Value: p.curToken.Literal.(bool)}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.curToken
	operator := tok.Lexeme
	p.nextToken()
	right := p.parseExpression(PREFIX)
	return &ast.InfixExpression{Tok: tok, Operator: operator, Left: nil, Right: right}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	operator := tok.Lexeme
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.InfixExpression{Tok: tok, Left: left, Operator: operator, Right: right}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseListLiteral() ast.Expression {
	tok := p.curToken
	list := &ast.ListLiteral{Tok: tok}
	p.nextToken()
	p.skipNewlines()
	if p.curTokenIs(token.RBRACKET) {
		return list
	}
	list.Elements = append(list.Elements, p.parseExpression(LOWEST))
	p.nextToken()
	p.skipNewlines()
	for p.curTokenIs(token.COMMA) {
		p.nextToken()
		p.skipNewlines()
		list.Elements = append(list.Elements, p.parseExpression(LOWEST))
		p.nextToken()
		p.skipNewlines()
	}
	if !p.curTokenIs(token.RBRACKET) {
		p.errors = append(p.errors, "unterminated list literal, expected ']'")
		return nil
	}
	return list
}

func (p *Parser) parseMapLiteral() ast.Expression {
	tok := p.curToken
	m := &ast.MapLiteral{Tok: tok, Values: map[string]ast.Expression{}}
	p.nextToken()
	p.skipNewlines()
	for !p.curTokenIs(token.RBRACE) {
		if !p.curTokenIs(token.IDENT) && !p.curTokenIs(token.TYPEID) {
			p.errors = append(p.errors, "expected field name in map literal")
			return nil
		}
		key := p.curToken.Lexeme
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		m.Keys = append(m.Keys, key)
		m.Values[key] = p.parseExpression(LOWEST)

		p.nextToken()
		p.skipNewlines()
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			p.skipNewlines()
		}
	}
	return m
}

// parseTypeLiteralExpression handles the `type` prefix keyword in
// expression position, e.g. `type [Int]` or `type {a: Int, b?: Str}`.
// `type Name = ...` (a declaration, not a prefix expression) is
// intercepted earlier, in parseStatement.
func (p *Parser) parseTypeLiteralExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	t := p.parseType()
	if t == nil {
		return nil
	}
	return &ast.TypeLiteral{Tok: tok, Expr: t}
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	var param *ast.Identifier
	anonymous := true
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		param = &ast.Identifier{Tok: p.curToken, Value: p.curToken.Lexeme}
		anonymous = false
	}

	var paramType ast.Type
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		paramType = p.parseType()
		if paramType == nil {
			return nil
		}
	} else {
		paramType = &ast.TypeTerminal{Tok: tok, Name: "Any"}
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.ARROW) {
		return nil
	}
	p.nextToken()
	retType := p.parseType()
	if retType == nil {
		return nil
	}

	arrowTok := tok
	arrow := &ast.TypeBinary{Tok: arrowTok, Left: paramType, Right: retType}

	if !p.expectPeek(token.DO) {
		return nil
	}
	body := p.parseBlockExpression()
	if body == nil {
		return nil
	}

	return &ast.FunctionLiteral{Tok: tok, Param: param, Types: arrow, Body: body, Anonymous: anonymous}
}

func (p *Parser) parseBlockExpression() ast.Expression {
	tok := p.curToken // DO
	block := &ast.BlockExpression{Tok: tok}
	p.nextToken()
	p.skipNewlines()
	for !p.curTokenIs(token.END) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		// A statement always ends with curToken on its own last token,
		// including a nested block's closing `end` — advance unconditionally
		// so that inner terminator is never mistaken for this block's own.
		p.nextToken()
		p.skipNewlines()
	}
	if !p.curTokenIs(token.END) {
		p.errors = append(p.errors, "unterminated 'do' block, expected 'end'")
		return nil
	}
	return block
}

func (p *Parser) parseIfExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	condition := p.parseExpression(LOWEST)

	if !p.expectPeek(token.DO) {
		return nil
	}
	consequence := p.parseBlockExpression()
	if consequence == nil {
		return nil
	}

	var alternative ast.Expression
	switch p.peekToken.Type {
	case token.ELSE:
		p.nextToken()
		if !p.expectPeek(token.DO) {
			return nil
		}
		alternative = p.parseBlockExpression()
	case token.ELIF:
		p.nextToken()
		alternative = p.parseIfExpression()
		return &ast.IfExpression{Tok: tok, Condition: condition, Consequence: consequence, Alternative: alternative}
	}

	return &ast.IfExpression{Tok: tok, Condition: condition, Consequence: consequence, Alternative: alternative}
}

// parseCallExpression parses `fn(a, b, c)` as sugar for the curried
// `fn(a)(b)(c)`, since every Callable (spec §4.7) takes exactly one
// argument at a time; comma-separated call syntax is flattened into
// nested CallExpression nodes here rather than carried through the AST.
func (p *Parser) parseCallExpression(fn ast.Expression) ast.Expression {
	tok := p.curToken // (
	args := p.parseCallArguments()

	call := fn
	if len(args) == 0 {
		return &ast.CallExpression{Tok: tok, Function: call, Argument: nil}
	}
	for _, arg := range args {
		call = &ast.CallExpression{Tok: tok, Function: call, Argument: arg}
	}
	return call
}

func (p *Parser) parseCallArguments() []ast.Expression {
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return nil
	}
	p.nextToken()
	args := []ast.Expression{p.parseExpression(LOWEST)}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return args
}

func (p *Parser) parseIndexExpression(collection ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	index := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.IndexExpression{Tok: tok, Collection: collection, Index: index}
}
