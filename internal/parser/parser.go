// Package parser implements a Pratt (top-down operator-precedence) parser
// that turns a Monkey token stream into an *ast.Program.
package parser

import (
	"fmt"
	"strconv"

	"github.com/BenJeau/monkey-interpreter/internal/ast"
	"github.com/BenJeau/monkey-interpreter/internal/lexer"
	"github.com/BenJeau/monkey-interpreter/internal/token"
)

// Precedence levels, strictly increasing.
const (
	_ int = iota
	LOWEST
	EQUALS      // == !=
	LESSGREATER // < >
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -x !x
	CALL        // f(...)
	INDEX       // a[i]
)

var precedences = map[token.Type]int{
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.SLASH:    PRODUCT,
	token.ASTERISK: PRODUCT,
	token.LPAREN:   CALL,
	token.LBRACKET: INDEX,
}

// ParseError describes a single recoverable parse failure with the
// position it occurred at.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string { return e.Message }

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser consumes a token stream with one token of lookahead and builds an
// *ast.Program, accumulating errors instead of aborting on the first one.
type Parser struct {
	toks []token.Token
	pos  int

	errors []*ParseError

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New builds a Parser over an already-lexed token stream.
func New(toks []token.Token) *Parser {
	p := &Parser{toks: toks}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:    p.parseIdentifier,
		token.INT:      p.parseIntegerLiteral,
		token.STRING:   p.parseStringLiteral,
		token.BANG:     p.parsePrefixExpression,
		token.MINUS:    p.parsePrefixExpression,
		token.TRUE:     p.parseBoolean,
		token.FALSE:    p.parseBoolean,
		token.LPAREN:   p.parseGroupedExpression,
		token.IF:       p.parseIfExpression,
		token.FUNCTION: p.parseFunctionLiteral,
		token.LBRACKET: p.parseArrayLiteral,
		token.LBRACE:   p.parseHashLiteral,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.SLASH:    p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression,
		token.EQ:       p.parseInfixExpression,
		token.NOT_EQ:   p.parseInfixExpression,
		token.LT:       p.parseInfixExpression,
		token.GT:       p.parseInfixExpression,
		token.LPAREN:   p.parseCallExpression,
		token.LBRACKET: p.parseIndexExpression,
	}

	return p
}

// Parse lexes source and parses it into a Program, alongside every error
// encountered along the way. It always returns a non-nil Program, even
// when parsing failed partway through.
func Parse(source string) (*ast.Program, []*ParseError) {
	p := New(lexer.Lex(source))
	program := p.ParseProgram()
	return program, p.errors
}

func (p *Parser) Errors() []*ParseError { return p.errors }

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Type: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.toks) {
		return token.Token{Type: token.EOF}
	}
	return p.toks[p.pos+1]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur().Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek().Type == t }

// expectPeek advances past the peek token if it has type t, otherwise it
// records an error and does not advance.
func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekIs(t) {
		p.advance()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.Type) {
	tok := p.peek()
	p.errors = append(p.errors, &ParseError{
		Message: fmt.Sprintf("expected next token to be %s, got %s instead", t, tok.Type),
		Line:    tok.Line,
		Column:  tok.Column,
	})
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	p.errors = append(p.errors, &ParseError{
		Message: fmt.Sprintf("no prefix parse function for %s found", t.Type),
		Line:    t.Line,
		Column:  t.Column,
	})
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur().Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peek().Type]; ok {
		return pr
	}
	return LOWEST
}

// synchronize recovers from a parse error by advancing to the next
// statement boundary: a semicolon (left unconsumed, like a normal
// statement's trailing semicolon) or EOF.
func (p *Parser) synchronize() {
	for !p.curIs(token.EOF) && !p.curIs(token.SEMICOLON) {
		p.advance()
	}
}

// ParseProgram parses statements until EOF. Every iteration advances past
// whatever token the just-parsed statement left cur() on (its trailing
// semicolon, or its last token if there was none), so a statement that
// fails to consume anything itself still can't stall the loop.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{Statements: []ast.Statement{}}

	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.advance()
	}

	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case token.LET:
		return p.parseLetStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Token: p.cur()}

	if !p.expectPeek(token.IDENT) {
		p.synchronize()
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.cur(), Value: p.cur().Literal}

	if !p.expectPeek(token.ASSIGN) {
		p.synchronize()
		return nil
	}

	p.advance()
	stmt.Value = p.parseExpression(LOWEST)
	if fl, ok := stmt.Value.(*ast.FunctionLiteral); ok {
		fl.Name = stmt.Name.Value
	}

	if p.peekIs(token.SEMICOLON) {
		p.advance()
	}

	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.cur()}

	p.advance()
	stmt.ReturnValue = p.parseExpression(LOWEST)

	if p.peekIs(token.SEMICOLON) {
		p.advance()
	}

	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.cur()}
	stmt.Expression = p.parseExpression(LOWEST)

	if p.peekIs(token.SEMICOLON) {
		p.advance()
	}

	return stmt
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.cur().Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.cur())
		return nil
	}
	left := prefix()

	for !p.peekIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peek().Type]
		if infix == nil {
			return left
		}
		p.advance()
		left = infix(left)
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.cur(), Value: p.cur().Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.cur()
	value, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.errors = append(p.errors, &ParseError{
			Message: fmt.Sprintf("could not parse %q as integer", tok.Literal),
			Line:    tok.Line,
			Column:  tok.Column,
		})
		return nil
	}
	return &ast.IntegerLiteral{Token: tok, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.cur(), Value: p.cur().Literal}
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.Boolean{Token: p.cur(), Value: p.curIs(token.TRUE)}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.cur()
	expr := &ast.PrefixExpression{Token: tok, Operator: tok.Literal}
	p.advance()
	expr.Right = p.parseExpression(PREFIX)
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.cur()
	expr := &ast.InfixExpression{Token: tok, Operator: tok.Literal, Left: left}
	precedence := p.curPrecedence()
	p.advance()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.advance()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseIfExpression() ast.Expression {
	expr := &ast.IfExpression{Token: p.cur()}

	if !p.expectPeek(token.LPAREN) {
		p.synchronize()
		return nil
	}
	p.advance()
	expr.Condition = p.parseExpression(LOWEST)

	if !p.expectPeek(token.RPAREN) {
		p.synchronize()
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		p.synchronize()
		return nil
	}

	expr.Consequence = p.parseBlockStatement()

	if p.peekIs(token.ELSE) {
		p.advance()
		if !p.expectPeek(token.LBRACE) {
			p.synchronize()
			return expr
		}
		expr.Alternative = p.parseBlockStatement()
	}

	return expr
}

// parseBlockStatement consumes statements until the closing '}'. It leaves
// cur() positioned on that '}', mirroring parseStatement's convention of
// never consuming the token that ends the construct it just parsed; callers
// that need to look past the block (e.g. parseIfExpression checking for a
// following `else`) do so via peek().
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.cur(), Statements: []ast.Statement{}}

	p.advance()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.advance()
	}

	return block
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	lit := &ast.FunctionLiteral{Token: p.cur()}

	if !p.expectPeek(token.LPAREN) {
		p.synchronize()
		return nil
	}

	lit.Parameters = p.parseFunctionParameters()

	if !p.expectPeek(token.LBRACE) {
		p.synchronize()
		return nil
	}

	lit.Body = p.parseBlockStatement()

	return lit
}

func (p *Parser) parseFunctionParameters() []*ast.Identifier {
	identifiers := []*ast.Identifier{}

	if p.peekIs(token.RPAREN) {
		p.advance()
		return identifiers
	}

	p.advance()
	identifiers = append(identifiers, &ast.Identifier{Token: p.cur(), Value: p.cur().Literal})

	for p.peekIs(token.COMMA) {
		p.advance()
		p.advance()
		identifiers = append(identifiers, &ast.Identifier{Token: p.cur(), Value: p.cur().Literal})
	}

	if !p.expectPeek(token.RPAREN) {
		return identifiers
	}

	return identifiers
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	expr := &ast.CallExpression{Token: p.cur(), Function: function}
	expr.Arguments = p.parseExpressionList(token.RPAREN)
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	arr := &ast.ArrayLiteral{Token: p.cur()}
	arr.Elements = p.parseExpressionList(token.RBRACKET)
	return arr
}

func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	list := []ast.Expression{}

	if p.peekIs(end) {
		p.advance()
		return list
	}

	p.advance()
	list = append(list, p.parseExpression(LOWEST))

	for p.peekIs(token.COMMA) {
		p.advance()
		p.advance()
		list = append(list, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(end) {
		return list
	}

	return list
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	expr := &ast.IndexExpression{Token: p.cur(), Left: left}

	p.advance()
	expr.Index = p.parseExpression(LOWEST)

	if !p.expectPeek(token.RBRACKET) {
		return expr
	}

	return expr
}

func (p *Parser) parseHashLiteral() ast.Expression {
	hash := &ast.HashLiteral{
		Token: p.cur(),
		Pairs: make(map[ast.Expression]ast.Expression),
	}

	for !p.peekIs(token.RBRACE) {
		p.advance()
		key := p.parseExpression(LOWEST)

		if !p.expectPeek(token.COLON) {
			return hash
		}

		p.advance()
		value := p.parseExpression(LOWEST)

		hash.Pairs[key] = value
		hash.Order = append(hash.Order, key)

		if !p.peekIs(token.RBRACE) && !p.expectPeek(token.COMMA) {
			return hash
		}
	}

	if !p.expectPeek(token.RBRACE) {
		return hash
	}

	return hash
}
