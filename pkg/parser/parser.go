// Package parser implements hemlock's Pratt (precedence-climbing) parser:
// a lexer is pulled one token at a time and turned into an ast.Program.
//
// Grounded on the teacher's nud/led parseExpression(rbp) loop
// (pkg/parser/parser_impl.go in the teacher repository),
// but restructured per spec.md §4.3 into the two explicit dispatch
// tables — prefixParseFns and infixParseFns, keyed by token.Type — the
// spec calls for, rather than a single big switch statement.
package parser

import (
	"fmt"
	"strconv"

	"github.com/hemlocklang/hemlock/pkg/ast"
	"github.com/hemlocklang/hemlock/pkg/lexer"
	"github.com/hemlocklang/hemlock/pkg/token"
)

// Precedence levels, ascending, per spec.md §4.3.
const (
	_ int = iota
	Lowest
	Equals      // == !=
	LessGreater // < >
	Sum         // + -
	Product     // * /
	Prefix      // -X !X
	Call        // fn(x)
	Index       // arr[x]
)

var precedences = map[token.Type]int{
	token.EQ:       Equals,
	token.NotEQ:    Equals,
	token.LT:       LessGreater,
	token.GT:       LessGreater,
	token.Plus:     Sum,
	token.Minus:    Sum,
	token.Slash:    Product,
	token.Asterisk: Product,
	token.LParen:   Call,
	token.LBracket: Index,
}

type (
	prefixParseFn func() *ast.Node
	infixParseFn  func(left *ast.Node) *ast.Node
)

// Parser consumes a lexer and produces an ast.Program with a single
// lookahead token (spec.md §4.3: "one-pass, no backtracking, single
// lookahead token").
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []string
	arena  *ast.NodeArena

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New constructs a Parser and populates its dispatch tables once.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, arena: ast.NewNodeArena()}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.Identifier: p.parseIdentifier,
		token.Integer:    p.parseIntegerLiteral,
		token.String:     p.parseStringLiteral,
		token.Bang:       p.parsePrefixExpression,
		token.Minus:      p.parsePrefixExpression,
		token.True:       p.parseBoolean,
		token.False:      p.parseBoolean,
		token.LParen:     p.parseGroupedExpression,
		token.If:         p.parseIfExpression,
		token.Function:   p.parseFunctionLiteral,
		token.LBracket:   p.parseArrayLiteral,
		token.LBrace:     p.parseHashLiteral,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.Plus:     p.parseInfixExpression,
		token.Minus:    p.parseInfixExpression,
		token.Slash:    p.parseInfixExpression,
		token.Asterisk: p.parseInfixExpression,
		token.EQ:       p.parseInfixExpression,
		token.NotEQ:    p.parseInfixExpression,
		token.LT:       p.parseInfixExpression,
		token.GT:       p.parseInfixExpression,
		token.LParen:   p.parseCallExpression,
		token.LBracket: p.parseIndexExpression,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the accumulated parse error messages (spec.md §4.3:
// retrievable after ParseProgram returns).
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// ParseProgram parses the whole input into a Program node. Parsing
// continues past a failing statement (spec.md §4.3): the offending
// statement is discarded and its message recorded in Errors.
func (p *Parser) ParseProgram() *ast.Node {
	program := p.arena.Alloc(ast.Program, p.curToken)
	program.Statements = []*ast.Node{}

	for p.curToken.Type != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}
	return program
}

func (p *Parser) parseStatement() *ast.Node {
	switch p.curToken.Type {
	case token.Let:
		return p.parseLetStatement()
	case token.Return:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() *ast.Node {
	stmt := p.arena.Alloc(ast.LetStatement, p.curToken)

	if !p.expectPeek(token.Identifier) {
		return nil
	}
	stmt.Str = p.curToken.Literal

	if !p.expectPeek(token.Assign) {
		return nil
	}
	p.nextToken()

	stmt.Right = p.parseExpression(Lowest)

	if p.peekToken.Type == token.Semicolon {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseReturnStatement() *ast.Node {
	stmt := p.arena.Alloc(ast.ReturnStatement, p.curToken)
	p.nextToken()

	stmt.Right = p.parseExpression(Lowest)

	if p.peekToken.Type == token.Semicolon {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() *ast.Node {
	stmt := p.arena.Alloc(ast.ExpressionStatement, p.curToken)
	stmt.Right = p.parseExpression(Lowest)

	if p.peekToken.Type == token.Semicolon {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseExpression(precedence int) *ast.Node {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	left := prefix()

	for p.peekToken.Type != token.Semicolon && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() *ast.Node {
	n := p.arena.Alloc(ast.Identifier, p.curToken)
	n.Str = p.curToken.Literal
	return n
}

func (p *Parser) parseIntegerLiteral() *ast.Node {
	n := p.arena.Alloc(ast.IntegerLiteral, p.curToken)
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.errors = append(p.errors, fmt.Sprintf("could not parse %q as integer", p.curToken.Literal))
		return nil
	}
	n.Int = value
	return n
}

func (p *Parser) parseStringLiteral() *ast.Node {
	n := p.arena.Alloc(ast.StringLiteral, p.curToken)
	n.Str = p.curToken.Literal
	return n
}

func (p *Parser) parseBoolean() *ast.Node {
	n := p.arena.Alloc(ast.BooleanLiteral, p.curToken)
	n.Bool = p.curToken.Type == token.True
	return n
}

func (p *Parser) parsePrefixExpression() *ast.Node {
	n := p.arena.Alloc(ast.PrefixExpression, p.curToken)
	n.Str = p.curToken.Literal
	p.nextToken()
	n.Right = p.parseExpression(Prefix)
	return n
}

func (p *Parser) parseInfixExpression(left *ast.Node) *ast.Node {
	n := p.arena.Alloc(ast.InfixExpression, p.curToken)
	n.Str = p.curToken.Literal
	n.Left = left
	precedence := p.curPrecedence()
	p.nextToken()
	n.Right = p.parseExpression(precedence)
	return n
}

func (p *Parser) parseGroupedExpression() *ast.Node {
	p.nextToken()
	exp := p.parseExpression(Lowest)
	if !p.expectPeek(token.RParen) {
		return nil
	}
	return exp
}

func (p *Parser) parseIfExpression() *ast.Node {
	n := p.arena.Alloc(ast.IfExpression, p.curToken)

	if !p.expectPeek(token.LParen) {
		return nil
	}
	p.nextToken()
	n.Left = p.parseExpression(Lowest)

	if !p.expectPeek(token.RParen) {
		return nil
	}
	if !p.expectPeek(token.LBrace) {
		return nil
	}
	n.Consequence = p.parseBlockStatement()

	if p.peekToken.Type == token.Else {
		p.nextToken()
		if !p.expectPeek(token.LBrace) {
			return nil
		}
		n.Alternative = p.parseBlockStatement()
	}
	return n
}

func (p *Parser) parseBlockStatement() *ast.Node {
	block := p.arena.Alloc(ast.BlockStatement, p.curToken)
	block.Statements = []*ast.Node{}

	p.nextToken()
	for p.curToken.Type != token.RBrace && p.curToken.Type != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseFunctionLiteral() *ast.Node {
	n := p.arena.Alloc(ast.FunctionLiteral, p.curToken)

	if !p.expectPeek(token.LParen) {
		return nil
	}
	n.Params = p.parseFunctionParams()

	if !p.expectPeek(token.LBrace) {
		return nil
	}
	n.Consequence = p.parseBlockStatement()
	return n
}

func (p *Parser) parseFunctionParams() []*ast.Node {
	idents := []*ast.Node{}

	if p.peekToken.Type == token.RParen {
		p.nextToken()
		return idents
	}
	p.nextToken()
	idents = append(idents, p.parseIdentifier())

	for p.peekToken.Type == token.Comma {
		p.nextToken()
		p.nextToken()
		idents = append(idents, p.parseIdentifier())
	}

	if !p.expectPeek(token.RParen) {
		return nil
	}
	return idents
}

func (p *Parser) parseCallExpression(callee *ast.Node) *ast.Node {
	n := p.arena.Alloc(ast.CallExpression, p.curToken)
	n.Left = callee
	n.Elements = p.parseExpressionList(token.RParen)
	return n
}

func (p *Parser) parseArrayLiteral() *ast.Node {
	n := p.arena.Alloc(ast.ArrayLiteral, p.curToken)
	n.Elements = p.parseExpressionList(token.RBracket)
	return n
}

func (p *Parser) parseExpressionList(end token.Type) []*ast.Node {
	list := []*ast.Node{}

	if p.peekToken.Type == end {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(Lowest))

	for p.peekToken.Type == token.Comma {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(Lowest))
	}

	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) parseIndexExpression(left *ast.Node) *ast.Node {
	n := p.arena.Alloc(ast.IndexExpression, p.curToken)
	n.Left = left

	p.nextToken()
	n.Right = p.parseExpression(Lowest)

	if !p.expectPeek(token.RBracket) {
		return nil
	}
	return n
}

func (p *Parser) parseHashLiteral() *ast.Node {
	n := p.arena.Alloc(ast.HashLiteral, p.curToken)
	n.Pairs = []ast.HashPair{}

	for p.peekToken.Type != token.RBrace {
		p.nextToken()
		key := p.parseExpression(Lowest)

		if !p.expectPeek(token.Colon) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(Lowest)

		n.Pairs = append(n.Pairs, ast.HashPair{Key: key, Value: value})

		if p.peekToken.Type != token.RBrace && !p.expectPeek(token.Comma) {
			return nil
		}
	}

	if !p.expectPeek(token.RBrace) {
		return nil
	}
	return n
}

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekToken.Type == t {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.Type) {
	msg := fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type)
	p.errors = append(p.errors, msg)
}

func (p *Parser) noPrefixParseFnError(t token.Type) {
	p.errors = append(p.errors, fmt.Sprintf("no prefix parse function for %s found", t))
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return Lowest
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return Lowest
}
