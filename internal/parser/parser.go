package parser

import (
	"fmt"
	"strconv"
	"strings"

	"lute/internal/ast"
	"lute/internal/lexer"
	"lute/internal/token"
)

const (
	_          int = iota
	LOWEST         // lowest binding power
	EQUALS         // ==
	COMPARISON     // > or <
	SUM            // +
	PRODUCT        // *
	CALL           // myFunction(X)
	INDEX          // list[index]
)

var precedences = map[token.TokenType]int{
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       COMPARISON,
	token.GT:       COMPARISON,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.SLASH:    PRODUCT,
	token.ASTERISK: PRODUCT,
	token.LPAREN:   CALL,
	token.LBRACKET: INDEX,
}

var compoundOperators = map[token.TokenType]ast.Operator{
	token.PLUS_ASSIGN:     ast.OpAdd,
	token.MINUS_ASSIGN:    ast.OpSub,
	token.ASTERISK_ASSIGN: ast.OpMul,
	token.SLASH_ASSIGN:    ast.OpDiv,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	l      *lexer.Lexer
	errors []string

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:      l,
		errors: []string{},
	}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.CHAR, p.parseCharLiteral)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.MINUS, p.parseNegativeLiteral)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACKET, p.parseListOrComprehension)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	p.registerInfix(token.PLUS, p.parseInfixExpression)
	p.registerInfix(token.MINUS, p.parseInfixExpression)
	p.registerInfix(token.SLASH, p.parseInfixExpression)
	p.registerInfix(token.ASTERISK, p.parseInfixExpression)
	p.registerInfix(token.EQ, p.parseInfixExpression)
	p.registerInfix(token.NOT_EQ, p.parseInfixExpression)
	p.registerInfix(token.LT, p.parseInfixExpression)
	p.registerInfix(token.GT, p.parseInfixExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexExpression)

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

// Parse is the facade used by the evaluator and the host driver.
func Parse(src string) (*ast.Program, error) {
	p := New(lexer.New(src))
	program := p.ParseProgram()
	if len(p.errors) > 0 {
		return nil, fmt.Errorf("parse error: %s", strings.Join(p.errors, "; "))
	}
	return program, nil
}

func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.errors = append(p.errors,
		fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type))
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{Statements: []ast.Statement{}}

	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		p.nextToken()
		return p.parseAssignOrExpressionStatement()
	case token.IMPORT:
		return p.parseImportStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.FUNCTION:
		return p.parseFunctionStatement()
	default:
		return p.parseAssignOrExpressionStatement()
	}
}

func (p *Parser) parseAssignOrExpressionStatement() ast.Statement {
	if p.curTokenIs(token.IDENT) {
		if op, ok := compoundOperators[p.peekToken.Type]; ok {
			return p.parseCompoundAssignStatement(op)
		}
	}

	tok := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		assignTok := p.curToken
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		return &ast.AssignStatement{Token: assignTok, Target: expr, Value: value}
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

func (p *Parser) parseCompoundAssignStatement(op ast.Operator) ast.Statement {
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	p.nextToken() // the compound operator
	tok := p.curToken
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return &ast.CompoundAssignStatement{Token: tok, Name: name, Operator: op, Value: value}
}

func (p *Parser) parseImportStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.STRING) {
		return nil
	}
	stmt := &ast.ImportStatement{Token: tok, Path: p.curToken.Literal}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	stmt.Body = p.parseBlockStatement()
	if stmt.Body == nil {
		return nil
	}

	for p.peekTokenIs(token.ELIF) {
		p.nextToken()
		p.nextToken()
		branch := ast.ElifBranch{Condition: p.parseExpression(LOWEST)}
		branch.Body = p.parseBlockStatement()
		if branch.Body == nil {
			return nil
		}
		stmt.Elifs = append(stmt.Elifs, branch)
	}

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		stmt.Else = p.parseBlockStatement()
		if stmt.Else == nil {
			return nil
		}
	}

	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	stmt.Body = p.parseBlockStatement()
	if stmt.Body == nil {
		return nil
	}

	return stmt
}

func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.LoopVar = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	stmt.Iterable = p.parseExpression(LOWEST)

	stmt.Body = p.parseBlockStatement()
	if stmt.Body == nil {
		return nil
	}

	return stmt
}

func (p *Parser) parseFunctionStatement() ast.Statement {
	stmt := &ast.FunctionStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	stmt.Parameters = p.parseFunctionParameters()
	if stmt.Parameters == nil {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := &ast.BlockStatement{Token: p.curToken, Statements: []ast.Statement{}}

	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		if p.curTokenIs(token.RETURN) {
			p.nextToken()
			stmt.Return = p.parseExpression(LOWEST)
			if p.peekTokenIs(token.SEMICOLON) {
				p.nextToken()
			}
			if !p.expectPeek(token.RBRACE) {
				return nil
			}
			break
		}
		s := p.parseStatement()
		if s != nil {
			body.Statements = append(body.Statements, s)
		}
		p.nextToken()
	}

	stmt.Body = body
	return stmt
}

func (p *Parser) parseFunctionParameters() []*ast.Identifier {
	identifiers := []*ast.Identifier{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return identifiers
	}

	p.nextToken()
	identifiers = append(identifiers, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		identifiers = append(identifiers, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return identifiers
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	block := &ast.BlockStatement{Token: p.curToken, Statements: []ast.Statement{}}

	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	return block
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errors = append(p.errors,
			fmt.Sprintf("no prefix parse function for %s found", p.curToken.Type))
		return nil
	}
	leftExp := prefix()

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 32)
	if err != nil {
		p.errors = append(p.errors,
			fmt.Sprintf("could not parse %q as integer", p.curToken.Literal))
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: int32(value)}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errors = append(p.errors,
			fmt.Sprintf("could not parse %q as float", p.curToken.Literal))
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseCharLiteral() ast.Expression {
	runes := []rune(p.curToken.Literal)
	if len(runes) != 1 {
		p.errors = append(p.errors,
			fmt.Sprintf("could not parse %q as character", p.curToken.Literal))
		return nil
	}
	return &ast.CharLiteral{Token: p.curToken, Value: runes[0]}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

// parseNegativeLiteral folds a leading minus into the literal that follows;
// there is no general unary minus in the expression model.
func (p *Parser) parseNegativeLiteral() ast.Expression {
	tok := p.curToken
	switch p.peekToken.Type {
	case token.INT:
		p.nextToken()
		expr := p.parseIntegerLiteral()
		if expr == nil {
			return nil
		}
		lit := expr.(*ast.IntegerLiteral)
		lit.Token = tok
		lit.Value = -lit.Value
		return lit
	case token.FLOAT:
		p.nextToken()
		expr := p.parseFloatLiteral()
		if expr == nil {
			return nil
		}
		lit := expr.(*ast.FloatLiteral)
		lit.Token = tok
		lit.Value = -lit.Value
		return lit
	default:
		p.errors = append(p.errors,
			fmt.Sprintf("'-' must be followed by a numeric literal, got %s", p.peekToken.Type))
		return nil
	}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	// the expression form of compound assignment: (x += 1)
	if p.curTokenIs(token.IDENT) {
		if op, ok := compoundOperators[p.peekToken.Type]; ok {
			expr := p.parseCompoundExpression(op)
			if !p.expectPeek(token.RPAREN) {
				return nil
			}
			return expr
		}
	}

	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseCompoundExpression(op ast.Operator) ast.Expression {
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	p.nextToken() // the compound operator
	tok := p.curToken
	p.nextToken()
	value := p.parseExpression(LOWEST)
	return &ast.CompoundExpression{Token: tok, Name: name, Operator: op, Value: value}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: ast.Operator(p.curToken.Literal),
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)

	return expr
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	ident, ok := function.(*ast.Identifier)
	if !ok {
		p.errors = append(p.errors, "function calls must use a function name")
		return nil
	}

	expr := &ast.CallExpression{Token: p.curToken, Function: ident.Value}
	expr.Arguments = p.parseExpressionList(token.RPAREN)
	return expr
}

func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	list := []ast.Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(end) {
		return nil
	}

	return list
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	ident, ok := left.(*ast.Identifier)
	if !ok {
		p.errors = append(p.errors, "only named values can be indexed")
		return nil
	}

	expr := &ast.IndexExpression{Token: p.curToken, Name: ident}

	p.nextToken()
	expr.Index = p.parseExpression(LOWEST)

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}

	return expr
}

// parseListOrComprehension parses a list literal, possibly with spread and
// pack items, or a comprehension when the first expression is followed by
// `for`.
func (p *Parser) parseListOrComprehension() ast.Expression {
	tok := p.curToken

	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return &ast.ListLiteral{Token: tok, Items: []*ast.ListItem{}}
	}

	p.nextToken()
	first := p.parseListItem()
	if first == nil {
		return nil
	}

	if p.peekTokenIs(token.FOR) && !first.IsSpread && !first.IsPack {
		comp := &ast.Comprehension{Token: tok, Result: first.Expression}
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		comp.LoopVar = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
		if !p.expectPeek(token.IN) {
			return nil
		}
		p.nextToken()
		comp.Source = p.parseExpression(LOWEST)
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return comp
	}

	list := &ast.ListLiteral{Token: tok, Items: []*ast.ListItem{first}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		item := p.parseListItem()
		if item == nil {
			return nil
		}
		list.Items = append(list.Items, item)
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}

	return list
}

func (p *Parser) parseListItem() *ast.ListItem {
	item := &ast.ListItem{}

	switch p.curToken.Type {
	case token.ELLIPSIS:
		item.IsSpread = true
		p.nextToken()
	case token.ASTERISK:
		item.IsPack = true
		p.nextToken()
	}

	item.Expression = p.parseExpression(LOWEST)
	if item.Expression == nil {
		return nil
	}
	return item
}
