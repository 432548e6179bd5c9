package parser

import (
	"strconv"

	"github.com/lumascript/lumac/internal/ast"
	"github.com/lumascript/lumac/internal/lexer"
)

// Parser is a strict recursive-descent parser with a single token of
// lookahead over a pre-tokenized input. It mirrors go-dws's parser in
// keeping its own error slice rather than panicking, but per spec.md §4.2
// the first error still aborts: once Errors() is non-empty, ParseProgram
// stops descending into further functions.
type Parser struct {
	tokens []lexer.Token
	pos    int
	cur    lexer.Token
	peek   lexer.Token
	errors []*ParseError
}

// New creates a Parser over a complete token sequence (as produced by
// lexer.Tokenize), which must end in an EOF token.
func New(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: tokens}
	p.advance()
	p.advance()
	return p
}

// Errors returns every ParseError encountered. Non-empty Errors() means
// ParseProgram's result, if any, is partial and must not be used.
func (p *Parser) Errors() []*ParseError {
	return p.errors
}

func (p *Parser) advance() {
	p.cur = p.peek
	if p.pos < len(p.tokens) {
		p.peek = p.tokens[p.pos]
		p.pos++
	} else {
		p.peek = lexer.Token{Type: lexer.EOF}
	}
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Type == t }

func (p *Parser) fail(msg string) {
	p.errors = append(p.errors, &ParseError{Message: msg, Token: p.cur})
}

// expect advances past the current token if it has type t, else records a
// ParseError and returns false without advancing.
func (p *Parser) expect(t lexer.TokenType) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	p.fail("expected " + t.String() + ", got " + p.cur.Type.String())
	return false
}

func (p *Parser) failed() bool { return len(p.errors) > 0 }

// ParseProgram parses the entire token sequence into a Program, stopping at
// the first ParseError.
func ParseProgram(tokens []lexer.Token) (*ast.Program, []*ParseError) {
	p := New(tokens)
	prog := &ast.Program{}

	for !p.curIs(lexer.EOF) && !p.failed() {
		fn := p.parseFunction()
		if p.failed() {
			break
		}
		prog.Functions = append(prog.Functions, fn)
	}

	return prog, p.errors
}

func (p *Parser) parseFunction() *ast.Function {
	tok := p.cur
	if !p.expect(lexer.FUNC) {
		return nil
	}

	name := p.cur.Literal
	if !p.expect(lexer.IDENT) {
		return nil
	}

	if !p.expect(lexer.LPAREN) {
		return nil
	}
	var params []*ast.Parameter
	if !p.curIs(lexer.RPAREN) {
		params = p.parseParamList()
		if p.failed() {
			return nil
		}
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}

	if !p.expect(lexer.ARROW) {
		return nil
	}
	retType := p.parseType()
	if p.failed() {
		return nil
	}

	body := p.parseBlock()
	if p.failed() {
		return nil
	}

	return &ast.Function{Token: tok, Name: name, Parameters: params, ReturnType: retType, Body: body}
}

func (p *Parser) parseParamList() []*ast.Parameter {
	var params []*ast.Parameter
	for {
		param := p.parseParam()
		if p.failed() {
			return nil
		}
		params = append(params, param)
		if !p.curIs(lexer.COMMA) {
			break
		}
		p.advance()
	}
	return params
}

func (p *Parser) parseParam() *ast.Parameter {
	tok := p.cur
	name := p.cur.Literal
	if !p.expect(lexer.IDENT) {
		return nil
	}
	if !p.expect(lexer.COLON) {
		return nil
	}
	typ := p.parseType()
	if p.failed() {
		return nil
	}
	return &ast.Parameter{Token: tok, Name: name, Type: typ}
}

// parseType parses `type := 'i32' | 'i64' | 'f32' | 'f64' | 'string' |
// 'ptr' '<' type '>'`. The string type has no ast.Kind representation since
// codegen never needs one (spec.md's scalar Kind set is {i32,i64,f32,f64});
// a 'string' type specifier is accepted syntactically and rejected as a
// malformed type only when it appears where a scalar/pointer Kind is
// structurally required (i.e. inside ptr<...>, alloc, or sizeof).
func (p *Parser) parseType() *ast.Type {
	if p.curIs(lexer.PTR) {
		p.advance()
		if !p.expect(lexer.LT) {
			return nil
		}
		inner := p.parseScalarKind()
		if p.failed() {
			return nil
		}
		if !p.expect(lexer.GT) {
			return nil
		}
		return ast.PointerTo(inner)
	}

	if p.curIs(lexer.STRINGTYPE) {
		p.advance()
		return ast.StringType()
	}

	kind := p.parseScalarKind()
	if p.failed() {
		return nil
	}
	return ast.Scalar(kind)
}

func (p *Parser) parseScalarKind() ast.Kind {
	var kind ast.Kind
	switch p.cur.Type {
	case lexer.I32:
		kind = ast.I32
	case lexer.I64:
		kind = ast.I64
	case lexer.F32:
		kind = ast.F32
	case lexer.F64:
		kind = ast.F64
	default:
		p.fail("malformed type specifier, got " + p.cur.Type.String())
		return 0
	}
	p.advance()
	return kind
}

func (p *Parser) parseBlock() *ast.Block {
	tok := p.cur
	if !p.expect(lexer.LBRACE) {
		return nil
	}
	block := &ast.Block{Token: tok}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) && !p.failed() {
		stmt := p.parseStatement()
		if p.failed() {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
	}
	if !p.expect(lexer.RBRACE) {
		return nil
	}
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.LET:
		return p.parseLetStatement()
	case lexer.FREE:
		return p.parseFreeStatement()
	case lexer.IDENT:
		if isAssignOp(p.peek.Type) {
			return p.parseAssignStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func isAssignOp(t lexer.TokenType) bool {
	switch t {
	case lexer.ASSIGN, lexer.PLUSASSIGN, lexer.MINUSASSIGN, lexer.STARASSIGN, lexer.SLASHASSIGN:
		return true
	default:
		return false
	}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.cur
	p.advance()
	val := p.parseExpression()
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	return &ast.ReturnStatement{Token: tok, Value: val}
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.cur
	p.advance()
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	cond := p.parseExpression()
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	then := p.parseBlock()
	if p.failed() {
		return nil
	}
	var elseBlock *ast.Block
	if p.curIs(lexer.ELSE) {
		p.advance()
		elseBlock = p.parseBlock()
		if p.failed() {
			return nil
		}
	}
	return &ast.IfStatement{Token: tok, Condition: cond, Then: then, Else: elseBlock}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.cur
	p.advance()
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	cond := p.parseExpression()
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseLetStatement() ast.Statement {
	tok := p.cur
	p.advance()
	name := p.cur.Literal
	if !p.expect(lexer.IDENT) {
		return nil
	}
	if !p.expect(lexer.COLON) {
		return nil
	}
	typ := p.parseType()
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.ASSIGN) {
		return nil
	}
	val := p.parseExpression()
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	return &ast.LetStatement{Token: tok, Name: name, Type: typ, Value: val}
}

func (p *Parser) parseFreeStatement() ast.Statement {
	tok := p.cur
	p.advance()
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	ptr := p.parseExpression()
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	return &ast.FreeStatement{Token: tok, Pointer: ptr}
}

func (p *Parser) parseAssignStatement() ast.Statement {
	tok := p.cur
	name := p.cur.Literal
	p.advance()

	var op ast.AssignOp
	switch p.cur.Type {
	case lexer.ASSIGN:
		op = ast.Assign
	case lexer.PLUSASSIGN:
		op = ast.AddAssign
	case lexer.MINUSASSIGN:
		op = ast.SubAssign
	case lexer.STARASSIGN:
		op = ast.MulAssign
	case lexer.SLASHASSIGN:
		op = ast.DivAssign
	}
	p.advance()

	val := p.parseExpression()
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	return &ast.AssignStatement{Token: tok, Name: name, Op: op, Value: val}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.cur
	val := p.parseExpression()
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	return &ast.ExpressionStatement{Token: tok, Value: val}
}

// parseExpression implements `expression := comparison`.
func (p *Parser) parseExpression() ast.Expression {
	return p.parseComparison()
}

// comparison := addition (('<'|'>'|'=='|'<='|'>=') addition)*
func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAddition()
	if p.failed() {
		return nil
	}
	for isComparisonOp(p.cur.Type) {
		tok := p.cur
		op := tok.Literal
		p.advance()
		right := p.parseAddition()
		if p.failed() {
			return nil
		}
		left = &ast.BinaryExpression{Token: tok, Left: left, Op: op, Right: right}
	}
	return left
}

func isComparisonOp(t lexer.TokenType) bool {
	switch t {
	case lexer.LT, lexer.GT, lexer.EQ, lexer.LE, lexer.GE:
		return true
	default:
		return false
	}
}

// addition := multiplication (('+'|'-') multiplication)*
func (p *Parser) parseAddition() ast.Expression {
	left := p.parseMultiplication()
	if p.failed() {
		return nil
	}
	for p.curIs(lexer.PLUS) || p.curIs(lexer.MINUS) {
		tok := p.cur
		op := tok.Literal
		p.advance()
		right := p.parseMultiplication()
		if p.failed() {
			return nil
		}
		left = &ast.BinaryExpression{Token: tok, Left: left, Op: op, Right: right}
	}
	return left
}

// multiplication := primary (('*'|'/') primary)*
func (p *Parser) parseMultiplication() ast.Expression {
	left := p.parsePrimary()
	if p.failed() {
		return nil
	}
	for p.curIs(lexer.STAR) || p.curIs(lexer.SLASH) {
		tok := p.cur
		op := tok.Literal
		p.advance()
		right := p.parsePrimary()
		if p.failed() {
			return nil
		}
		left = &ast.BinaryExpression{Token: tok, Left: left, Op: op, Right: right}
	}
	return left
}

// parsePrimary implements:
//
//	primary := INTEGER | FLOAT | STRING | IDENT
//	         | 'alloc' '(' type ',' expression ')'
//	         | 'sizeof' '(' type ')'
//	         | '&' expression
//	         | '@' expression
func (p *Parser) parsePrimary() ast.Expression {
	switch p.cur.Type {
	case lexer.INT:
		return p.parseNumberLiteral(false)
	case lexer.FLOAT:
		return p.parseNumberLiteral(true)
	case lexer.STRING:
		tok := p.cur
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case lexer.IDENT:
		tok := p.cur
		p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	case lexer.ALLOC:
		return p.parseAllocExpression()
	case lexer.SIZEOF:
		return p.parseSizeofExpression()
	case lexer.AMP:
		tok := p.cur
		p.advance()
		operand := p.parseExpression()
		if p.failed() {
			return nil
		}
		return &ast.AddressOfExpression{Token: tok, Operand: operand}
	case lexer.AT:
		tok := p.cur
		p.advance()
		ptr := p.parseExpression()
		if p.failed() {
			return nil
		}
		return &ast.DereferenceExpression{Token: tok, Pointer: ptr}
	case lexer.LPAREN:
		p.advance()
		inner := p.parseExpression()
		if p.failed() {
			return nil
		}
		if !p.expect(lexer.RPAREN) {
			return nil
		}
		return inner
	default:
		p.fail("unexpected token " + p.cur.Type.String() + ", expected an expression")
		return nil
	}
}

func (p *Parser) parseNumberLiteral(isFloat bool) ast.Expression {
	tok := p.cur
	p.advance()
	val, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.fail("malformed numeric literal '" + tok.Literal + "'")
		return nil
	}
	return &ast.NumberLiteral{Token: tok, Value: val, IsFloat: isFloat}
}

func (p *Parser) parseAllocExpression() ast.Expression {
	tok := p.cur
	p.advance()
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	elem := p.parseScalarKind()
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.COMMA) {
		return nil
	}
	count := p.parseExpression()
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	return &ast.AllocExpression{Token: tok, Element: elem, Count: count}
}

func (p *Parser) parseSizeofExpression() ast.Expression {
	tok := p.cur
	p.advance()
	if !p.expect(lexer.LPAREN) {
		return nil
	}
	typ := p.parseScalarKind()
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	return &ast.SizeofExpression{Token: tok, Type: typ}
}
