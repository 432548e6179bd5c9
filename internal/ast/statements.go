package ast

import (
	"bytes"

	"github.com/lumascript/lumac/internal/lexer"
)

// ReturnStatement is `return <expr>;`.
type ReturnStatement struct {
	Token lexer.Token // the 'return' token
	Value Expression
}

func (r *ReturnStatement) statementNode()       {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStatement) Pos() lexer.Position  { return r.Token.Pos }
func (r *ReturnStatement) String() string       { return "return " + r.Value.String() + ";" }

// IfStatement is `if (<cond>) <then> [else <else>]`. Else is nil when absent.
type IfStatement struct {
	Token     lexer.Token // the 'if' token
	Condition Expression
	Then      *Block
	Else      *Block
}

func (i *IfStatement) statementNode()       {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) Pos() lexer.Position  { return i.Token.Pos }
func (i *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (" + i.Condition.String() + ") " + i.Then.String())
	if i.Else != nil {
		out.WriteString(" else " + i.Else.String())
	}
	return out.String()
}

// WhileStatement is `while (<cond>) <body>`.
type WhileStatement struct {
	Token     lexer.Token // the 'while' token
	Condition Expression
	Body      *Block
}

func (w *WhileStatement) statementNode()       {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) Pos() lexer.Position  { return w.Token.Pos }
func (w *WhileStatement) String() string {
	return "while (" + w.Condition.String() + ") " + w.Body.String()
}

// LetStatement is `let <name>: <type> = <init>;`, introducing a new local.
type LetStatement struct {
	Token lexer.Token // the 'let' token
	Name  string
	Type  *Type
	Value Expression
}

func (l *LetStatement) statementNode()       {}
func (l *LetStatement) TokenLiteral() string { return l.Token.Literal }
func (l *LetStatement) Pos() lexer.Position  { return l.Token.Pos }
func (l *LetStatement) String() string {
	return "let " + l.Name + ": " + l.Type.String() + " = " + l.Value.String() + ";"
}

// AssignOp enumerates the assignment operators the grammar accepts.
type AssignOp int

const (
	Assign AssignOp = iota
	AddAssign
	SubAssign
	MulAssign
	DivAssign
)

func (op AssignOp) String() string {
	switch op {
	case Assign:
		return "="
	case AddAssign:
		return "+="
	case SubAssign:
		return "-="
	case MulAssign:
		return "*="
	case DivAssign:
		return "/="
	default:
		return "?"
	}
}

// BaseOp returns the binary operator a compound assignment applies, e.g.
// AddAssign -> "+". Panics if op is the plain Assign operator, which has no
// base binary operator.
func (op AssignOp) BaseOp() string {
	switch op {
	case AddAssign:
		return "+"
	case SubAssign:
		return "-"
	case MulAssign:
		return "*"
	case DivAssign:
		return "/"
	default:
		panic("ast: BaseOp called on plain assignment")
	}
}

// AssignStatement is `<name> <op> <value>;`.
type AssignStatement struct {
	Token lexer.Token // the identifier token
	Name  string
	Op    AssignOp
	Value Expression
}

func (a *AssignStatement) statementNode()       {}
func (a *AssignStatement) TokenLiteral() string { return a.Token.Literal }
func (a *AssignStatement) Pos() lexer.Position  { return a.Token.Pos }
func (a *AssignStatement) String() string {
	return a.Name + " " + a.Op.String() + " " + a.Value.String() + ";"
}

// FreeStatement is `free(<ptr>);`. Deallocation is a no-op in codegen; the
// pointer expression is still evaluated for its side effects (e.g. further
// dereferences computed as part of the expression).
type FreeStatement struct {
	Token   lexer.Token // the 'free' token
	Pointer Expression
}

func (f *FreeStatement) statementNode()       {}
func (f *FreeStatement) TokenLiteral() string { return f.Token.Literal }
func (f *FreeStatement) Pos() lexer.Position  { return f.Token.Pos }
func (f *FreeStatement) String() string       { return "free(" + f.Pointer.String() + ");" }

// ExpressionStatement wraps a bare expression used as a statement.
type ExpressionStatement struct {
	Token lexer.Token
	Value Expression
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) Pos() lexer.Position  { return e.Token.Pos }
func (e *ExpressionStatement) String() string       { return e.Value.String() + ";" }
