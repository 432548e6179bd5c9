package ast

import (
	"strconv"

	"github.com/lumascript/lumac/internal/lexer"
)

// NumberLiteral is an integer or floating-point literal. Value holds the
// parsed numeric value regardless of source form; IsFloat records whether
// the source token contained a '.', per spec.md §4.1.
type NumberLiteral struct {
	Token   lexer.Token
	Value   float64
	IsFloat bool
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) Pos() lexer.Position  { return n.Token.Pos }
func (n *NumberLiteral) String() string       { return n.Token.Literal }

// Identifier is a reference to a parameter or a Let-introduced local.
type Identifier struct {
	Token lexer.Token
	Name  string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Name }

// BinaryExpression is `<left> <op> <right>`.
type BinaryExpression struct {
	Token lexer.Token // the operator token
	Left  Expression
	Op    string
	Right Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Pos() lexer.Position  { return b.Token.Pos }
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// AllocExpression is `alloc(<type>, <count>)`.
type AllocExpression struct {
	Token   lexer.Token // the 'alloc' token
	Element Kind
	Count   Expression
}

func (a *AllocExpression) expressionNode()      {}
func (a *AllocExpression) TokenLiteral() string { return a.Token.Literal }
func (a *AllocExpression) Pos() lexer.Position  { return a.Token.Pos }
func (a *AllocExpression) String() string {
	return "alloc(" + a.Element.String() + ", " + a.Count.String() + ")"
}

// SizeofExpression is `sizeof(<type>)`.
type SizeofExpression struct {
	Token lexer.Token // the 'sizeof' token
	Type  Kind
}

func (s *SizeofExpression) expressionNode()      {}
func (s *SizeofExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SizeofExpression) Pos() lexer.Position  { return s.Token.Pos }
func (s *SizeofExpression) String() string       { return "sizeof(" + s.Type.String() + ")" }

// AddressOfExpression is `&<expr>`. Codegen only supports an Identifier
// operand (spec.md §4.3); other operands reach codegen as a CodegenError.
type AddressOfExpression struct {
	Token   lexer.Token // the '&' token
	Operand Expression
}

func (a *AddressOfExpression) expressionNode()      {}
func (a *AddressOfExpression) TokenLiteral() string { return a.Token.Literal }
func (a *AddressOfExpression) Pos() lexer.Position  { return a.Token.Pos }
func (a *AddressOfExpression) String() string       { return "&" + a.Operand.String() }

// DereferenceExpression is `@<ptrExpr>`.
type DereferenceExpression struct {
	Token   lexer.Token // the '@' token
	Pointer Expression
}

func (d *DereferenceExpression) expressionNode()      {}
func (d *DereferenceExpression) TokenLiteral() string { return d.Token.Literal }
func (d *DereferenceExpression) Pos() lexer.Position  { return d.Token.Pos }
func (d *DereferenceExpression) String() string       { return "@" + d.Pointer.String() }

// StringLiteral is the one string-shaped node the grammar in spec.md §4.2
// actually admits as a `primary` (STRING). It parses successfully so a
// superset-grammar source still produces an AST, but spec.md §1's non-goal
// ("no string-manipulation runtime") means internal/codegen has no lowering
// for it; reaching one in a function body is a CodegenError. `ref`, `len`,
// `concat`, and `substr` are reserved words the lexer recognizes (spec.md
// §4.1) but the grammar never admits as expressions, so the parser treats
// them as any other token that cannot start a primary expression.
type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) Pos() lexer.Position  { return s.Token.Pos }
func (s *StringLiteral) String() string       { return strconv.Quote(s.Value) }
