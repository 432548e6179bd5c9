package ast

import (
	"bytes"
	"strings"

	"github.com/lumascript/lumac/internal/lexer"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node that performs an action without itself producing a
// value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root AST node: an ordered list of function definitions.
type Program struct {
	Functions []*Function
}

func (p *Program) TokenLiteral() string {
	if len(p.Functions) > 0 {
		return p.Functions[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, fn := range p.Functions {
		out.WriteString(fn.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Pos() lexer.Position {
	if len(p.Functions) > 0 {
		return p.Functions[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

// Parameter is a single (name, type) entry in a Function's parameter list.
type Parameter struct {
	Token lexer.Token
	Name  string
	Type  *Type
}

// Function is a named, top-level function: parameters, a single return
// type, and a body block.
type Function struct {
	Token      lexer.Token // the 'func' token
	Name       string
	Parameters []*Parameter
	ReturnType *Type
	Body       *Block
}

func (f *Function) TokenLiteral() string { return f.Token.Literal }
func (f *Function) Pos() lexer.Position  { return f.Token.Pos }
func (f *Function) String() string {
	var out bytes.Buffer
	out.WriteString("func " + f.Name + "(")
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = p.Name + ": " + p.Type.String()
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") -> " + f.ReturnType.String() + " ")
	out.WriteString(f.Body.String())
	return out.String()
}

// Block is an ordered list of statements delimited by '{' and '}'.
type Block struct {
	Token      lexer.Token // the '{' token
	Statements []Statement
}

func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) Pos() lexer.Position  { return b.Token.Pos }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.Statements {
		out.WriteString("  " + strings.ReplaceAll(s.String(), "\n", "\n  ") + "\n")
	}
	out.WriteString("}")
	return out.String()
}
