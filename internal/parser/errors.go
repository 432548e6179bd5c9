// Package parser implements the recursive-descent parser that turns a Luma
// token sequence into a Program AST, per spec.md §4.2.
package parser

import (
	"fmt"

	"github.com/lumascript/lumac/internal/lexer"
)

// ParseError reports a grammar violation: a missing expected token, a token
// that cannot start an expression, or a malformed type specifier. It is
// always fatal — the parser does not attempt error recovery.
type ParseError struct {
	Message string
	Token   lexer.Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ParseError: %s at line %d, column %d", e.Message, e.Token.Pos.Line, e.Token.Pos.Column)
}

// Position satisfies cerr.Positioned.
func (e *ParseError) Position() lexer.Position { return e.Token.Pos }
