package lexer

import "fmt"

// LexError reports a lexical-analysis failure: an unrecognized character, an
// unterminated string literal, or an unknown backslash escape. LexError is
// always fatal to the compilation; the lexer itself keeps scanning after one
// (emitting an ILLEGAL token) so that every LexError in the source is
// collected.
type LexError struct {
	Message string
	Pos     Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LexError: %s at line %d, column %d", e.Message, e.Pos.Line, e.Pos.Column)
}

// Position satisfies cerr.Positioned.
func (e *LexError) Position() Position { return e.Pos }
