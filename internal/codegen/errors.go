package codegen

import (
	"fmt"

	"github.com/lumascript/lumac/internal/lexer"
)

// NameError reports a reference to an identifier with no binding in the
// enclosing function's scope (neither a parameter nor an earlier Let). It is
// a codegen-stage error, per spec.md §7's taxonomy.
type NameError struct {
	Name string
	Pos  lexer.Position
}

func (e *NameError) Error() string {
	return fmt.Sprintf("NameError: undefined identifier %q at line %d, column %d", e.Name, e.Pos.Line, e.Pos.Column)
}

// Position satisfies cerr.Positioned.
func (e *NameError) Position() lexer.Position { return e.Pos }

// CodegenError reports an AST shape codegen cannot lower: an unsupported
// expression or statement kind, an unsupported binary operator, or an
// illegal address-of target.
type CodegenError struct {
	Message string
	Pos     lexer.Position
}

func (e *CodegenError) Error() string {
	return fmt.Sprintf("CodegenError: %s at line %d, column %d", e.Message, e.Pos.Line, e.Pos.Column)
}

// Position satisfies cerr.Positioned.
func (e *CodegenError) Position() lexer.Position { return e.Pos }
