// Package cerr formats compiler errors with source context: a file:line:col
// header, the offending source line, and a caret pointing at the column.
// Every stage (lexer, parser, codegen) reports a position through this one
// formatter, so lumac's CLI output looks the same regardless of which stage
// failed.
package cerr

import (
	"fmt"
	"strings"

	"github.com/lumascript/lumac/internal/lexer"
)

// Positioned is implemented by every error type lumac's stages produce:
// lexer.LexError, parser.ParseError, codegen.NameError, codegen.CodegenError.
type Positioned interface {
	error
	Position() lexer.Position
}

// CompilerError pairs a Positioned error with the source text and an
// optional file name, so it can render a caret-annotated excerpt.
type CompilerError struct {
	Err    Positioned
	Source string
	File   string
}

func New(err Positioned, source, file string) *CompilerError {
	return &CompilerError{Err: err, Source: source, File: file}
}

func (e *CompilerError) Error() string {
	return e.Format(false)
}

func (e *CompilerError) Unwrap() error { return e.Err }

// Format renders the error with a one-line source excerpt and a caret. With
// color set, the caret is wrapped in ANSI bold/red codes; the message is
// never colored.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder
	pos := e.Err.Position()

	if e.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: ", e.File, pos.Line, pos.Column)
	} else {
		fmt.Fprintf(&sb, "%d:%d: ", pos.Line, pos.Column)
	}
	sb.WriteString(e.Err.Error())
	sb.WriteString("\n")

	line := sourceLine(e.Source, pos.Line)
	if line == "" {
		return sb.String()
	}

	lineNumStr := fmt.Sprintf("%4d | ", pos.Line)
	sb.WriteString(lineNumStr)
	sb.WriteString(line)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+pos.Column-1))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a batch of errors, each with its own source excerpt,
// separated by a blank line and numbered when there is more than one.
func FormatAll(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "compilation failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[%d/%d] ", i+1, len(errs))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
