// Package compiler is lumac's embeddable entry point: Tokenize, Parse,
// Generate, and Compile drive the lexer, parser, and codegen stages in order
// and translate each stage's error slice into a single *cerr.CompilerError
// batch, the way cmd/dwscript/cmd/compile.go drives go-dws's pipeline.
package compiler

import (
	"fmt"

	"github.com/lumascript/lumac/internal/ast"
	"github.com/lumascript/lumac/internal/cerr"
	"github.com/lumascript/lumac/internal/codegen"
	"github.com/lumascript/lumac/internal/lexer"
	"github.com/lumascript/lumac/internal/parser"
)

// Result holds the artifacts of a successful compilation, in case a caller
// wants the WASM bytes alongside the token/AST intermediates.
type Result struct {
	Tokens  []lexer.Token
	Program *ast.Program
	Wasm    []byte
}

// Tokenize runs only the lexical-analysis stage, returning a batch error if
// the source contains illegal tokens.
func Tokenize(source, file string) ([]lexer.Token, error) {
	tokens, errs := lexer.Tokenize(source)
	if len(errs) > 0 {
		return nil, batch(errs, source, file)
	}
	return tokens, nil
}

// Parse runs the lexer then the parser, returning a batch error from
// whichever stage failed first.
func Parse(source, file string) (*ast.Program, error) {
	tokens, err := Tokenize(source, file)
	if err != nil {
		return nil, err
	}
	program, errs := parser.ParseProgram(tokens)
	if len(errs) > 0 {
		return nil, batch(errs, source, file)
	}
	return program, nil
}

// Compile runs the full lex → parse → codegen pipeline and returns the
// finished WASM module bytes. A lex or parse failure is returned as a
// *BatchError; a codegen failure is returned as a single *cerr.CompilerError,
// since codegen stops at its first error.
func Compile(source, file string) (*Result, error) {
	tokens, err := Tokenize(source, file)
	if err != nil {
		return nil, err
	}

	program, errs := parser.ParseProgram(tokens)
	if len(errs) > 0 {
		return nil, batch(errs, source, file)
	}

	wasm, err := codegen.Generate(program)
	if err != nil {
		positioned, ok := err.(cerr.Positioned)
		if !ok {
			return nil, fmt.Errorf("codegen: %w", err)
		}
		return nil, cerr.New(positioned, source, file)
	}

	return &Result{Tokens: tokens, Program: program, Wasm: wasm}, nil
}

// batch wraps a slice of a stage's positioned error type (e.g. []*lexer.LexError or
// []*parser.ParseError) as cerr.Positioned and renders them together.
func batch[E cerr.Positioned](errs []E, source, file string) error {
	wrapped := make([]*cerr.CompilerError, len(errs))
	for i, e := range errs {
		wrapped[i] = cerr.New(e, source, file)
	}
	return &BatchError{Errors: wrapped}
}

// BatchError reports every error a single stage collected before giving up.
// The lexer keeps scanning after an error, so a lex batch can hold several;
// the parser stops at its first error, so a parse batch holds one.
type BatchError struct {
	Errors []*cerr.CompilerError
}

func (b *BatchError) Error() string {
	return cerr.FormatAll(b.Errors, false)
}
