package codegen

import (
	"testing"

	"github.com/lumascript/lumac/internal/lexer"
	"github.com/lumascript/lumac/internal/parser"
)

func compileFunctionBody(t *testing.T, source string) []byte {
	t.Helper()
	tokens, lexErrs := lexer.Tokenize(source)
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	program, parseErrs := parser.ParseProgram(tokens)
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}

	g := &Generator{typeIndex: make(map[string]int)}
	body, err := g.generateFunctionBody(program.Functions[0])
	if err != nil {
		t.Fatalf("generateFunctionBody: %v", err)
	}
	return body
}

func TestGenerateReturnAddition(t *testing.T) {
	body := compileFunctionBody(t, "func add(a: i32, b: i32) -> i32 { return a + b; }")

	// size | locals_vec (one group: the 3 reserved scratch locals, all i32)
	// | local.get 0 | local.get 1 | i32.add | end
	want := []byte{
		0x09, // size: everything after this byte
		0x01, 0x03, byte(ValI32), // one group of 3 i32 locals
		OpLocalGet, 0x00,
		OpLocalGet, 0x01,
		OpI32Add,
		OpEnd,
	}
	if string(body) != string(want) {
		t.Errorf("got % x, want % x", body, want)
	}
}

func TestGenerateLetAndReturn(t *testing.T) {
	body := compileFunctionBody(t, "func f() -> i32 { let x: i32 = 7; return x; }")

	want := []byte{
		0x0A, // size
		0x01, 0x04, byte(ValI32), // one group: 4 locals (1 let + 3 scratch), all i32
		OpI32Const, 0x07, // push 7
		OpLocalSet, 0x00, // store into x (local index 0)
		OpLocalGet, 0x00, // push x
		OpEnd,
	}
	if string(body) != string(want) {
		t.Errorf("got % x, want % x", body, want)
	}
}

func TestGenerateCompoundAssignment(t *testing.T) {
	body := compileFunctionBody(t, "func f(n: i32) -> i32 { n += 1; return n; }")

	want := []byte{
		0x0D, // size
		0x01, 0x03, byte(ValI32), // 3 scratch locals, no Let locals
		OpLocalGet, 0x00, // n
		OpI32Const, 0x01, // 1
		OpI32Add,
		OpLocalSet, 0x00,
		OpLocalGet, 0x00,
		OpEnd,
	}
	if string(body) != string(want) {
		t.Errorf("got % x, want % x", body, want)
	}
}

func TestGenerateNameErrorForUndefinedIdentifier(t *testing.T) {
	tokens, lexErrs := lexer.Tokenize("func f() -> i32 { return x; }")
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	program, parseErrs := parser.ParseProgram(tokens)
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}

	g := &Generator{typeIndex: make(map[string]int)}
	_, err := g.generateFunctionBody(program.Functions[0])
	if err == nil {
		t.Fatal("expected a NameError for the undefined identifier")
	}
	if _, ok := err.(*NameError); !ok {
		t.Errorf("got %T, want *NameError", err)
	}
}

func TestGenerateCodegenErrorForUnsupportedOperator(t *testing.T) {
	tokens, lexErrs := lexer.Tokenize("func f(a: i32, b: i32) -> i32 { return a % b; }")
	if len(lexErrs) != 0 {
		t.Skip("lexer rejects '%' before codegen sees it")
	}
	program, parseErrs := parser.ParseProgram(tokens)
	if len(parseErrs) != 0 {
		t.Skip("grammar rejects '%' before codegen sees it")
	}

	g := &Generator{typeIndex: make(map[string]int)}
	_, err := g.generateFunctionBody(program.Functions[0])
	if err == nil {
		t.Fatal("expected a CodegenError for the unsupported operator")
	}
	if _, ok := err.(*CodegenError); !ok {
		t.Errorf("got %T, want *CodegenError", err)
	}
}
