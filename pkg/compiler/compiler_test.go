package compiler

import (
	"testing"

	"github.com/lumascript/lumac/internal/wasmdecoder"
)

var wantPreamble = []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

// scenarios mirrors spec.md §8's end-to-end table. Execution equivalence
// itself needs a WASM runtime this module doesn't embed (lumac is a
// compiler, not an execution engine), so these cases check structure only:
// preamble, export name and index, the memory section, one deduplicated
// type, and its parameter count. The call results themselves are not
// checked.
var scenarios = []struct {
	name      string
	source    string
	export    string
	numParams int
}{
	{"add", "func add(a: i32, b: i32) -> i32 { return a + b; }", "add", 2},
	{"answer", "func answer() -> i32 { return 42; }", "answer", 0},
	{"calc", "func calc(x: i32, y: i32) -> i32 { return x * y + 1; }", "calc", 2},
	{"abs", "func abs(x: i32) -> i32 { if (x > 0) { return x; } else { return 0 - x; } }", "abs", 1},
	{
		"sum_to",
		"func sum_to(n: i32) -> i32 { let s: i32 = 0; let i: i32 = 1; while (i <= n) { s += i; i += 1; } return s; }",
		"sum_to", 1,
	},
}

func TestCompileScenarios(t *testing.T) {
	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			result, err := Compile(sc.source, sc.name+".luma")
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}

			wasm := result.Wasm
			if len(wasm) < 8 || string(wasm[:8]) != string(wantPreamble) {
				t.Fatalf("preamble mismatch: got %x", wasm[:min(8, len(wasm))])
			}

			module, err := wasmdecoder.Decode(wasm)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}

			if len(module.ExportSection) != 1 || module.ExportSection[0].Name != sc.export {
				t.Fatalf("expected export %q, got %+v", sc.export, module.ExportSection)
			}
			if module.ExportSection[0].Index != 0 {
				t.Fatalf("expected export index 0, got %d", module.ExportSection[0].Index)
			}
			if len(module.MemorySection) != 1 || module.MemorySection[0].Min != 1 || module.MemorySection[0].Max != 1 {
				t.Fatalf("expected mandatory 1-page memory, got %+v", module.MemorySection)
			}
			if len(module.TypeSection) != 1 {
				t.Fatalf("expected one deduplicated type for a single function, got %d", len(module.TypeSection))
			}
			if len(module.TypeSection[0].Params) != sc.numParams {
				t.Fatalf("expected %d params, got %d", sc.numParams, len(module.TypeSection[0].Params))
			}
		})
	}
}

func TestCompileTypeDeduplication(t *testing.T) {
	source := `
func add(a: i32, b: i32) -> i32 { return a + b; }
func sub(a: i32, b: i32) -> i32 { return a - b; }
func answer() -> i32 { return 42; }
`
	result, err := Compile(source, "dedup.luma")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	module, err := wasmdecoder.Decode(result.Wasm)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	// add and sub share an (i32,i32)->i32 signature; answer is ()->i32:
	// 3 functions, 2 distinct signatures (spec.md invariant 4).
	if len(module.TypeSection) != 2 {
		t.Fatalf("expected 2 deduplicated types, got %d", len(module.TypeSection))
	}
	if len(module.FunctionSection) != 3 {
		t.Fatalf("expected 3 function entries, got %d", len(module.FunctionSection))
	}
	if module.FunctionSection[0] != module.FunctionSection[1] {
		t.Fatalf("add and sub should share a type index, got %d and %d",
			module.FunctionSection[0], module.FunctionSection[1])
	}
	if len(module.ExportSection) != 3 {
		t.Fatalf("expected 3 exports, got %d", len(module.ExportSection))
	}
	for i, exp := range module.ExportSection {
		if int(exp.Index) != i {
			t.Errorf("export %q: expected declaration-order index %d, got %d", exp.Name, i, exp.Index)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"undefined identifier", "func f() -> i32 { return x; }"},
		{"unsupported operator", "func f(a: i32, b: i32) -> i32 { return a % b; }"},
		{"missing semicolon", "func f() -> i32 { return 42 }"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Compile(c.source, "err.luma"); err == nil {
				t.Fatalf("expected an error for %q", c.source)
			}
		})
	}
}
