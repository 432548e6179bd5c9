package codegen

import "github.com/lumascript/lumac/internal/ast"

// WASM module section IDs, in emission order. Every module lumac emits
// carries exactly these five sections, in this order (spec.md §4.3, §6).
const (
	SectionType     byte = 1
	SectionFunction byte = 3
	SectionMemory   byte = 5
	SectionExport   byte = 7
	SectionCode     byte = 10
)

// ValType is a WASM value type byte, used both in function signatures and
// in a function's locals vector.
type ValType byte

const (
	ValI32 ValType = 0x7F
	ValI64 ValType = 0x7E
	ValF32 ValType = 0x7D
	ValF64 ValType = 0x7C
)

// valTypeOf maps a Luma scalar kind to its WASM value type. Pointers always
// map to i32 (spec.md §4.3).
var valTypeOf = map[ast.Kind]ValType{
	ast.I32: ValI32,
	ast.I64: ValI64,
	ast.F32: ValF32,
	ast.F64: ValF64,
}

// wasmValType returns the WASM value type for a Luma type: pointers and i32
// both map to ValI32, per spec.md §4.3 ("pointers map to i32").
func wasmValType(t *ast.Type) ValType {
	if t.Pointer {
		return ValI32
	}
	return valTypeOf[t.Scalar]
}

// Opcode bytes used by the generator. Grouped the way spec.md §4.3 groups
// them: module framing, control flow, locals, constants, arithmetic and
// comparison, and linear memory.
const (
	OpEnd  byte = 0x0B // terminates a function body or a block/loop/if
	OpElse byte = 0x05 // separates an if's then-arm from its else-arm

	OpBlock byte = 0x02 // begin a block with label depth 0 relative to itself
	OpLoop  byte = 0x03 // begin a loop; br 0 branches back to the top
	OpIf    byte = 0x04 // pop i32 condition, branch into then/else
	OpBr    byte = 0x0C // unconditional branch to the Nth enclosing label
	OpBrIf  byte = 0x0D // pop i32; branch to the Nth enclosing label if nonzero

	BlockTypeVoid byte = 0x40 // empty block type: the block/loop/if produces no value

	OpLocalGet byte = 0x20 // push local[index]
	OpLocalSet byte = 0x21 // pop, store into local[index]
	OpLocalTee byte = 0x22 // peek, store into local[index] without popping

	OpI32Const byte = 0x41 // push a signed LEB128 i32 immediate

	OpI32Add  byte = 0x6A
	OpI32Sub  byte = 0x6B
	OpI32Mul  byte = 0x6C
	OpI32DivS byte = 0x6D
	OpI32Lt   byte = 0x48 // signed less-than
	OpI32Gt   byte = 0x4A // signed greater-than
	OpI32Le   byte = 0x4C // signed less-than-or-equal
	OpI32Ge   byte = 0x4E // signed greater-than-or-equal
	OpI32Eq   byte = 0x46
	OpI32Ne   byte = 0x47 // spec.md §9 note 4: the real i32.ne, not an invented opcode
	OpI32Eqz  byte = 0x45 // pop, push 1 if zero else 0 — used to invert while's condition

	OpMemorySize byte = 0x3F // push current memory size in pages
	OpMemoryGrow byte = 0x40 // pop page delta, grow memory, push old size (-1 on failure)
	OpI32Load    byte = 0x28

	OpDrop byte = 0x1A // pop and discard one value; used for statement-context expressions
)

// binaryOpcodes maps a BinaryExpression's source operator to the opcode it
// lowers to (spec.md §4.3: "Operators not in the table raise
// CodegenError.").
var binaryOpcodes = map[string]byte{
	"+":  OpI32Add,
	"-":  OpI32Sub,
	"*":  OpI32Mul,
	"/":  OpI32DivS,
	"<":  OpI32Lt,
	">":  OpI32Gt,
	"<=": OpI32Le,
	">=": OpI32Ge,
	"==": OpI32Eq,
}

// pageSize is the number of bytes in one unit of WASM linear-memory growth.
const pageSize = 65536
