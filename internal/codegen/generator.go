// Package codegen lowers a Luma Program AST into a WASM binary module, per
// spec.md §4.3/§4.4: one type, function, memory, export, and code section,
// in that order, assembled behind the fixed 8-byte preamble.
package codegen

import (
	"strings"

	"github.com/lumascript/lumac/internal/ast"
)

// Generator holds the per-compilation state spec.md §3's "Lifecycles"
// section describes: a deduplicated function-type table built once for the
// whole program, plus (rebuilt per function) a local-name→index map and a
// next-local-index counter. None of this state outlives a single Generate
// call, matching spec.md §5 ("no shared mutable state crosses stage
// boundaries").
type Generator struct {
	typeIndex map[string]int // signature key -> type section index

	locals    map[string]int // current function's name -> local index
	nextLocal int

	// scratch holds three reserved i32 locals, rebuilt per function
	// alongside the Let locals: scratch[0] is the dereference-target
	// register an Dereference lowering tees its pointer into (so the value
	// can be tested and loaded without a WASM `dup`, per spec.md §9 note
	// 4); scratch[1] holds an Alloc lowering's element count, and scratch[2]
	// its byte count and then the grow result. Their lifetimes never overlap within one expression,
	// so one set of three slots is reused by every Dereference/Alloc in the
	// function body.
	scratch [3]int
}

// Generate compiles program into a complete WASM module. It is the
// implementation of the abstract `generate(program) → bytes` entry point in
// spec.md §6.
func Generate(program *ast.Program) ([]byte, error) {
	g := &Generator{typeIndex: make(map[string]int)}
	return g.generate(program)
}

func (g *Generator) generate(program *ast.Program) ([]byte, error) {
	var typeSec, funcSec, exportSec, codeSec [][]byte

	// signatureIndex registers each distinct (params, result) signature the
	// first time it is seen and returns its stable type-section index
	// thereafter, so two functions sharing a signature share one type-section
	// entry (spec.md invariant 3).
	for _, fn := range program.Functions {
		idx, def, isNew := g.signatureIndex(fn)
		if isNew {
			typeSec = append(typeSec, def)
		}
		funcSec = append(funcSec, []byte{byte(idx)})
	}

	for i, fn := range program.Functions {
		exportSec = append(exportSec, g.generateExport(fn, i))
	}

	for _, fn := range program.Functions {
		body, err := g.generateFunctionBody(fn)
		if err != nil {
			return nil, err
		}
		codeSec = append(codeSec, body)
	}

	memSec := []byte{0x01, 0x01, 0x01} // limits kind 0x01 (min+max), min=1, max=1 page

	return assemble(
		encodeVector(typeSec),
		encodeVector(funcSec),
		encodeVector([][]byte{memSec}),
		encodeVector(exportSec),
		encodeVector(codeSec),
	), nil
}

// signatureIndex returns fn's type-section index, registering a new type
// entry the first time a given (params, result) signature is seen
// (spec.md invariant 3: function-type deduplication).
func (g *Generator) signatureIndex(fn *ast.Function) (index int, def []byte, isNew bool) {
	key := signatureKey(fn)
	if idx, ok := g.typeIndex[key]; ok {
		return idx, nil, false
	}

	params := make([]ValType, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = wasmValType(p.Type)
	}
	result := wasmValType(fn.ReturnType)

	paramBytes := make([][]byte, len(params))
	for i, v := range params {
		paramBytes[i] = []byte{byte(v)}
	}

	funcType := []byte{0x60}
	funcType = append(funcType, encodeVector(paramBytes)...)
	funcType = append(funcType, encodeVector([][]byte{{byte(result)}})...)

	idx := len(g.typeIndex)
	g.typeIndex[key] = idx
	return idx, funcType, true
}

func signatureKey(fn *ast.Function) string {
	var sb strings.Builder
	for _, p := range fn.Parameters {
		sb.WriteByte(byte(wasmValType(p.Type)))
	}
	sb.WriteString("->")
	sb.WriteByte(byte(wasmValType(fn.ReturnType)))
	return sb.String()
}

// generateExport builds one export-section entry: name, kind 0x00
// (function), and the function's declaration-order index (spec.md
// invariant/testable-property 3).
func (g *Generator) generateExport(fn *ast.Function, index int) []byte {
	nameBytes := []byte(fn.Name)
	entry := encodeVector(byteVector(nameBytes))
	entry = append(entry, 0x00)
	entry = append(entry, EncodeULEB128(uint64(index))...)
	return entry
}

// byteVector wraps each byte of b as a single-byte slice so it can be
// passed through encodeVector, which encodes a string's UTF-8 bytes as a
// WASM "name" (itself a byte vector).
func byteVector(b []byte) [][]byte {
	out := make([][]byte, len(b))
	for i, c := range b {
		out[i] = []byte{c}
	}
	return out
}

// generateFunctionBody builds one code-section entry for fn: `body_len |
// locals_vec | instructions | end`, per spec.md §4.3.
func (g *Generator) generateFunctionBody(fn *ast.Function) ([]byte, error) {
	g.locals = make(map[string]int, len(fn.Parameters))
	g.nextLocal = 0

	for _, p := range fn.Parameters {
		g.locals[p.Name] = g.nextLocal
		g.nextLocal++
	}

	// Scan top-level statements for Let declarations first, so that every
	// Identifier reference inside the body (even one that lexically
	// precedes a later Let at the same nesting level, which spec.md
	// disallows anyway) resolves against the final, stable local layout.
	letCount := 0
	for _, stmt := range fn.Body.Statements {
		if let, ok := stmt.(*ast.LetStatement); ok {
			g.locals[let.Name] = g.nextLocal
			g.nextLocal++
			letCount++
		}
	}

	for i := range g.scratch {
		g.scratch[i] = g.nextLocal
		g.nextLocal++
	}

	localsVec := encodeVector(runLengthLocals(letCount + len(g.scratch)))

	code, err := g.generateStatements(fn.Body.Statements)
	if err != nil {
		return nil, err
	}
	code = append(code, OpEnd)

	body := append(localsVec, code...)
	return sizePrefixed(body), nil
}

// runLengthLocals encodes count locals, all of type i32 (spec.md §4.3: "the
// generator treats every Let-declared local as type i32 in this
// specification"), as a single run-length-compressed group, or no groups at
// all when count is 0.
func runLengthLocals(count int) [][]byte {
	if count == 0 {
		return nil
	}
	group := EncodeULEB128(uint64(count))
	group = append(group, byte(ValI32))
	return [][]byte{group}
}

// localIndex resolves name against the current function's local map, or
// returns a NameError (spec.md invariant 1, §7).
func (g *Generator) localIndex(name string, pos ast.Node) (int, error) {
	if idx, ok := g.locals[name]; ok {
		return idx, nil
	}
	return 0, &NameError{Name: name, Pos: pos.Pos()}
}

func i32ConstBytes(value int64) []byte {
	return append([]byte{OpI32Const}, EncodeSLEB128(value)...)
}

// truncateToI32 coerces a possibly-float literal value to the signed int32
// the generator always emits, per spec.md §9 note 3 ("NumberLiteral stores
// a floating-point value but is always emitted as i32.const;
// floating-point literal lowering is unspecified and deferred" — here
// resolved as a truncating conversion).
func truncateToI32(value float64) int64 {
	return int64(int32(value))
}

// generateStatements lowers a sequence of statements in order, concatenating
// their instruction bytes.
func (g *Generator) generateStatements(stmts []ast.Statement) ([]byte, error) {
	var code []byte
	for _, stmt := range stmts {
		b, err := g.generateStatement(stmt)
		if err != nil {
			return nil, err
		}
		code = append(code, b...)
	}
	return code, nil
}

// generateStatement lowers one statement to its instruction bytes, per
// spec.md §4.3's per-statement lowering rules.
func (g *Generator) generateStatement(stmt ast.Statement) ([]byte, error) {
	switch s := stmt.(type) {
	case *ast.ReturnStatement:
		return g.generateExpression(s.Value)

	case *ast.IfStatement:
		cond, err := g.generateExpression(s.Condition)
		if err != nil {
			return nil, err
		}
		then, err := g.generateStatements(s.Then.Statements)
		if err != nil {
			return nil, err
		}
		code := append(cond, OpIf, BlockTypeVoid)
		code = append(code, then...)
		if s.Else != nil {
			elseBody, err := g.generateStatements(s.Else.Statements)
			if err != nil {
				return nil, err
			}
			code = append(code, OpElse)
			code = append(code, elseBody...)
		}
		code = append(code, OpEnd)
		return code, nil

	case *ast.WhileStatement:
		cond, err := g.generateExpression(s.Condition)
		if err != nil {
			return nil, err
		}
		body, err := g.generateStatements(s.Body.Statements)
		if err != nil {
			return nil, err
		}
		// Outer block gives the `br_if 1` below a label to exit to; the
		// `br 0` at the end of the body re-enters the inner loop. spec.md §9 note 1: br_if branches on a nonzero
		// operand, the opposite of the naive "branch if condition false"
		// reading, so the condition is negated with i32.eqz before br_if
		// targets the outer block (depth 1) to exit the loop.
		code := []byte{OpBlock, BlockTypeVoid, OpLoop, BlockTypeVoid}
		code = append(code, cond...)
		code = append(code, OpI32Eqz)
		code = append(code, OpBrIf)
		code = append(code, EncodeULEB128(1)...)
		code = append(code, body...)
		code = append(code, OpBr)
		code = append(code, EncodeULEB128(0)...)
		code = append(code, OpEnd, OpEnd)
		return code, nil

	case *ast.LetStatement:
		value, err := g.generateExpression(s.Value)
		if err != nil {
			return nil, err
		}
		idx, err := g.localIndex(s.Name, s)
		if err != nil {
			return nil, err
		}
		code := append(value, OpLocalSet)
		return append(code, EncodeULEB128(uint64(idx))...), nil

	case *ast.AssignStatement:
		idx, err := g.localIndex(s.Name, s)
		if err != nil {
			return nil, err
		}
		value, err := g.generateExpression(s.Value)
		if err != nil {
			return nil, err
		}
		var code []byte
		if s.Op == ast.Assign {
			code = value
		} else {
			op, ok := binaryOpcodes[s.Op.BaseOp()]
			if !ok {
				return nil, &CodegenError{Message: "unsupported compound assignment operator " + s.Op.String(), Pos: s.Pos()}
			}
			code = append(code, OpLocalGet)
			code = append(code, EncodeULEB128(uint64(idx))...)
			code = append(code, value...)
			code = append(code, op)
		}
		code = append(code, OpLocalSet)
		return append(code, EncodeULEB128(uint64(idx))...), nil

	case *ast.FreeStatement:
		ptr, err := g.generateExpression(s.Pointer)
		if err != nil {
			return nil, err
		}
		return append(ptr, OpDrop), nil

	case *ast.ExpressionStatement:
		value, err := g.generateExpression(s.Value)
		if err != nil {
			return nil, err
		}
		return append(value, OpDrop), nil

	default:
		return nil, &CodegenError{Message: "unsupported statement", Pos: stmt.Pos()}
	}
}

// generateExpression lowers one expression to the instruction bytes that
// leave its single i32 result on the stack, per spec.md §4.3's per-expression
// lowering rules.
func (g *Generator) generateExpression(expr ast.Expression) ([]byte, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return i32ConstBytes(truncateToI32(e.Value)), nil

	case *ast.Identifier:
		idx, err := g.localIndex(e.Name, e)
		if err != nil {
			return nil, err
		}
		return append([]byte{OpLocalGet}, EncodeULEB128(uint64(idx))...), nil

	case *ast.BinaryExpression:
		left, err := g.generateExpression(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := g.generateExpression(e.Right)
		if err != nil {
			return nil, err
		}
		op, ok := binaryOpcodes[e.Op]
		if !ok {
			return nil, &CodegenError{Message: "unsupported operator " + e.Op, Pos: e.Pos()}
		}
		code := append(left, right...)
		return append(code, op), nil

	case *ast.SizeofExpression:
		return i32ConstBytes(int64(e.Type.ByteSize())), nil

	case *ast.AddressOfExpression:
		ident, ok := e.Operand.(*ast.Identifier)
		if !ok {
			return nil, &CodegenError{Message: "address-of operand must be a local identifier", Pos: e.Pos()}
		}
		idx, err := g.localIndex(ident.Name, ident)
		if err != nil {
			return nil, err
		}
		return i32ConstBytes(int64(idx)), nil

	case *ast.DereferenceExpression:
		return g.generateDereference(e)

	case *ast.AllocExpression:
		return g.generateAlloc(e)

	default:
		return nil, &CodegenError{Message: "unsupported expression", Pos: expr.Pos()}
	}
}

// scratchOp returns a local.get/local.set/local.tee instruction targeting
// one of the function's three reserved scratch locals.
func (g *Generator) scratchOp(op byte, slot int) []byte {
	return append([]byte{op}, EncodeULEB128(uint64(g.scratch[slot]))...)
}

// generateDereference lowers `@ptr`: the pointer is evaluated once and teed
// into scratch[0] so it can be tested without a WASM `dup` (spec.md §9 note
// 4, which also replaces the source's invented `I32_NE` with the real
// `i32.ne` for this null check). A null pointer or an out-of-bounds pointer
// yields 0 instead of trapping; otherwise the word at that address is
// loaded.
func (g *Generator) generateDereference(e *ast.DereferenceExpression) ([]byte, error) {
	ptr, err := g.generateExpression(e.Pointer)
	if err != nil {
		return nil, err
	}

	code := append(ptr, g.scratchOp(OpLocalTee, 0)...)
	code = append(code, OpI32Const)
	code = append(code, EncodeSLEB128(0)...)
	code = append(code, OpI32Ne) // 1 if the pointer is non-null

	inBounds := append(g.scratchOp(OpLocalGet, 0), OpMemorySize, 0x00) // trailing reserved memory-index byte
	inBounds = append(inBounds, OpI32Const)
	inBounds = append(inBounds, EncodeSLEB128(pageSize)...)
	inBounds = append(inBounds, OpI32Mul, OpI32Lt)

	load := append(g.scratchOp(OpLocalGet, 0), OpI32Load, 0x02, 0x00) // align=2 (4 bytes), offset=0

	nonNullBranch := append(inBounds, byte(OpIf), byte(ValI32))
	nonNullBranch = append(nonNullBranch, load...)
	nonNullBranch = append(nonNullBranch, OpElse)
	nonNullBranch = append(nonNullBranch, i32ConstBytes(0)...)
	nonNullBranch = append(nonNullBranch, OpEnd)

	code = append(code, byte(OpIf), byte(ValI32))
	code = append(code, nonNullBranch...)
	code = append(code, OpElse)
	code = append(code, i32ConstBytes(0)...)
	code = append(code, OpEnd)
	return code, nil
}

// generateAlloc lowers `alloc(T, n)`: a bump allocation that grows linear
// memory by ceil(n*sizeof(T) / pageSize) pages and returns the byte address
// where the new pages begin (the memory size in pages before the growth,
// times pageSize).
// n <= 0 or a failed memory.grow both yield a null (0) pointer (spec.md §4.3,
// §9 note 2: memory is always present, so growth is always legal to attempt).
func (g *Generator) generateAlloc(e *ast.AllocExpression) ([]byte, error) {
	count, err := g.generateExpression(e.Count)
	if err != nil {
		return nil, err
	}

	// temp1 (scratch[1]) = count; temp2 (scratch[2]) = bytes, then the old
	// memory size in pages returned by memory.grow.
	code := append(count, g.scratchOp(OpLocalSet, 1)...)
	code = append(code, g.scratchOp(OpLocalGet, 1)...)
	code = append(code, OpI32Const)
	code = append(code, EncodeSLEB128(0)...)
	code = append(code, OpI32Gt)

	var happy []byte
	happy = append(happy, g.scratchOp(OpLocalGet, 1)...)
	happy = append(happy, OpI32Const)
	happy = append(happy, EncodeSLEB128(int64(e.Element.ByteSize()))...)
	happy = append(happy, OpI32Mul)
	happy = append(happy, g.scratchOp(OpLocalSet, 2)...) // scratch[2] = bytes

	happy = append(happy, g.scratchOp(OpLocalGet, 2)...)
	happy = append(happy, OpI32Const)
	happy = append(happy, EncodeSLEB128(int64(pageSize-1))...)
	happy = append(happy, OpI32Add)
	happy = append(happy, OpI32Const)
	happy = append(happy, EncodeSLEB128(pageSize)...)
	happy = append(happy, OpI32DivS) // pages-needed is now on the stack

	happy = append(happy, OpMemoryGrow, 0x00) // trailing reserved memory-index byte
	happy = append(happy, g.scratchOp(OpLocalSet, 2)...) // scratch[2] = old size in pages, or -1

	happy = append(happy, g.scratchOp(OpLocalGet, 2)...)
	happy = append(happy, OpI32Const)
	happy = append(happy, EncodeSLEB128(-1)...)
	happy = append(happy, OpI32Eq)

	happy = append(happy, byte(OpIf), byte(ValI32))
	happy = append(happy, i32ConstBytes(0)...) // memory.grow failed
	happy = append(happy, OpElse)
	happy = append(happy, g.scratchOp(OpLocalGet, 2)...)
	happy = append(happy, OpI32Const)
	happy = append(happy, EncodeSLEB128(pageSize)...)
	happy = append(happy, OpI32Mul)
	happy = append(happy, OpEnd)

	code = append(code, byte(OpIf), byte(ValI32))
	code = append(code, happy...)
	code = append(code, OpElse)
	code = append(code, i32ConstBytes(0)...) // n <= 0
	code = append(code, OpEnd)
	return code, nil
}