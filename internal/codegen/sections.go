package codegen

// preamble is the fixed 8-byte module header: magic "\0asm" followed by
// version 1 as a little-endian u32 (spec.md §3 invariant 5, §6).
var preamble = []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

// encodeVector prepends an unsigned-LEB128 element count to the
// concatenation of items, per spec.md §4.3's "Vectors are `count :
// uLEB128 | element*`."
func encodeVector(items [][]byte) []byte {
	out := EncodeULEB128(uint64(len(items)))
	for _, item := range items {
		out = append(out, item...)
	}
	return out
}

// sizePrefixed frames body as `size : uLEB128 | body : bytes`, the shape
// each code-section entry needs (spec.md §4.3: "size | locals_vec |
// instructions | end"). Unlike encodeVector, the leading integer here is a
// byte length, not an element count — a code-section entry is always
// exactly one function body, never a vector of them.
func sizePrefixed(body []byte) []byte {
	out := EncodeULEB128(uint64(len(body)))
	return append(out, body...)
}

// encodeSection frames body as `section_id : u8 | body_len : uLEB128 |
// body : bytes`. Framing never inspects body; an empty body still yields a
// valid (empty) section, per spec.md §4.4.
func encodeSection(id byte, body []byte) []byte {
	out := []byte{id}
	out = append(out, EncodeULEB128(uint64(len(body)))...)
	out = append(out, body...)
	return out
}

// assemble concatenates the preamble with the five framed sections in the
// fixed order spec.md §4.3/§6 requires: type, function, memory, export,
// code. This is the Module Assembler of spec.md §4.4 — the only place that
// writes header bytes.
func assemble(typeSec, funcSec, memSec, exportSec, codeSec []byte) []byte {
	out := make([]byte, 0, len(preamble)+len(typeSec)+len(funcSec)+len(memSec)+len(exportSec)+len(codeSec))
	out = append(out, preamble...)
	out = append(out, encodeSection(SectionType, typeSec)...)
	out = append(out, encodeSection(SectionFunction, funcSec)...)
	out = append(out, encodeSection(SectionMemory, memSec)...)
	out = append(out, encodeSection(SectionExport, exportSec)...)
	out = append(out, encodeSection(SectionCode, codeSec)...)
	return out
}
