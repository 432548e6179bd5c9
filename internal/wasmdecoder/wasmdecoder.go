// Package wasmdecoder reads back the five sections internal/codegen emits,
// naming its types the way wazero's internal/wasm.Module does
// (TypeSection, FunctionSection, MemorySection, ExportSection, CodeSection).
// It is a pure reader: Decode never touches the compiler's internal state,
// only the bytes internal/codegen produced.
package wasmdecoder

import (
	"encoding/binary"
	"fmt"
)

// FunctionType is one type-section entry: a WASM function signature.
type FunctionType struct {
	Params []byte // value type bytes, e.g. 0x7F for i32
	Result []byte // 0 or 1 value type bytes (lumac never emits multi-value results)
}

// MemoryLimits is the one memory-section entry every lumac module carries.
type MemoryLimits struct {
	Min uint32
	Max uint32
}

// Export is one export-section entry.
type Export struct {
	Name  string
	Kind  byte // 0x00 for function, the only kind lumac emits
	Index uint32
}

// Code is one code-section entry: a function's locals declaration and its
// raw instruction bytes (including the trailing `end`).
type Code struct {
	Locals       []LocalGroup
	Instructions []byte
}

// LocalGroup is a run-length-encoded group of same-typed locals.
type LocalGroup struct {
	Count uint32
	Type  byte
}

// Module is the decoded form of a lumac WASM binary.
type Module struct {
	TypeSection     []*FunctionType
	FunctionSection []uint32 // TypeSection index per function, in declaration order
	MemorySection   []*MemoryLimits
	ExportSection   []*Export
	CodeSection     []*Code
}

var magic = [4]byte{0x00, 0x61, 0x73, 0x6D}

// Decode parses a complete WASM module: the 8-byte preamble followed by the
// type, function, memory, export, and code sections, in that fixed order.
// Any other section ID is rejected, since lumac never emits one.
func Decode(data []byte) (*Module, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("wasmdecoder: input too short for a module header")
	}
	if [4]byte(data[0:4]) != magic {
		return nil, fmt.Errorf("wasmdecoder: bad magic bytes")
	}
	if version := binary.LittleEndian.Uint32(data[4:8]); version != 1 {
		return nil, fmt.Errorf("wasmdecoder: unsupported version %d", version)
	}

	r := &reader{buf: data[8:]}
	m := &Module{}

	for !r.done() {
		id, body, err := r.section()
		if err != nil {
			return nil, err
		}
		switch id {
		case 1:
			m.TypeSection, err = decodeTypeSection(body)
		case 3:
			m.FunctionSection, err = decodeFunctionSection(body)
		case 5:
			m.MemorySection, err = decodeMemorySection(body)
		case 7:
			m.ExportSection, err = decodeExportSection(body)
		case 10:
			m.CodeSection, err = decodeCodeSection(body)
		default:
			err = fmt.Errorf("wasmdecoder: unexpected section id %d", id)
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// reader walks a byte slice, decoding the uLEB128 primitive and vector
// framing internal/codegen writes.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) done() bool { return r.pos >= len(r.buf) }

func (r *reader) byte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, fmt.Errorf("wasmdecoder: unexpected end of input")
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) bytes(n uint32) ([]byte, error) {
	if r.pos+int(n) > len(r.buf) {
		return nil, fmt.Errorf("wasmdecoder: unexpected end of input")
	}
	b := r.buf[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b, nil
}

func (r *reader) uleb() (uint32, error) {
	var result uint32
	var shift uint
	for {
		b, err := r.byte()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// section reads one `id : u8 | len : uLEB128 | body` frame.
func (r *reader) section() (byte, []byte, error) {
	id, err := r.byte()
	if err != nil {
		return 0, nil, err
	}
	length, err := r.uleb()
	if err != nil {
		return 0, nil, err
	}
	body, err := r.bytes(length)
	if err != nil {
		return 0, nil, err
	}
	return id, body, nil
}

func decodeTypeSection(body []byte) ([]*FunctionType, error) {
	r := &reader{buf: body}
	count, err := r.uleb()
	if err != nil {
		return nil, err
	}

	types := make([]*FunctionType, 0, count)
	for range count {
		form, err := r.byte()
		if err != nil {
			return nil, err
		}
		if form != 0x60 {
			return nil, fmt.Errorf("wasmdecoder: bad function type form 0x%x", form)
		}
		paramCount, err := r.uleb()
		if err != nil {
			return nil, err
		}
		params, err := r.bytes(paramCount)
		if err != nil {
			return nil, err
		}
		resultCount, err := r.uleb()
		if err != nil {
			return nil, err
		}
		result, err := r.bytes(resultCount)
		if err != nil {
			return nil, err
		}
		types = append(types, &FunctionType{
			Params: append([]byte(nil), params...),
			Result: append([]byte(nil), result...),
		})
	}
	return types, nil
}

func decodeFunctionSection(body []byte) ([]uint32, error) {
	r := &reader{buf: body}
	count, err := r.uleb()
	if err != nil {
		return nil, err
	}
	indices := make([]uint32, 0, count)
	for range count {
		idx, err := r.byte() // internal/codegen writes one raw byte per function-type index
		if err != nil {
			return nil, err
		}
		indices = append(indices, uint32(idx))
	}
	return indices, nil
}

func decodeMemorySection(body []byte) ([]*MemoryLimits, error) {
	r := &reader{buf: body}
	count, err := r.uleb()
	if err != nil {
		return nil, err
	}
	memories := make([]*MemoryLimits, 0, count)
	for range count {
		kind, err := r.byte()
		if err != nil {
			return nil, err
		}
		min, err := r.uleb()
		if err != nil {
			return nil, err
		}
		limits := &MemoryLimits{Min: min}
		if kind == 0x01 {
			max, err := r.uleb()
			if err != nil {
				return nil, err
			}
			limits.Max = max
		}
		memories = append(memories, limits)
	}
	return memories, nil
}

func decodeExportSection(body []byte) ([]*Export, error) {
	r := &reader{buf: body}
	count, err := r.uleb()
	if err != nil {
		return nil, err
	}
	exports := make([]*Export, 0, count)
	for range count {
		nameLen, err := r.uleb()
		if err != nil {
			return nil, err
		}
		name, err := r.bytes(nameLen)
		if err != nil {
			return nil, err
		}
		kind, err := r.byte()
		if err != nil {
			return nil, err
		}
		idx, err := r.uleb()
		if err != nil {
			return nil, err
		}
		exports = append(exports, &Export{Name: string(name), Kind: kind, Index: idx})
	}
	return exports, nil
}

func decodeCodeSection(body []byte) ([]*Code, error) {
	r := &reader{buf: body}
	count, err := r.uleb()
	if err != nil {
		return nil, err
	}
	entries := make([]*Code, 0, count)
	for range count {
		bodyLen, err := r.uleb()
		if err != nil {
			return nil, err
		}
		raw, err := r.bytes(bodyLen)
		if err != nil {
			return nil, err
		}
		code, err := decodeFunctionBody(raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, code)
	}
	return entries, nil
}

func decodeFunctionBody(body []byte) (*Code, error) {
	r := &reader{buf: body}
	groupCount, err := r.uleb()
	if err != nil {
		return nil, err
	}
	groups := make([]LocalGroup, 0, groupCount)
	for range groupCount {
		n, err := r.uleb()
		if err != nil {
			return nil, err
		}
		typ, err := r.byte()
		if err != nil {
			return nil, err
		}
		groups = append(groups, LocalGroup{Count: n, Type: typ})
	}
	return &Code{Locals: groups, Instructions: append([]byte(nil), r.buf[r.pos:]...)}, nil
}
