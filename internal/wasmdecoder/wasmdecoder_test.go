package wasmdecoder

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// build assembles a minimal single-function module by hand for
// `func add(a: i32, b: i32) -> i32 { return a + b; }`: the same sections
// internal/codegen emits, but with an empty locals vector where codegen
// declares its three scratch locals.
func build() []byte {
	preamble := []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

	typeSec := []byte{1, 0x07, 0x01, 0x60, 0x02, 0x7F, 0x7F, 0x01, 0x7F}
	funcSec := []byte{3, 0x02, 0x01, 0x00}
	memSec := []byte{5, 0x04, 0x01, 0x01, 0x01, 0x01}
	exportSec := []byte{7, 0x07, 0x01, 0x03, 'a', 'd', 'd', 0x00, 0x00}
	// locals: none; body: local.get 0, local.get 1, i32.add, end
	body := []byte{0x00, 0x20, 0x00, 0x20, 0x01, 0x6A, 0x0B}
	codeSec := []byte{10, byte(1 + 1 + len(body)), 0x01, byte(len(body))}
	codeSec = append(codeSec, body...)

	var out []byte
	out = append(out, preamble...)
	out = append(out, typeSec...)
	out = append(out, funcSec...)
	out = append(out, memSec...)
	out = append(out, exportSec...)
	out = append(out, codeSec...)
	return out
}

func TestDecodeStructure(t *testing.T) {
	m, err := Decode(build())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(m.TypeSection) != 1 {
		t.Fatalf("got %d types, want 1", len(m.TypeSection))
	}
	if len(m.TypeSection[0].Params) != 2 || len(m.TypeSection[0].Result) != 1 {
		t.Errorf("unexpected signature shape: %+v", m.TypeSection[0])
	}
	if len(m.FunctionSection) != 1 || m.FunctionSection[0] != 0 {
		t.Errorf("unexpected function section: %+v", m.FunctionSection)
	}
	if len(m.MemorySection) != 1 || m.MemorySection[0].Min != 1 || m.MemorySection[0].Max != 1 {
		t.Errorf("unexpected memory section: %+v", m.MemorySection)
	}
	if len(m.ExportSection) != 1 || m.ExportSection[0].Name != "add" {
		t.Errorf("unexpected export section: %+v", m.ExportSection)
	}
	if len(m.CodeSection) != 1 || len(m.CodeSection[0].Instructions) != 6 {
		t.Errorf("unexpected code section: %+v", m.CodeSection)
	}
}

func TestDecodeBadMagic(t *testing.T) {
	data := build()
	data[0] = 0xFF
	if _, err := Decode(data); err == nil {
		t.Fatal("expected an error for corrupted magic bytes")
	}
}

func TestDecodeTruncatedInput(t *testing.T) {
	data := build()
	if _, err := Decode(data[:len(data)-3]); err == nil {
		t.Fatal("expected an error for truncated input")
	}
}

func TestDumpSnapshot(t *testing.T) {
	m, err := Decode(build())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out, err := Dump(m)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	snaps.MatchSnapshot(t, "add_module_dump", out)
}
