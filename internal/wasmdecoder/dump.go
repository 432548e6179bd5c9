package wasmdecoder

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// dumpView is the YAML-friendly shape `lumac inspect --format yaml` renders;
// it re-keys Module's byte-oriented fields (value type bytes, raw
// instructions) into human-readable strings rather than dumping a Module
// directly, which would render as base64 blobs.
type dumpView struct {
	Types     []dumpType   `yaml:"types"`
	Functions []uint32     `yaml:"functions"`
	Memories  []dumpMemory `yaml:"memories"`
	Exports   []dumpExport `yaml:"exports"`
	Code      []dumpCode   `yaml:"code"`
}

type dumpType struct {
	Params []string `yaml:"params"`
	Result []string `yaml:"result"`
}

type dumpMemory struct {
	Min uint32 `yaml:"min"`
	Max uint32 `yaml:"max"`
}

type dumpExport struct {
	Name  string `yaml:"name"`
	Index uint32 `yaml:"index"`
}

type dumpCode struct {
	Locals         []string `yaml:"locals"`
	InstructionLen int      `yaml:"instruction_bytes"`
}

// Dump renders m as YAML for human inspection.
func Dump(m *Module) (string, error) {
	view := dumpView{}

	for _, t := range m.TypeSection {
		view.Types = append(view.Types, dumpType{
			Params: valTypeNames(t.Params),
			Result: valTypeNames(t.Result),
		})
	}
	view.Functions = append(view.Functions, m.FunctionSection...)
	for _, mem := range m.MemorySection {
		view.Memories = append(view.Memories, dumpMemory{Min: mem.Min, Max: mem.Max})
	}
	for _, e := range m.ExportSection {
		view.Exports = append(view.Exports, dumpExport{Name: e.Name, Index: e.Index})
	}
	for _, c := range m.CodeSection {
		var locals []string
		for _, g := range c.Locals {
			locals = append(locals, fmt.Sprintf("%d x %s", g.Count, valTypeName(g.Type)))
		}
		view.Code = append(view.Code, dumpCode{Locals: locals, InstructionLen: len(c.Instructions)})
	}

	data, err := yaml.Marshal(view)
	if err != nil {
		return "", fmt.Errorf("wasmdecoder: rendering yaml: %w", err)
	}
	return string(data), nil
}

func valTypeNames(b []byte) []string {
	names := make([]string, len(b))
	for i, v := range b {
		names[i] = valTypeName(v)
	}
	return names
}

func valTypeName(b byte) string {
	switch b {
	case 0x7F:
		return "i32"
	case 0x7E:
		return "i64"
	case 0x7D:
		return "f32"
	case 0x7C:
		return "f64"
	default:
		return fmt.Sprintf("0x%x", b)
	}
}
