// Package ast defines the Luma abstract syntax tree: a sealed set of node
// kinds matching spec.md §3, each implementing Node (and Expression or
// Statement as appropriate).
package ast

import "fmt"

// Kind enumerates the scalar element types a pointer or a Let/Parameter
// declaration can name. Whether a type is a pointer is recorded separately,
// in Type.Pointer.
type Kind int

const (
	I32 Kind = iota
	I64
	F32
	F64
)

func (k Kind) String() string {
	switch k {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	default:
		return "unknown"
	}
}

// ByteSize returns the WASM value-type byte size of k ({i32:4, i64:8,
// f32:4, f64:8} per spec.md §4.3).
func (k Kind) ByteSize() int {
	switch k {
	case I32, F32:
		return 4
	case I64, F64:
		return 8
	default:
		return 0
	}
}

// Type is a Luma type: a bare scalar, ptr<scalar>, or the string type (which
// parses but has no codegen lowering, per spec.md §1's non-goals). The
// void/omitted type used for statement contexts is represented as a nil
// *Type.
type Type struct {
	Scalar  Kind
	Pointer  bool
	IsString bool // true for the 'string' type specifier; Scalar is unused
}

func (t *Type) String() string {
	switch {
	case t == nil:
		return "void"
	case t.IsString:
		return "string"
	case t.Pointer:
		return fmt.Sprintf("ptr<%s>", t.Scalar)
	default:
		return t.Scalar.String()
	}
}

// Scalar constructs a non-pointer Type of kind k.
func Scalar(k Kind) *Type { return &Type{Scalar: k} }

// PointerTo constructs a ptr<k> Type.
func PointerTo(k Kind) *Type { return &Type{Scalar: k, Pointer: true} }

// StringType constructs the 'string' type specifier.
func StringType() *Type { return &Type{IsString: true} }
