// Package vm executes resolved bytecode on a value stack.
package vm

import (
	"playground/internal/source"
)

// ValueKind identifies the runtime type of a Value.
type ValueKind uint8

const (
	// VKNull is the zero Value.
	VKNull ValueKind = iota
	VKInt
	VKFloat
	VKBool
	// VKString references the runtime string table.
	VKString
)

// String returns a human-readable name for the value kind.
func (k ValueKind) String() string {
	switch k {
	case VKNull:
		return "null"
	case VKInt:
		return "int"
	case VKFloat:
		return "float"
	case VKBool:
		return "bool"
	case VKString:
		return "string"
	default:
		return "invalid"
	}
}

// Value is a tagged runtime value. Only the field matching Kind is meaningful.
type Value struct {
	Kind ValueKind
	Int  int64
	F    float64
	Bool bool
	Str  source.StringID
}

func MakeInt(v int64) Value { return Value{Kind: VKInt, Int: v} }

func MakeFloat(v float64) Value { return Value{Kind: VKFloat, F: v} }

func MakeBool(v bool) Value { return Value{Kind: VKBool, Bool: v} }

func MakeString(id source.StringID) Value { return Value{Kind: VKString, Str: id} }

// IsNumeric reports whether v is an int or a float.
func (v Value) IsNumeric() bool {
	return v.Kind == VKInt || v.Kind == VKFloat
}

// AsFloat promotes an int to float; only valid when IsNumeric.
func (v Value) AsFloat() float64 {
	if v.Kind == VKInt {
		return float64(v.Int)
	}
	return v.F
}
