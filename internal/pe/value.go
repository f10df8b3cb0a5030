package pe

import (
	"fmt"

	"github.com/ZacharyZcR/pedump/internal/hexfmt"
)

// ValueKind tags the concrete type held by a Value.
type ValueKind uint8

const (
	KindUint ValueKind = iota
	KindString
	KindBytes
)

// Value is a decoded header value: an unsigned integer, a string, or a raw
// byte array.
type Value struct {
	Kind  ValueKind
	Uint  uint64
	Str   string
	Bytes []byte
}

// UintValue wraps an integer field.
func UintValue(v uint64) Value { return Value{Kind: KindUint, Uint: v} }

// StringValue wraps a text field.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// BytesValue wraps a raw array field.
func BytesValue(b []byte) Value { return Value{Kind: KindBytes, Bytes: b} }

func (v Value) String() string {
	switch v.Kind {
	case KindUint:
		return fmt.Sprintf("0x%X", v.Uint)
	case KindString:
		return v.Str
	case KindBytes:
		return hexfmt.EncodeSpaced(v.Bytes)
	default:
		return ""
	}
}

// Field is one named value of a decoded structure.
type Field struct {
	Name  string
	Value Value
}

// Structure is a decoded header whose fields are in on-disk declaration
// order.
type Structure struct {
	Kind   Kind
	Fields []Field
}

// Lookup returns the value of the named field.
func (s Structure) Lookup(name string) (Value, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}
