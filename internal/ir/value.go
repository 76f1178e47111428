package ir

import (
	"fmt"
	"math"
)

// Value is a handle to the result of an instruction in a Block. Handles are
// plain integers: copying them is free, and they stay valid until the Block is
// reset.
//
// The lower 32 bits are the ValueID, which is the index of the defining
// instruction in its Block. The higher 32 bits hold the Type.
type Value uint64

// ValueID is the lower 32 bits of Value, the pure identifier without type info.
type ValueID uint32

const (
	valueIDInvalid ValueID = math.MaxUint32
	// ValueInvalid is the zero handle of an unused operand slot.
	ValueInvalid Value = Value(valueIDInvalid)
)

func newValue(id ValueID, typ Type) Value {
	return Value(id) | Value(typ)<<32
}

// Valid returns true if this value is valid.
func (v Value) Valid() bool {
	return v.ID() != valueIDInvalid
}

// Type returns the Type of this value.
func (v Value) Type() Type {
	return Type(v >> 32)
}

// ID returns the ValueID of this value.
func (v Value) ID() ValueID {
	return ValueID(v)
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if !v.Valid() {
		return "invalid"
	}
	return fmt.Sprintf("v%d", v.ID())
}

func (v Value) formatWithType() string {
	return fmt.Sprintf("v%d:%s", v.ID(), v.Type())
}
