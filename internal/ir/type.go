package ir

// Type is the type of a Value.
type Type byte

const (
	typeInvalid Type = iota
	// TypeVoid is the type of instructions which produce no value.
	TypeVoid
	// TypeU1 is a single bit.
	TypeU1
	// TypeU8 is an 8-bit integer.
	TypeU8
	// TypeU16 is a 16-bit integer.
	TypeU16
	// TypeU32 is a 32-bit integer.
	TypeU32
	// TypeU64 is a 64-bit integer.
	TypeU64
	// TypeU128 is a 128-bit vector. Doubleword registers are read into the
	// low half with the high half zeroed.
	TypeU128
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case TypeVoid:
		return "void"
	case TypeU1:
		return "u1"
	case TypeU8:
		return "u8"
	case TypeU16:
		return "u16"
	case TypeU32:
		return "u32"
	case TypeU64:
		return "u64"
	case TypeU128:
		return "u128"
	}
	return "invalid"
}

// Bits returns the width of the type in bits.
func (t Type) Bits() int {
	switch t {
	case TypeU1:
		return 1
	case TypeU8:
		return 8
	case TypeU16:
		return 16
	case TypeU32:
		return 32
	case TypeU64:
		return 64
	case TypeU128:
		return 128
	}
	return 0
}
