// Package a32 defines the guest-visible A32 state the translator talks about:
// extension (VFP/ASIMD) register names, exception kinds and the location
// descriptor of a translated block.
package a32

import (
	"fmt"

	"github.com/a32ir/a32ir/internal/bitutil"
)

// ExtReg names an extension register: one of S0-S31, D0-D31 or Q0-Q15.
type ExtReg uint8

const (
	ExtRegS0 ExtReg = 0
	ExtRegD0 ExtReg = 32
	ExtRegQ0 ExtReg = 64

	extRegEnd ExtReg = ExtRegQ0 + 16
)

// S returns the n-th single precision register.
func S(n uint32) ExtReg {
	if n > 31 {
		panic(fmt.Sprintf("BUG: invalid S register %d", n))
	}
	return ExtRegS0 + ExtReg(n)
}

// D returns the n-th doubleword register.
func D(n uint32) ExtReg {
	if n > 31 {
		panic(fmt.Sprintf("BUG: invalid D register %d", n))
	}
	return ExtRegD0 + ExtReg(n)
}

// Q returns the n-th quadword register.
func Q(n uint32) ExtReg {
	if n > 15 {
		panic(fmt.Sprintf("BUG: invalid Q register %d", n))
	}
	return ExtRegQ0 + ExtReg(n)
}

// IsSingle returns true if r is one of S0-S31.
func (r ExtReg) IsSingle() bool { return r < ExtRegD0 }

// IsDouble returns true if r is one of D0-D31.
func (r ExtReg) IsDouble() bool { return r >= ExtRegD0 && r < ExtRegQ0 }

// IsQuad returns true if r is one of Q0-Q15.
func (r ExtReg) IsQuad() bool { return r >= ExtRegQ0 && r < extRegEnd }

// Valid returns true if r names an existing register.
func (r ExtReg) Valid() bool { return r < extRegEnd }

// Index returns the number of r within its bank, e.g. 3 for D3.
func (r ExtReg) Index() uint32 {
	switch {
	case r.IsSingle():
		return uint32(r - ExtRegS0)
	case r.IsDouble():
		return uint32(r - ExtRegD0)
	case r.IsQuad():
		return uint32(r - ExtRegQ0)
	}
	panic(fmt.Sprintf("BUG: invalid ExtReg %d", r))
}

// String implements fmt.Stringer.
func (r ExtReg) String() string {
	switch {
	case r.IsSingle():
		return fmt.Sprintf("s%d", r.Index())
	case r.IsDouble():
		return fmt.Sprintf("d%d", r.Index())
	case r.IsQuad():
		return fmt.Sprintf("q%d", r.Index())
	}
	return fmt.Sprintf("invalid_extreg(%d)", uint8(r))
}

// ToExtRegD returns the doubleword register D(bit:base).
func ToExtRegD(base uint32, bit bool) ExtReg {
	return D(base + bitutil.BoolToU32(bit)<<4)
}

// ToExtRegQ returns the quadword register backing D(bit:base). The low bit of
// base is dropped, so callers must reject odd bases beforehand.
func ToExtRegQ(base uint32, bit bool) ExtReg {
	return Q(base>>1 + bitutil.BoolToU32(bit)<<3)
}

// ToVector resolves a vector operand from its 4-bit index and its high bit.
// In quadword mode the operand is a D register pair.
func ToVector(q bool, base uint32, bit bool) ExtReg {
	if q {
		return ToExtRegQ(base, bit)
	}
	return ToExtRegD(base, bit)
}

// QuadAligned reports whether all the given operand indexes are even, which
// quadword operations require.
func QuadAligned(bases ...uint32) bool {
	for _, b := range bases {
		if bitutil.Bit(0, b) {
			return false
		}
	}
	return true
}

// Exception is a guest-visible fault raised by translated code.
type Exception uint8

const (
	// ExceptionUndefinedInstruction is raised for an unallocated encoding.
	ExceptionUndefinedInstruction Exception = iota
	// ExceptionUnpredictableInstruction is raised for an encoding whose
	// behaviour is implementation-defined and has not been given a fixed one.
	ExceptionUnpredictableInstruction
)

// String implements fmt.Stringer.
func (e Exception) String() string {
	switch e {
	case ExceptionUndefinedInstruction:
		return "undefined_instruction"
	case ExceptionUnpredictableInstruction:
		return "unpredictable_instruction"
	}
	return fmt.Sprintf("exception(%d)", uint8(e))
}
