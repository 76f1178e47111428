package a32

import "fmt"

// FPSCR bits which affect translation and therefore identify a block.
const (
	// FPSCRModeMask covers AHP, DN, FZ, RMode, Stride and Len.
	FPSCRModeMask uint32 = 0x07f7_0000
)

// LocationDescriptor identifies the guest state a block was translated for:
// the program counter plus every mode bit that changes how the instruction
// stream is decoded.
type LocationDescriptor struct {
	PC uint32
	// TFlag is set when the guest is in Thumb state.
	TFlag bool
	// EFlag is set when the guest data accesses are big-endian.
	EFlag bool
	// FPSCRMode holds the FPSCR bits selected by FPSCRModeMask.
	FPSCRMode uint32
}

// NewLocationDescriptor returns a descriptor, masking fpscr down to the mode bits.
func NewLocationDescriptor(pc uint32, tFlag, eFlag bool, fpscr uint32) LocationDescriptor {
	return LocationDescriptor{PC: pc, TFlag: tFlag, EFlag: eFlag, FPSCRMode: fpscr & FPSCRModeMask}
}

// AdvancePC returns a copy of l with the PC moved by amount bytes.
func (l LocationDescriptor) AdvancePC(amount int32) LocationDescriptor {
	l.PC = uint32(int32(l.PC) + amount)
	return l
}

// UniqueHash packs l into 64 bits: PC in the low word, then the mode bits.
// Two descriptors are equal iff their hashes are equal.
func (l LocationDescriptor) UniqueHash() uint64 {
	upper := uint64(l.FPSCRMode)
	if l.TFlag {
		upper |= 1
	}
	if l.EFlag {
		upper |= 2
	}
	return upper<<32 | uint64(l.PC)
}

// LocationDescriptorFromHash is the inverse of UniqueHash.
func LocationDescriptorFromHash(h uint64) LocationDescriptor {
	upper := uint32(h >> 32)
	return LocationDescriptor{
		PC:        uint32(h),
		TFlag:     upper&1 != 0,
		EFlag:     upper&2 != 0,
		FPSCRMode: upper & FPSCRModeMask,
	}
}

// String implements fmt.Stringer.
func (l LocationDescriptor) String() string {
	t, e := "A", "LE"
	if l.TFlag {
		t = "T"
	}
	if l.EFlag {
		e = "BE"
	}
	return fmt.Sprintf("{%08x,%s,%s,%08x}", l.PC, t, e, l.FPSCRMode)
}
