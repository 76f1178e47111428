package interpreter

import (
	"math/bits"

	"github.com/a32ir/a32ir/internal/bitutil"
	"github.com/a32ir/a32ir/internal/ir"
)

type laneFunc = func(esize int, a, b uint64) uint64

// integerOps are the lane-wise integer opcodes. Lanes are passed and
// returned zero extended.
var integerOps = map[ir.Opcode]laneFunc{
	ir.OpcodeVectorAdd:      func(_ int, a, b uint64) uint64 { return a + b },
	ir.OpcodeVectorSub:      func(_ int, a, b uint64) uint64 { return a - b },
	ir.OpcodeVectorMultiply: func(_ int, a, b uint64) uint64 { return a * b },

	ir.OpcodeVectorEqual:                func(_ int, a, b uint64) uint64 { return mask(a == b) },
	ir.OpcodeVectorGreaterSigned:        func(e int, a, b uint64) uint64 { return mask(sext(e, a) > sext(e, b)) },
	ir.OpcodeVectorGreaterUnsigned:      func(_ int, a, b uint64) uint64 { return mask(a > b) },
	ir.OpcodeVectorGreaterEqualSigned:   func(e int, a, b uint64) uint64 { return mask(sext(e, a) >= sext(e, b)) },
	ir.OpcodeVectorGreaterEqualUnsigned: func(_ int, a, b uint64) uint64 { return mask(a >= b) },

	ir.OpcodeVectorHalvingAddSigned: func(e int, a, b uint64) uint64 {
		x, y := sext(e, a), sext(e, b)
		return uint64(x>>1 + y>>1 + x&y&1)
	},
	ir.OpcodeVectorHalvingAddUnsigned: func(_ int, a, b uint64) uint64 {
		return a>>1 + b>>1 + a&b&1
	},
	ir.OpcodeVectorHalvingSubSigned: func(e int, a, b uint64) uint64 {
		x, y := sext(e, a), sext(e, b)
		return uint64(x>>1 - y>>1 - ^x&y&1)
	},
	ir.OpcodeVectorHalvingSubUnsigned: func(_ int, a, b uint64) uint64 {
		return a>>1 - b>>1 - ^a&b&1
	},
	ir.OpcodeVectorRoundingHalvingAddSigned: func(e int, a, b uint64) uint64 {
		x, y := sext(e, a), sext(e, b)
		return uint64(x>>1 + y>>1 + (x|y)&1)
	},
	ir.OpcodeVectorRoundingHalvingAddUnsigned: func(_ int, a, b uint64) uint64 {
		return a>>1 + b>>1 + (a|b)&1
	},

	ir.OpcodeVectorSignedSaturatedAdd: func(e int, a, b uint64) uint64 {
		x, y := sext(e, a), sext(e, b)
		sum := x + y
		if e == 64 && (x >= 0) == (y >= 0) && (sum >= 0) != (x >= 0) {
			return uint64(signedLimit(e, x >= 0))
		}
		return uint64(saturateSigned(e, sum))
	},
	ir.OpcodeVectorUnsignedSaturatedAdd: func(e int, a, b uint64) uint64 {
		sum, carry := bits.Add64(a, b, 0)
		if carry != 0 || sum > laneMask(e) {
			return laneMask(e)
		}
		return sum
	},
	ir.OpcodeVectorSignedSaturatedSub: func(e int, a, b uint64) uint64 {
		x, y := sext(e, a), sext(e, b)
		diff := x - y
		if e == 64 && (x >= 0) != (y >= 0) && (diff >= 0) != (x >= 0) {
			return uint64(signedLimit(e, x >= 0))
		}
		return uint64(saturateSigned(e, diff))
	},
	ir.OpcodeVectorUnsignedSaturatedSub: func(_ int, a, b uint64) uint64 {
		if b > a {
			return 0
		}
		return a - b
	},

	ir.OpcodeVectorLogicalVShift:    logicalShift,
	ir.OpcodeVectorArithmeticVShift: arithmeticShift,
	ir.OpcodeVectorSignedSaturatedShiftLeft: func(e int, a, b uint64) uint64 {
		if s := shiftAmount(b); s < 0 {
			return arithmeticShift(e, a, b)
		}
		return signedSaturatedShiftLeft(e, a, shiftAmount(b))
	},
	ir.OpcodeVectorUnsignedSaturatedShiftLeft: func(e int, a, b uint64) uint64 {
		if s := shiftAmount(b); s < 0 {
			return logicalShift(e, a, b)
		}
		return unsignedSaturatedShiftLeft(e, a, shiftAmount(b))
	},
	ir.OpcodeVectorRoundingShiftLeftSigned: func(e int, a, b uint64) uint64 {
		if s := shiftAmount(b); s < 0 {
			return uint64(roundingShiftRightSigned(sext(e, a), -s))
		}
		return logicalShift(e, a, b)
	},
	ir.OpcodeVectorRoundingShiftLeftUnsigned: func(e int, a, b uint64) uint64 {
		if s := shiftAmount(b); s < 0 {
			return roundingShiftRightUnsigned(a, -s)
		}
		return logicalShift(e, a, b)
	},
	ir.OpcodeVectorSignedSaturatedRoundingShiftLeft: func(e int, a, b uint64) uint64 {
		if s := shiftAmount(b); s < 0 {
			return uint64(roundingShiftRightSigned(sext(e, a), -s))
		}
		return signedSaturatedShiftLeft(e, a, shiftAmount(b))
	},
	ir.OpcodeVectorUnsignedSaturatedRoundingShiftLeft: func(e int, a, b uint64) uint64 {
		if s := shiftAmount(b); s < 0 {
			return roundingShiftRightUnsigned(a, -s)
		}
		return unsignedSaturatedShiftLeft(e, a, shiftAmount(b))
	},

	ir.OpcodeVectorMaxSigned:   maxSigned,
	ir.OpcodeVectorMaxUnsigned: maxUnsigned,
	ir.OpcodeVectorMinSigned:   minSigned,
	ir.OpcodeVectorMinUnsigned: minUnsigned,
	ir.OpcodeVectorSignedAbsoluteDifference: func(e int, a, b uint64) uint64 {
		if sext(e, a) > sext(e, b) {
			return a - b
		}
		return b - a
	},
	ir.OpcodeVectorUnsignedAbsoluteDifference: func(_ int, a, b uint64) uint64 {
		if a > b {
			return a - b
		}
		return b - a
	},

	ir.OpcodeVectorPairedAddLower:         func(_ int, a, b uint64) uint64 { return a + b },
	ir.OpcodeVectorPairedMaxSignedLower:   maxSigned,
	ir.OpcodeVectorPairedMaxUnsignedLower: maxUnsigned,
	ir.OpcodeVectorPairedMinSignedLower:   minSigned,
	ir.OpcodeVectorPairedMinUnsignedLower: minUnsigned,

	ir.OpcodeVectorSignedSaturatedDoublingMultiplyReturnHigh: func(e int, a, b uint64) uint64 {
		return doublingMultiplyHigh(e, a, b, false)
	},
	ir.OpcodeVectorSignedSaturatedRoundingDoublingMultiplyReturnHigh: func(e int, a, b uint64) uint64 {
		return doublingMultiplyHigh(e, a, b, true)
	},
}

func mask(b bool) uint64 {
	if b {
		return ^uint64(0)
	}
	return 0
}

func sext(esize int, v uint64) int64 {
	return bitutil.SignExtend(uint(esize), v)
}

// signedLimit returns the largest lane value when positive, the smallest otherwise.
func signedLimit(esize int, positive bool) int64 {
	if positive {
		return int64(bitutil.Ones(uint(esize - 1)))
	}
	return -int64(bitutil.Ones(uint(esize-1))) - 1
}

func saturateSigned(esize int, v int64) int64 {
	if hi := signedLimit(esize, true); v > hi {
		return hi
	}
	if lo := signedLimit(esize, false); v < lo {
		return lo
	}
	return v
}

// shiftAmount is the signed shift count held in the low byte of a lane.
func shiftAmount(b uint64) int {
	return int(int8(b))
}

func logicalShift(e int, a, b uint64) uint64 {
	s := shiftAmount(b)
	switch {
	case s >= e || -s >= e:
		return 0
	case s >= 0:
		return a << s
	}
	return a >> -s
}

func arithmeticShift(e int, a, b uint64) uint64 {
	s := shiftAmount(b)
	switch {
	case s >= e:
		return 0
	case s >= 0:
		return a << s
	case -s >= e:
		return uint64(sext(e, a) >> (e - 1))
	}
	return uint64(sext(e, a) >> -s)
}

func signedSaturatedShiftLeft(e int, a uint64, s int) uint64 {
	x := sext(e, a)
	if x == 0 {
		return 0
	}
	if s >= e {
		return uint64(signedLimit(e, x > 0))
	}
	shifted := sext(e, a<<s)
	if shifted>>s != x {
		return uint64(signedLimit(e, x > 0))
	}
	return uint64(shifted)
}

func unsignedSaturatedShiftLeft(e int, a uint64, s int) uint64 {
	if a == 0 {
		return 0
	}
	if s >= e || a>>(e-s) != 0 {
		return laneMask(e)
	}
	return a << s
}

// roundingShiftRightSigned is (x + 2^(s-1)) >> s without overflow, s >= 1.
func roundingShiftRightSigned(x int64, s int) int64 {
	if s > 64 {
		return 0
	}
	return x>>s + (x>>(s-1))&1
}

// roundingShiftRightUnsigned is the unsigned roundingShiftRightSigned.
func roundingShiftRightUnsigned(x uint64, s int) uint64 {
	if s > 64 {
		return 0
	}
	return x>>s + (x>>(s-1))&1
}

func maxSigned(e int, a, b uint64) uint64 {
	if sext(e, a) > sext(e, b) {
		return a
	}
	return b
}

func maxUnsigned(_ int, a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func minSigned(e int, a, b uint64) uint64 {
	if sext(e, a) < sext(e, b) {
		return a
	}
	return b
}

func minUnsigned(_ int, a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// doublingMultiplyHigh is the high half of sat(2*a*b), optionally rounded.
func doublingMultiplyHigh(e int, a, b uint64, round bool) uint64 {
	if e != 16 && e != 32 {
		panic("BUG: doubling multiply of esize other than 16 or 32")
	}
	x, y := sext(e, a), sext(e, b)
	if lo := signedLimit(e, false); x == lo && y == lo {
		return uint64(signedLimit(e, true))
	}
	product := 2 * x * y
	if round {
		product += 1 << (e - 1)
	}
	return uint64(saturateSigned(e, product>>e))
}

// polynomialMultiply8 multiplies two 8-bit polynomials over GF(2) and keeps
// the low 8 bits.
func polynomialMultiply8(_ int, a, b uint64) uint64 {
	var ret uint64
	for i := 0; i < 8; i++ {
		if (b>>i)&1 == 1 {
			ret ^= a << i
		}
	}
	return ret & 0xff
}
