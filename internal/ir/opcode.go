package ir

// Opcode represents an IR instruction.
type Opcode uint32

const (
	OpcodeInvalid Opcode = iota

	// OpcodeA32GetVector reads a D or Q register: `v = A32GetVector reg`.
	OpcodeA32GetVector
	// OpcodeA32SetVector writes a D or Q register: `A32SetVector reg, v`.
	// Writing a D register stores the low 64 bits of v.
	OpcodeA32SetVector
	// OpcodeA32ExceptionRaised raises a guest exception at a PC: `A32ExceptionRaised pc, exception`.
	OpcodeA32ExceptionRaised

	// OpcodeZeroVector is the all-zeros vector.
	OpcodeZeroVector

	// OpcodeVectorAnd ...
	OpcodeVectorAnd
	// OpcodeVectorOr ...
	OpcodeVectorOr
	// OpcodeVectorEor ...
	OpcodeVectorEor
	// OpcodeVectorNot ...
	OpcodeVectorNot

	// OpcodeVectorAdd performs lane-wise wrapping addition: `v = VectorAdd.esize x, y`.
	OpcodeVectorAdd
	// OpcodeVectorSub performs lane-wise wrapping subtraction: `v = VectorSub.esize x, y`.
	OpcodeVectorSub
	// OpcodeVectorMultiply keeps the low esize bits of each lane product.
	OpcodeVectorMultiply
	// OpcodeVectorPolynomialMultiply multiplies 8-bit lanes as GF(2) polynomials.
	OpcodeVectorPolynomialMultiply

	// OpcodeVectorEqual sets each lane to all ones when x == y, else to zero.
	OpcodeVectorEqual
	// OpcodeVectorGreaterSigned ...
	OpcodeVectorGreaterSigned
	// OpcodeVectorGreaterUnsigned ...
	OpcodeVectorGreaterUnsigned
	// OpcodeVectorGreaterEqualSigned ...
	OpcodeVectorGreaterEqualSigned
	// OpcodeVectorGreaterEqualUnsigned ...
	OpcodeVectorGreaterEqualUnsigned

	// OpcodeVectorHalvingAddSigned computes (x+y)>>1 without intermediate overflow.
	OpcodeVectorHalvingAddSigned
	// OpcodeVectorHalvingAddUnsigned ...
	OpcodeVectorHalvingAddUnsigned
	// OpcodeVectorHalvingSubSigned computes (x-y)>>1 without intermediate overflow.
	OpcodeVectorHalvingSubSigned
	// OpcodeVectorHalvingSubUnsigned ...
	OpcodeVectorHalvingSubUnsigned
	// OpcodeVectorRoundingHalvingAddSigned computes (x+y+1)>>1.
	OpcodeVectorRoundingHalvingAddSigned
	// OpcodeVectorRoundingHalvingAddUnsigned ...
	OpcodeVectorRoundingHalvingAddUnsigned

	// OpcodeVectorSignedSaturatedAdd ...
	OpcodeVectorSignedSaturatedAdd
	// OpcodeVectorUnsignedSaturatedAdd ...
	OpcodeVectorUnsignedSaturatedAdd
	// OpcodeVectorSignedSaturatedSub ...
	OpcodeVectorSignedSaturatedSub
	// OpcodeVectorUnsignedSaturatedSub ...
	OpcodeVectorUnsignedSaturatedSub

	// OpcodeVectorLogicalVShift shifts each lane of x by the signed low byte of
	// the same lane of y. Positive amounts shift left, negative ones shift
	// right logically.
	OpcodeVectorLogicalVShift
	// OpcodeVectorArithmeticVShift is VectorLogicalVShift with arithmetic right shifts.
	OpcodeVectorArithmeticVShift
	// OpcodeVectorSignedSaturatedShiftLeft ...
	OpcodeVectorSignedSaturatedShiftLeft
	// OpcodeVectorUnsignedSaturatedShiftLeft ...
	OpcodeVectorUnsignedSaturatedShiftLeft
	// OpcodeVectorRoundingShiftLeftSigned rounds the right shifts produced by
	// negative amounts instead of truncating.
	OpcodeVectorRoundingShiftLeftSigned
	// OpcodeVectorRoundingShiftLeftUnsigned ...
	OpcodeVectorRoundingShiftLeftUnsigned
	// OpcodeVectorSignedSaturatedRoundingShiftLeft ...
	OpcodeVectorSignedSaturatedRoundingShiftLeft
	// OpcodeVectorUnsignedSaturatedRoundingShiftLeft ...
	OpcodeVectorUnsignedSaturatedRoundingShiftLeft

	// OpcodeVectorMaxSigned ...
	OpcodeVectorMaxSigned
	// OpcodeVectorMaxUnsigned ...
	OpcodeVectorMaxUnsigned
	// OpcodeVectorMinSigned ...
	OpcodeVectorMinSigned
	// OpcodeVectorMinUnsigned ...
	OpcodeVectorMinUnsigned
	// OpcodeVectorSignedAbsoluteDifference ...
	OpcodeVectorSignedAbsoluteDifference
	// OpcodeVectorUnsignedAbsoluteDifference ...
	OpcodeVectorUnsignedAbsoluteDifference

	// OpcodeVectorPairedAddLower adds adjacent lanes of the low doublewords of
	// x and y: the result low doubleword is [x0+x1, x2+x3, ..., y0+y1, ...].
	// The high doubleword is zero.
	OpcodeVectorPairedAddLower
	// OpcodeVectorPairedMaxSignedLower ...
	OpcodeVectorPairedMaxSignedLower
	// OpcodeVectorPairedMaxUnsignedLower ...
	OpcodeVectorPairedMaxUnsignedLower
	// OpcodeVectorPairedMinSignedLower ...
	OpcodeVectorPairedMinSignedLower
	// OpcodeVectorPairedMinUnsignedLower ...
	OpcodeVectorPairedMinUnsignedLower

	// OpcodeVectorSignedSaturatedDoublingMultiplyReturnHigh returns the high
	// half of sat(2*x*y) per lane.
	OpcodeVectorSignedSaturatedDoublingMultiplyReturnHigh
	// OpcodeVectorSignedSaturatedRoundingDoublingMultiplyReturnHigh ...
	OpcodeVectorSignedSaturatedRoundingDoublingMultiplyReturnHigh

	// OpcodeFPVectorAdd ...
	OpcodeFPVectorAdd
	// OpcodeFPVectorSub ...
	OpcodeFPVectorSub
	// OpcodeFPVectorMul ...
	OpcodeFPVectorMul
	// OpcodeFPVectorMulAdd computes addend + x*y with a single rounding: `v = FPVectorMulAdd.esize addend, x, y`.
	OpcodeFPVectorMulAdd
	// OpcodeFPVectorNeg flips the sign bit of each lane.
	OpcodeFPVectorNeg
	// OpcodeFPVectorAbs clears the sign bit of each lane.
	OpcodeFPVectorAbs
	// OpcodeFPVectorMax ...
	OpcodeFPVectorMax
	// OpcodeFPVectorMin ...
	OpcodeFPVectorMin
	// OpcodeFPVectorPairedAdd adds adjacent lanes across the 256-bit concatenation y:x.
	OpcodeFPVectorPairedAdd
	// OpcodeFPVectorPairedAddLower is FPVectorPairedAdd restricted to the low doublewords.
	OpcodeFPVectorPairedAddLower
	// OpcodeFPVectorPairedMaxLower ...
	OpcodeFPVectorPairedMaxLower
	// OpcodeFPVectorPairedMinLower ...
	OpcodeFPVectorPairedMinLower
	// OpcodeFPVectorEqual ...
	OpcodeFPVectorEqual
	// OpcodeFPVectorGreater ...
	OpcodeFPVectorGreater
	// OpcodeFPVectorGreaterEqual ...
	OpcodeFPVectorGreaterEqual
	// OpcodeFPVectorRecipStepFused computes 2 - x*y.
	OpcodeFPVectorRecipStepFused
	// OpcodeFPVectorRSqrtStepFused computes (3 - x*y) / 2.
	OpcodeFPVectorRSqrtStepFused

	// opcodeEnd marks the end of the opcode list.
	opcodeEnd
)

// opcodeInfo describes the shape of an Opcode.
type opcodeInfo struct {
	name string
	// ret is the type of the result.
	ret Type
	// args are the types of the arguments.
	args []Type
	// laneSized is true when the instruction carries an element size.
	laneSized bool
	// fpcr is true when the instruction carries the fpcr_controlled flag.
	fpcr bool
	// sideEffect is true when the instruction must never be eliminated.
	sideEffect bool
}

var (
	argsNone   []Type
	argsU128   = []Type{TypeU128}
	argsU128x2 = []Type{TypeU128, TypeU128}
	argsU128x3 = []Type{TypeU128, TypeU128, TypeU128}
)

func bitwise(name string, args []Type) opcodeInfo {
	return opcodeInfo{name: name, ret: TypeU128, args: args}
}

func lane(name string) opcodeInfo {
	return opcodeInfo{name: name, ret: TypeU128, args: argsU128x2, laneSized: true}
}

func fp(name string, args []Type) opcodeInfo {
	return opcodeInfo{name: name, ret: TypeU128, args: args, laneSized: true, fpcr: true}
}

var opcodeInfos = [opcodeEnd]opcodeInfo{
	OpcodeInvalid:            {name: "invalid"},
	OpcodeA32GetVector:       {name: "A32GetVector", ret: TypeU128, args: argsNone},
	OpcodeA32SetVector:       {name: "A32SetVector", ret: TypeVoid, args: argsU128, sideEffect: true},
	OpcodeA32ExceptionRaised: {name: "A32ExceptionRaised", ret: TypeVoid, args: argsNone, sideEffect: true},
	OpcodeZeroVector:         bitwise("ZeroVector", argsNone),

	OpcodeVectorAnd: bitwise("VectorAnd", argsU128x2),
	OpcodeVectorOr:  bitwise("VectorOr", argsU128x2),
	OpcodeVectorEor: bitwise("VectorEor", argsU128x2),
	OpcodeVectorNot: bitwise("VectorNot", argsU128),

	OpcodeVectorAdd:                lane("VectorAdd"),
	OpcodeVectorSub:                lane("VectorSub"),
	OpcodeVectorMultiply:           lane("VectorMultiply"),
	OpcodeVectorPolynomialMultiply: bitwise("VectorPolynomialMultiply", argsU128x2),

	OpcodeVectorEqual:                lane("VectorEqual"),
	OpcodeVectorGreaterSigned:        lane("VectorGreaterSigned"),
	OpcodeVectorGreaterUnsigned:      lane("VectorGreaterUnsigned"),
	OpcodeVectorGreaterEqualSigned:   lane("VectorGreaterEqualSigned"),
	OpcodeVectorGreaterEqualUnsigned: lane("VectorGreaterEqualUnsigned"),

	OpcodeVectorHalvingAddSigned:           lane("VectorHalvingAddSigned"),
	OpcodeVectorHalvingAddUnsigned:         lane("VectorHalvingAddUnsigned"),
	OpcodeVectorHalvingSubSigned:           lane("VectorHalvingSubSigned"),
	OpcodeVectorHalvingSubUnsigned:         lane("VectorHalvingSubUnsigned"),
	OpcodeVectorRoundingHalvingAddSigned:   lane("VectorRoundingHalvingAddSigned"),
	OpcodeVectorRoundingHalvingAddUnsigned: lane("VectorRoundingHalvingAddUnsigned"),

	OpcodeVectorSignedSaturatedAdd:   lane("VectorSignedSaturatedAdd"),
	OpcodeVectorUnsignedSaturatedAdd: lane("VectorUnsignedSaturatedAdd"),
	OpcodeVectorSignedSaturatedSub:   lane("VectorSignedSaturatedSub"),
	OpcodeVectorUnsignedSaturatedSub: lane("VectorUnsignedSaturatedSub"),

	OpcodeVectorLogicalVShift:                      lane("VectorLogicalVShift"),
	OpcodeVectorArithmeticVShift:                   lane("VectorArithmeticVShift"),
	OpcodeVectorSignedSaturatedShiftLeft:           lane("VectorSignedSaturatedShiftLeft"),
	OpcodeVectorUnsignedSaturatedShiftLeft:         lane("VectorUnsignedSaturatedShiftLeft"),
	OpcodeVectorRoundingShiftLeftSigned:            lane("VectorRoundingShiftLeftSigned"),
	OpcodeVectorRoundingShiftLeftUnsigned:          lane("VectorRoundingShiftLeftUnsigned"),
	OpcodeVectorSignedSaturatedRoundingShiftLeft:   lane("VectorSignedSaturatedRoundingShiftLeft"),
	OpcodeVectorUnsignedSaturatedRoundingShiftLeft: lane("VectorUnsignedSaturatedRoundingShiftLeft"),

	OpcodeVectorMaxSigned:                  lane("VectorMaxSigned"),
	OpcodeVectorMaxUnsigned:                lane("VectorMaxUnsigned"),
	OpcodeVectorMinSigned:                  lane("VectorMinSigned"),
	OpcodeVectorMinUnsigned:                lane("VectorMinUnsigned"),
	OpcodeVectorSignedAbsoluteDifference:   lane("VectorSignedAbsoluteDifference"),
	OpcodeVectorUnsignedAbsoluteDifference: lane("VectorUnsignedAbsoluteDifference"),

	OpcodeVectorPairedAddLower:         lane("VectorPairedAddLower"),
	OpcodeVectorPairedMaxSignedLower:   lane("VectorPairedMaxSignedLower"),
	OpcodeVectorPairedMaxUnsignedLower: lane("VectorPairedMaxUnsignedLower"),
	OpcodeVectorPairedMinSignedLower:   lane("VectorPairedMinSignedLower"),
	OpcodeVectorPairedMinUnsignedLower: lane("VectorPairedMinUnsignedLower"),

	OpcodeVectorSignedSaturatedDoublingMultiplyReturnHigh:         lane("VectorSignedSaturatedDoublingMultiplyReturnHigh"),
	OpcodeVectorSignedSaturatedRoundingDoublingMultiplyReturnHigh: lane("VectorSignedSaturatedRoundingDoublingMultiplyReturnHigh"),

	OpcodeFPVectorAdd:            fp("FPVectorAdd", argsU128x2),
	OpcodeFPVectorSub:            fp("FPVectorSub", argsU128x2),
	OpcodeFPVectorMul:            fp("FPVectorMul", argsU128x2),
	OpcodeFPVectorMulAdd:         fp("FPVectorMulAdd", argsU128x3),
	OpcodeFPVectorNeg:            {name: "FPVectorNeg", ret: TypeU128, args: argsU128, laneSized: true},
	OpcodeFPVectorAbs:            {name: "FPVectorAbs", ret: TypeU128, args: argsU128, laneSized: true},
	OpcodeFPVectorMax:            fp("FPVectorMax", argsU128x2),
	OpcodeFPVectorMin:            fp("FPVectorMin", argsU128x2),
	OpcodeFPVectorPairedAdd:      fp("FPVectorPairedAdd", argsU128x2),
	OpcodeFPVectorPairedAddLower: fp("FPVectorPairedAddLower", argsU128x2),
	OpcodeFPVectorPairedMaxLower: fp("FPVectorPairedMaxLower", argsU128x2),
	OpcodeFPVectorPairedMinLower: fp("FPVectorPairedMinLower", argsU128x2),
	OpcodeFPVectorEqual:          fp("FPVectorEqual", argsU128x2),
	OpcodeFPVectorGreater:        fp("FPVectorGreater", argsU128x2),
	OpcodeFPVectorGreaterEqual:   fp("FPVectorGreaterEqual", argsU128x2),
	OpcodeFPVectorRecipStepFused: fp("FPVectorRecipStepFused", argsU128x2),
	OpcodeFPVectorRSqrtStepFused: fp("FPVectorRSqrtStepFused", argsU128x2),
}

// String implements fmt.Stringer.
func (o Opcode) String() string {
	if o >= opcodeEnd {
		return "invalid"
	}
	return opcodeInfos[o].name
}

// ReturnType returns the type of the value produced by o.
func (o Opcode) ReturnType() Type {
	return opcodeInfos[o].ret
}

// NumArgs returns the number of Value arguments o takes.
func (o Opcode) NumArgs() int {
	return len(opcodeInfos[o].args)
}

// LaneSized returns true if o carries an element size.
func (o Opcode) LaneSized() bool {
	return opcodeInfos[o].laneSized
}

// HasSideEffects returns true if an instruction of o must be kept even if its
// result is unused.
func (o Opcode) HasSideEffects() bool {
	return opcodeInfos[o].sideEffect
}
