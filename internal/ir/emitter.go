package ir

import (
	"fmt"

	"github.com/a32ir/a32ir/internal/a32"
	"github.com/a32ir/a32ir/internal/irapi"
)

// Emitter appends instructions to a Block. Each method emits exactly one
// instruction and returns the handle to its result. Nothing is evaluated:
// the Block is consumed later as a whole.
type Emitter struct {
	block *Block
}

// NewEmitter returns an Emitter appending to b.
func NewEmitter(b *Block) *Emitter {
	return &Emitter{block: b}
}

// Block returns the Block being emitted into.
func (e *Emitter) Block() *Block {
	return e.block
}

func (e *Emitter) insert(op Opcode, esize int, fpcrControlled bool, u64 uint64, args ...Value) Value {
	if irapi.IRValidationEnabled {
		e.validate(op, esize, args)
	}
	instr := e.block.allocateInstruction(op)
	copy(instr.args[:], args)
	instr.esize = byte(esize)
	instr.fpcrControlled = fpcrControlled
	instr.u64 = u64
	return instr.rValue
}

func (e *Emitter) validate(op Opcode, esize int, args []Value) {
	info := &opcodeInfos[op]
	if len(args) != len(info.args) {
		panic(fmt.Sprintf("BUG: %s takes %d arguments but got %d", op, len(info.args), len(args)))
	}
	for i, arg := range args {
		if !arg.Valid() || int(arg.ID()) >= e.block.Len() {
			panic(fmt.Sprintf("BUG: argument %d of %s is not defined in this block", i, op))
		}
		if arg.Type() != info.args[i] {
			panic(fmt.Sprintf("BUG: argument %d of %s must be %s but got %s", i, op, info.args[i], arg.Type()))
		}
	}
	switch {
	case info.fpcr || op == OpcodeFPVectorAbs || op == OpcodeFPVectorNeg:
		if esize != 16 && esize != 32 && esize != 64 {
			panic(fmt.Sprintf("BUG: invalid floating point esize %d for %s", esize, op))
		}
	case info.laneSized:
		if esize != 8 && esize != 16 && esize != 32 && esize != 64 {
			panic(fmt.Sprintf("BUG: invalid esize %d for %s", esize, op))
		}
	default:
		if esize != 0 {
			panic(fmt.Sprintf("BUG: %s does not take an esize", op))
		}
	}
}

// GetVector reads the D or Q register reg.
func (e *Emitter) GetVector(reg a32.ExtReg) Value {
	if !reg.IsDouble() && !reg.IsQuad() {
		panic("BUG: GetVector of " + reg.String())
	}
	return e.insert(OpcodeA32GetVector, 0, false, uint64(reg))
}

// SetVector writes v to the D or Q register reg.
func (e *Emitter) SetVector(reg a32.ExtReg, v Value) {
	if !reg.IsDouble() && !reg.IsQuad() {
		panic("BUG: SetVector of " + reg.String())
	}
	e.insert(OpcodeA32SetVector, 0, false, uint64(reg), v)
}

// ExceptionRaised raises exception for the guest instruction at pc.
func (e *Emitter) ExceptionRaised(pc uint32, exception a32.Exception) {
	e.insert(OpcodeA32ExceptionRaised, 0, false, uint64(exception)<<32|uint64(pc))
}

// ZeroVector returns the all-zeros vector.
func (e *Emitter) ZeroVector() Value {
	return e.insert(OpcodeZeroVector, 0, false, 0)
}

func (e *Emitter) VectorAnd(a, b Value) Value {
	return e.insert(OpcodeVectorAnd, 0, false, 0, a, b)
}

func (e *Emitter) VectorOr(a, b Value) Value {
	return e.insert(OpcodeVectorOr, 0, false, 0, a, b)
}

func (e *Emitter) VectorEor(a, b Value) Value {
	return e.insert(OpcodeVectorEor, 0, false, 0, a, b)
}

func (e *Emitter) VectorNot(a Value) Value {
	return e.insert(OpcodeVectorNot, 0, false, 0, a)
}

func (e *Emitter) lane(op Opcode, esize int, a, b Value) Value {
	return e.insert(op, esize, false, 0, a, b)
}

func (e *Emitter) VectorAdd(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorAdd, esize, a, b)
}

func (e *Emitter) VectorSub(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorSub, esize, a, b)
}

func (e *Emitter) VectorMultiply(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorMultiply, esize, a, b)
}

// VectorPolynomialMultiply multiplies 8-bit lanes as polynomials over GF(2).
func (e *Emitter) VectorPolynomialMultiply(a, b Value) Value {
	return e.insert(OpcodeVectorPolynomialMultiply, 0, false, 0, a, b)
}

func (e *Emitter) VectorEqual(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorEqual, esize, a, b)
}

func (e *Emitter) VectorGreaterSigned(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorGreaterSigned, esize, a, b)
}

func (e *Emitter) VectorGreaterUnsigned(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorGreaterUnsigned, esize, a, b)
}

func (e *Emitter) VectorGreaterEqualSigned(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorGreaterEqualSigned, esize, a, b)
}

func (e *Emitter) VectorGreaterEqualUnsigned(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorGreaterEqualUnsigned, esize, a, b)
}

func (e *Emitter) VectorHalvingAddSigned(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorHalvingAddSigned, esize, a, b)
}

func (e *Emitter) VectorHalvingAddUnsigned(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorHalvingAddUnsigned, esize, a, b)
}

func (e *Emitter) VectorHalvingSubSigned(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorHalvingSubSigned, esize, a, b)
}

func (e *Emitter) VectorHalvingSubUnsigned(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorHalvingSubUnsigned, esize, a, b)
}

func (e *Emitter) VectorRoundingHalvingAddSigned(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorRoundingHalvingAddSigned, esize, a, b)
}

func (e *Emitter) VectorRoundingHalvingAddUnsigned(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorRoundingHalvingAddUnsigned, esize, a, b)
}

func (e *Emitter) VectorSignedSaturatedAdd(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorSignedSaturatedAdd, esize, a, b)
}

func (e *Emitter) VectorUnsignedSaturatedAdd(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorUnsignedSaturatedAdd, esize, a, b)
}

func (e *Emitter) VectorSignedSaturatedSub(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorSignedSaturatedSub, esize, a, b)
}

func (e *Emitter) VectorUnsignedSaturatedSub(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorUnsignedSaturatedSub, esize, a, b)
}

// VectorLogicalVShift shifts a by the per-lane signed amounts in b.
func (e *Emitter) VectorLogicalVShift(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorLogicalVShift, esize, a, b)
}

func (e *Emitter) VectorArithmeticVShift(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorArithmeticVShift, esize, a, b)
}

func (e *Emitter) VectorSignedSaturatedShiftLeft(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorSignedSaturatedShiftLeft, esize, a, b)
}

func (e *Emitter) VectorUnsignedSaturatedShiftLeft(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorUnsignedSaturatedShiftLeft, esize, a, b)
}

func (e *Emitter) VectorRoundingShiftLeftSigned(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorRoundingShiftLeftSigned, esize, a, b)
}

func (e *Emitter) VectorRoundingShiftLeftUnsigned(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorRoundingShiftLeftUnsigned, esize, a, b)
}

func (e *Emitter) VectorSignedSaturatedRoundingShiftLeft(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorSignedSaturatedRoundingShiftLeft, esize, a, b)
}

func (e *Emitter) VectorUnsignedSaturatedRoundingShiftLeft(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorUnsignedSaturatedRoundingShiftLeft, esize, a, b)
}

func (e *Emitter) VectorMaxSigned(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorMaxSigned, esize, a, b)
}

func (e *Emitter) VectorMaxUnsigned(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorMaxUnsigned, esize, a, b)
}

func (e *Emitter) VectorMinSigned(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorMinSigned, esize, a, b)
}

func (e *Emitter) VectorMinUnsigned(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorMinUnsigned, esize, a, b)
}

func (e *Emitter) VectorSignedAbsoluteDifference(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorSignedAbsoluteDifference, esize, a, b)
}

func (e *Emitter) VectorUnsignedAbsoluteDifference(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorUnsignedAbsoluteDifference, esize, a, b)
}

func (e *Emitter) VectorPairedAddLower(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorPairedAddLower, esize, a, b)
}

func (e *Emitter) VectorPairedMaxSignedLower(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorPairedMaxSignedLower, esize, a, b)
}

func (e *Emitter) VectorPairedMaxUnsignedLower(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorPairedMaxUnsignedLower, esize, a, b)
}

func (e *Emitter) VectorPairedMinSignedLower(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorPairedMinSignedLower, esize, a, b)
}

func (e *Emitter) VectorPairedMinUnsignedLower(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorPairedMinUnsignedLower, esize, a, b)
}

func (e *Emitter) VectorSignedSaturatedDoublingMultiplyReturnHigh(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorSignedSaturatedDoublingMultiplyReturnHigh, esize, a, b)
}

func (e *Emitter) VectorSignedSaturatedRoundingDoublingMultiplyReturnHigh(esize int, a, b Value) Value {
	return e.lane(OpcodeVectorSignedSaturatedRoundingDoublingMultiplyReturnHigh, esize, a, b)
}

func (e *Emitter) fp(op Opcode, esize int, fpcrControlled bool, args ...Value) Value {
	return e.insert(op, esize, fpcrControlled, 0, args...)
}

func (e *Emitter) FPVectorAdd(esize int, a, b Value, fpcrControlled bool) Value {
	return e.fp(OpcodeFPVectorAdd, esize, fpcrControlled, a, b)
}

func (e *Emitter) FPVectorSub(esize int, a, b Value, fpcrControlled bool) Value {
	return e.fp(OpcodeFPVectorSub, esize, fpcrControlled, a, b)
}

func (e *Emitter) FPVectorMul(esize int, a, b Value, fpcrControlled bool) Value {
	return e.fp(OpcodeFPVectorMul, esize, fpcrControlled, a, b)
}

// FPVectorMulAdd returns addend + a*b rounded once.
func (e *Emitter) FPVectorMulAdd(esize int, addend, a, b Value, fpcrControlled bool) Value {
	return e.fp(OpcodeFPVectorMulAdd, esize, fpcrControlled, addend, a, b)
}

func (e *Emitter) FPVectorNeg(esize int, a Value) Value {
	return e.insert(OpcodeFPVectorNeg, esize, false, 0, a)
}

func (e *Emitter) FPVectorAbs(esize int, a Value) Value {
	return e.insert(OpcodeFPVectorAbs, esize, false, 0, a)
}

func (e *Emitter) FPVectorMax(esize int, a, b Value, fpcrControlled bool) Value {
	return e.fp(OpcodeFPVectorMax, esize, fpcrControlled, a, b)
}

func (e *Emitter) FPVectorMin(esize int, a, b Value, fpcrControlled bool) Value {
	return e.fp(OpcodeFPVectorMin, esize, fpcrControlled, a, b)
}

func (e *Emitter) FPVectorPairedAdd(esize int, a, b Value, fpcrControlled bool) Value {
	return e.fp(OpcodeFPVectorPairedAdd, esize, fpcrControlled, a, b)
}

func (e *Emitter) FPVectorPairedAddLower(esize int, a, b Value, fpcrControlled bool) Value {
	return e.fp(OpcodeFPVectorPairedAddLower, esize, fpcrControlled, a, b)
}

func (e *Emitter) FPVectorPairedMaxLower(esize int, a, b Value, fpcrControlled bool) Value {
	return e.fp(OpcodeFPVectorPairedMaxLower, esize, fpcrControlled, a, b)
}

func (e *Emitter) FPVectorPairedMinLower(esize int, a, b Value, fpcrControlled bool) Value {
	return e.fp(OpcodeFPVectorPairedMinLower, esize, fpcrControlled, a, b)
}

func (e *Emitter) FPVectorEqual(esize int, a, b Value, fpcrControlled bool) Value {
	return e.fp(OpcodeFPVectorEqual, esize, fpcrControlled, a, b)
}

func (e *Emitter) FPVectorGreater(esize int, a, b Value, fpcrControlled bool) Value {
	return e.fp(OpcodeFPVectorGreater, esize, fpcrControlled, a, b)
}

func (e *Emitter) FPVectorGreaterEqual(esize int, a, b Value, fpcrControlled bool) Value {
	return e.fp(OpcodeFPVectorGreaterEqual, esize, fpcrControlled, a, b)
}

func (e *Emitter) FPVectorRecipStepFused(esize int, a, b Value, fpcrControlled bool) Value {
	return e.fp(OpcodeFPVectorRecipStepFused, esize, fpcrControlled, a, b)
}

func (e *Emitter) FPVectorRSqrtStepFused(esize int, a, b Value, fpcrControlled bool) Value {
	return e.fp(OpcodeFPVectorRSqrtStepFused, esize, fpcrControlled, a, b)
}
