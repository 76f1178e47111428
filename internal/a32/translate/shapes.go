package translate

import (
	"github.com/a32ir/a32ir/internal/a32/decoder"
	"github.com/a32ir/a32ir/internal/ir"
)

// bitwiseOp selects the combination computed by bitwiseInstruction.
type bitwiseOp byte

const (
	bitwiseAND bitwiseOp = iota
	bitwiseBIC
	bitwiseORR
	bitwiseORN
	bitwiseEOR
	// bitwiseBSL and the ops after it also read the destination.
	bitwiseBSL
	bitwiseBIT
	bitwiseBIF
)

func (op bitwiseOp) withDst() bool {
	return op >= bitwiseBSL
}

func (t *Translator) bitwiseInstruction(op bitwiseOp, f decoder.Fields) bool {
	if misaligned(f) {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)

	var regD, regN, regM ir.Value
	if op.withDst() {
		regD = t.ir.GetVector(d)
		regM = t.ir.GetVector(m)
		regN = t.ir.GetVector(n)
	} else {
		regM = t.ir.GetVector(m)
		regN = t.ir.GetVector(n)
	}

	var result ir.Value
	switch op {
	case bitwiseAND:
		result = t.ir.VectorAnd(regN, regM)
	case bitwiseBIC:
		result = t.ir.VectorAnd(regN, t.ir.VectorNot(regM))
	case bitwiseORR:
		result = t.ir.VectorOr(regN, regM)
	case bitwiseORN:
		result = t.ir.VectorOr(regN, t.ir.VectorNot(regM))
	case bitwiseEOR:
		result = t.ir.VectorEor(regN, regM)
	case bitwiseBSL:
		// d selects between n and m.
		result = t.ir.VectorOr(t.ir.VectorAnd(regN, regD), t.ir.VectorAnd(regM, t.ir.VectorNot(regD)))
	case bitwiseBIT:
		// Insert n where m is set.
		result = t.ir.VectorOr(t.ir.VectorAnd(regN, regM), t.ir.VectorAnd(regD, t.ir.VectorNot(regM)))
	case bitwiseBIF:
		// Insert n where m is clear.
		result = t.ir.VectorOr(t.ir.VectorAnd(regD, regM), t.ir.VectorAnd(regN, t.ir.VectorNot(regM)))
	default:
		panic("BUG: unknown bitwise op")
	}
	t.ir.SetVector(d, result)
	return true
}

// floatOp selects the operation computed by floatingPointInstruction.
type floatOp byte

const (
	floatAdd floatOp = iota
	floatSub
	floatMul
	floatPairedAdd
	floatAbsoluteDifference
	floatMultiplyAdd
	floatMultiplySub
	floatFMA
	floatFMS
	floatMax
	floatMin
	floatPairedMax
	floatPairedMin
	floatRecipStep
	floatRSqrtStep
)

// doublewordOnly is true for the ops whose quadword form is UNDEFINED.
func (op floatOp) doublewordOnly() bool {
	return op == floatPairedMax || op == floatPairedMin
}

// floatingPointInstruction is the shape of the single precision three-same
// operations. Half precision (sz=1) is not supported by the class.
func (t *Translator) floatingPointInstruction(op floatOp, f decoder.Fields) bool {
	if misaligned(f) || (op.doublewordOnly() && f.Q) {
		return t.undefinedInstruction()
	}
	if f.FloatSz() {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)

	regD := t.ir.GetVector(d)
	regN := t.ir.GetVector(n)
	regM := t.ir.GetVector(m)

	const esize = 32
	var result ir.Value
	switch op {
	case floatAdd:
		result = t.ir.FPVectorAdd(esize, regN, regM, false)
	case floatSub:
		result = t.ir.FPVectorSub(esize, regN, regM, false)
	case floatMul:
		result = t.ir.FPVectorMul(esize, regN, regM, false)
	case floatPairedAdd:
		if f.Q {
			result = t.ir.FPVectorPairedAdd(esize, regN, regM, false)
		} else {
			result = t.ir.FPVectorPairedAddLower(esize, regN, regM, false)
		}
	case floatAbsoluteDifference:
		result = t.ir.FPVectorAbs(esize, t.ir.FPVectorSub(esize, regN, regM, false))
	case floatMultiplyAdd:
		product := t.ir.FPVectorMul(esize, regN, regM, false)
		result = t.ir.FPVectorAdd(esize, regD, product, false)
	case floatMultiplySub:
		product := t.ir.FPVectorMul(esize, regN, regM, false)
		result = t.ir.FPVectorAdd(esize, regD, t.ir.FPVectorNeg(esize, product), false)
	case floatFMA:
		result = t.ir.FPVectorMulAdd(esize, regD, regN, regM, false)
	case floatFMS:
		result = t.ir.FPVectorMulAdd(esize, regD, t.ir.FPVectorNeg(esize, regN), regM, false)
	case floatMax:
		result = t.ir.FPVectorMax(esize, regN, regM, false)
	case floatMin:
		result = t.ir.FPVectorMin(esize, regN, regM, false)
	case floatPairedMax:
		result = t.ir.FPVectorPairedMaxLower(esize, regN, regM, false)
	case floatPairedMin:
		result = t.ir.FPVectorPairedMinLower(esize, regN, regM, false)
	case floatRecipStep:
		result = t.ir.FPVectorRecipStepFused(esize, regN, regM, false)
	case floatRSqrtStep:
		result = t.ir.FPVectorRSqrtStepFused(esize, regN, regM, false)
	default:
		panic("BUG: unknown float op")
	}
	t.ir.SetVector(d, result)
	return true
}

// comparison selects the predicate of integerComparison and floatComparison.
type comparison byte

const (
	comparisonGT comparison = iota
	comparisonGE
	comparisonEQ
)

func (t *Translator) integerComparison(f decoder.Fields, unsigned bool, cmp comparison) bool {
	if f.Sz == 0b11 || misaligned(f) {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regN := t.ir.GetVector(n)
	regM := t.ir.GetVector(m)

	var result ir.Value
	switch cmp {
	case comparisonGT:
		if unsigned {
			result = t.ir.VectorGreaterUnsigned(esize(f), regN, regM)
		} else {
			result = t.ir.VectorGreaterSigned(esize(f), regN, regM)
		}
	case comparisonGE:
		if unsigned {
			result = t.ir.VectorGreaterEqualUnsigned(esize(f), regN, regM)
		} else {
			result = t.ir.VectorGreaterEqualSigned(esize(f), regN, regM)
		}
	case comparisonEQ:
		result = t.ir.VectorEqual(esize(f), regN, regM)
	}
	t.ir.SetVector(d, result)
	return true
}

// floatComparison compares single precision lanes. With absolute set it
// compares |n| against |m|.
func (t *Translator) floatComparison(f decoder.Fields, cmp comparison, absolute bool) bool {
	if f.FloatSz() || misaligned(f) {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regN := t.ir.GetVector(n)
	regM := t.ir.GetVector(m)
	if absolute {
		regN = t.ir.FPVectorAbs(32, regN)
		regM = t.ir.FPVectorAbs(32, regM)
	}

	var result ir.Value
	switch cmp {
	case comparisonGE:
		result = t.ir.FPVectorGreaterEqual(32, regN, regM, false)
	case comparisonGT:
		result = t.ir.FPVectorGreater(32, regN, regM, false)
	case comparisonEQ:
		result = t.ir.FPVectorEqual(32, regN, regM, false)
	}
	t.ir.SetVector(d, result)
	return true
}
