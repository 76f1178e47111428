package translate

import (
	"github.com/a32ir/a32ir/internal/a32"
	"github.com/a32ir/a32ir/internal/a32/decoder"
	"github.com/a32ir/a32ir/internal/ir"
)

// TranslateASIMD emits the IR of one decoded instruction of the ASIMD
// three-same class. On rejection it emits nothing and returns false.
func (t *Translator) TranslateASIMD(tag decoder.Tag, f decoder.Fields) bool {
	switch tag {
	case decoder.TagVHADD:
		return t.asimdVHADD(f)
	case decoder.TagVQADD:
		return t.asimdVQADD(f)
	case decoder.TagVRHADD:
		return t.asimdVRHADD(f)
	case decoder.TagVAND:
		return t.bitwiseInstruction(bitwiseAND, f)
	case decoder.TagVBIC:
		return t.bitwiseInstruction(bitwiseBIC, f)
	case decoder.TagVORR:
		return t.bitwiseInstruction(bitwiseORR, f)
	case decoder.TagVORN:
		return t.bitwiseInstruction(bitwiseORN, f)
	case decoder.TagVEOR:
		return t.bitwiseInstruction(bitwiseEOR, f)
	case decoder.TagVBSL:
		return t.bitwiseInstruction(bitwiseBSL, f)
	case decoder.TagVBIT:
		return t.bitwiseInstruction(bitwiseBIT, f)
	case decoder.TagVBIF:
		return t.bitwiseInstruction(bitwiseBIF, f)
	case decoder.TagVHSUB:
		return t.asimdVHSUB(f)
	case decoder.TagVQSUB:
		return t.asimdVQSUB(f)
	case decoder.TagVCGT:
		return t.integerComparison(f, f.U, comparisonGT)
	case decoder.TagVCGE:
		return t.integerComparison(f, f.U, comparisonGE)
	case decoder.TagVSHL:
		return t.asimdVSHL(f)
	case decoder.TagVQSHL:
		return t.asimdVQSHL(f)
	case decoder.TagVRSHL:
		return t.asimdVRSHL(f)
	case decoder.TagVQRSHL:
		return t.asimdVQRSHL(f)
	case decoder.TagVMAX:
		return t.asimdVMAX(f)
	case decoder.TagVABD:
		return t.asimdVABD(f, false)
	case decoder.TagVABA:
		return t.asimdVABD(f, true)
	case decoder.TagVADD:
		return t.asimdVADD(f)
	case decoder.TagVTST:
		return t.asimdVTST(f)
	case decoder.TagVSUB:
		return t.asimdVSUB(f)
	case decoder.TagVCEQ:
		return t.integerComparison(f, false, comparisonEQ)
	case decoder.TagVMLA:
		return t.asimdVMLA(f)
	case decoder.TagVMUL:
		return t.asimdVMUL(f)
	case decoder.TagVPMAX:
		return t.asimdVPMAX(f)
	case decoder.TagVQDMULH:
		return t.asimdVQDMULH(f, false)
	case decoder.TagVQRDMULH:
		return t.asimdVQDMULH(f, true)
	case decoder.TagVPADD:
		return t.asimdVPADD(f)
	case decoder.TagVFMA:
		return t.floatingPointInstruction(floatFMA, f)
	case decoder.TagVFMS:
		return t.floatingPointInstruction(floatFMS, f)
	case decoder.TagVADDFloat:
		return t.floatingPointInstruction(floatAdd, f)
	case decoder.TagVSUBFloat:
		return t.floatingPointInstruction(floatSub, f)
	case decoder.TagVPADDFloat:
		return t.floatingPointInstruction(floatPairedAdd, f)
	case decoder.TagVABDFloat:
		return t.floatingPointInstruction(floatAbsoluteDifference, f)
	case decoder.TagVMLAFloat:
		return t.floatingPointInstruction(floatMultiplyAdd, f)
	case decoder.TagVMLSFloat:
		return t.floatingPointInstruction(floatMultiplySub, f)
	case decoder.TagVMULFloat:
		return t.floatingPointInstruction(floatMul, f)
	case decoder.TagVCEQFloat:
		return t.floatComparison(f, comparisonEQ, false)
	case decoder.TagVCGEFloat:
		return t.floatComparison(f, comparisonGE, false)
	case decoder.TagVCGTFloat:
		return t.floatComparison(f, comparisonGT, false)
	case decoder.TagVACGE:
		return t.floatComparison(f, comparisonGE, true)
	case decoder.TagVACGT:
		return t.floatComparison(f, comparisonGT, true)
	case decoder.TagVMAXFloat:
		return t.floatingPointInstruction(floatMax, f)
	case decoder.TagVMINFloat:
		return t.floatingPointInstruction(floatMin, f)
	case decoder.TagVPMAXFloat:
		return t.floatingPointInstruction(floatPairedMax, f)
	case decoder.TagVPMINFloat:
		return t.floatingPointInstruction(floatPairedMin, f)
	case decoder.TagVRECPS:
		return t.floatingPointInstruction(floatRecipStep, f)
	case decoder.TagVRSQRTS:
		return t.floatingPointInstruction(floatRSqrtStep, f)
	}
	return t.undefinedInstruction()
}

// misaligned is true when a quadword operation names an odd D register.
func misaligned(f decoder.Fields) bool {
	return f.Q && !a32.QuadAligned(f.Vd, f.Vn, f.Vm)
}

// operands resolves the d, n and m registers of f.
func operands(f decoder.Fields) (d, n, m a32.ExtReg) {
	d = a32.ToVector(f.Q, f.Vd, f.D)
	n = a32.ToVector(f.Q, f.Vn, f.N)
	m = a32.ToVector(f.Q, f.Vm, f.M)
	return
}

func esize(f decoder.Fields) int {
	return 8 << f.Sz
}

func (t *Translator) asimdVHADD(f decoder.Fields) bool {
	if misaligned(f) || f.Sz == 0b11 {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regN := t.ir.GetVector(n)
	regM := t.ir.GetVector(m)
	var result ir.Value
	if f.U {
		result = t.ir.VectorHalvingAddUnsigned(esize(f), regN, regM)
	} else {
		result = t.ir.VectorHalvingAddSigned(esize(f), regN, regM)
	}
	t.ir.SetVector(d, result)
	return true
}

func (t *Translator) asimdVQADD(f decoder.Fields) bool {
	if misaligned(f) || f.Sz == 0b11 {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regN := t.ir.GetVector(n)
	regM := t.ir.GetVector(m)
	var result ir.Value
	if f.U {
		result = t.ir.VectorUnsignedSaturatedAdd(esize(f), regN, regM)
	} else {
		result = t.ir.VectorSignedSaturatedAdd(esize(f), regN, regM)
	}
	t.ir.SetVector(d, result)
	return true
}

func (t *Translator) asimdVRHADD(f decoder.Fields) bool {
	if misaligned(f) || f.Sz == 0b11 {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regN := t.ir.GetVector(n)
	regM := t.ir.GetVector(m)
	var result ir.Value
	if f.U {
		result = t.ir.VectorRoundingHalvingAddUnsigned(esize(f), regN, regM)
	} else {
		result = t.ir.VectorRoundingHalvingAddSigned(esize(f), regN, regM)
	}
	t.ir.SetVector(d, result)
	return true
}

func (t *Translator) asimdVHSUB(f decoder.Fields) bool {
	if misaligned(f) || f.Sz == 0b11 {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regN := t.ir.GetVector(n)
	regM := t.ir.GetVector(m)
	var result ir.Value
	if f.U {
		result = t.ir.VectorHalvingSubUnsigned(esize(f), regN, regM)
	} else {
		result = t.ir.VectorHalvingSubSigned(esize(f), regN, regM)
	}
	t.ir.SetVector(d, result)
	return true
}

func (t *Translator) asimdVQSUB(f decoder.Fields) bool {
	if misaligned(f) || f.Sz == 0b11 {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regN := t.ir.GetVector(n)
	regM := t.ir.GetVector(m)
	var result ir.Value
	if f.U {
		result = t.ir.VectorUnsignedSaturatedSub(esize(f), regN, regM)
	} else {
		result = t.ir.VectorSignedSaturatedSub(esize(f), regN, regM)
	}
	t.ir.SetVector(d, result)
	return true
}

// The shifts by register shift m by the amounts in n and support 64-bit lanes.

func (t *Translator) asimdVSHL(f decoder.Fields) bool {
	if misaligned(f) {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regM := t.ir.GetVector(m)
	regN := t.ir.GetVector(n)
	var result ir.Value
	if f.U {
		result = t.ir.VectorLogicalVShift(esize(f), regM, regN)
	} else {
		result = t.ir.VectorArithmeticVShift(esize(f), regM, regN)
	}
	t.ir.SetVector(d, result)
	return true
}

func (t *Translator) asimdVQSHL(f decoder.Fields) bool {
	if misaligned(f) {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regM := t.ir.GetVector(m)
	regN := t.ir.GetVector(n)
	var result ir.Value
	if f.U {
		result = t.ir.VectorUnsignedSaturatedShiftLeft(esize(f), regM, regN)
	} else {
		result = t.ir.VectorSignedSaturatedShiftLeft(esize(f), regM, regN)
	}
	t.ir.SetVector(d, result)
	return true
}

func (t *Translator) asimdVRSHL(f decoder.Fields) bool {
	if misaligned(f) {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regM := t.ir.GetVector(m)
	regN := t.ir.GetVector(n)
	var result ir.Value
	if f.U {
		result = t.ir.VectorRoundingShiftLeftUnsigned(esize(f), regM, regN)
	} else {
		result = t.ir.VectorRoundingShiftLeftSigned(esize(f), regM, regN)
	}
	t.ir.SetVector(d, result)
	return true
}

func (t *Translator) asimdVQRSHL(f decoder.Fields) bool {
	if misaligned(f) {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regM := t.ir.GetVector(m)
	regN := t.ir.GetVector(n)
	var result ir.Value
	if f.U {
		result = t.ir.VectorUnsignedSaturatedRoundingShiftLeft(esize(f), regM, regN)
	} else {
		result = t.ir.VectorSignedSaturatedRoundingShiftLeft(esize(f), regM, regN)
	}
	t.ir.SetVector(d, result)
	return true
}

// asimdVMAX handles VMAX and, with op set, VMIN.
func (t *Translator) asimdVMAX(f decoder.Fields) bool {
	if f.Sz == 0b11 || misaligned(f) {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regM := t.ir.GetVector(m)
	regN := t.ir.GetVector(n)
	var result ir.Value
	switch {
	case f.Op && f.U:
		result = t.ir.VectorMinUnsigned(esize(f), regM, regN)
	case f.Op:
		result = t.ir.VectorMinSigned(esize(f), regM, regN)
	case f.U:
		result = t.ir.VectorMaxUnsigned(esize(f), regM, regN)
	default:
		result = t.ir.VectorMaxSigned(esize(f), regM, regN)
	}
	t.ir.SetVector(d, result)
	return true
}

// asimdVABD handles VABD and, with accumulate, VABA.
func (t *Translator) asimdVABD(f decoder.Fields, accumulate bool) bool {
	if f.Sz == 0b11 || misaligned(f) {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regN := t.ir.GetVector(n)
	regM := t.ir.GetVector(m)
	var regD ir.Value
	if accumulate {
		regD = t.ir.GetVector(d)
	}
	var result ir.Value
	if f.U {
		result = t.ir.VectorUnsignedAbsoluteDifference(esize(f), regN, regM)
	} else {
		result = t.ir.VectorSignedAbsoluteDifference(esize(f), regN, regM)
	}
	if accumulate {
		result = t.ir.VectorAdd(esize(f), regD, result)
	}
	t.ir.SetVector(d, result)
	return true
}

func (t *Translator) asimdVADD(f decoder.Fields) bool {
	if misaligned(f) {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regM := t.ir.GetVector(m)
	regN := t.ir.GetVector(n)
	t.ir.SetVector(d, t.ir.VectorAdd(esize(f), regM, regN))
	return true
}

func (t *Translator) asimdVSUB(f decoder.Fields) bool {
	if misaligned(f) {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regM := t.ir.GetVector(m)
	regN := t.ir.GetVector(n)
	t.ir.SetVector(d, t.ir.VectorSub(esize(f), regN, regM))
	return true
}

// asimdVTST sets each lane of d to all ones when n and m share a set bit.
func (t *Translator) asimdVTST(f decoder.Fields) bool {
	if misaligned(f) || f.Sz == 0b11 {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regN := t.ir.GetVector(n)
	regM := t.ir.GetVector(m)
	anded := t.ir.VectorAnd(regN, regM)
	result := t.ir.VectorNot(t.ir.VectorEqual(esize(f), anded, t.ir.ZeroVector()))
	t.ir.SetVector(d, result)
	return true
}

// asimdVMLA handles VMLA and, with U set, VMLS. The accumulator is read before the multiply.
func (t *Translator) asimdVMLA(f decoder.Fields) bool {
	if f.Sz == 0b11 || misaligned(f) {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regN := t.ir.GetVector(n)
	regM := t.ir.GetVector(m)
	regD := t.ir.GetVector(d)
	multiply := t.ir.VectorMultiply(esize(f), regM, regN)
	var result ir.Value
	if f.U {
		result = t.ir.VectorSub(esize(f), regD, multiply)
	} else {
		result = t.ir.VectorAdd(esize(f), regD, multiply)
	}
	t.ir.SetVector(d, result)
	return true
}

// asimdVMUL handles the integer multiply and, with U as the P bit, the
// polynomial multiply which only exists for 8-bit lanes.
func (t *Translator) asimdVMUL(f decoder.Fields) bool {
	polynomial := f.U
	if f.Sz == 0b11 || (polynomial && f.Sz != 0b00) || misaligned(f) {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regN := t.ir.GetVector(n)
	regM := t.ir.GetVector(m)
	var result ir.Value
	if polynomial {
		result = t.ir.VectorPolynomialMultiply(regM, regN)
	} else {
		result = t.ir.VectorMultiply(esize(f), regM, regN)
	}
	t.ir.SetVector(d, result)
	return true
}

// asimdVPMAX handles the integer VPMAX and, with op set, VPMIN. Doubleword only.
func (t *Translator) asimdVPMAX(f decoder.Fields) bool {
	if f.Q || f.Sz == 0b11 {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regN := t.ir.GetVector(n)
	regM := t.ir.GetVector(m)
	var result ir.Value
	switch {
	case f.Op && f.U:
		result = t.ir.VectorPairedMinUnsignedLower(esize(f), regN, regM)
	case f.Op:
		result = t.ir.VectorPairedMinSignedLower(esize(f), regN, regM)
	case f.U:
		result = t.ir.VectorPairedMaxUnsignedLower(esize(f), regN, regM)
	default:
		result = t.ir.VectorPairedMaxSignedLower(esize(f), regN, regM)
	}
	t.ir.SetVector(d, result)
	return true
}

// asimdVQDMULH handles VQDMULH and, with rounding, VQRDMULH. Only 16 and 32-bit lanes exist.
func (t *Translator) asimdVQDMULH(f decoder.Fields, rounding bool) bool {
	if f.Sz == 0b00 || f.Sz == 0b11 || misaligned(f) {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regN := t.ir.GetVector(n)
	regM := t.ir.GetVector(m)
	var result ir.Value
	if rounding {
		result = t.ir.VectorSignedSaturatedRoundingDoublingMultiplyReturnHigh(esize(f), regN, regM)
	} else {
		result = t.ir.VectorSignedSaturatedDoublingMultiplyReturnHigh(esize(f), regN, regM)
	}
	t.ir.SetVector(d, result)
	return true
}

// asimdVPADD is doubleword only. The quadword form is UNDEFINED.
func (t *Translator) asimdVPADD(f decoder.Fields) bool {
	if f.Q || f.Sz == 0b11 {
		return t.undefinedInstruction()
	}
	d, n, m := operands(f)
	regN := t.ir.GetVector(n)
	regM := t.ir.GetVector(m)
	t.ir.SetVector(d, t.ir.VectorPairedAddLower(esize(f), regN, regM))
	return true
}
