package interpreter

import (
	"fmt"
	"math"

	"github.com/a32ir/a32ir/internal/ir"
	"github.com/a32ir/a32ir/internal/moremath"
)

// Floating point opcodes are evaluated with the standard FPSCR value:
// denormal inputs are flushed to zero, results that are tiny before
// rounding are flushed to zero, NaN results are the default NaN and
// rounding is to nearest even. fpcr-controlled instructions
// are evaluated the same way.

var fpOps = map[ir.Opcode]struct{}{
	ir.OpcodeFPVectorAdd:            {},
	ir.OpcodeFPVectorSub:            {},
	ir.OpcodeFPVectorMul:            {},
	ir.OpcodeFPVectorMax:            {},
	ir.OpcodeFPVectorMin:            {},
	ir.OpcodeFPVectorEqual:          {},
	ir.OpcodeFPVectorGreater:        {},
	ir.OpcodeFPVectorGreaterEqual:   {},
	ir.OpcodeFPVectorRecipStepFused: {},
	ir.OpcodeFPVectorRSqrtStepFused: {},
}

func fpLanewise(esize int, x, y vec, op ir.Opcode) (ret vec) {
	for i := 0; i < lanes(esize); i++ {
		ret.setLane(esize, i, fpLane(esize, op, x.lane(esize, i), y.lane(esize, i)))
	}
	return
}

func fpPaired(esize int, x, y vec, op ir.Opcode, lower bool) (ret vec) {
	n := lanes(esize)
	if lower {
		n /= 2
	}
	src := make([]uint64, 0, 2*n)
	for i := 0; i < n; i++ {
		src = append(src, x.lane(esize, i))
	}
	for i := 0; i < n; i++ {
		src = append(src, y.lane(esize, i))
	}
	for i := 0; i < n; i++ {
		ret.setLane(esize, i, fpLane(esize, op, src[2*i], src[2*i+1]))
	}
	return
}

func fpSignOp(esize int, x vec, abs bool) (ret vec) {
	sign := uint64(1) << (esize - 1)
	for i := 0; i < lanes(esize); i++ {
		l := x.lane(esize, i)
		if abs {
			l &^= sign
		} else {
			l ^= sign
		}
		ret.setLane(esize, i, l)
	}
	return
}

func fpMulAdd(esize int, addend, x, y vec) (ret vec) {
	for i := 0; i < lanes(esize); i++ {
		a, b, c := addend.lane(esize, i), x.lane(esize, i), y.lane(esize, i)
		var r uint64
		switch esize {
		case 32:
			r = uint64(canonical32(moremath.MulAdd(f32(a), f32(b), f32(c))))
		case 64:
			r = canonical64(moremath.MulAdd(f64(a), f64(b), f64(c)))
		default:
			panic(fmt.Sprintf("BUG: unsupported floating point esize %d", esize))
		}
		ret.setLane(esize, i, r)
	}
	return
}

func fpLane(esize int, op ir.Opcode, a, b uint64) uint64 {
	switch esize {
	case 32:
		return uint64(fpLane32(op, f32(a), f32(b)))
	case 64:
		return fpLane64(op, f64(a), f64(b))
	}
	panic(fmt.Sprintf("BUG: unsupported floating point esize %d", esize))
}

// f32 reads a single precision lane, flushing denormals.
func f32(bits uint64) float32 {
	return math.Float32frombits(moremath.FlushToZero32(uint32(bits)))
}

func f64(bits uint64) float64 {
	return math.Float64frombits(moremath.FlushToZero64(bits))
}

func canonical32(r float32) uint32 {
	if r != r {
		return moremath.DefaultNaN32
	}
	return moremath.FlushToZero32(math.Float32bits(r))
}

func canonical64(r float64) uint64 {
	if math.IsNaN(r) {
		return moremath.DefaultNaN64
	}
	return moremath.FlushToZero64(math.Float64bits(r))
}

func fpLane32(op ir.Opcode, x, y float32) uint32 {
	var r float32
	switch op {
	case ir.OpcodeFPVectorEqual:
		return uint32(mask(x == y))
	case ir.OpcodeFPVectorGreater:
		return uint32(mask(x > y))
	case ir.OpcodeFPVectorGreaterEqual:
		return uint32(mask(x >= y))
	case ir.OpcodeFPVectorAdd:
		r = moremath.Add(x, y)
	case ir.OpcodeFPVectorSub:
		r = moremath.Sub(x, y)
	case ir.OpcodeFPVectorMul:
		r = moremath.Mul(x, y)
	case ir.OpcodeFPVectorMax:
		r = float32(moremath.StandardMax(float64(x), float64(y)))
	case ir.OpcodeFPVectorMin:
		r = float32(moremath.StandardMin(float64(x), float64(y)))
	case ir.OpcodeFPVectorRecipStepFused:
		r = moremath.RecipStep(x, y)
	case ir.OpcodeFPVectorRSqrtStepFused:
		r = moremath.RSqrtStep(x, y)
	default:
		panic("BUG: not a floating point lane op: " + op.String())
	}
	return canonical32(r)
}

func fpLane64(op ir.Opcode, x, y float64) uint64 {
	var r float64
	switch op {
	case ir.OpcodeFPVectorEqual:
		return mask(x == y)
	case ir.OpcodeFPVectorGreater:
		return mask(x > y)
	case ir.OpcodeFPVectorGreaterEqual:
		return mask(x >= y)
	case ir.OpcodeFPVectorAdd:
		r = moremath.Add(x, y)
	case ir.OpcodeFPVectorSub:
		r = moremath.Sub(x, y)
	case ir.OpcodeFPVectorMul:
		r = moremath.Mul(x, y)
	case ir.OpcodeFPVectorMax:
		r = moremath.StandardMax(x, y)
	case ir.OpcodeFPVectorMin:
		r = moremath.StandardMin(x, y)
	case ir.OpcodeFPVectorRecipStepFused:
		r = moremath.RecipStep(x, y)
	case ir.OpcodeFPVectorRSqrtStepFused:
		r = moremath.RSqrtStep(x, y)
	default:
		panic("BUG: not a floating point lane op: " + op.String())
	}
	return canonical64(r)
}
