package interpreter

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/a32ir/a32ir/internal/a32"
	"github.com/a32ir/a32ir/internal/ir"
	"github.com/a32ir/a32ir/internal/moremath"
)

type (
	binaryEmit func(e *ir.Emitter, x, y ir.Value) ir.Value
	laneEmit   func(e *ir.Emitter, esize int, x, y ir.Value) ir.Value
)

// evalBinary computes q0 = emit(q1, q2) with q1 = x and q2 = y.
func evalBinary(t *testing.T, emit binaryEmit, x, y vec) vec {
	b := ir.NewBlock(0)
	e := ir.NewEmitter(b)
	e.SetVector(a32.Q(0), emit(e, e.GetVector(a32.Q(1)), e.GetVector(a32.Q(2))))
	b.SetTerminal(ir.TerminalReturnToDispatch{})

	var s State
	s.SetQ(1, x[0], x[1])
	s.SetQ(2, y[0], y[1])
	exit := Eval(b, &s)
	require.False(t, exit.Raised)
	require.Equal(t, ir.TerminalReturnToDispatch{}, exit.Terminal)
	lo, hi := s.Q(0)
	return vec{lo, hi}
}

func splat(esize int, v uint64) (ret vec) {
	for i := 0; i < lanes(esize); i++ {
		ret.setLane(esize, i, v)
	}
	return
}

var samples = []uint64{0, 1, 2, 3, 0x7f, 0x80, 0xff, 0x1234, 0x7fff, 0x8000, 0xfffe, 0xffff,
	0x7fff_ffff, 0x8000_0000, 0xdead_beef, 0xffff_ffff}

func TestEval_halvingAdd(t *testing.T) {
	for _, esize := range []int{8, 16, 32} {
		m := laneMask(esize)
		for _, a := range samples {
			for _, b := range samples {
				a, b := a&m, b&m
				signed := evalBinary(t, func(e *ir.Emitter, x, y ir.Value) ir.Value {
					return e.VectorHalvingAddSigned(esize, x, y)
				}, splat(esize, a), splat(esize, b))
				exp := uint64((sext(esize, a)+sext(esize, b))>>1) & m
				require.Equal(t, splat(esize, exp), signed, "s%d %#x %#x", esize, a, b)

				unsigned := evalBinary(t, func(e *ir.Emitter, x, y ir.Value) ir.Value {
					return e.VectorHalvingAddUnsigned(esize, x, y)
				}, splat(esize, a), splat(esize, b))
				require.Equal(t, splat(esize, (a+b)>>1), unsigned, "u%d %#x %#x", esize, a, b)

				rounding := evalBinary(t, func(e *ir.Emitter, x, y ir.Value) ir.Value {
					return e.VectorRoundingHalvingAddUnsigned(esize, x, y)
				}, splat(esize, a), splat(esize, b))
				require.Equal(t, splat(esize, (a+b+1)>>1), rounding, "ru%d %#x %#x", esize, a, b)
			}
		}
	}
}

func TestEval_roundingHalvingAddBias(t *testing.T) {
	for _, tc := range []struct {
		a, b, halving, rounding uint64
	}{
		{a: 0, b: 0, halving: 0, rounding: 0},
		{a: 1, b: 0, halving: 0, rounding: 1},
		{a: 0xff, b: 0, halving: 0xff, rounding: 0},
	} {
		x, y := splat(8, tc.a), splat(8, tc.b)
		h := evalBinary(t, func(e *ir.Emitter, x, y ir.Value) ir.Value { return e.VectorHalvingAddSigned(8, x, y) }, x, y)
		r := evalBinary(t, func(e *ir.Emitter, x, y ir.Value) ir.Value { return e.VectorRoundingHalvingAddSigned(8, x, y) }, x, y)
		require.Equal(t, splat(8, tc.halving), h)
		require.Equal(t, splat(8, tc.rounding), r)
	}
}

func TestEval_halvingSub(t *testing.T) {
	for _, esize := range []int{8, 16, 32, 64} {
		m := laneMask(esize)
		for _, a := range samples {
			for _, b := range samples {
				a, b := a&m, b&m
				got := evalBinary(t, func(e *ir.Emitter, x, y ir.Value) ir.Value {
					return e.VectorHalvingSubSigned(esize, x, y)
				}, splat(esize, a), splat(esize, b))
				if esize < 64 {
					exp := uint64((sext(esize, a)-sext(esize, b))>>1) & m
					require.Equal(t, splat(esize, exp), got, "s%d %#x %#x", esize, a, b)
				}
				got = evalBinary(t, func(e *ir.Emitter, x, y ir.Value) ir.Value {
					return e.VectorHalvingSubUnsigned(esize, x, y)
				}, splat(esize, a), splat(esize, b))
				if esize < 64 {
					exp := uint64((int64(a)-int64(b))>>1) & m
					require.Equal(t, splat(esize, exp), got, "u%d %#x %#x", esize, a, b)
				}
			}
		}
	}
}

func TestEval_saturated(t *testing.T) {
	for _, tc := range []struct {
		name  string
		emit  laneEmit
		esize int
		a, b  uint64
		exp   uint64
	}{
		{name: "uqadd8", emit: (*ir.Emitter).VectorUnsignedSaturatedAdd, esize: 8, a: 200, b: 100, exp: 255},
		{name: "uqadd8 in range", emit: (*ir.Emitter).VectorUnsignedSaturatedAdd, esize: 8, a: 20, b: 100, exp: 120},
		{name: "sqadd8 max", emit: (*ir.Emitter).VectorSignedSaturatedAdd, esize: 8, a: 0x7f, b: 1, exp: 0x7f},
		{name: "sqadd8 min", emit: (*ir.Emitter).VectorSignedSaturatedAdd, esize: 8, a: 0x80, b: 0xff, exp: 0x80},
		{name: "sqadd64 max", emit: (*ir.Emitter).VectorSignedSaturatedAdd, esize: 64, a: math.MaxInt64, b: 1, exp: math.MaxInt64},
		{name: "uqadd64", emit: (*ir.Emitter).VectorUnsignedSaturatedAdd, esize: 64, a: math.MaxUint64, b: 2, exp: math.MaxUint64},
		{name: "uqsub16", emit: (*ir.Emitter).VectorUnsignedSaturatedSub, esize: 16, a: 1, b: 2, exp: 0},
		{name: "sqsub16", emit: (*ir.Emitter).VectorSignedSaturatedSub, esize: 16, a: 0x8000, b: 1, exp: 0x8000},
		{name: "sqsub32", emit: (*ir.Emitter).VectorSignedSaturatedSub, esize: 32, a: 0x7fff_ffff, b: 0xffff_ffff, exp: 0x7fff_ffff},
		{name: "sqsub64", emit: (*ir.Emitter).VectorSignedSaturatedSub, esize: 64, a: 1 << 63, b: 1, exp: 1 << 63},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := evalBinary(t, func(e *ir.Emitter, x, y ir.Value) ir.Value {
				return tc.emit(e, tc.esize, x, y)
			}, splat(tc.esize, tc.a), splat(tc.esize, tc.b))
			require.Equal(t, splat(tc.esize, tc.exp), got)
		})
	}
}

func TestEval_saturatedNeverLeavesRange(t *testing.T) {
	for _, esize := range []int{8, 16, 32} {
		m := laneMask(esize)
		lo, hi := signedLimit(esize, false), signedLimit(esize, true)
		for _, a := range samples {
			for _, b := range samples {
				a, b := a&m, b&m
				got := evalBinary(t, func(e *ir.Emitter, x, y ir.Value) ir.Value {
					return e.VectorSignedSaturatedAdd(esize, x, y)
				}, splat(esize, a), splat(esize, b))
				sum := sext(esize, a) + sext(esize, b)
				exp := min(max(sum, lo), hi)
				require.Equal(t, splat(esize, uint64(exp)&m), got)

				got = evalBinary(t, func(e *ir.Emitter, x, y ir.Value) ir.Value {
					return e.VectorUnsignedSaturatedAdd(esize, x, y)
				}, splat(esize, a), splat(esize, b))
				require.Equal(t, splat(esize, min(a+b, m)), got)
			}
		}
	}
}

func TestEval_bitwiseSelect(t *testing.T) {
	n := vec{0x0123_4567_89ab_cdef, 0xfedc_ba98_7654_3210}
	m := vec{0x1111_2222_3333_4444, 0x5555_6666_7777_8888}
	for _, tc := range []struct {
		name string
		mask vec
		exp  vec
	}{
		{name: "all ones", mask: vec{math.MaxUint64, math.MaxUint64}, exp: n},
		{name: "all zeros", mask: vec{}, exp: m},
		{name: "low half", mask: vec{math.MaxUint64, 0}, exp: vec{n[0], m[1]}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := ir.NewBlock(0)
			e := ir.NewEmitter(b)
			d := e.GetVector(a32.Q(0))
			vm := e.GetVector(a32.Q(2))
			vn := e.GetVector(a32.Q(1))
			e.SetVector(a32.Q(0), e.VectorOr(e.VectorAnd(vn, d), e.VectorAnd(vm, e.VectorNot(d))))

			var s State
			s.SetQ(0, tc.mask[0], tc.mask[1])
			s.SetQ(1, n[0], n[1])
			s.SetQ(2, m[0], m[1])
			Eval(b, &s)
			lo, hi := s.Q(0)
			require.Equal(t, tc.exp, vec{lo, hi})
		})
	}
}

func TestEval_testBits(t *testing.T) {
	for _, esize := range []int{8, 16, 32} {
		x := vec{0x0000_0001_0000_ff00, 0x8000_0000_0000_0000}
		got := evalBinary(t, func(e *ir.Emitter, a, b ir.Value) ir.Value {
			return e.VectorNot(e.VectorEqual(esize, e.VectorAnd(a, b), e.ZeroVector()))
		}, x, x)
		var exp vec
		for i := 0; i < lanes(esize); i++ {
			if x.lane(esize, i) != 0 {
				exp.setLane(esize, i, laneMask(esize))
			}
		}
		require.Equal(t, exp, got, "esize %d", esize)
	}
}

func TestEval_shifts(t *testing.T) {
	for _, tc := range []struct {
		name  string
		emit  laneEmit
		esize int
		a     uint64
		shift int8
		exp   uint64
	}{
		{name: "ushl left", emit: (*ir.Emitter).VectorLogicalVShift, esize: 8, a: 0x81, shift: 1, exp: 0x02},
		{name: "ushl right", emit: (*ir.Emitter).VectorLogicalVShift, esize: 8, a: 0x81, shift: -1, exp: 0x40},
		{name: "ushl out", emit: (*ir.Emitter).VectorLogicalVShift, esize: 16, a: 0xffff, shift: -16, exp: 0},
		{name: "sshl right", emit: (*ir.Emitter).VectorArithmeticVShift, esize: 8, a: 0x81, shift: -1, exp: 0xc0},
		{name: "sshl right out", emit: (*ir.Emitter).VectorArithmeticVShift, esize: 8, a: 0x81, shift: -100, exp: 0xff},
		{name: "sshl 64", emit: (*ir.Emitter).VectorArithmeticVShift, esize: 64, a: 1 << 63, shift: -63, exp: math.MaxUint64},
		{name: "sqshl sat", emit: (*ir.Emitter).VectorSignedSaturatedShiftLeft, esize: 8, a: 0x40, shift: 1, exp: 0x7f},
		{name: "sqshl neg sat", emit: (*ir.Emitter).VectorSignedSaturatedShiftLeft, esize: 8, a: 0xc0, shift: 2, exp: 0x80},
		{name: "sqshl ok", emit: (*ir.Emitter).VectorSignedSaturatedShiftLeft, esize: 8, a: 0xe0, shift: 2, exp: 0x80},
		{name: "uqshl sat", emit: (*ir.Emitter).VectorUnsignedSaturatedShiftLeft, esize: 16, a: 0x8000, shift: 1, exp: 0xffff},
		{name: "uqshl zero", emit: (*ir.Emitter).VectorUnsignedSaturatedShiftLeft, esize: 16, a: 0, shift: 100, exp: 0},
		{name: "srshl", emit: (*ir.Emitter).VectorRoundingShiftLeftSigned, esize: 8, a: 0x03, shift: -1, exp: 0x02},
		{name: "srshl neg", emit: (*ir.Emitter).VectorRoundingShiftLeftSigned, esize: 8, a: 0xfd, shift: -1, exp: 0xff},
		{name: "urshl", emit: (*ir.Emitter).VectorRoundingShiftLeftUnsigned, esize: 8, a: 0x80, shift: -8, exp: 0x01},
		{name: "urshl 64", emit: (*ir.Emitter).VectorRoundingShiftLeftUnsigned, esize: 64, a: math.MaxUint64, shift: -1, exp: 1 << 63},
		{name: "sqrshl left", emit: (*ir.Emitter).VectorSignedSaturatedRoundingShiftLeft, esize: 32, a: 0x4000_0000, shift: 1, exp: 0x7fff_ffff},
		{name: "uqrshl right", emit: (*ir.Emitter).VectorUnsignedSaturatedRoundingShiftLeft, esize: 32, a: 5, shift: -1, exp: 3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := evalBinary(t, func(e *ir.Emitter, x, y ir.Value) ir.Value {
				return tc.emit(e, tc.esize, x, y)
			}, splat(tc.esize, tc.a), splat(tc.esize, uint64(uint8(tc.shift))))
			require.Equal(t, splat(tc.esize, tc.exp), got)
		})
	}
}

func TestEval_lanes(t *testing.T) {
	for _, tc := range []struct {
		name      string
		emit      binaryEmit
		x, y, exp vec
	}{
		{
			name: "add.8",
			emit: func(e *ir.Emitter, a, b ir.Value) ir.Value { return e.VectorAdd(8, a, b) },
			x:    vec{0x01ff_0000_0000_0080, 1},
			y:    vec{0x0101_0000_0000_0080, 2},
			exp:  vec{0x0200_0000_0000_0000, 3},
		},
		{
			name: "sub.64",
			emit: func(e *ir.Emitter, a, b ir.Value) ir.Value { return e.VectorSub(64, a, b) },
			x:    vec{5, 0},
			y:    vec{6, 1},
			exp:  vec{math.MaxUint64, math.MaxUint64},
		},
		{
			name: "mul.16",
			emit: func(e *ir.Emitter, a, b ir.Value) ir.Value { return e.VectorMultiply(16, a, b) },
			x:    vec{0x0003_0100, 0},
			y:    vec{0x0005_0100, 0},
			exp:  vec{0x000f_0000, 0},
		},
		{
			name: "max.s32",
			emit: func(e *ir.Emitter, a, b ir.Value) ir.Value { return e.VectorMaxSigned(32, a, b) },
			x:    vec{0xffff_ffff_0000_0001, 0},
			y:    vec{0x0000_0001_8000_0000, 0},
			exp:  vec{0x0000_0001_0000_0001, 0},
		},
		{
			name: "max.u32",
			emit: func(e *ir.Emitter, a, b ir.Value) ir.Value { return e.VectorMaxUnsigned(32, a, b) },
			x:    vec{0xffff_ffff_0000_0001, 0},
			y:    vec{0x0000_0001_8000_0000, 0},
			exp:  vec{0xffff_ffff_8000_0000, 0},
		},
		{
			name: "abd.s8",
			emit: func(e *ir.Emitter, a, b ir.Value) ir.Value { return e.VectorSignedAbsoluteDifference(8, a, b) },
			x:    vec{0x7f80, 0},
			y:    vec{0x8001, 0},
			exp:  vec{0xff81, 0},
		},
		{
			name: "cgt.s16",
			emit: func(e *ir.Emitter, a, b ir.Value) ir.Value { return e.VectorGreaterSigned(16, a, b) },
			x:    vec{0x0001_ffff, 0},
			y:    vec{0xffff_0000, 0},
			exp:  vec{0xffff_0000, 0},
		},
		{
			name: "padd.8",
			emit: func(e *ir.Emitter, a, b ir.Value) ir.Value { return e.VectorPairedAddLower(8, a, b) },
			x:    vec{0x0807_0605_0403_0201, math.MaxUint64},
			y:    vec{0x1010_1010_1010_1010, math.MaxUint64},
			exp:  vec{0x2020_2020_0f0b_0703, 0},
		},
		{
			name: "pmax.u16",
			emit: func(e *ir.Emitter, a, b ir.Value) ir.Value { return e.VectorPairedMaxUnsignedLower(16, a, b) },
			x:    vec{0x0004_0003_0002_0001, 0},
			y:    vec{0x8000_0001_0000_ffff, 0},
			exp:  vec{0x8000_ffff_0004_0002, 0},
		},
		{
			name: "pmin.s16",
			emit: func(e *ir.Emitter, a, b ir.Value) ir.Value { return e.VectorPairedMinSignedLower(16, a, b) },
			x:    vec{0x0004_0003_0002_0001, 0},
			y:    vec{0x8000_0001_0000_ffff, 0},
			exp:  vec{0x8000_ffff_0003_0001, 0},
		},
		{
			name: "pmul",
			emit: func(e *ir.Emitter, a, b ir.Value) ir.Value { return e.VectorPolynomialMultiply(a, b) },
			x:    vec{0x80_02_03, 0},
			y:    vec{0x02_05_03, 0},
			exp:  vec{0x00_0a_05, 0},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := evalBinary(t, tc.emit, tc.x, tc.y)
			if diff := cmp.Diff(tc.exp, got); diff != "" {
				t.Errorf("unexpected result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPolynomialMultiply8(t *testing.T) {
	require.Equal(t, uint64(0x05), polynomialMultiply8(8, 0x03, 0x03))
	require.Equal(t, uint64(0x0a), polynomialMultiply8(8, 0x02, 0x05))
	require.Equal(t, uint64(0x00), polynomialMultiply8(8, 0x80, 0x02))
}

func TestEval_doublingMultiplyHigh(t *testing.T) {
	for _, tc := range []struct {
		esize    int
		a, b     uint64
		rounding bool
		exp      uint64
	}{
		{esize: 16, a: 0x8000, b: 0x8000, exp: 0x7fff},
		{esize: 16, a: 0x4000, b: 0x4000, exp: 0x2000},
		{esize: 16, a: 0x0001, b: 0x4000, exp: 0},
		{esize: 16, a: 0x0001, b: 0x4000, rounding: true, exp: 1},
		{esize: 32, a: 0x8000_0000, b: 0x8000_0000, rounding: true, exp: 0x7fff_ffff},
		{esize: 32, a: 0xffff_ffff, b: 0x4000_0000, exp: 0xffff_ffff},
	} {
		got := evalBinary(t, func(e *ir.Emitter, x, y ir.Value) ir.Value {
			if tc.rounding {
				return e.VectorSignedSaturatedRoundingDoublingMultiplyReturnHigh(tc.esize, x, y)
			}
			return e.VectorSignedSaturatedDoublingMultiplyReturnHigh(tc.esize, x, y)
		}, splat(tc.esize, tc.a), splat(tc.esize, tc.b))
		require.Equal(t, splat(tc.esize, tc.exp), got, "%+v", tc)
	}
}

func f32Splat(f float32) vec {
	return splat(32, uint64(math.Float32bits(f)))
}

func TestEval_floatingPoint(t *testing.T) {
	negZero := float32(math.Copysign(0, -1))
	denormal := math.Float32frombits(1)
	for _, tc := range []struct {
		name string
		emit binaryEmit
		a, b float32
		exp  uint32
	}{
		{name: "add", emit: fpBinary((*ir.Emitter).FPVectorAdd), a: 1.5, b: 2.25, exp: math.Float32bits(3.75)},
		{name: "add denormal input", emit: fpBinary((*ir.Emitter).FPVectorAdd), a: denormal, b: denormal, exp: 0},
		{name: "mul denormal output", emit: fpBinary((*ir.Emitter).FPVectorMul), a: 1e-20, b: -1e-20, exp: 0x8000_0000},
		{name: "mul tiny before rounding", emit: fpBinary((*ir.Emitter).FPVectorMul), a: math.Float32frombits(0x3f7f_ffff), b: math.Float32frombits(0x0080_0000), exp: 0},
		{name: "mul smallest normal", emit: fpBinary((*ir.Emitter).FPVectorMul), a: 1, b: math.Float32frombits(0x0080_0000), exp: 0x0080_0000},
		{name: "sub nan", emit: fpBinary((*ir.Emitter).FPVectorSub), a: float32(math.Inf(1)), b: float32(math.Inf(1)), exp: moremath.DefaultNaN32},
		{name: "signaling nan", emit: fpBinary((*ir.Emitter).FPVectorAdd), a: math.Float32frombits(0x7f80_0001), b: 1, exp: moremath.DefaultNaN32},
		{name: "max zeros", emit: fpBinary((*ir.Emitter).FPVectorMax), a: negZero, b: 0, exp: 0},
		{name: "min zeros", emit: fpBinary((*ir.Emitter).FPVectorMin), a: 0, b: negZero, exp: 0x8000_0000},
		{name: "max nan", emit: fpBinary((*ir.Emitter).FPVectorMax), a: float32(math.NaN()), b: 1, exp: moremath.DefaultNaN32},
		{name: "eq zeros", emit: fpBinary((*ir.Emitter).FPVectorEqual), a: negZero, b: 0, exp: 0xffff_ffff},
		{name: "eq nan", emit: fpBinary((*ir.Emitter).FPVectorEqual), a: float32(math.NaN()), b: float32(math.NaN()), exp: 0},
		{name: "gt", emit: fpBinary((*ir.Emitter).FPVectorGreater), a: 2, b: 1, exp: 0xffff_ffff},
		{name: "ge denormal", emit: fpBinary((*ir.Emitter).FPVectorGreaterEqual), a: 0, b: denormal, exp: 0xffff_ffff},
		{name: "recps", emit: fpBinary((*ir.Emitter).FPVectorRecipStepFused), a: 0.5, b: 3, exp: math.Float32bits(0.5)},
		{name: "recps inf zero", emit: fpBinary((*ir.Emitter).FPVectorRecipStepFused), a: float32(math.Inf(1)), b: denormal, exp: math.Float32bits(2)},
		{name: "rsqrts", emit: fpBinary((*ir.Emitter).FPVectorRSqrtStepFused), a: 1, b: 2, exp: math.Float32bits(0.5)},
		{name: "rsqrts inf zero", emit: fpBinary((*ir.Emitter).FPVectorRSqrtStepFused), a: negZero, b: float32(math.Inf(-1)), exp: math.Float32bits(1.5)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := evalBinary(t, tc.emit, f32Splat(tc.a), f32Splat(tc.b))
			require.Equal(t, splat(32, uint64(tc.exp)), got)
		})
	}
}

func fpBinary(fn func(e *ir.Emitter, esize int, x, y ir.Value, fpcr bool) ir.Value) binaryEmit {
	return func(e *ir.Emitter, x, y ir.Value) ir.Value { return fn(e, 32, x, y, false) }
}

func TestEval_floatingPointUnary(t *testing.T) {
	x := vec{uint64(math.Float32bits(-1.5))<<32 | uint64(math.Float32bits(2)), uint64(moremath.DefaultNaN32)}
	neg := evalBinary(t, func(e *ir.Emitter, a, _ ir.Value) ir.Value { return e.FPVectorNeg(32, a) }, x, vec{})
	require.Equal(t, vec{uint64(math.Float32bits(1.5))<<32 | uint64(math.Float32bits(-2)), uint64(moremath.DefaultNaN32 | 0x8000_0000)}, neg)

	abs := evalBinary(t, func(e *ir.Emitter, a, _ ir.Value) ir.Value { return e.FPVectorAbs(32, a) }, x, vec{})
	require.Equal(t, vec{uint64(math.Float32bits(1.5))<<32 | uint64(math.Float32bits(2)), uint64(moremath.DefaultNaN32)}, abs)
}

func TestEval_floatingPointPaired(t *testing.T) {
	x := vec{uint64(math.Float32bits(2))<<32 | uint64(math.Float32bits(1)), uint64(math.Float32bits(8))<<32 | uint64(math.Float32bits(4))}
	y := vec{uint64(math.Float32bits(-2))<<32 | uint64(math.Float32bits(-1)), uint64(math.Float32bits(0.5))<<32 | uint64(math.Float32bits(0.25))}

	lower := evalBinary(t, fpBinary((*ir.Emitter).FPVectorPairedAddLower), x, y)
	require.Equal(t, vec{uint64(math.Float32bits(-3))<<32 | uint64(math.Float32bits(3))}, lower)

	full := evalBinary(t, fpBinary((*ir.Emitter).FPVectorPairedAdd), x, y)
	require.Equal(t, vec{
		uint64(math.Float32bits(12))<<32 | uint64(math.Float32bits(3)),
		uint64(math.Float32bits(0.75))<<32 | uint64(math.Float32bits(-3)),
	}, full)

	pmax := evalBinary(t, fpBinary((*ir.Emitter).FPVectorPairedMaxLower), x, y)
	require.Equal(t, vec{uint64(math.Float32bits(-1))<<32 | uint64(math.Float32bits(2))}, pmax)

	pmin := evalBinary(t, fpBinary((*ir.Emitter).FPVectorPairedMinLower), x, y)
	require.Equal(t, vec{uint64(math.Float32bits(-2))<<32 | uint64(math.Float32bits(1))}, pmin)
}

func TestEval_fusedMultiplyAdd(t *testing.T) {
	b := ir.NewBlock(0)
	e := ir.NewEmitter(b)
	d := e.GetVector(a32.D(0))
	n := e.GetVector(a32.D(1))
	m := e.GetVector(a32.D(2))
	e.SetVector(a32.D(0), e.FPVectorMulAdd(32, d, n, m, false))

	var s State
	s.D[0] = uint64(math.Float32bits(1))<<32 | uint64(math.Float32bits(10))
	s.D[1] = uint64(math.Float32bits(2))<<32 | uint64(math.Float32bits(3))
	s.D[2] = uint64(math.Float32bits(float32(math.Inf(1))))<<32 | uint64(math.Float32bits(-4))
	Eval(b, &s)
	require.Equal(t, uint64(math.Float32bits(float32(math.Inf(1))))<<32|uint64(math.Float32bits(-2)), s.D[0])
}

func TestEval_fusedMultiplyAddRoundsOnce(t *testing.T) {
	b := ir.NewBlock(0)
	e := ir.NewEmitter(b)
	e.SetVector(a32.Q(0), e.FPVectorMulAdd(32, e.GetVector(a32.Q(0)), e.GetVector(a32.Q(1)), e.GetVector(a32.Q(2)), false))

	var s State
	s.SetQ(0, 0x3f80_0001, 0)
	s.SetQ(1, 0x3980_0001, 0)
	s.SetQ(2, 0x397f_fffe, 0)
	Eval(b, &s)
	lo, hi := s.Q(0)
	require.Equal(t, uint64(0x3f80_0001), lo)
	require.Zero(t, hi)
}

func TestEval_exception(t *testing.T) {
	b := ir.NewBlock(0)
	e := ir.NewEmitter(b)
	e.SetVector(a32.D(3), e.VectorNot(e.ZeroVector()))
	e.ExceptionRaised(0x8000, a32.ExceptionUndefinedInstruction)
	// Never reached.
	e.SetVector(a32.D(4), e.VectorNot(e.ZeroVector()))
	b.SetTerminal(ir.TerminalReturnToDispatch{})

	var s State
	exit := Eval(b, &s)
	require.Equal(t, Exit{Raised: true, PC: 0x8000, Exception: a32.ExceptionUndefinedInstruction}, exit)
	require.Equal(t, uint64(math.MaxUint64), s.D[3])
	require.Equal(t, uint64(0), s.D[4])
}

func TestEval_doublewordWrite(t *testing.T) {
	b := ir.NewBlock(0)
	e := ir.NewEmitter(b)
	e.SetVector(a32.D(1), e.VectorNot(e.GetVector(a32.D(0))))

	s := State{}
	s.D[2] = 0x1234
	Eval(b, &s)
	require.Equal(t, uint64(math.MaxUint64), s.D[1])
	require.Equal(t, uint64(0x1234), s.D[2])
}
