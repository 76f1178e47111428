// Package moremath holds the floating point rules of the ARM "standard
// FPSCR value" used by ASIMD: flush-to-zero, default NaN and
// round-to-nearest-even.
package moremath

import (
	"math"
	"math/big"
)

const (
	// DefaultNaN32 is the quiet NaN produced by every single precision
	// operation whose result is a NaN.
	DefaultNaN32 uint32 = 0x7fc0_0000
	// DefaultNaN64 is the double precision DefaultNaN32.
	DefaultNaN64 uint64 = 0x7ff8_0000_0000_0000
)

// FlushToZero32 replaces a single precision denormal with a zero of the same sign.
func FlushToZero32(bits uint32) uint32 {
	if bits&0x7f80_0000 == 0 {
		return bits & 0x8000_0000
	}
	return bits
}

// FlushToZero64 replaces a double precision denormal with a zero of the same sign.
func FlushToZero64(bits uint64) uint64 {
	if bits&0x7ff0_0000_0000_0000 == 0 {
		return bits & 0x8000_0000_0000_0000
	}
	return bits
}

// StandardMax is VMAX: a NaN operand gives NaN and +0 is greater than -0.
func StandardMax(x, y float64) float64 {
	switch {
	case math.IsNaN(x) || math.IsNaN(y):
		return math.NaN()
	case x == 0 && x == y:
		if math.Signbit(x) {
			return y
		}
		return x
	case x > y:
		return x
	}
	return y
}

// StandardMin is VMIN: a NaN operand gives NaN and -0 is less than +0.
func StandardMin(x, y float64) float64 {
	switch {
	case math.IsNaN(x) || math.IsNaN(y):
		return math.NaN()
	case x == 0 && x == y:
		if math.Signbit(x) {
			return x
		}
		return y
	case x < y:
		return x
	}
	return y
}

// Float is a single or double precision value.
type Float interface {
	float32 | float64
}

// MulAdd returns addend + x*y rounded once. A result whose unrounded
// magnitude is below the smallest normal is flushed to a zero of the same
// sign.
func MulAdd[F Float](addend, x, y F) F {
	if r, ok := formatOf[F]().fused(float64(addend), float64(x), float64(y), 0); ok {
		return F(r)
	}
	return F(math.FMA(float64(x), float64(y), float64(addend)))
}

// Add returns x + y under MulAdd rounding.
func Add[F Float](x, y F) F {
	return MulAdd(x, y, 1)
}

// Sub returns x - y under MulAdd rounding.
func Sub[F Float](x, y F) F {
	return MulAdd(x, -y, 1)
}

// Mul returns x * y under MulAdd rounding.
func Mul[F Float](x, y F) F {
	// -0 keeps the sign of a zero product.
	return MulAdd(F(math.Copysign(0, -1)), x, y)
}

// RecipStep returns 2 - x*y with a single rounding. Infinity times zero
// gives 2 whatever the signs.
func RecipStep[F Float](x, y F) F {
	if isInfTimesZero(float64(x), float64(y)) {
		return 2
	}
	return MulAdd(2, -x, y)
}

// RSqrtStep returns (3 - x*y) / 2 with a single rounding. Infinity times
// zero gives 1.5 whatever the signs.
func RSqrtStep[F Float](x, y F) F {
	if isInfTimesZero(float64(x), float64(y)) {
		return 1.5
	}
	if r, ok := formatOf[F]().fused(1.5, -float64(x), float64(y), -1); ok {
		return F(r)
	}
	return F(math.FMA(-float64(x), float64(y), 3) / 2)
}

func isInfTimesZero(x, y float64) bool {
	return (math.IsInf(x, 0) && y == 0) || (x == 0 && math.IsInf(y, 0))
}

type format struct {
	prec      uint
	minNormal *big.Float
	maxFinite float64
}

var (
	single = format{prec: 24, minNormal: big.NewFloat(0x1p-126), maxFinite: math.MaxFloat32}
	double = format{prec: 53, minNormal: big.NewFloat(0x1p-1022), maxFinite: math.MaxFloat64}
)

func formatOf[F Float]() format {
	var z F
	if _, ok := any(z).(float32); ok {
		return single
	}
	return double
}

// fused computes addend + x*y*2^scale exactly and rounds it to f. ok is
// false when an operand is not finite or the exact result is zero, where
// float64 arithmetic already gives the IEEE result.
func (f format) fused(addend, x, y float64, scale int) (r float64, ok bool) {
	for _, v := range [...]float64{addend, x, y} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, false
		}
	}
	a := big.NewFloat(addend)
	p := new(big.Float).SetPrec(106).Mul(big.NewFloat(x), big.NewFloat(y))
	p.SetMantExp(p, scale)

	// Truncation keeps an exact value below the smallest normal below it.
	t := new(big.Float).SetPrec(f.prec).SetMode(big.ToZero).Add(a, p)
	switch {
	case t.Sign() == 0:
		return 0, false
	case new(big.Float).Abs(t).Cmp(f.minNormal) < 0:
		if t.Signbit() {
			return math.Copysign(0, -1), true
		}
		return 0, true
	}
	r, _ = new(big.Float).SetPrec(f.prec).Add(a, p).Float64()
	if math.Abs(r) > f.maxFinite {
		r = math.Inf(int(t.Sign()))
	}
	return r, true
}
