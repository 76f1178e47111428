// Package interpreter evaluates IR blocks against a guest register file. It
// is the reference semantics of every opcode and is used to check the
// translator.
package interpreter

import (
	"fmt"

	"github.com/a32ir/a32ir/internal/a32"
	"github.com/a32ir/a32ir/internal/ir"
)

// State is the ASIMD register file. Q registers are pairs of D registers:
// Qn is D(2n) in its low half and D(2n+1) in its high half.
type State struct {
	D [32]uint64
}

// Q returns the low and high halves of quadword register n.
func (s *State) Q(n int) (lo, hi uint64) {
	return s.D[2*n], s.D[2*n+1]
}

// SetQ sets quadword register n.
func (s *State) SetQ(n int, lo, hi uint64) {
	s.D[2*n], s.D[2*n+1] = lo, hi
}

// Exit describes how evaluation of a block ended.
type Exit struct {
	// Raised is true when an A32ExceptionRaised stopped the block.
	Raised    bool
	PC        uint32
	Exception a32.Exception
	// Terminal is the terminal of the block, unset when Raised.
	Terminal ir.Terminal
}

// vec is a 128-bit value, low doubleword first.
type vec [2]uint64

// Eval runs b against s. The instructions are evaluated in emission order
// until the end of the block or the first raised exception.
func Eval(b *ir.Block, s *State) Exit {
	values := make([]vec, b.Len())
	for i := 0; i < b.Len(); i++ {
		instr := b.Instruction(i)
		arg := func(n int) vec { return values[instr.Arg(n).ID()] }

		var result vec
		switch op := instr.Opcode(); op {
		case ir.OpcodeA32GetVector:
			result = getVector(s, instr.ExtReg())
		case ir.OpcodeA32SetVector:
			setVector(s, instr.ExtReg(), arg(0))
		case ir.OpcodeA32ExceptionRaised:
			pc, exception := instr.ExceptionData()
			return Exit{Raised: true, PC: pc, Exception: exception}
		case ir.OpcodeZeroVector:
		case ir.OpcodeVectorAnd:
			x, y := arg(0), arg(1)
			result = vec{x[0] & y[0], x[1] & y[1]}
		case ir.OpcodeVectorOr:
			x, y := arg(0), arg(1)
			result = vec{x[0] | y[0], x[1] | y[1]}
		case ir.OpcodeVectorEor:
			x, y := arg(0), arg(1)
			result = vec{x[0] ^ y[0], x[1] ^ y[1]}
		case ir.OpcodeVectorNot:
			x := arg(0)
			result = vec{^x[0], ^x[1]}
		case ir.OpcodeVectorPolynomialMultiply:
			result = lanewise(8, arg(0), arg(1), polynomialMultiply8)
		case ir.OpcodeVectorPairedAddLower,
			ir.OpcodeVectorPairedMaxSignedLower, ir.OpcodeVectorPairedMaxUnsignedLower,
			ir.OpcodeVectorPairedMinSignedLower, ir.OpcodeVectorPairedMinUnsignedLower:
			result = pairedLower(instr.ESize(), arg(0), arg(1), integerOps[op])
		case ir.OpcodeFPVectorMulAdd:
			result = fpMulAdd(instr.ESize(), arg(0), arg(1), arg(2))
		case ir.OpcodeFPVectorNeg:
			result = fpSignOp(instr.ESize(), arg(0), false)
		case ir.OpcodeFPVectorAbs:
			result = fpSignOp(instr.ESize(), arg(0), true)
		case ir.OpcodeFPVectorPairedAdd:
			result = fpPaired(instr.ESize(), arg(0), arg(1), ir.OpcodeFPVectorAdd, false)
		case ir.OpcodeFPVectorPairedAddLower:
			result = fpPaired(instr.ESize(), arg(0), arg(1), ir.OpcodeFPVectorAdd, true)
		case ir.OpcodeFPVectorPairedMaxLower:
			result = fpPaired(instr.ESize(), arg(0), arg(1), ir.OpcodeFPVectorMax, true)
		case ir.OpcodeFPVectorPairedMinLower:
			result = fpPaired(instr.ESize(), arg(0), arg(1), ir.OpcodeFPVectorMin, true)
		default:
			if fn, ok := integerOps[op]; ok {
				result = lanewise(instr.ESize(), arg(0), arg(1), fn)
			} else if _, ok := fpOps[op]; ok {
				result = fpLanewise(instr.ESize(), arg(0), arg(1), op)
			} else {
				panic(fmt.Sprintf("BUG: unsupported opcode %s", op))
			}
		}
		values[i] = result
	}
	return Exit{Terminal: b.Terminal()}
}

func getVector(s *State, reg a32.ExtReg) vec {
	switch {
	case reg.IsDouble():
		return vec{s.D[reg.Index()]}
	case reg.IsQuad():
		lo, hi := s.Q(int(reg.Index()))
		return vec{lo, hi}
	}
	panic("BUG: GetVector of " + reg.String())
}

func setVector(s *State, reg a32.ExtReg, v vec) {
	switch {
	case reg.IsDouble():
		s.D[reg.Index()] = v[0]
	case reg.IsQuad():
		s.SetQ(int(reg.Index()), v[0], v[1])
	default:
		panic("BUG: SetVector of " + reg.String())
	}
}

func lanes(esize int) int {
	return 128 / esize
}

func laneMask(esize int) uint64 {
	if esize == 64 {
		return ^uint64(0)
	}
	return 1<<esize - 1
}

// lane returns the i-th esize-bit lane of v, zero extended.
func (v vec) lane(esize, i int) uint64 {
	bit := i * esize
	return (v[bit/64] >> (bit % 64)) & laneMask(esize)
}

func (v *vec) setLane(esize, i int, x uint64) {
	bit := i * esize
	mask := laneMask(esize) << (bit % 64)
	v[bit/64] = v[bit/64]&^mask | (x<<(bit%64))&mask
}

func lanewise(esize int, x, y vec, fn func(esize int, a, b uint64) uint64) (ret vec) {
	for i := 0; i < lanes(esize); i++ {
		ret.setLane(esize, i, fn(esize, x.lane(esize, i), y.lane(esize, i)))
	}
	return
}

// pairedLower combines adjacent lanes of the low doubleword of x followed by
// the low doubleword of y. The high doubleword of the result is zero.
func pairedLower(esize int, x, y vec, fn func(esize int, a, b uint64) uint64) (ret vec) {
	half := 64 / esize
	src := make([]uint64, 0, 2*half)
	for i := 0; i < half; i++ {
		src = append(src, x.lane(esize, i))
	}
	for i := 0; i < half; i++ {
		src = append(src, y.lane(esize, i))
	}
	for i := 0; i < half; i++ {
		ret.setLane(esize, i, fn(esize, src[2*i], src[2*i+1]))
	}
	return
}
