package ir

import (
	"fmt"
	"strings"

	"github.com/a32ir/a32ir/internal/a32"
)

// Instruction is a node in a Block. Since Go doesn't have union type, we use
// this flattened type for all instructions, and therefore u64 has different
// meaning depending on the Opcode:
//
//   - OpcodeA32GetVector, OpcodeA32SetVector: the a32.ExtReg accessed.
//   - OpcodeA32ExceptionRaised: the PC in the low 32 bits, the a32.Exception above it.
type Instruction struct {
	opcode         Opcode
	args           [3]Value
	esize          byte
	fpcrControlled bool
	u64            uint64
	rValue         Value
}

// Opcode returns the opcode of this instruction.
func (i *Instruction) Opcode() Opcode {
	return i.opcode
}

// Args returns the arguments to this instruction. The returned slice must not be modified.
func (i *Instruction) Args() []Value {
	return i.args[:i.opcode.NumArgs()]
}

// Arg returns the n-th argument to this instruction.
func (i *Instruction) Arg(n int) Value {
	if n >= i.opcode.NumArgs() {
		panic(fmt.Sprintf("BUG: %s has no argument %d", i.opcode, n))
	}
	return i.args[n]
}

// Return returns the Value produced by this instruction. Instructions of
// TypeVoid still return a handle naming themselves.
func (i *Instruction) Return() Value {
	return i.rValue
}

// ESize returns the element size in bits of a lane-sized instruction.
func (i *Instruction) ESize() int {
	return int(i.esize)
}

// FPCRControlled returns false when the instruction uses the ASIMD standard
// FPSCR value: flush-to-zero, default NaN and round-to-nearest.
func (i *Instruction) FPCRControlled() bool {
	return i.fpcrControlled
}

// ExtReg returns the register accessed by OpcodeA32GetVector and OpcodeA32SetVector.
func (i *Instruction) ExtReg() a32.ExtReg {
	switch i.opcode {
	case OpcodeA32GetVector, OpcodeA32SetVector:
		return a32.ExtReg(i.u64)
	}
	panic("BUG: ExtReg called on " + i.opcode.String())
}

// ExceptionData returns the operands of OpcodeA32ExceptionRaised.
func (i *Instruction) ExceptionData() (pc uint32, exception a32.Exception) {
	if i.opcode != OpcodeA32ExceptionRaised {
		panic("BUG: ExceptionData called on " + i.opcode.String())
	}
	return uint32(i.u64), a32.Exception(i.u64 >> 32)
}

// HasSideEffects returns true if this instruction has side effects.
func (i *Instruction) HasSideEffects() bool {
	return i.opcode.HasSideEffects()
}

// Format returns a string representation of this instruction.
// For debugging purposes only.
func (i *Instruction) Format() string {
	var sb strings.Builder
	if i.opcode.ReturnType() != TypeVoid {
		sb.WriteString(i.rValue.formatWithType())
		sb.WriteString(" = ")
	}
	sb.WriteString(i.opcode.String())
	if i.opcode.LaneSized() {
		fmt.Fprintf(&sb, ".%d", i.esize)
	}

	var operands []string
	switch i.opcode {
	case OpcodeA32GetVector, OpcodeA32SetVector:
		operands = append(operands, i.ExtReg().String())
	case OpcodeA32ExceptionRaised:
		pc, e := i.ExceptionData()
		operands = append(operands, fmt.Sprintf("%#x", pc), e.String())
	}
	for _, arg := range i.Args() {
		operands = append(operands, arg.String())
	}
	if len(operands) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(strings.Join(operands, ", "))
	}
	if i.fpcrControlled {
		sb.WriteString(" (fpcr)")
	}
	return sb.String()
}
