package ir

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/a32ir/a32ir/internal/irapi"
)

// Block is the arena holding the IR of one translated guest block. Nodes are
// append-only: an emitted Instruction is never modified or removed, and every
// Value handle into the Block stays valid until Reset.
//
// A Block is not safe for concurrent use.
type Block struct {
	location     LocationDescriptor
	endLocation  LocationDescriptor
	instructions irapi.Arena[Instruction]
	terminal     Terminal
	cycleCount   uint64
}

// NewBlock returns an empty Block for the guest code at location.
func NewBlock(location LocationDescriptor) *Block {
	b := &Block{}
	b.Reset(location)
	return b
}

// Reset releases every instruction of b and makes it ready for the block at location.
func (b *Block) Reset(location LocationDescriptor) {
	b.instructions.Reset()
	b.location = location
	b.endLocation = location
	b.terminal = TerminalInvalid{}
	b.cycleCount = 0
}

// Location returns the location of the first guest instruction.
func (b *Block) Location() LocationDescriptor {
	return b.location
}

// EndLocation returns the location just past the last translated guest instruction.
func (b *Block) EndLocation() LocationDescriptor {
	return b.endLocation
}

// SetEndLocation sets the value returned by EndLocation.
func (b *Block) SetEndLocation(l LocationDescriptor) {
	b.endLocation = l
}

// CycleCount returns the number of guest instructions this block accounts for.
func (b *Block) CycleCount() uint64 {
	return b.cycleCount
}

// IncrementCycleCount adds n to CycleCount.
func (b *Block) IncrementCycleCount(n uint64) {
	b.cycleCount += n
}

// Terminal returns the terminal of the block.
func (b *Block) Terminal() Terminal {
	return b.terminal
}

// HasTerminal returns true once SetTerminal has been called.
func (b *Block) HasTerminal() bool {
	_, invalid := b.terminal.(TerminalInvalid)
	return !invalid
}

// SetTerminal sets the terminal. It panics if one is already set.
func (b *Block) SetTerminal(t Terminal) {
	if b.HasTerminal() {
		panic("BUG: terminal already set")
	}
	b.terminal = t
}

// Len returns the number of instructions in the block.
func (b *Block) Len() int {
	return b.instructions.Len()
}

// Instruction returns the i-th instruction in emission order.
func (b *Block) Instruction(i int) *Instruction {
	return b.instructions.At(i)
}

// InstructionOf returns the instruction defining v.
func (b *Block) InstructionOf(v Value) *Instruction {
	return b.instructions.At(int(v.ID()))
}

// allocateInstruction appends a zeroed Instruction of op and returns it with its result handle.
func (b *Block) allocateInstruction(op Opcode) *Instruction {
	id, instr := b.instructions.Append()
	instr.opcode = op
	instr.args = [3]Value{ValueInvalid, ValueInvalid, ValueInvalid}
	instr.rValue = newValue(ValueID(id), op.ReturnType())
	return instr
}

// Format returns the debugging string of the block.
func (b *Block) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "block%s cycles=%d\n", b.location, b.cycleCount)
	for _, instr := range b.instructions.All() {
		sb.WriteByte('\t')
		sb.WriteString(instr.Format())
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "\t-> %s\n", b.terminal)
	return sb.String()
}

// AppendEncoding appends the canonical binary encoding of the instruction
// stream to dst. Two blocks with identical instruction streams have identical
// encodings.
func (b *Block) AppendEncoding(dst []byte) []byte {
	for _, instr := range b.instructions.All() {
		dst = binary.LittleEndian.AppendUint32(dst, uint32(instr.opcode))
		dst = append(dst, instr.esize)
		if instr.fpcrControlled {
			dst = append(dst, 1)
		} else {
			dst = append(dst, 0)
		}
		dst = binary.LittleEndian.AppendUint64(dst, instr.u64)
		for _, arg := range instr.Args() {
			dst = binary.LittleEndian.AppendUint32(dst, uint32(arg.ID()))
		}
	}
	return dst
}

// Fingerprint returns the xxhash64 of AppendEncoding.
func (b *Block) Fingerprint() uint64 {
	return xxhash.Sum64(b.AppendEncoding(nil))
}
