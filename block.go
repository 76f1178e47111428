package a32ir

import (
	"github.com/a32ir/a32ir/internal/a32"
	"github.com/a32ir/a32ir/internal/interpreter"
	"github.com/a32ir/a32ir/internal/ir"
)

// Registers is the guest ASIMD register file used by Block.Eval.
type Registers = interpreter.State

// Exit tells how Block.Eval ended.
type Exit = interpreter.Exit

// Block is a translated guest block.
type Block struct {
	b *ir.Block
}

// Location returns where the block starts.
func (b *Block) Location() LocationDescriptor {
	return a32.LocationDescriptorFromHash(uint64(b.b.Location()))
}

// Len returns the number of IR instructions in the block.
func (b *Block) Len() int {
	return b.b.Len()
}

// CycleCount returns the number of guest instructions the block stands for,
// including a rejected one.
func (b *Block) CycleCount() uint64 {
	return b.b.CycleCount()
}

// Terminal returns how control leaves the block, e.g. "ReturnToDispatch".
func (b *Block) Terminal() string {
	return b.b.Terminal().String()
}

// Fingerprint returns a hash of the IR instruction stream. Blocks with equal
// streams have equal fingerprints.
func (b *Block) Fingerprint() uint64 {
	return b.b.Fingerprint()
}

// String returns the IR of the block as text.
func (b *Block) String() string {
	return b.b.Format()
}

// Eval runs the block against regs with the reference interpreter.
func (b *Block) Eval(regs *Registers) Exit {
	return interpreter.Eval(b.b, regs)
}
