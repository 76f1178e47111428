// Package translate turns A32 guest code into IR blocks.
package translate

import (
	"context"
	"errors"
	"fmt"

	"github.com/a32ir/a32ir/internal/a32"
	"github.com/a32ir/a32ir/internal/a32/decoder"
	"github.com/a32ir/a32ir/internal/disasm"
	"github.com/a32ir/a32ir/internal/ir"
	"github.com/a32ir/a32ir/internal/irapi"
	"github.com/a32ir/a32ir/internal/stats"
	"github.com/a32ir/a32ir/logging"
)

// DefaultMaxInstructionsPerBlock is used when Options.MaxInstructionsPerBlock is zero.
const DefaultMaxInstructionsPerBlock = 32

// ErrCodeRead is wrapped by the error returned when the CodeReader fails.
var ErrCodeRead = errors.New("reading guest code")

// CodeReader fetches guest instruction words. In Thumb state the word holds
// the first halfword in its upper 16 bits.
type CodeReader interface {
	ReadCode(vaddr uint32) (uint32, error)
}

// CodeReaderFunc adapts a function to CodeReader.
type CodeReaderFunc func(vaddr uint32) (uint32, error)

// ReadCode implements CodeReader.
func (f CodeReaderFunc) ReadCode(vaddr uint32) (uint32, error) {
	return f(vaddr)
}

// Options configures a Translator.
type Options struct {
	// DefineUnpredictableBehaviour makes the translator pick a fixed
	// behaviour for UNPREDICTABLE encodings instead of raising
	// a32.ExceptionUnpredictableInstruction.
	DefineUnpredictableBehaviour bool
	// MaxInstructionsPerBlock bounds the guest instructions of one block.
	MaxInstructionsPerBlock int
	Logger                  logging.Logger
	Metrics                 *stats.Collectors
}

// Translator emits the IR of guest instructions into its Block.
//
// A Translator is not safe for concurrent use. Use one per goroutine.
type Translator struct {
	opts   Options
	logger logging.Logger
	block  *ir.Block
	ir     *ir.Emitter

	// pc is the address of the instruction being translated.
	pc uint32
	// exception is the kind reported by the last rejection.
	exception a32.Exception
}

// NewTranslator returns a Translator for opts.
func NewTranslator(opts Options) *Translator {
	if opts.MaxInstructionsPerBlock <= 0 {
		opts.MaxInstructionsPerBlock = DefaultMaxInstructionsPerBlock
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	block := ir.NewBlock(0)
	return &Translator{opts: opts, logger: logger, block: block, ir: ir.NewEmitter(block)}
}

// Block returns the Block being emitted into.
func (t *Translator) Block() *ir.Block {
	return t.block
}

// Reset discards the Block contents and starts a new block at loc.
func (t *Translator) Reset(loc a32.LocationDescriptor) {
	t.block.Reset(ir.LocationDescriptor(loc.UniqueHash()))
	t.pc = loc.PC
	t.exception = a32.ExceptionUndefinedInstruction
}

// Exception returns the kind reported by the last rejected instruction.
func (t *Translator) Exception() a32.Exception {
	return t.exception
}

func (t *Translator) undefinedInstruction() bool {
	t.exception = a32.ExceptionUndefinedInstruction
	return false
}

// unpredictableInstruction returns true when the caller should carry on with
// its fixed behaviour.
func (t *Translator) unpredictableInstruction() bool {
	if t.opts.DefineUnpredictableBehaviour {
		return true
	}
	t.exception = a32.ExceptionUnpredictableInstruction
	return false
}

// TranslateWord decodes and translates one guest word at pc. It returns
// false, with nothing emitted, when the word is rejected. Exception then
// tells which exception the word raises.
func (t *Translator) TranslateWord(pc uint32, word uint32, thumb bool) bool {
	t.pc = pc
	if thumb {
		arm, ok := decoder.ThumbToARM(word)
		if !ok {
			return t.undefinedInstruction()
		}
		word = arm
	}
	tag, fields, ok := decoder.DecodeASIMD(word)
	if !ok {
		return t.undefinedInstruction()
	}
	if !t.TranslateASIMD(tag, fields) {
		return false
	}
	t.opts.Metrics.InstructionTranslated(tag.String())
	return true
}

// TranslateBlock translates guest code starting at loc into the Block and
// returns it. The Block is owned by t and is reset by the next call.
//
// Translation stops at the first rejected instruction, which is replaced by
// an A32ExceptionRaised and a ReturnToDispatch terminal, or once
// MaxInstructionsPerBlock instructions were translated, in which case the
// block links to the next instruction. ctx is checked between instructions.
func (t *Translator) TranslateBlock(ctx context.Context, loc a32.LocationDescriptor, code CodeReader) (*ir.Block, error) {
	t.Reset(loc)

	var pcMask uint32 = 3
	if loc.TFlag {
		pcMask = 1
	}
	if loc.PC&pcMask != 0 {
		// Branching to a misaligned address: fetch from the aligned one.
		if !t.unpredictableInstruction() {
			t.raise(loc.PC, 0)
			t.finish()
			return t.block, nil
		}
		loc.PC &^= pcMask
	}

	cur := loc
	for i := 0; i < t.opts.MaxInstructionsPerBlock; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		word, err := code.ReadCode(cur.PC)
		if err != nil {
			return nil, fmt.Errorf("%w at %#x: %w", ErrCodeRead, cur.PC, err)
		}
		t.block.IncrementCycleCount(1)
		if !t.TranslateWord(cur.PC, word, cur.TFlag) {
			t.raise(cur.PC, word)
			t.block.SetEndLocation(ir.LocationDescriptor(cur.UniqueHash()))
			t.finish()
			return t.block, nil
		}
		cur = cur.AdvancePC(4)
	}

	next := ir.LocationDescriptor(cur.UniqueHash())
	t.block.SetEndLocation(next)
	t.block.SetTerminal(ir.TerminalLinkBlock{Next: next})
	t.finish()
	return t.block, nil
}

// raise ends the block with the exception of the last rejection at pc.
func (t *Translator) raise(pc, word uint32) {
	t.ir.ExceptionRaised(pc, t.exception)
	t.block.SetTerminal(ir.TerminalReturnToDispatch{})
	t.opts.Metrics.InstructionRejected(t.exception.String())

	text := disasm.Word(word)
	if irapi.PrintRejectedEncodings {
		fmt.Printf("rejected %#08x at %#x: %s (%s)\n", word, pc, text, t.exception)
	}
	t.logger.WithFields(map[string]any{
		"pc":        fmt.Sprintf("%#x", pc),
		"word":      fmt.Sprintf("%#08x", word),
		"disasm":    text,
		"exception": t.exception.String(),
	}).Debug("Rejected guest instruction.")
}

func (t *Translator) finish() {
	t.opts.Metrics.BlockTranslated(t.block.Len())
	if irapi.PrintIR {
		fmt.Println(t.block.Format())
	}
}
