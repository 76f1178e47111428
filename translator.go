// Package a32ir translates guest A32 code of the ASIMD "three registers of the
// same length" class into an architecture-independent IR, and evaluates that
// IR with a bit-exact reference interpreter.
//
// A Translator is not safe for concurrent use. Create one per goroutine:
// independent blocks translate independently.
package a32ir

import (
	"context"
	"errors"
	"fmt"

	"github.com/a32ir/a32ir/internal/a32"
	"github.com/a32ir/a32ir/internal/a32/translate"
	"github.com/a32ir/a32ir/internal/stats"
)

var (
	// ErrCodeRead is wrapped by errors of TranslateBlock caused by the CodeReader.
	ErrCodeRead = translate.ErrCodeRead
	// ErrInvalidConfig is wrapped by errors of NewTranslator.
	ErrInvalidConfig = errors.New("invalid translator config")
)

// LocationDescriptor identifies where a block starts: the PC and the
// execution state that changes decoding.
type LocationDescriptor = a32.LocationDescriptor

// NewLocationDescriptor returns a LocationDescriptor. Only the FPSCR mode
// bits of fpscr are kept.
func NewLocationDescriptor(pc uint32, thumb, bigEndian bool, fpscr uint32) LocationDescriptor {
	return a32.NewLocationDescriptor(pc, thumb, bigEndian, fpscr)
}

// CodeReader fetches guest instruction words.
type CodeReader = translate.CodeReader

// CodeReaderFunc adapts a function to CodeReader.
type CodeReaderFunc = translate.CodeReaderFunc

// Exception is raised by the IR of a rejected guest instruction.
type Exception = a32.Exception

const (
	ExceptionUndefinedInstruction     = a32.ExceptionUndefinedInstruction
	ExceptionUnpredictableInstruction = a32.ExceptionUnpredictableInstruction
)

// Translator translates guest code into Blocks.
type Translator struct {
	t     *translate.Translator
	block Block
}

// NewTranslator returns a Translator configured by config. A nil config is
// the same as NewTranslatorConfig.
func NewTranslator(config TranslatorConfig) (*Translator, error) {
	if config == nil {
		config = NewTranslatorConfig()
	}
	c := config.(*translatorConfig)
	if c.maxInstructionsPerBlock <= 0 {
		return nil, fmt.Errorf("%w: max instructions per block must be positive but was %d",
			ErrInvalidConfig, c.maxInstructionsPerBlock)
	}

	opts := translate.Options{
		DefineUnpredictableBehaviour: c.defineUnpredictableBehaviour,
		MaxInstructionsPerBlock:      c.maxInstructionsPerBlock,
		Logger:                       c.logger,
	}
	if c.registerer != nil {
		metrics, err := stats.New(c.registerer)
		if err != nil {
			return nil, fmt.Errorf("%w: registering metrics: %w", ErrInvalidConfig, err)
		}
		opts.Metrics = metrics
	}
	return &Translator{t: translate.NewTranslator(opts)}, nil
}

// TranslateBlock translates the guest code at loc.
//
// Translation ends at the first rejected instruction, whose IR raises an
// Exception, or after the configured number of instructions. The returned
// Block is reused by the next call on t. Errors are only returned for a
// failing CodeReader, wrapping ErrCodeRead, and for a done ctx.
func (t *Translator) TranslateBlock(ctx context.Context, loc LocationDescriptor, code CodeReader) (*Block, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := t.t.TranslateBlock(ctx, loc, code)
	if err != nil {
		return nil, err
	}
	t.block.b = b
	return &t.block, nil
}
