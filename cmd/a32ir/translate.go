package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/a32ir/a32ir"
	"github.com/a32ir/a32ir/internal/stats"
)

type translateParams struct {
	pc                  uint32
	thumb               bool
	maxInstructions     int
	defineUnpredictable bool
	stats               bool
}

func (p *translateParams) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Uint32Var(&p.pc, "pc", 0, "guest address of the first word")
	flags.BoolVar(&p.thumb, "thumb", false, "translate in Thumb state")
	flags.IntVar(&p.maxInstructions, "max-instructions", 32, "maximum guest instructions per block")
	flags.BoolVar(&p.defineUnpredictable, "define-unpredictable", false, "give UNPREDICTABLE encodings a fixed behaviour")
	flags.BoolVar(&p.stats, "stats", false, "print translation statistics")
}

func (c *cli) newTranslateCommand() *cobra.Command {
	var p translateParams
	cmd := &cobra.Command{
		Use:   "translate <word>...",
		Short: "Translate guest words into an IR block and print it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := parseWords(args)
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			b, err := c.translate(cmd.Context(), &p, words, reg)
			if err != nil {
				return err
			}
			fmt.Fprint(c.stdOut, b)
			fmt.Fprintf(c.stdOut, "fingerprint %016x\n", b.Fingerprint())
			if p.stats {
				return stats.WriteSnapshot(c.stdOut, reg)
			}
			return nil
		},
	}
	p.addFlags(cmd)
	return cmd
}

// translate translates words placed at p.pc. The block ends at the last word
// at the latest.
func (c *cli) translate(ctx context.Context, p *translateParams, words []uint32, reg prometheus.Registerer) (*a32ir.Block, error) {
	maxInstructions := p.maxInstructions
	if maxInstructions > len(words) {
		maxInstructions = len(words)
	}
	config := a32ir.NewTranslatorConfig().
		WithDefineUnpredictableBehaviour(p.defineUnpredictable).
		WithMaxInstructionsPerBlock(maxInstructions).
		WithLogger(c.logger).
		WithMetrics(reg)
	tr, err := a32ir.NewTranslator(config)
	if err != nil {
		return nil, err
	}

	base := p.pc &^ 3
	if p.thumb {
		base = p.pc &^ 1
	}
	code := a32ir.CodeReaderFunc(func(vaddr uint32) (uint32, error) {
		i := int(vaddr-base) / 4
		if vaddr < base || i >= len(words) {
			return 0, fmt.Errorf("no guest code at %#x", vaddr)
		}
		return words[i], nil
	})
	c.logger.WithFields(map[string]any{"pc": fmt.Sprintf("%#x", p.pc), "words": len(words)}).
		Debug("Translating block.")
	if ctx == nil {
		ctx = context.Background()
	}
	return tr.TranslateBlock(ctx, a32ir.NewLocationDescriptor(p.pc, p.thumb, false, 0), code)
}
