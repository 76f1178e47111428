package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/a32ir/a32ir"
)

func (c *cli) newEvalCommand() *cobra.Command {
	var p translateParams
	var regsFile string
	cmd := &cobra.Command{
		Use:   "eval <word>...",
		Short: "Translate guest words and run the block with the reference interpreter",
		Long: `Translate guest words and run the block with the reference interpreter.

The initial registers are read from the YAML file given by --regs, e.g.

  d1: 0x0102030405060708
  q2: 0x000000000000000a_0000000000000001

and the registers left non-zero are printed as YAML.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := parseWords(args)
			if err != nil {
				return err
			}
			var regs a32ir.Registers
			if regsFile != "" {
				raw, err := os.ReadFile(regsFile)
				if err != nil {
					return fmt.Errorf("reading registers: %w", err)
				}
				if regs, err = unmarshalRegisters(raw); err != nil {
					return err
				}
			}
			b, err := c.translate(cmd.Context(), &p, words, nil)
			if err != nil {
				return err
			}
			out, err := marshalResult(b.Eval(&regs), &regs)
			if err != nil {
				return err
			}
			_, err = c.stdOut.Write(out)
			return err
		},
	}
	p.addFlags(cmd)
	cmd.Flags().StringVar(&regsFile, "regs", "", "YAML file with the initial registers")
	return cmd
}
