package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a32ir/a32ir/internal/a32/decoder"
	"github.com/a32ir/a32ir/internal/disasm"
)

func (c *cli) newDecodeCommand() *cobra.Command {
	var thumb bool
	cmd := &cobra.Command{
		Use:   "decode <word>...",
		Short: "Print the decode table entry and disassembly of each word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			words, err := parseWords(args)
			if err != nil {
				return err
			}
			for _, w := range words {
				fmt.Fprintln(c.stdOut, decodeLine(w, thumb))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&thumb, "thumb", false, "words are 32-bit Thumb encodings")
	return cmd
}

func decodeLine(word uint32, thumb bool) string {
	arm := word
	if thumb {
		var ok bool
		if arm, ok = decoder.ThumbToARM(word); !ok {
			return fmt.Sprintf("%#08x\t-\t.inst.w %#08x", word, word)
		}
	}
	tag, _, ok := decoder.DecodeASIMD(arm)
	name := "-"
	if ok {
		name = tag.String()
	}
	return fmt.Sprintf("%#08x\t%s\t%s", word, name, disasm.Word(arm))
}
