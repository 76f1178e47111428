package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a32ir/a32ir/internal/version"
)

func (c *cli) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of a32ir",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintln(c.stdOut, version.GetVersion())
		},
	}
}
