package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	doMain(os.Stdout, os.Stderr, os.Exit)
}

// doMain is separated out for the purpose of unit testing.
func doMain(stdOut, stdErr io.Writer, exit func(code int)) {
	root := newRootCommand(stdOut, stdErr)
	root.SetArgs(os.Args[1:])
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stdErr, "error: %v\n", err)
		exit(1)
	}
	exit(0)
}
