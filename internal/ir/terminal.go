package ir

import "fmt"

// Terminal describes how control leaves a Block.
type Terminal interface {
	fmt.Stringer
	terminal()
}

// TerminalInvalid is the terminal of a block still under construction.
type TerminalInvalid struct{}

// TerminalReturnToDispatch hands control back to the dispatcher, which
// decides what runs next.
type TerminalReturnToDispatch struct{}

// TerminalLinkBlock continues at Next, which the dispatcher may link
// directly.
type TerminalLinkBlock struct {
	Next LocationDescriptor
}

func (TerminalInvalid) terminal()          {}
func (TerminalReturnToDispatch) terminal() {}
func (TerminalLinkBlock) terminal()        {}

// String implements fmt.Stringer.
func (TerminalInvalid) String() string { return "Invalid" }

// String implements fmt.Stringer.
func (TerminalReturnToDispatch) String() string { return "ReturnToDispatch" }

// String implements fmt.Stringer.
func (t TerminalLinkBlock) String() string { return "LinkBlock" + t.Next.String() }
