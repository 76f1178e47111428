// Package irapi holds the small pieces shared by the IR builder, the A32
// frontend and the interpreter.
package irapi

// These consts are used by the IR implementation. Keeping them in one place
// makes it quick to turn debugging output on and off.

// ----- Output prints -----
// These consts must be disabled by default. Enable them only when debugging.

const (
	// PrintIR prints each translated block to stdout.
	PrintIR = false
	// PrintRejectedEncodings prints every word the frontend rejects.
	PrintRejectedEncodings = false
)

// ----- Validations -----
// These consts must be enabled by default.

const (
	// IRValidationEnabled enables the type checks done on each emitted instruction.
	IRValidationEnabled = true
)
