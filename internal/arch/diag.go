package arch

import "fmt"

// UnrecognizedTokenWarning reports an operand span that matched no
// classification rule, or a control-flow operand that could not be
// parsed. It is never fatal: the span is still emitted as a Text token.
type UnrecognizedTokenWarning struct {
	Text        string // offending span
	Instruction string // decoder text of the owning instruction
	Address     uint32
}

func (w UnrecognizedTokenWarning) Error() string {
	return fmt.Sprintf("unrecognized token %q in %q at 0x%08x", w.Text, w.Instruction, w.Address)
}

// Diagnostics receives non-fatal warnings. Implementations must accept
// calls from concurrent decodes.
type Diagnostics interface {
	Warn(w UnrecognizedTokenWarning)
}

// DiagnosticsFunc adapts a function to Diagnostics.
type DiagnosticsFunc func(w UnrecognizedTokenWarning)

// Warn calls f(w).
func (f DiagnosticsFunc) Warn(w UnrecognizedTokenWarning) { f(w) }

// Discard drops every warning.
var Discard Diagnostics = DiagnosticsFunc(func(UnrecognizedTokenWarning) {})
