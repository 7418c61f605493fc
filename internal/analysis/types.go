package analysis

import (
	"fmt"
	"strings"

	"n64view/internal/disasm"
)

// CallFinding is a call or jump out of the swept code.
type CallFinding struct {
	CallVA    uint32         // address of the jal/jalr/j instruction
	TargetVA  uint32         // destination, when known
	HasTarget bool           // false for register-indirect calls
	Kind      string         // "call", "tail" or "indirect"
	Register  string         // target register of an indirect call
	Target    string         // symbol name, or a generated func_ label
	Comment   string         // human-readable summary
	Metadata  map[string]any // detector-specific metadata
}

// AnnotatedInst is a decoded instruction with listing annotations.
type AnnotatedInst struct {
	disasm.Inst
	Label       string   // set when the address is a branch or call target
	Annotations []string // comments to display
}

// Mnemonic returns the instruction mnemonic.
func (a AnnotatedInst) Mnemonic() string {
	if len(a.Tokens) == 0 {
		return a.Op
	}
	return a.Tokens[0].Text
}

// OperandText returns the operand tokens after the mnemonic padding.
func (a AnnotatedInst) OperandText() string {
	if len(a.Tokens) < 3 {
		return ""
	}
	return a.Tokens[2:].String()
}

// String formats the instruction with padding at column 50 for
// annotations. Labels go on their own line. The result is plain text;
// colouring happens after formatting.
func (a AnnotatedInst) String() string {
	var b strings.Builder
	if a.Label != "" {
		fmt.Fprintf(&b, "%s:\n", a.Label)
	}
	base := fmt.Sprintf("%08x  %-7s %-30s", a.VA, a.Mnemonic(), a.OperandText())
	if len(a.Annotations) > 0 {
		fmt.Fprintf(&b, "%s ; %s", base, strings.Join(a.Annotations, ", "))
	} else {
		b.WriteString(strings.TrimRight(base, " "))
	}
	return b.String()
}

// AnnotatorResult contains both annotated listing and call findings
type AnnotatorResult struct {
	Listing  []AnnotatedInst
	Findings []CallFinding
}

// Text renders the listing one instruction per line.
func (r *AnnotatorResult) Text() string {
	lines := make([]string, 0, len(r.Listing))
	for _, ai := range r.Listing {
		lines = append(lines, ai.String())
	}
	return strings.Join(lines, "\n")
}
