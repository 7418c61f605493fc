// Package disasm defines the instruction representation shared by the
// MIPS decoder front end, the analysis layer and the renderers.
package disasm

import "strings"

// TokenKind tags a token with how it should be rendered and interpreted.
type TokenKind int

const (
	Mnemonic TokenKind = iota
	Register
	Integer
	Separator
	CodeRelativeAddress
	Text // fallback for spans no rule recognised
)

func (k TokenKind) String() string {
	switch k {
	case Mnemonic:
		return "mnemonic"
	case Register:
		return "register"
	case Integer:
		return "integer"
	case Separator:
		return "separator"
	case CodeRelativeAddress:
		return "code-relative-address"
	default:
		return "text"
	}
}

// Token is a classified span of the decoder text.
type Token struct {
	Kind TokenKind `json:"kind"`
	Text string    `json:"text"`
}

// TokenStream is the rendered form of one instruction. Element 0 is
// always the mnemonic.
type TokenStream []Token

// String concatenates the token texts.
func (ts TokenStream) String() string {
	var b strings.Builder
	for _, t := range ts {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Operands returns the operand texts with separators removed.
func (ts TokenStream) Operands() []string {
	var ops []string
	for i, t := range ts {
		if i == 0 || t.Kind == Separator {
			continue
		}
		ops = append(ops, t.Text)
	}
	return ops
}

// EdgeKind is the kind of a control-flow edge leaving an instruction.
type EdgeKind int

const (
	Unconditional EdgeKind = iota
	TrueBranch
	FalseBranch
	Indirect
)

func (k EdgeKind) String() string {
	switch k {
	case Unconditional:
		return "unconditional"
	case TrueBranch:
		return "true"
	case FalseBranch:
		return "false"
	default:
		return "indirect"
	}
}

// Edge is a control-flow edge. Indirect edges never carry a target.
type Edge struct {
	Kind      EdgeKind `json:"kind"`
	Target    uint32   `json:"target,omitempty"`
	HasTarget bool     `json:"has_target"`
}

// Info carries the control-flow facts for one instruction.
type Info struct {
	Length int    `json:"length"`
	Edges  []Edge `json:"edges,omitempty"`
}

// Inst is a fully decoded instruction.
type Inst struct {
	VA     uint32      // virtual address of instruction
	Raw    [4]byte     // raw big-endian encoding
	Text   string      // decoder output
	Op     string      // mnemonic
	Tokens TokenStream // classified tokens
	Info   Info        // length and edges
}

// Stream is a linear sequence of instructions.
type Stream []Inst
