// Package arch turns the text of a decoded MIPS instruction into a typed
// token stream for display and into control-flow edges for analysis.
// Every call is independent; an Arch may be shared between goroutines.
package arch

import (
	"encoding/binary"
	"errors"

	"n64view/internal/disasm"
)

// InstructionLength is the fixed size of every instruction.
const InstructionLength = 4

// ErrShortRead is returned when fewer than four bytes are supplied.
var ErrShortRead = errors.New("instruction needs 4 bytes")

// Decoder renders a big-endian machine word as disassembly text.
type Decoder interface {
	Decode(word, addr uint32) string
}

// Arch binds a Decoder to a diagnostic sink.
type Arch struct {
	dec  Decoder
	diag Diagnostics
}

// New returns an Arch decoding with dec and reporting to diag. A nil
// diag discards warnings.
func New(dec Decoder, diag Diagnostics) *Arch {
	if diag == nil {
		diag = Discard
	}
	return &Arch{dec: dec, diag: diag}
}

// Length reports the instruction length, always 4.
func (a *Arch) Length() int { return InstructionLength }

func word(data []byte) (uint32, error) {
	if len(data) < InstructionLength {
		return 0, ErrShortRead
	}
	return binary.BigEndian.Uint32(data), nil
}

// InstructionText returns the token stream for the instruction in data
// and its length. The first token is always the mnemonic.
func (a *Arch) InstructionText(data []byte, addr uint32) (disasm.TokenStream, int, error) {
	w, err := word(data)
	if err != nil {
		return nil, 0, err
	}
	text := a.dec.Decode(w, addr)
	return a.tokens(text, addr), InstructionLength, nil
}

func (a *Arch) tokens(text string, addr uint32) disasm.TokenStream {
	spans := Tokenize(text)
	ts := make(disasm.TokenStream, 0, len(spans))
	ts = append(ts, disasm.Token{Kind: disasm.Mnemonic, Text: spans[0]})
	for _, span := range spans[1:] {
		kind, ok := Classify(span, spans[0])
		if !ok {
			a.diag.Warn(UnrecognizedTokenWarning{Text: span, Instruction: text, Address: addr})
		}
		ts = append(ts, disasm.Token{Kind: kind, Text: span})
	}
	return ts
}

// InstructionInfo returns the length and control-flow edges of the
// instruction in data.
func (a *Arch) InstructionInfo(data []byte, addr uint32) (disasm.Info, error) {
	w, err := word(data)
	if err != nil {
		return disasm.Info{}, err
	}
	text := a.dec.Decode(w, addr)
	return a.info(Tokenize(text), text, addr, false), nil
}

// info resolves the edges of spans. When classified is set the operand
// has already been through Classify, and an unclassifiable operand has
// already been reported.
func (a *Arch) info(spans []string, text string, addr uint32, classified bool) disasm.Info {
	info := disasm.Info{Length: InstructionLength}
	operand := lastOperand(spans)
	edges, err := Resolve(spans[0], operand, addr)
	if err != nil {
		if _, ok := Classify(operand, spans[0]); !classified || ok || operand == "" {
			a.diag.Warn(UnrecognizedTokenWarning{Text: operand, Instruction: text, Address: addr})
		}
		return info
	}
	info.Edges = edges
	return info
}

func lastOperand(spans []string) string {
	for i := len(spans) - 1; i > 0; i-- {
		if !isSeparator(spans[i]) {
			return spans[i]
		}
	}
	return ""
}

// Decode returns the full decoded instruction at addr: text, tokens and
// control-flow facts, decoding the word once.
func (a *Arch) Decode(data []byte, addr uint32) (disasm.Inst, error) {
	w, err := word(data)
	if err != nil {
		return disasm.Inst{}, err
	}
	text := a.dec.Decode(w, addr)
	spans := Tokenize(text)
	inst := disasm.Inst{
		VA:     addr,
		Text:   text,
		Op:     spans[0],
		Tokens: a.tokens(text, addr),
		Info:   a.info(spans, text, addr, true),
	}
	copy(inst.Raw[:], data[:InstructionLength])
	return inst, nil
}
