// Package mips decodes VR4300 (MIPS III) machine words into disassembly
// text. The text follows a fixed convention: the mnemonic padded to a
// fixed column, then ", " separated operands with base addressing
// rendered as offset(register). PC-relative branch displacements are
// rendered as ". + 4 + (disp << 2)" and jump targets as func_XXXXXXXX,
// where XXXXXXXX is the raw 26-bit instruction index field.
package mips

import (
	"fmt"
	"strings"
)

// MnemonicWidth is the column at which operands start, minus one.
const MnemonicWidth = 11

// Decoder renders machine words as text. The zero value is ready to use
// and is safe for concurrent use.
type Decoder struct {
	// NoPseudo disables pseudo-instruction forms such as nop, move and b.
	NoPseudo bool
}

// Fields extracted from an instruction word.
type fields struct {
	word  uint32
	op    uint32
	rs    uint32
	rt    uint32
	rd    uint32
	sa    uint32
	funct uint32
	imm   uint32
	index uint32
}

func split(word uint32) fields {
	return fields{
		word:  word,
		op:    word >> 26,
		rs:    (word >> 21) & 0x1F,
		rt:    (word >> 16) & 0x1F,
		rd:    (word >> 11) & 0x1F,
		sa:    (word >> 6) & 0x1F,
		funct: word & 0x3F,
		imm:   word & 0xFFFF,
		index: word & 0x03FFFFFF,
	}
}

// Decode returns the disassembly text for word. The address is accepted
// for interface symmetry; branch and jump operands are rendered
// relative to the instruction, so the text does not depend on it.
func (d Decoder) Decode(word, addr uint32) string {
	f := split(word)
	mn, ops := d.decode(f)
	if mn == "" {
		return format(".word", fmt.Sprintf("0x%08X", word))
	}
	return format(mn, ops...)
}

func format(mnemonic string, ops ...string) string {
	if len(ops) == 0 {
		return mnemonic
	}
	return fmt.Sprintf("%-*s %s", MnemonicWidth, mnemonic, strings.Join(ops, ", "))
}

func (d Decoder) decode(f fields) (string, []string) {
	switch f.op {
	case 0x00:
		return d.special(f)
	case 0x01:
		return d.regimm(f)
	case 0x02:
		return "j", []string{jumpTarget(f)}
	case 0x03:
		return "jal", []string{jumpTarget(f)}
	case 0x04:
		if !d.NoPseudo {
			if f.rs == 0 && f.rt == 0 {
				return "b", []string{branchOffset(f)}
			}
			if f.rt == 0 {
				return "beqz", []string{GPR(f.rs), branchOffset(f)}
			}
		}
		return "beq", []string{GPR(f.rs), GPR(f.rt), branchOffset(f)}
	case 0x05:
		if !d.NoPseudo && f.rt == 0 {
			return "bnez", []string{GPR(f.rs), branchOffset(f)}
		}
		return "bne", []string{GPR(f.rs), GPR(f.rt), branchOffset(f)}
	case 0x06:
		return "blez", []string{GPR(f.rs), branchOffset(f)}
	case 0x07:
		return "bgtz", []string{GPR(f.rs), branchOffset(f)}
	case 0x14:
		return "beql", []string{GPR(f.rs), GPR(f.rt), branchOffset(f)}
	case 0x15:
		return "bnel", []string{GPR(f.rs), GPR(f.rt), branchOffset(f)}
	case 0x16:
		return "blezl", []string{GPR(f.rs), branchOffset(f)}
	case 0x17:
		return "bgtzl", []string{GPR(f.rs), branchOffset(f)}
	case 0x0F:
		return "lui", []string{GPR(f.rt), unsignedImm(f.imm)}
	case 0x10:
		return cop0(f)
	case 0x11:
		return cop1(f)
	case 0x2F:
		return "cache", []string{unsignedImm(f.rt), baseOffset(f)}
	}
	if mn, ok := immOps[f.op]; ok {
		if f.op >= 0x0C && f.op <= 0x0E {
			return mn, []string{GPR(f.rt), GPR(f.rs), unsignedImm(f.imm)}
		}
		return mn, []string{GPR(f.rt), GPR(f.rs), signedImm(f.imm)}
	}
	if mn, ok := memOps[f.op]; ok {
		return mn, []string{GPR(f.rt), baseOffset(f)}
	}
	if mn, ok := fpuMemOps[f.op]; ok {
		return mn, []string{FPR(f.rt), baseOffset(f)}
	}
	return "", nil
}

func (d Decoder) special(f fields) (string, []string) {
	if f.word == 0 && !d.NoPseudo {
		return "nop", nil
	}
	switch f.funct {
	case 0x00, 0x02, 0x03, 0x38, 0x3A, 0x3B, 0x3C, 0x3E, 0x3F:
		return specialOps[f.funct], []string{GPR(f.rd), GPR(f.rt), fmt.Sprintf("%d", f.sa)}
	case 0x04, 0x06, 0x07, 0x14, 0x16, 0x17:
		return specialOps[f.funct], []string{GPR(f.rd), GPR(f.rt), GPR(f.rs)}
	case 0x08:
		return "jr", []string{GPR(f.rs)}
	case 0x09:
		if f.rd == 31 {
			return "jalr", []string{GPR(f.rs)}
		}
		return "jalr", []string{GPR(f.rd), GPR(f.rs)}
	case 0x0C:
		return "syscall", nil
	case 0x0D:
		code := (f.word >> 16) & 0x3FF
		if code == 0 {
			return "break", nil
		}
		return "break", []string{fmt.Sprintf("%d", code)}
	case 0x0F:
		return "sync", nil
	case 0x10, 0x12:
		return specialOps[f.funct], []string{GPR(f.rd)}
	case 0x11, 0x13:
		return specialOps[f.funct], []string{GPR(f.rs)}
	case 0x18, 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E, 0x1F,
		0x30, 0x31, 0x32, 0x33, 0x34, 0x36:
		return specialOps[f.funct], []string{GPR(f.rs), GPR(f.rt)}
	case 0x21, 0x25, 0x2D:
		if !d.NoPseudo && f.rt == 0 {
			return "move", []string{GPR(f.rd), GPR(f.rs)}
		}
	case 0x23:
		if !d.NoPseudo && f.rs == 0 {
			return "negu", []string{GPR(f.rd), GPR(f.rt)}
		}
	}
	if mn, ok := specialOps[f.funct]; ok {
		return mn, []string{GPR(f.rd), GPR(f.rs), GPR(f.rt)}
	}
	return "", nil
}

func (d Decoder) regimm(f fields) (string, []string) {
	if f.rt == 0x11 && f.rs == 0 && !d.NoPseudo {
		return "bal", []string{branchOffset(f)}
	}
	mn, ok := regimmOps[f.rt]
	if !ok {
		return "", nil
	}
	if f.rt >= 0x08 && f.rt <= 0x0E {
		return mn, []string{GPR(f.rs), signedImm(f.imm)}
	}
	return mn, []string{GPR(f.rs), branchOffset(f)}
}

func cop0(f fields) (string, []string) {
	switch f.rs {
	case 0x00:
		return "mfc0", []string{GPR(f.rt), COP0(f.rd)}
	case 0x01:
		return "dmfc0", []string{GPR(f.rt), COP0(f.rd)}
	case 0x04:
		return "mtc0", []string{GPR(f.rt), COP0(f.rd)}
	case 0x05:
		return "dmtc0", []string{GPR(f.rt), COP0(f.rd)}
	}
	if f.rs&0x10 != 0 {
		switch f.funct {
		case 0x01:
			return "tlbr", nil
		case 0x02:
			return "tlbwi", nil
		case 0x06:
			return "tlbwr", nil
		case 0x08:
			return "tlbp", nil
		case 0x18:
			return "eret", nil
		}
	}
	return "", nil
}

func cop1(f fields) (string, []string) {
	fs := (f.word >> 11) & 0x1F
	fd := (f.word >> 6) & 0x1F
	switch f.rs {
	case 0x00:
		return "mfc1", []string{GPR(f.rt), FPR(fs)}
	case 0x01:
		return "dmfc1", []string{GPR(f.rt), FPR(fs)}
	case 0x02:
		return "cfc1", []string{GPR(f.rt), fmt.Sprintf("$%d", fs)}
	case 0x04:
		return "mtc1", []string{GPR(f.rt), FPR(fs)}
	case 0x05:
		return "dmtc1", []string{GPR(f.rt), FPR(fs)}
	case 0x06:
		return "ctc1", []string{GPR(f.rt), fmt.Sprintf("$%d", fs)}
	case 0x08:
		mn, ok := bc1Ops[f.rt&0x3]
		if !ok {
			return "", nil
		}
		return mn, []string{branchOffset(f)}
	}
	fmtSuffix, ok := fpuFormats[f.rs]
	if !ok {
		return "", nil
	}
	ft := f.rt
	if f.funct >= 0x30 {
		return "c." + fpuCompare[f.funct&0xF] + fmtSuffix, []string{FPR(fs), FPR(ft)}
	}
	mn, ok := fpuOps[f.funct]
	if !ok {
		return "", nil
	}
	switch f.funct {
	case 0x00, 0x01, 0x02, 0x03:
		return mn + fmtSuffix, []string{FPR(fd), FPR(fs), FPR(ft)}
	}
	return mn + fmtSuffix, []string{FPR(fd), FPR(fs)}
}

// branchOffset renders the sign-extended 16-bit displacement.
func branchOffset(f fields) string {
	return fmt.Sprintf(". + 4 + (%s << 2)", signedImm(f.imm))
}

func jumpTarget(f fields) string {
	return fmt.Sprintf("func_%08X", f.index)
}

func baseOffset(f fields) string {
	return fmt.Sprintf("%s(%s)", signedImm(f.imm), GPR(f.rs))
}

func signedImm(imm uint32) string {
	v := int16(imm)
	if v < 0 {
		return fmt.Sprintf("-0x%X", -int32(v))
	}
	return fmt.Sprintf("0x%X", v)
}

func unsignedImm(imm uint32) string {
	return fmt.Sprintf("0x%X", imm)
}
