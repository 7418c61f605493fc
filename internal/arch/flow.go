package arch

import (
	"fmt"
	"strconv"
	"strings"

	"n64view/internal/disasm"
)

// Resolve computes the control-flow edges of an instruction from its
// mnemonic and last operand:
//
//	b            one Unconditional edge to addr + 4*disp
//	b* (branch)  TrueBranch to addr + 4*disp, FalseBranch to addr + 4
//	j, jal       one Unconditional edge to (addr & 0xF0000000) | index<<2
//	jr, jalr     one Indirect edge
//
// Anything else has no edges. Arithmetic wraps in 32 bits. An operand
// that does not parse yields no edges and an error.
//
// The j and jal operand must be the raw 26-bit instruction index field
// as the decoder prints it in func_%08X, not the absolute target. It is
// masked to 26 bits, so a full address such as 0x80001234 resolves to
// the wrong target.
func Resolve(mnemonic, operand string, addr uint32) ([]disasm.Edge, error) {
	switch {
	case mnemonic == "jr" || mnemonic == "jalr":
		return []disasm.Edge{{Kind: disasm.Indirect}}, nil

	case mnemonic == "j" || mnemonic == "jal":
		index, err := parseSigned(operand)
		if err != nil {
			return nil, err
		}
		target := (addr & 0xF0000000) | (uint32(index)&0x03FFFFFF)<<2
		return []disasm.Edge{{Kind: disasm.Unconditional, Target: target, HasTarget: true}}, nil

	case mnemonic == "b":
		disp, err := parseSigned(operand)
		if err != nil {
			return nil, err
		}
		return []disasm.Edge{{Kind: disasm.Unconditional, Target: branchTarget(addr, disp), HasTarget: true}}, nil

	case IsBranchFamily(mnemonic):
		disp, err := parseSigned(operand)
		if err != nil {
			return nil, err
		}
		return []disasm.Edge{
			{Kind: disasm.TrueBranch, Target: branchTarget(addr, disp), HasTarget: true},
			{Kind: disasm.FalseBranch, Target: addr + InstructionLength, HasTarget: true},
		}, nil
	}
	return nil, nil
}

func branchTarget(addr uint32, disp int64) uint32 {
	return addr + uint32(disp)*4
}

// parseSigned parses "0x..", "-0x.." and decimal literals. A leading
// zero does not select octal and digit separators are rejected.
func parseSigned(s string) (int64, error) {
	digits, neg := strings.CutPrefix(s, "-")
	base := 10
	if hex, ok := strings.CutPrefix(digits, "0x"); ok {
		digits, base = hex, 16
	} else if hex, ok := strings.CutPrefix(digits, "0X"); ok {
		digits, base = hex, 16
	}
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return 0, fmt.Errorf("parse operand %q: %w", s, strconv.ErrSyntax)
	}
	u, err := strconv.ParseUint(digits, base, 63)
	if err != nil {
		return 0, fmt.Errorf("parse operand %q: %w", s, err)
	}
	if neg {
		return -int64(u), nil
	}
	return int64(u), nil
}
