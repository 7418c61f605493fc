package arch

import (
	"strings"

	"n64view/internal/disasm"
)

// Named system control registers rendered without the "$" sigil.
var namedRegisters = map[string]bool{
	"Index": true, "Random": true, "EntryLo0": true, "EntryLo1": true,
	"Context": true, "PageMask": true, "Wired": true, "BadVAddr": true,
	"Count": true, "EntryHi": true, "Compare": true, "Status": true,
	"Cause": true, "EPC": true, "PRId": true, "Config": true,
	"LLAddr": true, "WatchLo": true, "WatchHi": true, "XContext": true,
	"PErr": true, "CacheErr": true, "TagLo": true, "TagHi": true,
	"ErrorEPC": true,
}

// Classify returns the token kind of a non-mnemonic span owned by an
// instruction with the given mnemonic. ok is false when no rule matched
// and the span fell back to Text. Classify is total and pure.
func Classify(span, mnemonic string) (kind disasm.TokenKind, ok bool) {
	switch {
	case isSeparator(span):
		return disasm.Separator, true
	case strings.HasPrefix(span, "$") || namedRegisters[span]:
		return disasm.Register, true
	case IsBranchFamily(mnemonic) && isHex(span):
		return disasm.CodeRelativeAddress, true
	case isHex(span) || isDecimal(span):
		return disasm.Integer, true
	}
	return disasm.Text, false
}

func isSeparator(s string) bool {
	switch s {
	case ", ", ",", "(", ")":
		return true
	case "":
		return false
	}
	return strings.TrimSpace(s) == ""
}

func isHex(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "-0x")
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
