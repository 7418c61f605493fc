package arch

import (
	"regexp"
	"strings"
)

// rewriteRule normalises a decoder-specific operand expression before
// the operand region is split into spans.
type rewriteRule struct {
	name    string
	applies func(mnemonic string) bool
	pattern *regexp.Regexp
	replace string
}

// rewriteRules run in order over the operand region.
var rewriteRules = []rewriteRule{
	{
		// ". + 4 + (0x5 << 2)" or "pc + 4 + (-0x2 << 2)" -> displacement
		name:    "pc-relative",
		applies: IsBranchFamily,
		pattern: regexp.MustCompile(`(?:\.|pc)\s*\+\s*4\s*\+\s*\(\s*(-?(?:0[xX][0-9A-Fa-f]+|[0-9]+))\s*<<\s*2\s*\)`),
		replace: "${1}",
	},
	{
		// "func_80001234" or "func80001234" -> "0x80001234"
		name:    "pseudo-symbol",
		applies: func(string) bool { return true },
		pattern: regexp.MustCompile(`\bfunc_?([0-9A-Fa-f]+)\b`),
		replace: "0x${1}",
	},
}

// IsBranchFamily reports whether mnemonic is a pc-relative branch: any
// mnemonic with the "b" prefix except the breakpoint instruction.
func IsBranchFamily(mnemonic string) bool {
	return strings.HasPrefix(mnemonic, "b") && mnemonic != "break"
}

func rewriteOperands(mnemonic, operands string) string {
	for _, r := range rewriteRules {
		if r.applies(mnemonic) {
			operands = r.pattern.ReplaceAllString(operands, r.replace)
		}
	}
	return operands
}
