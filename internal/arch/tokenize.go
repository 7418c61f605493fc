package arch

import (
	"strings"
	"unicode"
)

// Tokenize splits decoder text into raw spans: the mnemonic, the
// whitespace run that follows it, then operands interleaved with ", ",
// "(" and ")" separators. Decoder-specific expressions are rewritten
// first (see rewriteRules). Unknown fragments are passed through as
// spans; recognising them is the classifier's job.
func Tokenize(text string) []string {
	text = strings.TrimSpace(text)
	i := strings.IndexFunc(text, unicode.IsSpace)
	if i < 0 {
		return []string{text}
	}
	mnemonic := text[:i]
	rest := rewriteOperands(mnemonic, text[i:])

	operands := strings.TrimLeftFunc(rest, unicode.IsSpace)
	if operands == "" {
		return []string{mnemonic}
	}
	spans := []string{mnemonic, rest[:len(rest)-len(operands)]}

	for _, word := range strings.Fields(operands) {
		if op, ok := strings.CutSuffix(word, ","); ok {
			spans = appendOperand(spans, op)
			spans = append(spans, ", ")
			continue
		}
		spans = appendOperand(spans, word)
	}
	return spans
}

// appendOperand splits base addressing "offset(reg)" into
// [offset, "(", reg, ")"]. An empty offset is omitted.
func appendOperand(spans []string, word string) []string {
	open := strings.IndexByte(word, '(')
	if open < 0 {
		if word == "" {
			return spans
		}
		return append(spans, word)
	}
	if open > 0 {
		spans = append(spans, word[:open])
	}
	inner := word[open+1:]
	if closeIdx := strings.IndexByte(inner, ')'); closeIdx >= 0 {
		spans = append(spans, "(", inner[:closeIdx], ")")
		if tail := inner[closeIdx+1:]; tail != "" {
			spans = append(spans, tail)
		}
		return spans
	}
	return append(spans, "(", inner)
}
