// Package colorize highlights decoded MIPS instructions for the
// terminal. Token kinds from the decoder map onto chroma token types, so
// no lexer runs over the text.
package colorize

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"

	"n64view/internal/analysis"
	"n64view/internal/disasm"
	palettes "n64view/internal/n64view/styles"
)

// Enabled reports whether colour output is on. N64VIEW_NO_COLOR and
// NO_COLOR turn it off.
func Enabled() bool {
	return os.Getenv("N64VIEW_NO_COLOR") == "" && os.Getenv("NO_COLOR") == ""
}

// TokenType maps a decoder token kind onto a chroma token type.
func TokenType(k disasm.TokenKind) chroma.TokenType {
	switch k {
	case disasm.Mnemonic:
		return chroma.Keyword
	case disasm.Register:
		return chroma.NameBuiltin
	case disasm.Integer:
		return chroma.LiteralNumberInteger
	case disasm.CodeRelativeAddress:
		return chroma.LiteralNumberHex
	case disasm.Separator:
		return chroma.Punctuation
	default:
		return chroma.Text
	}
}

// Iterator yields the chroma tokens of ts.
func Iterator(ts disasm.TokenStream) chroma.Iterator {
	return chroma.Literator(chromaTokens(ts)...)
}

func chromaTokens(ts disasm.TokenStream) []chroma.Token {
	out := make([]chroma.Token, 0, len(ts))
	for _, t := range ts {
		out = append(out, chroma.Token{Type: TokenType(t.Kind), Value: t.Text})
	}
	return out
}

// getTerminalFormatter returns an appropriate terminal formatter
func getTerminalFormatter() chroma.Formatter {
	// Try high-color first, then fallback
	candidates := []string{"terminal16m", "terminal256"}
	for _, name := range candidates {
		if formatter := formatters.Get(name); formatter != nil {
			return formatter
		}
	}
	return formatters.Fallback
}

func format(p palettes.Palette, tokens []chroma.Token) (string, error) {
	var buf strings.Builder
	err := getTerminalFormatter().Format(&buf, styleFor(p), chroma.Literator(tokens...))
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Tokens renders a token stream, or its plain text when colour is off.
func Tokens(p palettes.Palette, ts disasm.TokenStream) string {
	if !Enabled() {
		return ts.String()
	}
	out, err := format(p, chromaTokens(ts))
	if err != nil {
		return ts.String()
	}
	return out
}

// Line renders an annotated instruction with the same columns as its
// String method.
func Line(p palettes.Palette, ai analysis.AnnotatedInst) string {
	if !Enabled() {
		return ai.String()
	}

	var toks []chroma.Token
	add := func(tt chroma.TokenType, s string) {
		toks = append(toks, chroma.Token{Type: tt, Value: s})
	}
	if ai.Label != "" {
		add(chroma.NameLabel, ai.Label+":")
		add(chroma.Text, "\n")
	}
	add(chroma.NameConstant, fmt.Sprintf("%08x", ai.VA))
	add(chroma.Text, "  ")
	if len(ai.Tokens) <= 2 && len(ai.Annotations) == 0 {
		add(chroma.Keyword, ai.Mnemonic())
	} else {
		add(chroma.Keyword, fmt.Sprintf("%-7s", ai.Mnemonic()))
		add(chroma.Text, " ")
	}
	if len(ai.Tokens) > 2 {
		toks = append(toks, chromaTokens(ai.Tokens[2:])...)
	}
	if len(ai.Annotations) > 0 {
		if pad := 30 - len(ai.OperandText()); pad > 0 {
			add(chroma.Text, strings.Repeat(" ", pad))
		}
		add(chroma.Comment, " ; "+strings.Join(ai.Annotations, ", "))
	}

	out, err := format(p, toks)
	if err != nil {
		return ai.String()
	}
	return out
}

// Listing renders every line of res.
func Listing(p palettes.Palette, res *analysis.AnnotatorResult) string {
	lines := make([]string, 0, len(res.Listing))
	for _, ai := range res.Listing {
		lines = append(lines, Line(p, ai))
	}
	return strings.Join(lines, "\n")
}

// StripANSI removes ANSI escape sequences.
func StripANSI(s string) string {
	var result strings.Builder
	inEscape := false

	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
		} else if inEscape {
			if r == 'm' {
				inEscape = false
			}
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}
