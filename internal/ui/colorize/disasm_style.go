package colorize

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	palettes "n64view/internal/n64view/styles"
)

// StyleName returns the chroma style registered for a palette.
func StyleName(p palettes.Palette) string {
	return "n64-" + p.Name
}

func newStyle(p palettes.Palette) *chroma.Style {
	return chroma.MustNewStyle(StyleName(p), chroma.StyleEntries{
		chroma.Text:         p.Text,
		chroma.Comment:      "italic " + p.Comment,
		chroma.Keyword:      "bold " + p.Mnemonic,
		chroma.NameBuiltin:  p.Register,
		chroma.NameLabel:    p.Label,
		chroma.NameConstant: p.Address,

		chroma.LiteralNumber:        p.Number,
		chroma.LiteralNumberInteger: p.Number,
		chroma.LiteralNumberHex:     p.Label,

		chroma.Punctuation: p.Text,
	})
}

// N64Dark is the default highlighting style.
var N64Dark = styles.Register(newStyle(palettes.VSCodeDark))

// N64Charm pairs with the charm markdown palette.
var N64Charm = styles.Register(newStyle(palettes.Charm))

func styleFor(p palettes.Palette) *chroma.Style {
	if s := styles.Get(StyleName(p)); s != nil && s.Name == StyleName(p) {
		return s
	}
	return N64Dark
}
