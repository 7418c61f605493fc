// Package styles holds the colour palettes shared by the markdown
// reports and the disassembly highlighter.
package styles

import (
	"sort"

	"github.com/charmbracelet/x/exp/charmtone"
)

// Palette names the colours a view needs. Values are "#RRGGBB".
type Palette struct {
	Name string

	Text    string
	Heading string
	Title   string
	TitleBg string
	Comment string
	Code    string
	Link    string
	Muted   string

	Mnemonic string
	Register string
	Number   string
	Address  string
	Label    string
}

// VSCodeDark follows the VS Code dark theme.
var VSCodeDark = Palette{
	Name:     "dark",
	Text:     "#D4D4D4",
	Heading:  "#569CD6",
	Title:    "#569CD6",
	Comment:  "#6A9955",
	Code:     "#EACD53",
	Link:     "#4FC1FF",
	Muted:    "#858585",
	Mnemonic: "#DCDCAA",
	Register: "#9CDCFE",
	Number:   "#B5CEA8",
	Address:  "#4F4F4F",
	Label:    "#FFD700",
}

// Charm uses the charmtone colours.
var Charm = Palette{
	Name:     "charm",
	Text:     charmtone.Smoke.Hex(),
	Heading:  charmtone.Malibu.Hex(),
	Title:    charmtone.Zest.Hex(),
	TitleBg:  charmtone.Charple.Hex(),
	Comment:  charmtone.Squid.Hex(),
	Code:     charmtone.Malibu.Hex(),
	Link:     charmtone.Zinc.Hex(),
	Muted:    charmtone.Charcoal.Hex(),
	Mnemonic: charmtone.Cheeky.Hex(),
	Register: charmtone.Guac.Hex(),
	Number:   charmtone.Zest.Hex(),
	Address:  charmtone.Charcoal.Hex(),
	Label:    charmtone.Malibu.Hex(),
}

var palettes = map[string]Palette{
	VSCodeDark.Name: VSCodeDark,
	Charm.Name:      Charm,
}

// ByName returns the palette called name; "" selects VSCodeDark.
func ByName(name string) (Palette, bool) {
	if name == "" {
		return VSCodeDark, true
	}
	p, ok := palettes[name]
	return p, ok
}

// Names lists the known palettes.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
