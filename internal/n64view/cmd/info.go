package cmd

import (
	"context"
	"fmt"
	"io"
	pathpkg "path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"n64view/internal/analysis"
	"n64view/internal/mips"
	"n64view/internal/n64view/styles"
	"n64view/internal/rom"
	"n64view/internal/translate"
)

// report builds the markdown summary of im: header fields, segments,
// register file, and what a sweep from the entry point found.
func report(ctx context.Context, s *session, im *rom.Image) (string, error) {
	h := im.Header
	var b strings.Builder

	title := h.Title
	if title == "" {
		title = pathpkg.Base(im.Path)
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("| field | value |\n|---|---|\n")
	fmt.Fprintf(&b, "| format | %s |\n", im.Format)
	fmt.Fprintf(&b, "| game code | `%s` |\n", h.GameCode())
	fmt.Fprintf(&b, "| version | %d |\n", h.Version)
	fmt.Fprintf(&b, "| boot address | `0x%08x` |\n", h.BootAddress)
	fmt.Fprintf(&b, "| clock rate | 0x%08x |\n", h.ClockRate)
	fmt.Fprintf(&b, "| crc | `%08x %08x` |\n", h.CRC1, h.CRC2)
	fmt.Fprintf(&b, "| size | %s |\n\n", translate.From("%d bytes", len(im.Data)))

	b.WriteString("## Segments\n\n| name | address | offset | size |\n|---|---|---|---|\n")
	for _, seg := range im.Segs {
		fmt.Fprintf(&b, "| %s | `0x%08x` | 0x%x | %s |\n", seg.Name, seg.VA, seg.Off, translate.From("%d", seg.Size))
	}

	regs := mips.Registers()
	b.WriteString("\n## Registers\n\n")
	b.WriteString(translate.From("%d registers, stack pointer `%s`.\n\n", len(regs), mips.StackPointer))

	start, err := s.start(im, nil)
	if err != nil {
		return "", err
	}
	res, warnings, err := listing(ctx, s, im, start, disOptions{count: analysis.DefaultSweepInstructions})
	if err != nil {
		return "", err
	}
	calls, indirect := 0, 0
	for _, f := range res.Findings {
		if f.HasTarget {
			calls++
		} else {
			indirect++
		}
	}
	fmt.Fprintf(&b, "## Entry `0x%08x`\n\n", start)
	fmt.Fprintf(&b, "- %s\n", translate.From("%d instructions swept", len(res.Listing)))
	fmt.Fprintf(&b, "- %s\n", translate.From("%d direct calls, %d indirect", calls, indirect))
	fmt.Fprintf(&b, "- %s\n", translate.From("%d unrecognized tokens", len(warnings)))
	if s.symbols != nil {
		fmt.Fprintf(&b, "- %s\n", translate.From("%d symbols loaded", s.symbols.Len()))
	}
	return b.String(), nil
}

func runInfo(ctx context.Context, w io.Writer, s *session, im *rom.Image, raw bool, width int) error {
	md, err := report(ctx, s, im)
	if err != nil {
		return err
	}
	if raw {
		_, err := io.WriteString(w, md)
		return err
	}
	r, err := styles.MarkdownRenderer(s.cfg.Palette(), width)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

var infoCmd = &cobra.Command{
	Use:   "info <rom>",
	Short: "Summarise a ROM image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		im, err := rom.Open(args[0])
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetBool("markdown")
		return runInfo(cmd.Context(), cmd.OutOrStdout(), sess, im, raw, 80)
	},
}

func init() {
	infoCmd.Flags().BoolP("markdown", "m", false, "Print the report as markdown source")
	rootCmd.AddCommand(infoCmd)
}
