package cmd

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	pathpkg "path/filepath"
	"time"

	"github.com/spf13/cobra"

	"n64view/internal/analysis"
	"n64view/internal/arch"
	"n64view/internal/disasm"
	"n64view/internal/logging"
	"n64view/internal/rom"
	"n64view/internal/ui/colorize"
)

type disOptions struct {
	count    int
	function bool
	json     bool
}

// JSONInst is one instruction of `dis --json`.
type JSONInst struct {
	Address     string         `json:"address"`
	Raw         string         `json:"raw"`
	Text        string         `json:"text"`
	Label       string         `json:"label,omitempty"`
	Tokens      []disasm.Token `json:"tokens"`
	Edges       []JSONEdge     `json:"edges,omitempty"`
	Annotations []string       `json:"annotations,omitempty"`
}

// JSONEdge is a control-flow edge in JSON output.
type JSONEdge struct {
	Kind   string `json:"kind"`
	Target string `json:"target,omitempty"`
}

func jsonEdges(edges []disasm.Edge) []JSONEdge {
	out := make([]JSONEdge, 0, len(edges))
	for _, e := range edges {
		je := JSONEdge{Kind: e.Kind.String()}
		if e.HasTarget {
			je.Target = fmt.Sprintf("0x%08x", e.Target)
		}
		out = append(out, je)
	}
	return out
}

// listing sweeps from start and annotates the result. The warnings
// raised by the sweep are returned alongside and also logged.
func listing(ctx context.Context, s *session, im *rom.Image, start uint32, opts disOptions) (*analysis.AnnotatorResult, []arch.UnrecognizedTokenWarning, error) {
	begin := time.Now()
	count := opts.count
	if opts.function {
		count = analysis.MaxFunctionInstructions
	}
	warnings := logging.NewCollector(s.diag)
	stream, err := analysis.Sweep(ctx, im, arch.New(s.dec, warnings), start, count, s.cfg.Workers)
	if err != nil {
		return nil, nil, err
	}
	if opts.function {
		stream = analysis.UntilReturn(stream)
	}
	res := analysis.Annotate(stream, s.detectors())
	slog.Debug("Swept",
		"start", fmt.Sprintf("0x%08x", start),
		"count", len(stream),
		"findings", len(res.Findings),
		"warnings", warnings.Len(),
		"elapsed", time.Since(begin))
	return res, warnings.Warnings(), nil
}

func runDis(ctx context.Context, w io.Writer, s *session, im *rom.Image, start uint32, opts disOptions) error {
	res, _, err := listing(ctx, s, im, start, opts)
	if err != nil {
		return err
	}

	if opts.json {
		out := make([]JSONInst, 0, len(res.Listing))
		for _, ai := range res.Listing {
			out = append(out, JSONInst{
				Address:     fmt.Sprintf("0x%08x", ai.VA),
				Raw:         hex.EncodeToString(ai.Raw[:]),
				Text:        ai.Text,
				Label:       ai.Label,
				Tokens:      ai.Tokens,
				Edges:       jsonEdges(ai.Info.Edges),
				Annotations: ai.Annotations,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintln(w, colorize.Listing(s.cfg.Palette(), res))
	return nil
}

var disCmd = &cobra.Command{
	Use:   "dis <rom> [address]",
	Short: "Print a disassembly listing",
	Long: `Disassemble a linear run of instructions from a ROM image. Without an
address the sweep starts at the configured entry point.`,
	Example: `
# 64 instructions from the boot address
n64view dis --entry boot -c 64 game.z64

# One function as JSON
n64view dis --function --json game.z64 0x80000400
  `,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		absPath, err := pathpkg.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve path: %v", err)
		}
		im, err := rom.Open(absPath)
		if err != nil {
			return err
		}
		start, err := sess.start(im, args[1:])
		if err != nil {
			return err
		}

		var opts disOptions
		opts.count, _ = cmd.Flags().GetInt("count")
		opts.function, _ = cmd.Flags().GetBool("function")
		opts.json, _ = cmd.Flags().GetBool("json")
		return runDis(cmd.Context(), cmd.OutOrStdout(), sess, im, start, opts)
	},
}

func init() {
	disCmd.Flags().IntP("count", "c", analysis.DefaultSweepInstructions, "Number of instructions")
	disCmd.Flags().BoolP("function", "f", false, "Stop after the first jr $ra")
	disCmd.Flags().Bool("json", false, "Output JSON")
	rootCmd.AddCommand(disCmd)
}
