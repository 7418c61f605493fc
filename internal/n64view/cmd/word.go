package cmd

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"n64view/internal/ui/colorize"
)

// wordReport is the `word --json` output.
type wordReport struct {
	JSONInst
	Length int `json:"length"`
}

func runWord(w io.Writer, s *session, word, addr uint32, asJSON bool) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], word)
	inst, err := s.arch().Decode(buf[:], addr)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(wordReport{
			JSONInst: JSONInst{
				Address: fmt.Sprintf("0x%08x", addr),
				Raw:     fmt.Sprintf("%08x", word),
				Text:    inst.Text,
				Tokens:  inst.Tokens,
				Edges:   jsonEdges(inst.Info.Edges),
			},
			Length: inst.Info.Length,
		})
	}

	fmt.Fprintf(w, "%08x  %s\n", addr, colorize.Tokens(s.cfg.Palette(), inst.Tokens))
	for _, t := range inst.Tokens {
		fmt.Fprintf(w, "  %-22s %q\n", t.Kind, t.Text)
	}
	for _, e := range inst.Info.Edges {
		if e.HasTarget {
			fmt.Fprintf(w, "  -> %-13s 0x%08x\n", e.Kind, e.Target)
		} else {
			fmt.Fprintf(w, "  -> %s\n", e.Kind)
		}
	}
	return nil
}

var wordCmd = &cobra.Command{
	Use:   "word <hex> [address]",
	Short: "Decode one instruction word",
	Long: `Decode a single big-endian instruction word and show its tokens and
control-flow edges. The address defaults to 0.`,
	Example: `
# beq $v0, $v1 two instructions back
n64view word 1043fffe 0x2000
  `,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		word, err := parseAddr(strings.ReplaceAll(args[0], "_", ""))
		if err != nil {
			return err
		}
		var addr uint32
		if len(args) > 1 {
			if addr, err = parseAddr(args[1]); err != nil {
				return err
			}
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		return runWord(cmd.OutOrStdout(), sess, word, addr, asJSON)
	},
}

func init() {
	wordCmd.Flags().Bool("json", false, "Output JSON")
	rootCmd.AddCommand(wordCmd)
}
