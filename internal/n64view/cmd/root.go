package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	pathpkg "path/filepath"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"n64view/internal/analysis"
	"n64view/internal/logging"
	"n64view/internal/n64view/log"
	"n64view/internal/rom"
)

// sess is built before every command runs.
var sess *session

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable syntax highlighting")
	rootCmd.PersistentFlags().Bool("no-pseudo", false, "Show real instructions instead of pseudo-instructions")
	rootCmd.PersistentFlags().String("style", "", "Colour palette (dark, charm)")
	rootCmd.PersistentFlags().IntP("workers", "j", 0, "Decoder goroutines per sweep (0 uses GOMAXPROCS)")
	rootCmd.PersistentFlags().StringP("symbols", "s", "", "Symbol map of name = 0xADDR; lines")
	rootCmd.PersistentFlags().String("entry", "", "Default sweep start (ipl3, boot)")
	rootCmd.PersistentFlags().String("lang", "", "Language for number formatting, e.g. de-DE")

	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().BoolP("no-tui", "n", false, "Print the listing without the TUI")
}

// configFromFlags loads the config file named by --config and applies
// every flag the user set on top of it.
func configFromFlags(cmd *cobra.Command) (Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("no-color") {
		cfg.NoColor, _ = flags.GetBool("no-color")
	}
	if flags.Changed("no-pseudo") {
		cfg.NoPseudo, _ = flags.GetBool("no-pseudo")
	}
	if flags.Changed("style") {
		cfg.Style, _ = flags.GetString("style")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("symbols") {
		cfg.Symbols, _ = flags.GetString("symbols")
	}
	if flags.Changed("entry") {
		cfg.Entry, _ = flags.GetString("entry")
	}
	if flags.Changed("lang") {
		cfg.Lang, _ = flags.GetString("lang")
	}
	return cfg, cfg.Validate()
}

var rootCmd = &cobra.Command{
	Use:   "n64view [rom] [address]",
	Short: "Terminal viewer for N64 ROM disassembly",
	Long: `n64view disassembles Nintendo 64 cartridge images (.z64, .v64, .n64).
It opens an interactive listing of the VR4300 code with branch labels,
named calls and syntax highlighting.`,
	Example: `
# Browse a ROM from its IPL3 entry
n64view game.z64

# Start at the boot address with a symbol map
n64view --entry boot -s symbol_addrs.txt game.z64

# Print the listing instead of opening the TUI
n64view -n game.z64 0x80000400
  `,
	Args:          cobra.RangeArgs(0, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := configFromFlags(cmd)
		if err != nil {
			return err
		}
		logger := logging.NewLogger()
		log.Setup(logger.Logger, cfg.Debug)
		s, err := newSession(cfg, logger)
		if err != nil {
			logger.Close()
			return err
		}
		sess = s
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		sess.close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

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

		noTUI, _ := cmd.Flags().GetBool("no-tui")
		// Also use no-tui mode when output is being piped
		if !term.IsTerminal(os.Stdout.Fd()) {
			noTUI = true
			os.Setenv("N64VIEW_NO_COLOR", "1")
		}
		if noTUI {
			return runDis(cmd.Context(), cmd.OutOrStdout(), sess, im, start, disOptions{count: analysis.DefaultSweepInstructions})
		}

		// stderr output would corrupt the alt screen; N64VIEW_LOG_TO_FILE keeps logs
		if sess.logger.Path() == "" {
			sess.logger.SetOutput(io.Discard)
		}
		program := tea.NewProgram(
			newModel(cmd.Context(), sess, im, start),
			tea.WithAltScreen(),
			tea.WithContext(cmd.Context()),
		)
		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}
		return nil
	},
}

func Execute() {
	// Bypass fang's styled output when piping or printing plain listings
	plain := !term.IsTerminal(os.Stdout.Fd())
	for _, arg := range os.Args[1:] {
		if arg == "--no-tui" || arg == "-n" || arg == "--json" {
			plain = true
			break
		}
	}

	if plain {
		if err := rootCmd.Execute(); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
