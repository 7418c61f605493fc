package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"n64view/internal/analysis"
	"n64view/internal/arch"
	"n64view/internal/detectors"
	"n64view/internal/logging"
	"n64view/internal/mips"
	"n64view/internal/rom"
	"n64view/internal/translate"
)

// session is the state shared by one command invocation.
type session struct {
	cfg     Config
	logger  *logging.LoggerCloser
	dec     arch.Decoder
	diag    arch.Diagnostics
	symbols *analysis.SymbolMap
}

func newSession(cfg Config, logger *logging.LoggerCloser) (*session, error) {
	s := &session{
		cfg:    cfg,
		logger: logger,
		dec:    mips.Decoder{NoPseudo: cfg.NoPseudo},
		diag:   logging.Diagnostics(logger.Logger),
	}

	if cfg.Symbols != "" {
		sm, err := analysis.LoadSymbolMap(cfg.Symbols)
		if err != nil {
			return nil, err
		}
		s.symbols = sm
		slog.Debug("Loaded symbols", "path", cfg.Symbols, "count", sm.Len())
	}
	if cfg.NoColor {
		os.Setenv("N64VIEW_NO_COLOR", "1")
	}
	if cfg.Lang != "" {
		translate.SetLanguage(cfg.Lang)
	}
	return s, nil
}

// arch returns an Arch reporting straight to the log.
func (s *session) arch() *arch.Arch {
	return arch.New(s.dec, s.diag)
}

func (s *session) detectors() *analysis.DetectorChain {
	return detectors.Default(s.symbols)
}

func (s *session) close() {
	if s == nil || s.logger == nil {
		return
	}
	if err := s.logger.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close log: %v\n", err)
	}
}

// start resolves the sweep start: an explicit address argument, or the
// configured entry point of im.
func (s *session) start(im *rom.Image, args []string) (uint32, error) {
	if len(args) > 0 {
		return parseAddr(args[0])
	}
	return im.EntryPoint(s.cfg.Entry == EntryBoot), nil
}

// parseAddr accepts "0x80000400", "80000400" and decimal with a "#"
// prefix.
func parseAddr(s string) (uint32, error) {
	base := 16
	switch {
	case len(s) > 1 && s[0] == '#':
		s, base = s[1:], 10
	case len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X"):
		s = s[2:]
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", s, err)
	}
	return uint32(v), nil
}
