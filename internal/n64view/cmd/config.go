package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"n64view/internal/n64view/styles"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Entry points a sweep may start from when no address is given.
const (
	EntryIPL3 = "ipl3"
	EntryBoot = "boot"
)

// Config represents configuration for n64view
type Config struct {
	Debug    bool   `json:"debug,omitempty" jsonschema:"title=Debug,description=Enable debug logging"`
	NoColor  bool   `json:"noColor,omitempty" jsonschema:"title=No Color,description=Disable syntax highlighting"`
	NoPseudo bool   `json:"noPseudo,omitempty" jsonschema:"title=No Pseudo,description=Print real instructions instead of pseudo-instructions such as nop and move"`
	Style    string `json:"style,omitempty" jsonschema:"title=Style,description=Colour palette,enum=dark,enum=charm,default=dark"`
	Workers  int    `json:"workers,omitempty" jsonschema:"title=Workers,description=Decoder goroutines per sweep; 0 uses GOMAXPROCS,minimum=0"`
	Symbols  string `json:"symbols,omitempty" jsonschema:"title=Symbols,description=Path to a symbol map of name = 0xADDR; lines"`
	Entry    string `json:"entry,omitempty" jsonschema:"title=Entry,description=Default sweep start,enum=ipl3,enum=boot,default=ipl3"`
	Lang     string `json:"lang,omitempty" jsonschema:"title=Language,description=BCP 47 tag for number formatting; defaults to the system locale"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{Style: "dark", Entry: EntryIPL3}
}

// LoadConfig reads path (skipped when empty) over the defaults, then
// applies N64VIEW_NO_COLOR and N64VIEW_WORKERS.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if os.Getenv("N64VIEW_NO_COLOR") != "" {
		cfg.NoColor = true
	}
	if v := os.Getenv("N64VIEW_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("N64VIEW_WORKERS=%q: %w", v, ErrInvalidConfig)
		}
		cfg.Workers = n
	}
	return cfg, cfg.Validate()
}

// Validate checks field ranges and names.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers %d: %w", c.Workers, ErrInvalidConfig)
	}
	if _, ok := styles.ByName(c.Style); !ok {
		return fmt.Errorf("style %q (have %v): %w", c.Style, styles.Names(), ErrInvalidConfig)
	}
	if c.Entry != "" && !slices.Contains([]string{EntryIPL3, EntryBoot}, c.Entry) {
		return fmt.Errorf("entry %q: %w", c.Entry, ErrInvalidConfig)
	}
	return nil
}

// Palette returns the configured colour palette.
func (c Config) Palette() styles.Palette {
	p, ok := styles.ByName(c.Style)
	if !ok {
		return styles.VSCodeDark
	}
	return p
}
