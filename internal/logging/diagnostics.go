package logging

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"n64view/internal/arch"
)

// Diagnostics reports decoder warnings on lg at warn level. The
// charmbracelet logger serialises writes, so the sink may be shared by
// concurrent decodes.
func Diagnostics(lg *log.Logger) arch.Diagnostics {
	return arch.DiagnosticsFunc(func(w arch.UnrecognizedTokenWarning) {
		lg.Warn("Unrecognized token",
			"token", w.Text,
			"insn", w.Instruction,
			"addr", fmt.Sprintf("0x%08x", w.Address))
	})
}

// Collector keeps warnings in memory, optionally forwarding them.
type Collector struct {
	mu       sync.Mutex
	warnings []arch.UnrecognizedTokenWarning
	next     arch.Diagnostics
}

// NewCollector returns a Collector forwarding to next, which may be nil.
func NewCollector(next arch.Diagnostics) *Collector {
	return &Collector{next: next}
}

// Warn records w.
func (c *Collector) Warn(w arch.UnrecognizedTokenWarning) {
	c.mu.Lock()
	c.warnings = append(c.warnings, w)
	c.mu.Unlock()
	if c.next != nil {
		c.next.Warn(w)
	}
}

// Warnings returns a copy of the recorded warnings.
func (c *Collector) Warnings() []arch.UnrecognizedTokenWarning {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]arch.UnrecognizedTokenWarning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Len returns the number of recorded warnings.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.warnings)
}
