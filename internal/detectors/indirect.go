package detectors

import (
	"n64view/internal/analysis"
)

// IndirectCallDetector comments register-indirect calls. The o32 ABI
// loads PIC call targets into $t9, so those are flagged as such.
type IndirectCallDetector struct{}

func NewIndirectCallDetector() *IndirectCallDetector {
	return &IndirectCallDetector{}
}

func (d *IndirectCallDetector) Name() string { return "indirect" }

func (d *IndirectCallDetector) Detect(findings []analysis.CallFinding) []analysis.CallFinding {
	for i := range findings {
		f := &findings[i]
		if f.Kind != "indirect" || f.Comment != "" {
			continue
		}
		reg := f.Register
		if reg == "" {
			reg = "register"
		}
		f.Comment = "indirect call via " + reg
		if reg == "$t9" {
			if f.Metadata == nil {
				f.Metadata = make(map[string]any)
			}
			f.Metadata["pic"] = true
		}
	}
	return findings
}

// Default returns the detectors used for listings.
func Default(sm *analysis.SymbolMap) *analysis.DetectorChain {
	return analysis.NewDetectorChain(NewSymbolDetector(sm), NewIndirectCallDetector())
}
