// Package detectors enriches call findings produced by the annotator.
package detectors

import (
	"n64view/internal/analysis"
)

// SymbolDetector names call targets from a symbol map.
type SymbolDetector struct {
	symbols *analysis.SymbolMap
}

// NewSymbolDetector returns a detector backed by sm. A nil map names
// nothing.
func NewSymbolDetector(sm *analysis.SymbolMap) *SymbolDetector {
	return &SymbolDetector{symbols: sm}
}

func (d *SymbolDetector) Name() string { return "symbols" }

func (d *SymbolDetector) Detect(findings []analysis.CallFinding) []analysis.CallFinding {
	result := make([]analysis.CallFinding, 0, len(findings))
	for _, f := range findings {
		if !f.HasTarget {
			result = append(result, f)
			continue
		}
		sym, ok := d.symbols.Lookup(f.TargetVA)
		if !ok {
			result = append(result, f)
			continue
		}
		f.Target = sym.Name
		f.Comment = sym.Display()
		if f.Kind == "tail" {
			f.Comment = "tail " + f.Comment
		}
		if f.Metadata == nil {
			f.Metadata = make(map[string]any)
		}
		f.Metadata["symbol"] = sym.Name
		if sym.Demangled != "" {
			f.Metadata["demangled"] = sym.Demangled
		}
		result = append(result, f)
	}
	return result
}
