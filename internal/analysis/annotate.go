package analysis

import (
	"fmt"

	"n64view/internal/disasm"
)

// Annotate turns a swept stream into a listing. Branch targets inside
// the stream get local labels and every jal, j and jalr becomes a
// CallFinding. The detector chain, which may be nil, enriches the
// findings before their names and comments are attached to the listing.
func Annotate(s disasm.Stream, chain *DetectorChain) *AnnotatorResult {
	res := &AnnotatorResult{Listing: make([]AnnotatedInst, len(s))}
	index := make(map[uint32]int, len(s))
	for i, inst := range s {
		res.Listing[i] = AnnotatedInst{Inst: inst}
		index[inst.VA] = i
	}

	for _, inst := range s {
		if f, ok := callFinding(inst); ok {
			res.Findings = append(res.Findings, f)
			continue
		}
		for _, e := range branchEdges(inst) {
			if j, ok := index[e.Target]; ok && res.Listing[j].Label == "" {
				res.Listing[j].Label = fmt.Sprintf(".L%08X", e.Target)
			}
		}
	}

	if chain != nil {
		res.Findings = chain.Detect(res.Findings)
	}
	for _, f := range res.Findings {
		if j, ok := index[f.TargetVA]; ok && f.HasTarget {
			// Call targets take precedence over local labels.
			res.Listing[j].Label = f.Target
		}
		if j, ok := index[f.CallVA]; ok && f.Comment != "" {
			res.Listing[j].Annotations = append(res.Listing[j].Annotations, f.Comment)
		}
	}

	for i, inst := range s {
		for _, e := range branchEdges(inst) {
			label := fmt.Sprintf(".L%08X", e.Target)
			if j, ok := index[e.Target]; ok {
				label = res.Listing[j].Label
			}
			res.Listing[i].Annotations = append(res.Listing[i].Annotations, "-> "+label)
		}
	}
	return res
}

// branchEdges returns the taken edges of a pc-relative branch.
func branchEdges(inst disasm.Inst) []disasm.Edge {
	if inst.Op == "j" || inst.Op == "jal" {
		return nil
	}
	var out []disasm.Edge
	for _, e := range inst.Info.Edges {
		if e.HasTarget && (e.Kind == disasm.TrueBranch || e.Kind == disasm.Unconditional) {
			out = append(out, e)
		}
	}
	return out
}

func callFinding(inst disasm.Inst) (CallFinding, bool) {
	f := CallFinding{CallVA: inst.VA}
	switch inst.Op {
	case "jal":
		f.Kind = "call"
	case "j":
		f.Kind = "tail"
	case "jalr":
		f.Kind = "indirect"
	default:
		return f, false
	}
	if f.Kind == "indirect" {
		ops := inst.Tokens.Operands()
		if len(ops) > 0 {
			f.Register = ops[len(ops)-1]
		}
		f.Target = "indirect"
		return f, true
	}
	if len(inst.Info.Edges) != 1 || !inst.Info.Edges[0].HasTarget {
		return f, false
	}
	f.TargetVA = inst.Info.Edges[0].Target
	f.HasTarget = true
	f.Target = fmt.Sprintf("func_%08X", f.TargetVA)
	f.Comment = f.Target
	return f, true
}
