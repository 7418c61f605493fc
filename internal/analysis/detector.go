package analysis

// Detector enriches call findings, for example by naming targets or
// commenting on call patterns. It may rewrite findings or add new ones.
type Detector interface {
	Name() string
	Detect(findings []CallFinding) []CallFinding
}

// DetectorChain runs detectors in order, each seeing the previous
// detector's output.
type DetectorChain struct {
	detectors []Detector
}

// NewDetectorChain builds a chain; nil detectors are skipped.
func NewDetectorChain(detectors ...Detector) *DetectorChain {
	dc := &DetectorChain{}
	for _, d := range detectors {
		if d != nil {
			dc.detectors = append(dc.detectors, d)
		}
	}
	return dc
}

// Names lists the detectors in run order.
func (dc *DetectorChain) Names() []string {
	names := make([]string, 0, len(dc.detectors))
	for _, d := range dc.detectors {
		names = append(names, d.Name())
	}
	return names
}

func (dc *DetectorChain) Detect(findings []CallFinding) []CallFinding {
	for _, d := range dc.detectors {
		findings = d.Detect(findings)
	}
	return findings
}
