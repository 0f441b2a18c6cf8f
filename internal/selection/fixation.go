package selection

import "fmt"

// FixationReport summarizes whether allele 1 reached fixation within
// the simulated generations. It is informational only; it never feeds
// back into the trajectory computation.
type FixationReport struct {
	// Fixed is true when some generation exceeded FixationThreshold.
	Fixed bool `json:"fixed"`

	// Generation is the first 1-based generation whose frequency
	// exceeded the threshold. Zero when Fixed is false.
	Generation int `json:"generation,omitempty"`

	// MaxFrequency is the highest frequency observed across the whole
	// trajectory. Only meaningful when Fixed is false.
	MaxFrequency float64 `json:"max_frequency,omitempty"`
}

// detectFixation scans p in generation order and reports the first
// crossing of FixationThreshold, or the maximum observed frequency when
// no generation crosses it.
func detectFixation(p []float64) FixationReport {
	max := p[0]
	for i, v := range p {
		if v > FixationThreshold {
			return FixationReport{Fixed: true, Generation: i + 1}
		}
		if v > max {
			max = v
		}
	}
	return FixationReport{MaxFrequency: max}
}

// String renders the report as a human-readable summary line.
func (r FixationReport) String() string {
	if r.Fixed {
		return fmt.Sprintf("allele 1 fixed at generation %d (frequency > %v)", r.Generation, FixationThreshold)
	}
	return fmt.Sprintf("no fixation; maximum frequency %.6f", r.MaxFrequency)
}
