package metrics

import "github.com/san-kum/eclipsehunter/internal/sim"

// AlignmentRatio is the fraction of observed ticks on which the eclipse
// predicate held, debounced or not.
type AlignmentRatio struct {
	name    string
	aligned int
	samples int
}

func NewAlignmentRatio() *AlignmentRatio {
	return &AlignmentRatio{name: "alignment_ratio"}
}

func (a *AlignmentRatio) Name() string { return a.name }

func (a *AlignmentRatio) Observe(f sim.Frame) {
	a.samples++
	if f.Detected {
		a.aligned++
	}
}

func (a *AlignmentRatio) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return float64(a.aligned) / float64(a.samples)
}

func (a *AlignmentRatio) Reset() {
	a.aligned = 0
	a.samples = 0
}
