package metrics

import "github.com/san-kum/eclipsehunter/internal/sim"

// MeanGap is the mean number of ticks between consecutive accepted
// eclipses. It needs at least two events.
type MeanGap struct {
	name   string
	last   int
	events int
	total  int
}

func NewMeanGap() *MeanGap {
	return &MeanGap{name: "mean_gap_ticks"}
}

func (m *MeanGap) Name() string { return m.name }

func (m *MeanGap) Observe(f sim.Frame) {
	if !f.Event {
		return
	}
	if m.events > 0 {
		m.total += f.Tick - m.last
	}
	m.last = f.Tick
	m.events++
}

func (m *MeanGap) Value() float64 {
	if m.events < 2 {
		return 0
	}
	return float64(m.total) / float64(m.events-1)
}

func (m *MeanGap) Reset() {
	m.last = 0
	m.events = 0
	m.total = 0
}
