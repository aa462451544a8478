package sim

import (
	"github.com/san-kum/eclipsehunter/internal/dynamo"
	"github.com/san-kum/eclipsehunter/internal/eclipse"
)

// Frame is what the loop observed on one unpaused tick.
type Frame struct {
	Tick      int
	Geometry  eclipse.Geometry
	Distances eclipse.Distances
	// Detected is the raw predicate; Event is set only when the tracker
	// accepted it as a new eclipse.
	Detected bool
	Event    bool
}

// Event is one accepted eclipse.
type Event struct {
	Tick     int     `json:"tick"`
	Planet   string  `json:"planet"`
	Count    int     `json:"count"`
	Distance float64 `json:"distance"`
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnEclipse(e Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(e Event)

func (f ObserverFunc) OnEclipse(e Event) { f(e) }

type Result struct {
	Seed   int64
	Ticks  int
	Events []Event
	// Separation is the moon-planet distance per tick. Offset is the sun-moon
	// distance minus the sun-planet distance, negative while the moon is on
	// the sunward side.
	Separation []float64
	Offset     []float64
	Trace      []dynamo.Vec2
	Stats      eclipse.Stats
	Metrics    map[string]float64
}
