package metrics

import (
	"math"

	"github.com/san-kum/eclipsehunter/internal/sim"
)

// ClosestApproach is the smallest moon-to-planet distance seen.
type ClosestApproach struct {
	name string
	min  float64
}

func NewClosestApproach() *ClosestApproach {
	return &ClosestApproach{name: "closest_approach", min: math.Inf(1)}
}

func (c *ClosestApproach) Name() string { return c.name }

func (c *ClosestApproach) Observe(f sim.Frame) {
	c.min = math.Min(c.min, f.Distances.MoonPlanet)
}

func (c *ClosestApproach) Value() float64 {
	if math.IsInf(c.min, 1) {
		return 0
	}
	return c.min
}

func (c *ClosestApproach) Reset() { c.min = math.Inf(1) }
