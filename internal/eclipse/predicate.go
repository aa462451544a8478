package eclipse

import "github.com/san-kum/eclipsehunter/internal/dynamo"

// DefaultThreshold is the moon-to-planet distance, in pixels, below which
// an alignment counts.
const DefaultThreshold = 50.0

// Geometry is the sun, a planet and its moon at one instant.
type Geometry struct {
	Sun    dynamo.Vec2
	Planet dynamo.Vec2
	Moon   dynamo.Vec2
}

// Distances holds the three pairwise distances of a Geometry.
type Distances struct {
	SunPlanet  float64
	SunMoon    float64
	MoonPlanet float64
}

func (g Geometry) Distances() Distances {
	return Distances{
		SunPlanet:  g.Sun.Dist(g.Planet),
		SunMoon:    g.Sun.Dist(g.Moon),
		MoonPlanet: g.Moon.Dist(g.Planet),
	}
}

// Offset is how much farther from the sun the moon is than the planet.
// It is negative while the moon is on the sunward side.
func (d Distances) Offset() float64 { return d.SunMoon - d.SunPlanet }

// Holds reports whether the distances satisfy the eclipse condition for the
// given threshold. Both comparisons are strict.
func (d Distances) Holds(threshold float64) bool {
	return d.SunMoon < d.SunPlanet && d.MoonPlanet < threshold
}

// Check reports whether g is an eclipse at the given threshold.
func Check(g Geometry, threshold float64) bool {
	return g.Distances().Holds(threshold)
}
