package orrery

import "github.com/san-kum/eclipsehunter/internal/dynamo"

const (
	WorldWidth  = 1200
	WorldHeight = 900
	SunRadius   = 35
)

// Catalog is the fixed set of bodies the simulation runs.
type Catalog struct {
	Center    dynamo.Vec2
	SunRadius float64
	Planets   []Body
	Moon      Moon
}

// DefaultCatalog returns the four inner planets and Earth's moon laid out
// in a 1200x900 world with the sun at its center.
func DefaultCatalog() Catalog {
	return Catalog{
		Center:    dynamo.Vec2{X: WorldWidth / 2, Y: WorldHeight / 2},
		SunRadius: SunRadius,
		Planets: []Body{
			{
				Name: "Mercury", OrbitRadius: 100, Radius: 7, Color: Gray, Speed: 0.04,
				Info: []string{"Distance: 57.9M km", "Orbital Period: 88 days", "Smallest planet", "No atmosphere"},
			},
			{
				Name: "Venus", OrbitRadius: 150, Radius: 11, Color: Orange, Speed: 0.03,
				Info: []string{"Distance: 108.2M km", "Orbital Period: 225 days", "Hottest planet", "Thick atmosphere"},
			},
			{
				Name: "Earth", OrbitRadius: 210, Radius: 13, Color: Blue, Speed: 0.02,
				Info: []string{"Distance: 149.6M km", "Orbital Period: 365 days", "Our home planet", "Has liquid water"},
			},
			{
				Name: "Mars", OrbitRadius: 280, Radius: 9, Color: Red, Speed: 0.018,
				Info: []string{"Distance: 227.9M km", "Orbital Period: 687 days", "The Red Planet", "Has ice caps"},
			},
		},
		Moon: Moon{Name: "Moon", Parent: 2, OrbitRadius: 35, Radius: 5, Color: Gray, Speed: 0.08},
	}
}
