package orrery

import (
	"fmt"
	"math"

	"github.com/san-kum/eclipsehunter/internal/dynamo"
)

// ClickMargin is the slack, in pixels, added to a body's rendered radius
// when hit testing a click.
const ClickMargin = 5.0

// RGB is a display color shared by the terminal and window front ends.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var (
	Black     = RGB{0, 0, 0}
	Yellow    = RGB{255, 255, 0}
	Gray      = RGB{169, 169, 169}
	Blue      = RGB{100, 149, 237}
	Red       = RGB{188, 39, 50}
	Orange    = RGB{255, 140, 0}
	White     = RGB{255, 255, 255}
	DarkGray  = RGB{50, 50, 50}
	LightBlue = RGB{173, 216, 230}
	Gold      = RGB{255, 215, 0}
	Green     = RGB{50, 205, 50}
)

// Position returns the point at angle on the circle of the given radius
// around center.
func Position(center dynamo.Vec2, radius, angle float64) dynamo.Vec2 {
	return dynamo.Vec2{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}

// Body is a planet on a circular orbit around the sun.
type Body struct {
	Name        string
	OrbitRadius float64
	Radius      float64
	Color       RGB
	Speed       float64
	Angle       float64
	Pos         dynamo.Vec2
	Info        []string
	Selected    bool
}

// Contains reports whether p lies within the body's rendered radius plus
// ClickMargin and the caller's extra slack.
func (b *Body) Contains(p dynamo.Vec2, slack float64) bool {
	return b.Pos.Dist(p) <= b.Radius+ClickMargin+slack
}

func (b *Body) place(center dynamo.Vec2) {
	b.Pos = Position(center, b.OrbitRadius, b.Angle)
}

// Moon orbits the current position of its parent planet.
type Moon struct {
	Name        string
	Parent      int
	OrbitRadius float64
	Radius      float64
	Color       RGB
	Speed       float64
	Angle       float64
	Pos         dynamo.Vec2
}

func (m *Moon) place(parent dynamo.Vec2) {
	m.Pos = Position(parent, m.OrbitRadius, m.Angle)
}
