package orrery

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/san-kum/eclipsehunter/internal/dynamo"
)

// MoonKey names the moon in start-angle overrides.
const MoonKey = "moon"

var ErrUnknownBody = errors.New("orrery: unknown body")

// System is the catalogue in motion. Its state vector holds one angle per
// planet followed by the moon's angle, and every rate is constant.
type System struct {
	center    dynamo.Vec2
	sunRadius float64
	planets   []Body
	moon      Moon
}

// NewSystem copies cat, gives each planet a uniform random starting angle in
// [0, 2π) drawn from rng, and places every body. The moon keeps its catalogue
// angle.
func NewSystem(cat Catalog, rng *rand.Rand) *System {
	s := &System{
		center:    cat.Center,
		sunRadius: cat.SunRadius,
		planets:   make([]Body, len(cat.Planets)),
		moon:      cat.Moon,
	}
	for i, p := range cat.Planets {
		p.Info = append([]string(nil), p.Info...)
		p.Angle = rng.Float64() * 2 * math.Pi
		s.planets[i] = p
	}
	s.place()
	return s
}

func (s *System) StateDim() int { return len(s.planets) + 1 }

func (s *System) Derive(x dynamo.State, t float64) dynamo.State {
	dx := make(dynamo.State, s.StateDim())
	for i := range s.planets {
		dx[i] = s.planets[i].Speed
	}
	dx[len(s.planets)] = s.moon.Speed
	return dx
}

// State returns the current angles.
func (s *System) State() dynamo.State {
	x := make(dynamo.State, s.StateDim())
	for i := range s.planets {
		x[i] = s.planets[i].Angle
	}
	x[len(s.planets)] = s.moon.Angle
	return x
}

// Apply sets every angle from x and recomputes positions, planets first so
// the moon follows its parent's new position.
func (s *System) Apply(x dynamo.State) error {
	if len(x) != s.StateDim() {
		return fmt.Errorf("apply %d angles to %d bodies: %w", len(x), s.StateDim(), dynamo.ErrDimensionMismatch)
	}
	if !x.IsValid() {
		return dynamo.ErrInvalidState
	}
	for i := range s.planets {
		s.planets[i].Angle = x[i]
	}
	s.moon.Angle = x[len(s.planets)]
	s.place()
	return nil
}

func (s *System) place() {
	for i := range s.planets {
		s.planets[i].place(s.center)
	}
	s.moon.place(s.planets[s.moon.Parent].Pos)
}

// SetAngle overrides the angle of the named body (case-insensitive, MoonKey
// for the moon) and re-places the system.
func (s *System) SetAngle(name string, angle float64) error {
	if strings.EqualFold(name, MoonKey) || strings.EqualFold(name, s.moon.Name) {
		s.moon.Angle = angle
		s.place()
		return nil
	}
	for i := range s.planets {
		if strings.EqualFold(s.planets[i].Name, name) {
			s.planets[i].Angle = angle
			s.place()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownBody, name)
}

func (s *System) Sun() dynamo.Vec2   { return s.center }
func (s *System) SunRadius() float64 { return s.sunRadius }
func (s *System) Planets() []Body    { return s.planets }
func (s *System) Planet(i int) *Body { return &s.planets[i] }
func (s *System) Moon() *Moon        { return &s.moon }
func (s *System) MoonParent() *Body  { return &s.planets[s.moon.Parent] }
func (s *System) NumPlanets() int    { return len(s.planets) }

// BodyAt returns the index of the first planet whose hit area contains p,
// or -1.
func (s *System) BodyAt(p dynamo.Vec2, slack float64) int {
	for i := range s.planets {
		if s.planets[i].Contains(p, slack) {
			return i
		}
	}
	return -1
}

// Select marks planet i as the only selected body. Any negative index
// clears the selection.
func (s *System) Select(i int) {
	for j := range s.planets {
		s.planets[j].Selected = j == i
	}
}
