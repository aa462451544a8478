package orrery

import "math/rand"

// Star is a fixed background point.
type Star struct {
	X, Y       float64
	Size       int
	Brightness uint8
}

// NewStarfield scatters n stars over a w x h world. Size is 1..3 and
// brightness 100..255.
func NewStarfield(n, w, h int, rng *rand.Rand) []Star {
	stars := make([]Star, n)
	for i := range stars {
		stars[i] = Star{
			X:          float64(rng.Intn(w + 1)),
			Y:          float64(rng.Intn(h + 1)),
			Size:       1 + rng.Intn(3),
			Brightness: uint8(100 + rng.Intn(156)),
		}
	}
	return stars
}
