package integrators

import "github.com/san-kum/eclipsehunter/internal/dynamo"

// Euler is exact for the orrery: every rate is constant, so one step of size
// dt advances each angle by rate·dt with no truncation error.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	dx := sys.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
