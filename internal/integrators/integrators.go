package integrators

import (
	"fmt"

	"github.com/san-kum/eclipsehunter/internal/dynamo"
)

// New returns the stepper registered under name.
func New(name string) (dynamo.Integrator, error) {
	switch name {
	case "", "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	}
	return nil, fmt.Errorf("unknown integrator: %s", name)
}
