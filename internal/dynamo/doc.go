// Package dynamo provides the core primitives the orrery is built on.
//
// The package defines the small set of types shared by every other package:
//
//   - [State]: vector of angles, one entry per orbiting body
//   - [Vec2]: a point in world (pixel) space
//   - [System]: interface for a system of angular rates (dθ/dt = f(θ, t))
//   - [Integrator]: numerical stepper interface
//
// # Example
//
//	sys := orrery.NewSystem(orrery.DefaultCatalog(), rand.New(rand.NewSource(1)))
//	integ := integrators.NewEuler()
//	x := integ.Step(sys, sys.State(), t, speed)
//	sys.Apply(x)
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent mutation. Each simulation
// owns its own [State].
package dynamo
