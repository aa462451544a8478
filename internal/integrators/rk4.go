package integrators

import "github.com/san-kum/eclipsehunter/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta stepper. For constant angular
// rates it agrees with Euler up to rounding; it stays available for systems
// whose rates depend on the state or on time.
type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	scratch        dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

// stage evaluates the system at x + h·k into dst.
func (r *RK4) stage(sys dynamo.System, dst, x, k dynamo.State, h, t float64) {
	for i := range x {
		r.scratch[i] = x[i] + h*k[i]
	}
	copy(dst, sys.Derive(r.scratch, t))
}

func (r *RK4) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, sys.Derive(x, t))
	r.stage(sys, r.k2, x, r.k1, dt/2, t+dt/2)
	r.stage(sys, r.k3, x, r.k2, dt/2, t+dt/2)
	r.stage(sys, r.k4, x, r.k3, dt, t+dt)

	next := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := range x {
		next[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return next
}
