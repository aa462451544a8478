package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/eclipsehunter/internal/dynamo"
)

// growth is dx/dt = x, solved by x0·e^t.
type growth struct{}

func (growth) Derive(x dynamo.State, t float64) dynamo.State {
	dx := make(dynamo.State, len(x))
	copy(dx, x)
	return dx
}

func (growth) StateDim() int { return 1 }

func TestRK4MatchesEulerOnConstantRates(t *testing.T) {
	sys := &constantRates{rates: []float64{0.04, 0.03, 0.02, 0.018, 0.08}}
	euler, rk4 := NewEuler(), NewRK4()

	a := dynamo.State{0.5, 1, 1.5, 2, 0}
	b := dynamo.State{0.5, 1, 1.5, 2, 0}
	for i := 0; i < 500; i++ {
		a = euler.Step(sys, a, float64(i), 1.5)
		b = rk4.Step(sys, b, float64(i), 1.5)
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			t.Errorf("entry %d: euler %v rk4 %v", i, a[i], b[i])
		}
	}
}

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()
	x := dynamo.State{1}
	dt := 0.1
	for i := 0; i < 10; i++ {
		x = integ.Step(growth{}, x, float64(i)*dt, dt)
	}
	if err := math.Abs(x[0] - math.E); err > 1e-5 {
		t.Errorf("rk4 error %v too large (x=%v)", err, x[0])
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "euler", "rk4"} {
		if _, err := New(name); err != nil {
			t.Errorf("%q: %v", name, err)
		}
	}
	if _, err := New("verlet"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
